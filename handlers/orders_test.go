package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"distrigestion/models"
	"distrigestion/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderRouter(repo *repository.MemoryRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &OrderHandler{Repo: repo}
	r.GET("/api/orders", h.ListOrders)
	return r
}

type listOrdersResponse struct {
	Count  int            `json:"count"`
	Orders []models.Order `json:"orders"`
	Cities []string       `json:"cities"`
}

func TestListOrders_StaleCityFilterResets(t *testing.T) {
	repo := repository.NewMemoryRepository(
		models.Order{ID: "1", Province: "Madrid", City: "Madrid"},
		models.Order{ID: "2", Province: "Madrid", City: "Getafe"},
		models.Order{ID: "3", Province: "Barcelona", City: "Barcelona"},
	)
	router := newOrderRouter(repo)

	// A city left over from another province scope must not empty the view.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/orders?province=Madrid&city=Barcelona", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp listOrdersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count, "stale city is cleared, only the province narrows")
	assert.Equal(t, []string{"Getafe", "Madrid"}, resp.Cities, "city options follow the province scope")

	// A city inside the scope still narrows as usual.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/orders?province=Madrid&city=Getafe", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "2", resp.Orders[0].ID)
}
