package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"distrigestion/models"
	"distrigestion/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)

func TestReconcile_ProtectsCommittedDispatch(t *testing.T) {
	stamp := testNow.Add(-24 * time.Hour)
	existing := []models.Order{{
		ID:          "100",
		Status:      models.StatusScheduled,
		TruckID:     "T1",
		ServiceDate: "2026-09-01",
		TotalAmount: 100,
		Address:     "Calle Vieja 1",
		Store:       "S01",
		UpdatedAt:   &stamp,
		UpdatedBy:   "marta",
	}}
	incoming := []models.Order{{
		ID:          "100",
		Status:      models.StatusUnreviewed, // import knows nothing of today's plan
		TruckID:     "",
		ServiceDate: "2026-09-05",
		TotalAmount: 120,
		Address:     "Calle Nueva 2",
		Phone1:      "600111222",
	}}

	merged := Reconcile(existing, incoming, testNow)
	require.Len(t, merged, 1)

	o := merged[0]
	// Dispatch fields stay exactly as committed.
	assert.Equal(t, "T1", o.TruckID)
	assert.Equal(t, models.StatusScheduled, o.Status)
	assert.Equal(t, &stamp, o.UpdatedAt)
	assert.Equal(t, "marta", o.UpdatedBy)
	assert.Equal(t, "S01", o.Store)
	// Everything else is refreshed truth from the import.
	assert.Equal(t, 120.0, o.TotalAmount)
	assert.Equal(t, "Calle Nueva 2", o.Address)
	assert.Equal(t, "600111222", o.Phone1)
	assert.Equal(t, "2026-09-05", o.ServiceDate)
}

func TestReconcile_ProtectsScheduledWithoutTruck(t *testing.T) {
	// Scheduled but still awaiting a truck: the loads view surfaces it as
	// unassigned, and a nightly reimport must not demote it out of sight.
	existing := []models.Order{{
		ID:          "150",
		Status:      models.StatusScheduled,
		TruckID:     "",
		ServiceDate: "2026-09-01",
	}}
	incoming := []models.Order{{
		ID:          "150",
		Status:      models.StatusUnreviewed,
		ServiceDate: "2026-09-04",
		TotalAmount: 80,
	}}

	merged := Reconcile(existing, incoming, testNow)
	require.Len(t, merged, 1)
	assert.Equal(t, models.StatusScheduled, merged[0].Status)
	assert.Equal(t, "", merged[0].TruckID)
	assert.Equal(t, 80.0, merged[0].TotalAmount, "non-dispatch fields still refresh")

	_, unassigned := GroupLoads(merged, "2026-09-04")
	require.Len(t, unassigned, 1, "the order stays visible for urgent resolution")
}

func TestReconcile_UncommittedOrdersFullyReplaced(t *testing.T) {
	stamp := testNow.Add(-time.Hour)
	existing := []models.Order{{
		ID:        "200",
		Status:    models.StatusPreparing,
		TruckID:   "T2", // preparing, not committed: truck may be reshuffled
		Store:     "S02",
		UpdatedAt: &stamp,
		UpdatedBy: "jose",
	}}
	incoming := []models.Order{{
		ID:          "200",
		Status:      models.StatusRTC,
		ServiceDate: "2026-09-03",
	}}

	merged := Reconcile(existing, incoming, testNow)
	require.Len(t, merged, 1)
	assert.Equal(t, models.StatusRTC, merged[0].Status)
	assert.Equal(t, "", merged[0].TruckID)
	assert.Equal(t, "S02", merged[0].Store, "store tag survives reimport")
	assert.Equal(t, &stamp, merged[0].UpdatedAt)
}

func TestReconcile_NewOrdersStamped(t *testing.T) {
	merged := Reconcile(nil, []models.Order{{ID: "300"}}, testNow)
	require.Len(t, merged, 1)
	require.NotNil(t, merged[0].UpdatedAt)
	assert.True(t, merged[0].UpdatedAt.Equal(testNow))
	assert.Empty(t, merged[0].UpdatedBy, "machine imports have no editor")
}

func TestReconcile_Idempotent(t *testing.T) {
	batch := []models.Order{
		{ID: "1", Status: models.StatusRTC, TotalAmount: 10},
		{ID: "2", Status: models.StatusUnreviewed, City: "Madrid"},
	}

	first := Reconcile(nil, batch, testNow)
	second := Reconcile(first, batch, testNow.Add(time.Hour))
	assert.Equal(t, first, second, "reimporting an already-reconciled batch changes nothing")
}

func TestImporter_CountsAndUpsert(t *testing.T) {
	stamp := testNow
	repo := repository.NewMemoryRepository(
		models.Order{ID: "1", Status: models.StatusScheduled, TruckID: "T1", UpdatedAt: &stamp},
		models.Order{ID: "2", Status: models.StatusUnreviewed},
	)
	im := &Importer{Repo: repo}

	res, err := im.Import(context.Background(), []models.Order{
		{ID: "1", Status: models.StatusUnreviewed, TotalAmount: 50},
		{ID: "2", Status: models.StatusRTC},
		{ID: "3", Status: models.StatusUnreviewed},
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Total: 3, New: 1, Protected: 1}, res)

	after, err := repo.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, after, 3)
	assert.Equal(t, "T1", after[0].TruckID)
	assert.Equal(t, models.StatusScheduled, after[0].Status)
	assert.Equal(t, 50.0, after[0].TotalAmount)
	assert.Equal(t, models.StatusRTC, after[1].Status)
}

func TestImporter_WriteFailureSurfacedWhole(t *testing.T) {
	repo := repository.NewMemoryRepository(models.Order{ID: "1", Status: models.StatusRTC})
	repo.FailNextWrite(errors.New("connection reset"))
	im := &Importer{Repo: repo}

	_, err := im.Import(context.Background(), []models.Order{{ID: "1"}, {ID: "2"}}, testNow)
	require.Error(t, err)

	// The store kept its pre-import truth; the caller re-reads it.
	after, _ := repo.ListOrders(context.Background())
	require.Len(t, after, 1)
	assert.Equal(t, models.StatusRTC, after[0].Status)
}
