package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"distrigestion/models"
	"distrigestion/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduled(id, truckID, date string) models.Order {
	return models.Order{ID: id, Status: models.StatusScheduled, TruckID: truckID, ServiceDate: date}
}

func TestGroupLoads(t *testing.T) {
	orders := []models.Order{
		scheduled("1", "T1", "2026-09-01"),
		scheduled("2", "T1", "2026-09-01"),
		scheduled("3", "T2", "2026-09-01"),
		scheduled("4", "T1", "2026-09-02"),                                  // wrong date
		{ID: "5", Status: models.StatusRTC, TruckID: "T1", ServiceDate: "2026-09-01"}, // not committed
		scheduled("6", "", "2026-09-01"),                                    // unassigned
	}
	orders[0].TotalAmount, orders[0].PendingPayment = 100, 20
	orders[1].TotalAmount = 50

	byTruck, unassigned := GroupLoads(orders, "2026-09-01")
	require.Len(t, byTruck, 2)
	assert.Len(t, byTruck["T1"].Orders, 2)
	assert.Equal(t, 150.0, byTruck["T1"].TotalValue)
	assert.Equal(t, 20.0, byTruck["T1"].TotalPending)
	assert.Len(t, byTruck["T2"].Orders, 1)

	require.Len(t, unassigned, 1)
	assert.Equal(t, "6", unassigned[0].ID)
}

func TestTransfer_MovesWholeLoad(t *testing.T) {
	repo := repository.NewMemoryRepository(
		scheduled("1", "T1", "2026-09-01"),
		scheduled("2", "T1", "2026-09-01"),
		scheduled("3", "T2", "2026-09-01"),      // other truck, untouched
		scheduled("4", "T1", "2026-09-02"),      // other date, untouched
	)
	d := &Dispatcher{Repo: repo}

	moved, err := d.Transfer(context.Background(), "T1", "T2", "2026-09-01", "2026-09-03", testNow, "marta")
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	after, _ := repo.ListOrders(context.Background())
	for _, o := range after {
		switch o.ID {
		case "1", "2":
			assert.Equal(t, "T2", o.TruckID)
			assert.Equal(t, "2026-09-03", o.ServiceDate)
			assert.Equal(t, "marta", o.UpdatedBy)
			require.NotNil(t, o.UpdatedAt)
		case "3":
			assert.Equal(t, "T2", o.TruckID)
			assert.Equal(t, "2026-09-01", o.ServiceDate)
		case "4":
			assert.Equal(t, "T1", o.TruckID)
		}
	}
}

func TestTransfer_EmptySelectionIsNoOp(t *testing.T) {
	repo := repository.NewMemoryRepository(scheduled("1", "T1", "2026-09-01"))
	d := &Dispatcher{Repo: repo}

	moved, err := d.Transfer(context.Background(), "T9", "T2", "2026-09-01", "2026-09-02", testNow, "marta")
	require.NoError(t, err)
	assert.Equal(t, 0, moved)
	assert.Equal(t, 0, repo.WriteCalls, "nothing to move must not reach the write path")
}

func TestTransfer_FailurePreservesOriginalState(t *testing.T) {
	repo := repository.NewMemoryRepository(
		scheduled("1", "T1", "2026-09-01"),
		scheduled("2", "T1", "2026-09-01"),
	)
	repo.FailNextWrite(errors.New("network down"))
	d := &Dispatcher{Repo: repo}

	_, err := d.Transfer(context.Background(), "T1", "T2", "2026-09-01", "2026-09-02", testNow, "marta")
	require.Error(t, err)

	// Re-fetch shows either all moved or none; here, none.
	after, _ := repo.ListOrders(context.Background())
	for _, o := range after {
		assert.Equal(t, "T1", o.TruckID)
		assert.Equal(t, "2026-09-01", o.ServiceDate)
	}
}

func TestRegisterIncident(t *testing.T) {
	repo := repository.NewMemoryRepository()
	d := &Dispatcher{Repo: repo}

	order, err := d.RegisterIncident(context.Background(), Incident{
		TruckID:     "T1",
		ServiceDate: "2026-09-01",
		Description: "Recogida de colchón",
		City:        "Madrid",
		ZipCode:     "28001",
	}, testNow, "jose")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, IncidentIDPrefix))
	assert.True(t, order.IsIncident())
	assert.Equal(t, models.StatusScheduled, order.Status)
	assert.Equal(t, "T1", order.TruckID)
	assert.Equal(t, 0.0, order.TotalAmount)
	assert.Equal(t, 0.0, order.PendingPayment)
	assert.Equal(t, "Madrid", order.Province, "province derived from zip")
	assert.Equal(t, "jose", order.UpdatedBy)
	assert.Contains(t, order.Notes, "Recogida de colchón")

	stored, err := repo.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, stored)
}

func TestRegisterIncident_IDsAreUnique(t *testing.T) {
	repo := repository.NewMemoryRepository()
	d := &Dispatcher{Repo: repo}
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		o, err := d.RegisterIncident(context.Background(), Incident{TruckID: "T1", ServiceDate: "2026-09-01"}, time.Now(), "x")
		require.NoError(t, err)
		require.False(t, seen[o.ID])
		seen[o.ID] = true
	}
}
