// Package engine holds the order reconciliation, view derivation and load
// dispatch logic of the dashboard.
package engine

import (
	"context"
	"time"

	"distrigestion/models"
	"distrigestion/repository"
)

// Reconcile merges a freshly decoded import batch into the existing order set
// and returns the records to upsert, one per incoming record, in input order.
//
// Orders already scheduled (Agendado) keep their truck, status and edit
// stamp, whether or not a truck has been assigned yet; everything else on
// them is refreshed from the import. Other known orders are fully replaced, keeping only
// their edit stamp and store tag. Unknown orders come in as-is, stamped with
// the reconciliation time and no editor (machine import).
func Reconcile(existing, incoming []models.Order, now time.Time) []models.Order {
	index := make(map[string]models.Order, len(existing))
	for _, o := range existing {
		index[o.ID] = o
	}

	merged := make([]models.Order, 0, len(incoming))
	for _, in := range incoming {
		ex, found := index[in.ID]
		switch {
		case found && ex.IsCommitted():
			in.TruckID = ex.TruckID
			in.Status = ex.Status
			in.UpdatedAt = ex.UpdatedAt
			in.UpdatedBy = ex.UpdatedBy
			in.Store = ex.Store
		case found:
			in.UpdatedAt = ex.UpdatedAt
			in.UpdatedBy = ex.UpdatedBy
			in.Store = ex.Store
		default:
			t := now
			in.UpdatedAt = &t
			in.UpdatedBy = ""
		}
		merged = append(merged, in)
	}
	return merged
}

// ImportResult summarizes one reconciled import.
type ImportResult struct {
	Total     int `json:"total"`     // records in the batch
	New       int `json:"new"`       // ids not previously known
	Protected int `json:"protected"` // committed orders whose dispatch fields were preserved
}

// Importer runs the full import cycle against the backing store.
type Importer struct {
	Repo repository.OrderRepository
}

// Import reconciles a decoded batch with the store's current state and writes
// the merged records as one upsert. Whether the write succeeds or fails, the
// store is the only truth: on failure the caller must re-read it, since a
// partially applied batch cannot be told apart from a rejected one.
func (im *Importer) Import(ctx context.Context, incoming []models.Order, now time.Time) (ImportResult, error) {
	existing, err := im.Repo.ListOrders(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	index := make(map[string]models.Order, len(existing))
	for _, o := range existing {
		index[o.ID] = o
	}

	res := ImportResult{Total: len(incoming)}
	for _, in := range incoming {
		ex, found := index[in.ID]
		if !found {
			res.New++
		} else if ex.IsCommitted() {
			res.Protected++
		}
	}

	merged := Reconcile(existing, incoming, now)
	if err := im.Repo.UpsertOrders(ctx, merged); err != nil {
		return res, err
	}
	return res, nil
}
