package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"distrigestion/models"
)

// MemoryRepository is an in-memory OrderRepository for tests. Batch writes
// apply atomically, and FailNextWrite injects a whole-batch failure so
// callers' resynchronize-on-error paths can be exercised.
type MemoryRepository struct {
	mu     sync.Mutex
	orders map[string]models.Order
	seq    []string // insertion order, keeps listings deterministic

	failNext   error
	WriteCalls int // number of mutating calls that reached the store
}

func NewMemoryRepository(seed ...models.Order) *MemoryRepository {
	r := &MemoryRepository{orders: make(map[string]models.Order)}
	for _, o := range seed {
		r.put(o)
	}
	return r
}

// FailNextWrite makes the next mutating call return err without applying.
func (r *MemoryRepository) FailNextWrite(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

func (r *MemoryRepository) put(o models.Order) {
	if _, ok := r.orders[o.ID]; !ok {
		r.seq = append(r.seq, o.ID)
	}
	r.orders[o.ID] = o
}

func (r *MemoryRepository) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *MemoryRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Order, 0, len(r.seq))
	for _, id := range r.seq {
		out = append(out, r.orders[id])
	}
	return out, nil
}

func (r *MemoryRepository) GetOrder(ctx context.Context, id string) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s not found", id)
	}
	return o, nil
}

func (r *MemoryRepository) UpsertOrders(ctx context.Context, orders []models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.WriteCalls++
	if err := r.takeFailure(); err != nil {
		return err
	}
	for _, o := range orders {
		r.put(o)
	}
	return nil
}

func (r *MemoryRepository) SaveOrder(ctx context.Context, order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.WriteCalls++
	if err := r.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.orders[order.ID]; !ok {
		return fmt.Errorf("order %s not found", order.ID)
	}
	r.orders[order.ID] = order
	return nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, updatedAt time.Time, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.WriteCalls++
	if err := r.takeFailure(); err != nil {
		return err
	}
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order %s not found", id)
	}
	o.Status = status
	o.UpdatedAt = &updatedAt
	o.UpdatedBy = updatedBy
	r.orders[id] = o
	return nil
}

func (r *MemoryRepository) TransferLoads(ctx context.Context, ids []string, destTruckID, targetDate string, updatedAt time.Time, updatedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.WriteCalls++
	if err := r.takeFailure(); err != nil {
		return err
	}
	for _, id := range ids {
		o, ok := r.orders[id]
		if !ok {
			continue
		}
		o.TruckID = destTruckID
		o.ServiceDate = targetDate
		o.UpdatedAt = &updatedAt
		o.UpdatedBy = updatedBy
		r.orders[id] = o
	}
	return nil
}

func (r *MemoryRepository) InsertOrder(ctx context.Context, order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.WriteCalls++
	if err := r.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.orders[order.ID]; ok {
		return fmt.Errorf("order %s already exists", order.ID)
	}
	r.put(order)
	return nil
}
