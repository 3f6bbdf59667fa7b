// Package repository abstracts the backing order store so the engines can be
// exercised without a live database.
package repository

import (
	"context"
	"time"

	"distrigestion/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository is the persistence boundary for order records. Writes are
// last-write-wins: there is no version check, concurrent editors can clobber
// each other, and callers resynchronize by re-reading after any failure.
type OrderRepository interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (models.Order, error)
	// UpsertOrders writes a merged batch as one logical unit, keyed on id.
	// Partial application is not accounted for; the whole batch either
	// reports success or a single failure.
	UpsertOrders(ctx context.Context, orders []models.Order) error
	SaveOrder(ctx context.Context, order models.Order) error
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus, updatedAt time.Time, updatedBy string) error
	// TransferLoads moves every listed order to the destination truck and
	// date in one batch update.
	TransferLoads(ctx context.Context, ids []string, destTruckID, targetDate string, updatedAt time.Time, updatedBy string) error
	InsertOrder(ctx context.Context, order models.Order) error
}

// GormRepository is the production OrderRepository over gorm.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepository) GetOrder(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	return order, err
}

func (r *GormRepository) UpsertOrders(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&orders).Error
}

func (r *GormRepository) SaveOrder(ctx context.Context, order models.Order) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", order.ID).
		Select("*").
		Updates(order).Error
}

func (r *GormRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, updatedAt time.Time, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": updatedAt,
			"updated_by": updatedBy,
		}).Error
}

func (r *GormRepository) TransferLoads(ctx context.Context, ids []string, destTruckID, targetDate string, updatedAt time.Time, updatedBy string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"truck_id":     destTruckID,
			"service_date": targetDate,
			"updated_at":   updatedAt,
			"updated_by":   updatedBy,
		}).Error
}

func (r *GormRepository) InsertOrder(ctx context.Context, order models.Order) error {
	return r.db.WithContext(ctx).Create(&order).Error
}
