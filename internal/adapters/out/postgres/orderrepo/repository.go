package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order. A primary key conflict is reported as
// order.ErrOrderAlreadyExists.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return order.ErrOrderAlreadyExists
		}
		return err
	}
	return nil
}

// Update writes the status of an existing order. The other columns never change.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("code = ?", aggregate.Code().Bytes()).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("update %s: %w", aggregate.Code(), order.ErrOrderNotFound)
	}
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, code kernel.Bytes32) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get %s: %w", code, order.ErrOrderNotFound)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Codes lists every code by insertion sequence.
func (r *GormOrderRepository) Codes(ctx context.Context) ([]kernel.Bytes32, error) {
	var raw [][]byte
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Order("seq").Pluck("code", &raw).Error; err != nil {
		return nil, err
	}

	codes := make([]kernel.Bytes32, 0, len(raw))
	for _, b := range raw {
		code, err := kernel.Bytes32FromBytes(b)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
