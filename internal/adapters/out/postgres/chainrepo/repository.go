package chainrepo

import (
	"context"
	"errors"
	"fmt"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormChainRepository implements ports.ChainRepository using GORM.
type GormChainRepository struct {
	db *gorm.DB
}

func NewGormChainRepository(db *gorm.DB) *GormChainRepository {
	return &GormChainRepository{db: db}
}

// LockHead takes a row lock on the head row for the rest of tx. Every writer
// does this first, which serializes writers across processes.
func LockHead(ctx context.Context, tx *gorm.DB) error {
	var head HeadDTO
	return tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&head, "id = ?", headID).Error
}

func (r *GormChainRepository) Head(ctx context.Context) (uint64, error) {
	var head HeadDTO
	if err := r.db.WithContext(ctx).First(&head, "id = ?", headID).Error; err != nil {
		return 0, err
	}
	return head.Height, nil
}

func (r *GormChainRepository) SetHead(ctx context.Context, height uint64) error {
	return r.db.WithContext(ctx).
		Model(&HeadDTO{}).
		Where("id = ?", headID).
		Update("height", height).Error
}

func (r *GormChainRepository) AddReceipt(ctx context.Context, receipt *ledger.Receipt) error {
	dto := fromDomain(receipt)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormChainRepository) GetReceipt(ctx context.Context, hash kernel.Hash) (*ledger.Receipt, error) {
	var dto TransactionDTO
	if err := r.db.WithContext(ctx).First(&dto, "hash = ?", hash.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", hash, ledger.ErrTransactionNotFound)
		}
		return nil, err
	}
	return toDomain(dto)
}
