package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and returns the stored aggregate carrying the
// store-assigned id and creation timestamp. The input aggregate is left
// untouched.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, wrapConcurrencyConflict(err)
	}

	return toDomain(dto)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, wrapConcurrencyConflict(err)
	}

	return toDomain(dto)
}

// UpdateStatus sets the order's status to next only where it still equals
// expected, reporting how many rows matched. Zero rows means a concurrent
// transaction got there first.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context, id int64, expected order.Status, next order.Status,
) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id, expected.String()).
		Update("status", next.String())
	if result.Error != nil {
		return 0, wrapConcurrencyConflict(result.Error)
	}

	return result.RowsAffected, nil
}

// wrapConcurrencyConflict translates transaction-rollback SQLSTATEs
// (serialization failures, deadlocks) into the port-level sentinel so the
// core never inspects driver errors.
func wrapConcurrencyConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsTransactionRollback(pgErr.Code) {
		return fmt.Errorf("%w: %w", ports.ErrConcurrencyConflict, err)
	}
	return err
}
