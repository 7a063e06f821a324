package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-catalog/internal/entities"
	apperrors "equipment-catalog/pkg/errors"
)

type OrderRequestRepositoryInterface interface {
	CreateOrderRequest(ctx context.Context, querier Querier, order entities.OrderRequest) (uint64, error)
	FindOrderRequest(ctx context.Context, id uint64) (*entities.OrderRequest, error)
	GetOrderRequestsByUser(ctx context.Context, userID uint64) ([]entities.OrderRequest, error)
}

type OrderRequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRequestRepositoryInterface {
	return &OrderRequestRepository{storage: storage, logger: logger}
}

func scanOrderRequest(row pgx.Row) (*entities.OrderRequest, error) {
	var o entities.OrderRequest
	err := row.Scan(
		&o.ID, &o.UserID, &o.Name, &o.Email, &o.Phone, &o.Comment,
		&o.Items, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования order_request: %w", err)
	}
	if o.Items == nil {
		o.Items = []entities.OrderItemSnapshot{}
	}
	return &o, nil
}

// CreateOrderRequest пишет заявку вместе со снимком позиций. Вызывается
// внутри транзакции оформления, поэтому принимает Querier.
func (r *OrderRequestRepository) CreateOrderRequest(ctx context.Context, querier Querier, order entities.OrderRequest) (uint64, error) {
	if querier == nil {
		querier = r.storage
	}
	query := `
		INSERT INTO order_requests (user_id, name, email, phone, comment, items, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id
	`
	var newID uint64
	err := querier.QueryRow(ctx, query,
		order.UserID, order.Name, order.Email, order.Phone, order.Comment, order.Items,
	).Scan(&newID)
	if err != nil {
		return 0, translatePgError(err, "", "")
	}
	return newID, nil
}

func (r *OrderRequestRepository) FindOrderRequest(ctx context.Context, id uint64) (*entities.OrderRequest, error) {
	query := `
		SELECT o.id, o.user_id, o.name, o.email, o.phone, o.comment, o.items, o.created_at
		FROM order_requests o
		WHERE o.id = $1
	`
	return scanOrderRequest(r.storage.QueryRow(ctx, query, id))
}

func (r *OrderRequestRepository) GetOrderRequestsByUser(ctx context.Context, userID uint64) ([]entities.OrderRequest, error) {
	query := `
		SELECT o.id, o.user_id, o.name, o.email, o.phone, o.comment, o.items, o.created_at
		FROM order_requests o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC
	`
	rows, err := r.storage.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entities.OrderRequest, 0)
	for rows.Next() {
		order, err := scanOrderRequest(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}
