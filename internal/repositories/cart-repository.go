package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-catalog/internal/entities"
	apperrors "equipment-catalog/pkg/errors"
)

type CartRepositoryInterface interface {
	UpsertCartItem(ctx context.Context, userID, equipmentID uint64, quantity uint32) (*entities.CartItem, error)
	GetCartItems(ctx context.Context, querier Querier, userID uint64) ([]entities.CartItem, error)
	DeleteCartItem(ctx context.Context, userID, itemID uint64) error
	ClearCart(ctx context.Context, querier Querier, userID uint64) error
}

type CartRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCartRepository(storage *pgxpool.Pool, logger *zap.Logger) CartRepositoryInterface {
	return &CartRepository{storage: storage, logger: logger}
}

// UpsertCartItem: повторное добавление того же оборудования складывает
// количества в одной строке, гонка двух запросов разрешается на уровне БД.
func (r *CartRepository) UpsertCartItem(ctx context.Context, userID, equipmentID uint64, quantity uint32) (*entities.CartItem, error) {
	query := `
		INSERT INTO cart_items (user_id, equipment_id, quantity, added_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, equipment_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, user_id, equipment_id, quantity, added_at
	`
	var item entities.CartItem
	err := r.storage.QueryRow(ctx, query, userID, equipmentID, quantity).Scan(
		&item.ID, &item.UserID, &item.EquipmentID, &item.Quantity, &item.AddedAt,
	)
	if err != nil {
		// 23503 — оборудование успели удалить.
		return nil, translatePgError(err, "", "")
	}
	return &item, nil
}

// GetCartItems отдаёт строки корзины свежие первыми, с живыми данными
// оборудования для отображения. Принимает Querier, чтобы оформление заявки
// читало корзину внутри своей транзакции.
func (r *CartRepository) GetCartItems(ctx context.Context, querier Querier, userID uint64) ([]entities.CartItem, error) {
	if querier == nil {
		querier = r.storage
	}
	query := `
		SELECT ci.id, ci.user_id, ci.equipment_id, ci.quantity, ci.added_at,
		       e.id, e.name, e.inventory_number, e.equipment_type_id, e.site_id, e.workshop_id,
		       COALESCE(et.name, ''), COALESCE(s.name, ''), COALESCE(w.name, '')
		FROM cart_items ci
			JOIN equipments e ON ci.equipment_id = e.id
			LEFT JOIN equipment_types et ON e.equipment_type_id = et.id
			LEFT JOIN sites s ON e.site_id = s.id
			LEFT JOIN workshops w ON e.workshop_id = w.id
		WHERE ci.user_id = $1
		ORDER BY ci.added_at DESC, ci.id DESC
	`
	rows, err := querier.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entities.CartItem, 0)
	for rows.Next() {
		var item entities.CartItem
		var e entities.Equipment
		var typeName, siteName, workshopName string

		err := rows.Scan(
			&item.ID, &item.UserID, &item.EquipmentID, &item.Quantity, &item.AddedAt,
			&e.ID, &e.Name, &e.InventoryNumber, &e.EquipmentTypeID, &e.SiteID, &e.WorkshopID,
			&typeName, &siteName, &workshopName,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования cart_item: %w", err)
		}

		e.EquipmentType = &entities.EquipmentType{ID: e.EquipmentTypeID, Name: typeName}
		e.Site = &entities.Site{ID: e.SiteID, Name: siteName}
		e.Workshop = &entities.Workshop{ID: e.WorkshopID, Name: workshopName}
		item.Equipment = &e

		items = append(items, item)
	}
	return items, rows.Err()
}

// DeleteCartItem удаляет строку только из своей корзины: чужой itemID
// выглядит как отсутствующий.
func (r *CartRepository) DeleteCartItem(ctx context.Context, userID, itemID uint64) error {
	result, err := r.storage.Exec(ctx,
		"DELETE FROM cart_items WHERE id = $1 AND user_id = $2", itemID, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CartRepository) ClearCart(ctx context.Context, querier Querier, userID uint64) error {
	if querier == nil {
		querier = r.storage
	}
	_, err := querier.Exec(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID)
	return err
}
