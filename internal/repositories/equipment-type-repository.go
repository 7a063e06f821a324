package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"equipment-catalog/internal/entities"
	"equipment-catalog/internal/infrastructure/db"
	apperrors "equipment-catalog/pkg/errors"
	"equipment-catalog/pkg/types"
)

var equipmentTypeMap = map[string]string{
	"id":         "et.id",
	"name":       "et.name",
	"parent_id":  "et.parent_id",
	"created_at": "et.created_at",
	"updated_at": "et.updated_at",
}

type EquipmentTypeRepositoryInterface interface {
	GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]entities.EquipmentType, uint64, error)
	FindEquipmentType(ctx context.Context, id uint64) (*entities.EquipmentType, error)
	CreateEquipmentType(ctx context.Context, et entities.EquipmentType) (uint64, error)
	UpdateEquipmentType(ctx context.Context, id uint64, et entities.EquipmentType) error
	DeleteEquipmentType(ctx context.Context, id uint64) error
}

type EquipmentTypeRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentTypeRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentTypeRepositoryInterface {
	return &EquipmentTypeRepository{storage: storage, logger: logger}
}

func scanEquipmentType(row pgx.Row) (*entities.EquipmentType, error) {
	var et entities.EquipmentType
	// default_attributes хранится как jsonb-список строк, pgx сам
	// раскладывает его в []string.
	err := row.Scan(
		&et.ID, &et.Name, &et.ParentID, &et.Description, &et.DefaultAttributes,
		&et.CreatedAt, &et.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования equipment_type: %w", err)
	}
	if et.DefaultAttributes == nil {
		et.DefaultAttributes = []string{}
	}
	return &et, nil
}

func (r *EquipmentTypeRepository) GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]entities.EquipmentType, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"et.name": pat},
				sq.ILike{"et.description": pat},
			})
		}
		return b
	}

	countBuilder := psql.Select("COUNT(et.id)").From("equipment_types AS et")
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, equipmentTypeMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.EquipmentType{}, 0, nil
	}

	baseBuilder := psql.Select(
		"et.id", "et.name", "et.parent_id", "et.description", "et.default_attributes",
		"et.created_at", "et.updated_at",
	).From("equipment_types AS et")

	baseBuilder = applySearch(baseBuilder)

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("et.name ASC")
	}
	baseBuilder = db.ApplyListParams(baseBuilder, filter, equipmentTypeMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]entities.EquipmentType, 0, filter.Limit)
	for rows.Next() {
		et, err := scanEquipmentType(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *et)
	}

	return result, total, rows.Err()
}

func (r *EquipmentTypeRepository) FindEquipmentType(ctx context.Context, id uint64) (*entities.EquipmentType, error) {
	query := `
		SELECT et.id, et.name, et.parent_id, et.description, et.default_attributes,
		       et.created_at, et.updated_at
		FROM equipment_types et
		WHERE et.id = $1
	`
	return scanEquipmentType(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentTypeRepository) CreateEquipmentType(ctx context.Context, et entities.EquipmentType) (uint64, error) {
	query := `
		INSERT INTO equipment_types (name, parent_id, description, default_attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query, et.Name, et.ParentID, et.Description, et.DefaultAttributes).Scan(&newID)
	if err != nil {
		return 0, translatePgError(err, "", "")
	}
	return newID, nil
}

func (r *EquipmentTypeRepository) UpdateEquipmentType(ctx context.Context, id uint64, et entities.EquipmentType) error {
	query := `
		UPDATE equipment_types
		SET name = $1, parent_id = $2, description = $3, default_attributes = $4, updated_at = NOW()
		WHERE id = $5
	`
	result, err := r.storage.Exec(ctx, query, et.Name, et.ParentID, et.Description, et.DefaultAttributes, id)
	if err != nil {
		return translatePgError(err, "", "")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEquipmentType: потомки остаются без родителя (SET NULL),
// ссылающееся оборудование блокирует удаление (RESTRICT).
func (r *EquipmentTypeRepository) DeleteEquipmentType(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM equipment_types WHERE id = $1", id)
	if err != nil {
		return translatePgError(err, "", "")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
