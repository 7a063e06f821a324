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

const equipmentTable = "equipments"

var equipmentMap = map[string]string{
	"id":                "e.id",
	"name":              "e.name",
	"inventory_number":  "e.inventory_number",
	"equipment_type_id": "e.equipment_type_id",
	"site_id":           "e.site_id",
	"workshop_id":       "e.workshop_id",
	"created_by":        "e.created_by",
	"created_at":        "e.created_at",
	"updated_at":        "e.updated_at",
}

const equipmentSelectFields = `
	e.id, e.name, e.inventory_number, e.equipment_type_id, e.site_id, e.workshop_id,
	e.description, e.image_path, e.attributes, e.created_by, e.created_at, e.updated_at,
	COALESCE(et.id, 0), COALESCE(et.name, ''),
	COALESCE(s.id, 0), COALESCE(s.name, ''),
	COALESCE(w.id, 0), COALESCE(w.name, '')`

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, equipment entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, equipment entities.Equipment) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var et entities.EquipmentType
	var s entities.Site
	var w entities.Workshop

	err := row.Scan(
		&e.ID, &e.Name, &e.InventoryNumber, &e.EquipmentTypeID, &e.SiteID, &e.WorkshopID,
		&e.Description, &e.ImagePath, &e.Attributes, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
		&et.ID, &et.Name,
		&s.ID, &s.Name,
		&w.ID, &w.Name,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования equipment: %w", err)
	}

	if e.Attributes == nil {
		e.Attributes = map[string]string{}
	}
	if et.ID > 0 {
		e.EquipmentType = &et
	}
	if s.ID > 0 {
		e.Site = &s
	}
	if w.ID > 0 {
		e.Workshop = &w
	}
	return &e, nil
}

func equipmentBaseJoins(b sq.SelectBuilder) sq.SelectBuilder {
	return b.From(equipmentTable + " AS e").
		LeftJoin("equipment_types et ON e.equipment_type_id = et.id").
		LeftJoin("sites s ON e.site_id = s.id").
		LeftJoin("workshops w ON e.workshop_id = w.id")
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	// attribute_key / attribute_value — отдельная пара: ищем по jsonb
	// containment, в карту колонок её пускать нельзя.
	attrKey, _ := filter.Filter["attribute_key"].(string)
	attrValue, _ := filter.Filter["attribute_value"].(string)
	delete(filter.Filter, "attribute_key")
	delete(filter.Filter, "attribute_value")

	applyConditions := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"e.name": pat},
				sq.ILike{"e.description": pat},
				sq.ILike{"e.inventory_number": pat},
			})
		}
		if attrKey != "" && attrValue != "" {
			b = b.Where("e.attributes @> ?::jsonb", fmt.Sprintf(`{%q: %q}`, attrKey, attrValue))
		}
		return b
	}

	countBuilder := equipmentBaseJoins(psql.Select("COUNT(e.id)"))
	countBuilder = applyConditions(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, equipmentMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Equipment{}, 0, nil
	}

	baseBuilder := equipmentBaseJoins(psql.Select(
		"e.id", "e.name", "e.inventory_number", "e.equipment_type_id", "e.site_id", "e.workshop_id",
		"e.description", "e.image_path", "e.attributes", "e.created_by", "e.created_at", "e.updated_at",
		"COALESCE(et.id, 0)", "COALESCE(et.name, '')",
		"COALESCE(s.id, 0)", "COALESCE(s.name, '')",
		"COALESCE(w.id, 0)", "COALESCE(w.name, '')",
	))

	baseBuilder = applyConditions(baseBuilder)

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("e.name ASC")
	}
	baseBuilder = db.ApplyListParams(baseBuilder, filter, equipmentMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	equipments := make([]entities.Equipment, 0, filter.Limit)
	for rows.Next() {
		equipment, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		equipments = append(equipments, *equipment)
	}

	return equipments, total, rows.Err()
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM equipments e
			LEFT JOIN equipment_types et ON e.equipment_type_id = et.id
			LEFT JOIN sites s ON e.site_id = s.id
			LEFT JOIN workshops w ON e.workshop_id = w.id
		WHERE e.id = $1
	`, equipmentSelectFields)
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, equipment entities.Equipment) (uint64, error) {
	query := `
		INSERT INTO equipments
			(name, inventory_number, equipment_type_id, site_id, workshop_id,
			 description, image_path, attributes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		equipment.Name, equipment.InventoryNumber, equipment.EquipmentTypeID,
		equipment.SiteID, equipment.WorkshopID, equipment.Description,
		equipment.ImagePath, equipment.Attributes, equipment.CreatedBy,
	).Scan(&newID)
	if err != nil {
		return 0, translatePgError(err, "inventory_number", "оборудование с таким инвентарным номером уже существует")
	}
	return newID, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, equipment entities.Equipment) error {
	query := `
		UPDATE equipments
		SET name = $1, inventory_number = $2, equipment_type_id = $3, site_id = $4,
		    workshop_id = $5, description = $6, image_path = $7, attributes = $8,
		    updated_at = NOW()
		WHERE id = $9
	`
	result, err := r.storage.Exec(ctx, query,
		equipment.Name, equipment.InventoryNumber, equipment.EquipmentTypeID,
		equipment.SiteID, equipment.WorkshopID, equipment.Description,
		equipment.ImagePath, equipment.Attributes, id,
	)
	if err != nil {
		return translatePgError(err, "inventory_number", "оборудование с таким инвентарным номером уже существует")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEquipment: паспорта уходят каскадом, строки корзин — тоже.
func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM equipments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
