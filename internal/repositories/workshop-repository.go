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

var workshopMap = map[string]string{
	"id":         "w.id",
	"name":       "w.name",
	"site_id":    "w.site_id",
	"created_at": "w.created_at",
	"updated_at": "w.updated_at",
}

type WorkshopRepositoryInterface interface {
	GetWorkshops(ctx context.Context, filter types.Filter) ([]entities.Workshop, uint64, error)
	FindWorkshop(ctx context.Context, id uint64) (*entities.Workshop, error)
	CreateWorkshop(ctx context.Context, workshop entities.Workshop) (uint64, error)
	UpdateWorkshop(ctx context.Context, id uint64, workshop entities.Workshop) error
	DeleteWorkshop(ctx context.Context, id uint64) error
}

type WorkshopRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWorkshopRepository(storage *pgxpool.Pool, logger *zap.Logger) WorkshopRepositoryInterface {
	return &WorkshopRepository{storage: storage, logger: logger}
}

func scanWorkshop(row pgx.Row) (*entities.Workshop, error) {
	var w entities.Workshop
	var s entities.Site

	err := row.Scan(
		&w.ID, &w.SiteID, &w.Name, &w.Description,
		&w.CreatedAt, &w.UpdatedAt,
		&s.ID, &s.Name,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования workshop: %w", err)
	}

	if s.ID > 0 {
		w.Site = &s
	}
	return &w, nil
}

const workshopSelectFields = `w.id, w.site_id, w.name, w.description, w.created_at, w.updated_at, COALESCE(s.id, 0), COALESCE(s.name, '')`

func (r *WorkshopRepository) GetWorkshops(ctx context.Context, filter types.Filter) ([]entities.Workshop, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"w.name": pat},
				sq.ILike{"w.description": pat},
				sq.ILike{"s.name": pat},
			})
		}
		return b
	}

	countBuilder := psql.Select("COUNT(w.id)").
		From("workshops AS w").
		LeftJoin("sites s ON w.site_id = s.id")
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, workshopMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Workshop{}, 0, nil
	}

	baseBuilder := psql.Select(
		"w.id", "w.site_id", "w.name", "w.description", "w.created_at", "w.updated_at",
		"COALESCE(s.id, 0)", "COALESCE(s.name, '')",
	).From("workshops AS w").LeftJoin("sites s ON w.site_id = s.id")

	baseBuilder = applySearch(baseBuilder)

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("w.name ASC")
	}
	baseBuilder = db.ApplyListParams(baseBuilder, filter, workshopMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	workshops := make([]entities.Workshop, 0, filter.Limit)
	for rows.Next() {
		workshop, err := scanWorkshop(rows)
		if err != nil {
			return nil, 0, err
		}
		workshops = append(workshops, *workshop)
	}

	return workshops, total, rows.Err()
}

func (r *WorkshopRepository) FindWorkshop(ctx context.Context, id uint64) (*entities.Workshop, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM workshops w
			LEFT JOIN sites s ON w.site_id = s.id
		WHERE w.id = $1
	`, workshopSelectFields)
	return scanWorkshop(r.storage.QueryRow(ctx, query, id))
}

func (r *WorkshopRepository) CreateWorkshop(ctx context.Context, workshop entities.Workshop) (uint64, error) {
	query := `
		INSERT INTO workshops (site_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query, workshop.SiteID, workshop.Name, workshop.Description).Scan(&newID)
	if err != nil {
		return 0, translatePgError(err, "name", "цех с таким названием уже есть на этой площадке")
	}
	return newID, nil
}

func (r *WorkshopRepository) UpdateWorkshop(ctx context.Context, id uint64, workshop entities.Workshop) error {
	query := `
		UPDATE workshops
		SET site_id = $1, name = $2, description = $3, updated_at = NOW()
		WHERE id = $4
	`
	result, err := r.storage.Exec(ctx, query, workshop.SiteID, workshop.Name, workshop.Description, id)
	if err != nil {
		return translatePgError(err, "name", "цех с таким названием уже есть на этой площадке")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorkshopRepository) DeleteWorkshop(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM workshops WHERE id = $1", id)
	if err != nil {
		return translatePgError(err, "", "")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
