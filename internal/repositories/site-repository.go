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

const siteTable = "sites"

var siteMap = map[string]string{
	"id":         "s.id",
	"name":       "s.name",
	"address":    "s.address",
	"created_at": "s.created_at",
	"updated_at": "s.updated_at",
}

type SiteRepositoryInterface interface {
	GetSites(ctx context.Context, filter types.Filter) ([]entities.Site, uint64, error)
	FindSite(ctx context.Context, id uint64) (*entities.Site, error)
	CreateSite(ctx context.Context, site entities.Site) (uint64, error)
	UpdateSite(ctx context.Context, id uint64, site entities.Site) error
	DeleteSite(ctx context.Context, id uint64) error
}

type SiteRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewSiteRepository(storage *pgxpool.Pool, logger *zap.Logger) SiteRepositoryInterface {
	return &SiteRepository{storage: storage, logger: logger}
}

func scanSite(row pgx.Row) (*entities.Site, error) {
	var s entities.Site
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования site: %w", err)
	}
	return &s, nil
}

func (r *SiteRepository) GetSites(ctx context.Context, filter types.Filter) ([]entities.Site, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			return b.Where(sq.Or{
				sq.ILike{"s.name": pat},
				sq.ILike{"s.address": pat},
			})
		}
		return b
	}

	countBuilder := psql.Select("COUNT(s.id)").From(siteTable + " AS s")
	countBuilder = applySearch(countBuilder)

	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil
	countBuilder = db.ApplyListParams(countBuilder, countFilter, siteMap)

	var total uint64
	sqlCount, argsCount, _ := countBuilder.ToSql()
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Site{}, 0, nil
	}

	baseBuilder := psql.Select(
		"s.id", "s.name", "s.address", "s.created_at", "s.updated_at",
	).From(siteTable + " AS s")

	baseBuilder = applySearch(baseBuilder)

	if len(filter.Sort) == 0 {
		baseBuilder = baseBuilder.OrderBy("s.name ASC")
	}
	baseBuilder = db.ApplyListParams(baseBuilder, filter, siteMap)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	sites := make([]entities.Site, 0, filter.Limit)
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, 0, err
		}
		sites = append(sites, *site)
	}

	return sites, total, rows.Err()
}

func (r *SiteRepository) FindSite(ctx context.Context, id uint64) (*entities.Site, error) {
	query := `
		SELECT s.id, s.name, s.address, s.created_at, s.updated_at
		FROM sites s
		WHERE s.id = $1
	`
	return scanSite(r.storage.QueryRow(ctx, query, id))
}

func (r *SiteRepository) CreateSite(ctx context.Context, site entities.Site) (uint64, error) {
	query := `
		INSERT INTO sites (name, address, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query, site.Name, site.Address).Scan(&newID)
	if err != nil {
		return 0, translatePgError(err, "name", "площадка с таким названием уже существует")
	}
	return newID, nil
}

func (r *SiteRepository) UpdateSite(ctx context.Context, id uint64, site entities.Site) error {
	query := `
		UPDATE sites
		SET name = $1, address = $2, updated_at = NOW()
		WHERE id = $3
	`
	result, err := r.storage.Exec(ctx, query, site.Name, site.Address, id)
	if err != nil {
		return translatePgError(err, "name", "площадка с таким названием уже существует")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSite: ссылающееся оборудование блокирует удаление (FK RESTRICT),
// цеха без оборудования уходят каскадом вместе с площадкой.
func (r *SiteRepository) DeleteSite(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM sites WHERE id = $1", id)
	if err != nil {
		return translatePgError(err, "", "")
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
