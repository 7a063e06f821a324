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

type PassportRepositoryInterface interface {
	CreatePassport(ctx context.Context, passport entities.Passport) (uint64, error)
	FindPassport(ctx context.Context, id uint64) (*entities.Passport, error)
	FindPassportsByEquipment(ctx context.Context, equipmentID uint64) ([]entities.Passport, error)
	DeletePassport(ctx context.Context, id uint64) error
}

type PassportRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPassportRepository(storage *pgxpool.Pool, logger *zap.Logger) PassportRepositoryInterface {
	return &PassportRepository{storage: storage, logger: logger}
}

func scanPassport(row pgx.Row) (*entities.Passport, error) {
	var p entities.Passport
	err := row.Scan(
		&p.ID, &p.EquipmentID, &p.Description, &p.FileName,
		&p.FilePath, &p.FileSize, &p.UploadedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования passport: %w", err)
	}
	return &p, nil
}

func (r *PassportRepository) CreatePassport(ctx context.Context, passport entities.Passport) (uint64, error) {
	query := `
		INSERT INTO passports (equipment_id, description, file_name, file_path, file_size, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		passport.EquipmentID, passport.Description, passport.FileName,
		passport.FilePath, passport.FileSize,
	).Scan(&newID)
	if err != nil {
		return 0, translatePgError(err, "", "")
	}
	return newID, nil
}

func (r *PassportRepository) FindPassport(ctx context.Context, id uint64) (*entities.Passport, error) {
	query := `
		SELECT p.id, p.equipment_id, p.description, p.file_name, p.file_path, p.file_size, p.uploaded_at
		FROM passports p
		WHERE p.id = $1
	`
	return scanPassport(r.storage.QueryRow(ctx, query, id))
}

func (r *PassportRepository) FindPassportsByEquipment(ctx context.Context, equipmentID uint64) ([]entities.Passport, error) {
	query := `
		SELECT p.id, p.equipment_id, p.description, p.file_name, p.file_path, p.file_size, p.uploaded_at
		FROM passports p
		WHERE p.equipment_id = $1
		ORDER BY p.uploaded_at DESC, p.id DESC
	`
	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passports := make([]entities.Passport, 0)
	for rows.Next() {
		passport, err := scanPassport(rows)
		if err != nil {
			return nil, err
		}
		passports = append(passports, *passport)
	}
	return passports, rows.Err()
}

func (r *PassportRepository) DeletePassport(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, "DELETE FROM passports WHERE id = $1", id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
