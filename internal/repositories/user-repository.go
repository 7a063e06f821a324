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

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user entities.User) (uint64, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(
		&u.ID, &u.FullName, &u.Email, &u.Password, &u.Role,
		&u.IsStaff, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user entities.User) (uint64, error) {
	query := `
		INSERT INTO users (full_name, email, password, role, is_staff, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`
	var newID uint64
	err := r.storage.QueryRow(ctx, query,
		user.FullName, user.Email, user.Password, user.Role, user.IsStaff, user.IsSuperuser,
	).Scan(&newID)
	if err != nil {
		return 0, translatePgError(err, "email", "пользователь с таким email уже зарегистрирован")
	}
	return newID, nil
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	query := `
		SELECT u.id, u.full_name, u.email, u.password, u.role,
		       u.is_staff, u.is_superuser, u.created_at, u.updated_at
		FROM users u
		WHERE u.id = $1
	`
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `
		SELECT u.id, u.full_name, u.email, u.password, u.role,
		       u.is_staff, u.is_superuser, u.created_at, u.updated_at
		FROM users u
		WHERE u.email = $1
	`
	return scanUser(r.storage.QueryRow(ctx, query, email))
}
