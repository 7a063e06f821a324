package repositories

import (
	"errors"

	apperrors "equipment-catalog/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translatePgError превращает нарушения ограничений БД в пользовательские
// ошибки: дубликат — исправимая ошибка валидации по полю, нарушение
// внешнего ключа при удалении — отказ из-за ссылающегося оборудования.
func translatePgError(err error, uniqueField, uniqueMessage string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return apperrors.NewValidationError(uniqueMessage, map[string]string{uniqueField: uniqueMessage})
	case pgForeignKeyViolation:
		return apperrors.ErrRecordInUse
	}

	return err
}
