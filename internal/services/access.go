package services

import (
	"time"

	"equipment-catalog/internal/authz"
	"equipment-catalog/internal/entities"
	apperrors "equipment-catalog/pkg/errors"
)

// checkAccess переводит решение authz в ошибку транспорта:
// аноним — 401, аутентифицированный без прав — 403.
func checkAccess(actor *entities.User, action authz.Action, resource interface{}) error {
	decision := authz.Can(actor, action, resource)
	if decision.Allowed {
		return nil
	}
	if actor == nil {
		return apperrors.ErrUnauthorized
	}
	return apperrors.NewForbiddenError(decision.Reason)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
