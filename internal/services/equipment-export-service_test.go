package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "equipment-catalog/pkg/errors"
	"equipment-catalog/pkg/types"
)

func TestExportEquipmentsXLSX_SellerAndStaff(t *testing.T) {
	f := newEquipmentFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateEquipment(ctx, seller(10), f.validCreateDTO())
	require.NoError(t, err)

	exportService := NewEquipmentExportService(f.equipmentRepo, zap.NewNop())

	buffer, fileName, err := exportService.ExportEquipmentsXLSX(ctx, seller(10), types.Filter{})
	require.NoError(t, err)
	assert.Equal(t, "equipment-catalog.xlsx", fileName)
	assert.NotZero(t, buffer.Len(), "файл выгрузки не должен быть пустым")

	_, _, err = exportService.ExportEquipmentsXLSX(ctx, staff(30), types.Filter{})
	assert.NoError(t, err, "сотруднику выгрузка доступна")
}

func TestExportEquipmentsXLSX_BuyerForbidden(t *testing.T) {
	f := newEquipmentFixture(t)

	exportService := NewEquipmentExportService(f.equipmentRepo, zap.NewNop())

	_, _, err := exportService.ExportEquipmentsXLSX(context.Background(), buyer(1), types.Filter{})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestExportEquipmentsXLSX_AnonymousUnauthorized(t *testing.T) {
	f := newEquipmentFixture(t)

	exportService := NewEquipmentExportService(f.equipmentRepo, zap.NewNop())

	_, _, err := exportService.ExportEquipmentsXLSX(context.Background(), nil, types.Filter{})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
