package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/entities"
	apperrors "equipment-catalog/pkg/errors"
)

type workshopFixture struct {
	service       WorkshopServiceInterface
	siteRepo      *fakeSiteRepo
	workshopRepo  *fakeWorkshopRepo
	equipmentRepo *fakeEquipmentRepo

	siteID      uint64
	otherSiteID uint64
	workshopID  uint64
	typeID      uint64
}

func newWorkshopFixture(t *testing.T) *workshopFixture {
	t.Helper()
	ctx := context.Background()

	siteRepo := newFakeSiteRepo()
	workshopRepo := newFakeWorkshopRepo()
	equipmentRepo := newFakeEquipmentRepo()
	typeRepo := newFakeTypeRepo()

	siteID, err := siteRepo.CreateSite(ctx, entities.Site{Name: "Площадка А"})
	require.NoError(t, err)
	otherSiteID, err := siteRepo.CreateSite(ctx, entities.Site{Name: "Площадка Б"})
	require.NoError(t, err)

	workshopID, err := workshopRepo.CreateWorkshop(ctx, entities.Workshop{SiteID: siteID, Name: "Цех 1"})
	require.NoError(t, err)

	typeID, err := typeRepo.CreateEquipmentType(ctx, entities.EquipmentType{Name: "Насосы"})
	require.NoError(t, err)

	service := NewWorkshopService(workshopRepo, siteRepo, equipmentRepo, zap.NewNop())

	return &workshopFixture{
		service:       service,
		siteRepo:      siteRepo,
		workshopRepo:  workshopRepo,
		equipmentRepo: equipmentRepo,
		siteID:        siteID,
		otherSiteID:   otherSiteID,
		workshopID:    workshopID,
		typeID:        typeID,
	}
}

func TestCreateWorkshop_UnknownSite(t *testing.T) {
	f := newWorkshopFixture(t)

	_, err := f.service.CreateWorkshop(context.Background(), seller(10), dto.CreateWorkshopDTO{
		SiteID: 999,
		Name:   "Цех без площадки",
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Contains(t, httpErr.Details, "site_id")
}

func TestUpdateWorkshop_RenameKeepsSite(t *testing.T) {
	f := newWorkshopFixture(t)

	updated, err := f.service.UpdateWorkshop(context.Background(), seller(10), f.workshopID,
		dto.UpdateWorkshopDTO{Name: null.StringFrom("Цех 1 (новый)")})
	require.NoError(t, err)

	assert.Equal(t, "Цех 1 (новый)", updated.Name)
	assert.Equal(t, f.siteID, updated.Site.ID)
}

func TestUpdateWorkshop_SiteMoveBlockedByEquipment(t *testing.T) {
	f := newWorkshopFixture(t)
	ctx := context.Background()

	ownerID := uint64(10)
	_, err := f.equipmentRepo.CreateEquipment(ctx, entities.Equipment{
		Name:            "Насос центробежный",
		InventoryNumber: "ИНВ-001",
		EquipmentTypeID: f.typeID,
		SiteID:          f.siteID,
		WorkshopID:      f.workshopID,
		CreatedBy:       &ownerID,
	})
	require.NoError(t, err)

	_, err = f.service.UpdateWorkshop(ctx, seller(10), f.workshopID,
		dto.UpdateWorkshopDTO{SiteID: &f.otherSiteID})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Contains(t, httpErr.Details, "site_id")

	// Цех остался на прежней площадке.
	workshop, err := f.service.FindWorkshop(ctx, f.workshopID)
	require.NoError(t, err)
	assert.Equal(t, f.siteID, workshop.Site.ID)
}

func TestUpdateWorkshop_SiteMoveAllowedWhenEmpty(t *testing.T) {
	f := newWorkshopFixture(t)

	updated, err := f.service.UpdateWorkshop(context.Background(), seller(10), f.workshopID,
		dto.UpdateWorkshopDTO{SiteID: &f.otherSiteID})
	require.NoError(t, err)
	assert.Equal(t, f.otherSiteID, updated.Site.ID)
}

func TestUpdateWorkshop_EquipmentOnOtherWorkshopDoesNotBlock(t *testing.T) {
	f := newWorkshopFixture(t)
	ctx := context.Background()

	otherWorkshopID, err := f.workshopRepo.CreateWorkshop(ctx, entities.Workshop{SiteID: f.siteID, Name: "Цех 2"})
	require.NoError(t, err)

	_, err = f.equipmentRepo.CreateEquipment(ctx, entities.Equipment{
		Name:            "Станок",
		InventoryNumber: "ИНВ-002",
		EquipmentTypeID: f.typeID,
		SiteID:          f.siteID,
		WorkshopID:      otherWorkshopID,
	})
	require.NoError(t, err)

	updated, err := f.service.UpdateWorkshop(ctx, seller(10), f.workshopID,
		dto.UpdateWorkshopDTO{SiteID: &f.otherSiteID})
	require.NoError(t, err)
	assert.Equal(t, f.otherSiteID, updated.Site.ID)
}

func TestUpdateWorkshop_BuyerForbidden(t *testing.T) {
	f := newWorkshopFixture(t)

	_, err := f.service.UpdateWorkshop(context.Background(), buyer(1), f.workshopID,
		dto.UpdateWorkshopDTO{Name: null.StringFrom("Не положено")})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}
