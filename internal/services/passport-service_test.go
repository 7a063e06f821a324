package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-catalog/internal/entities"
	apperrors "equipment-catalog/pkg/errors"
)

type passportFixture struct {
	service       PassportServiceInterface
	passportRepo  *fakePassportRepo
	equipmentRepo *fakeEquipmentRepo
	fileStorage   *fakeFileStorage
	equipmentID   uint64
}

func newPassportFixture(t *testing.T) *passportFixture {
	t.Helper()

	equipmentRepo := newFakeEquipmentRepo()
	passportRepo := newFakePassportRepo()
	fileStorage := newFakeFileStorage()

	ownerID := uint64(10)
	equipmentID, err := equipmentRepo.CreateEquipment(context.Background(), entities.Equipment{
		Name:            "Пресс",
		InventoryNumber: "ИНВ-300",
		CreatedBy:       &ownerID,
	})
	require.NoError(t, err)

	return &passportFixture{
		service:       NewPassportService(passportRepo, equipmentRepo, fileStorage, zap.NewNop()),
		passportRepo:  passportRepo,
		equipmentRepo: equipmentRepo,
		fileStorage:   fileStorage,
		equipmentID:   equipmentID,
	}
}

func pdfUpload() PassportUpload {
	return PassportUpload{
		Description: "Паспорт завода-изготовителя",
		FileName:    "passport.pdf",
		FileSize:    4,
		File:        strings.NewReader("%PDF"),
	}
}

func TestUploadPassport_Owner(t *testing.T) {
	f := newPassportFixture(t)

	passport, err := f.service.UploadPassport(context.Background(), seller(10), f.equipmentID, pdfUpload())
	require.NoError(t, err)

	assert.Equal(t, "passport.pdf", passport.FileName)
	assert.True(t, strings.HasPrefix(passport.URL, "/uploads/"), "ссылка должна вести в /uploads/")
	assert.Len(t, f.fileStorage.files, 1)
}

func TestUploadPassport_ForeignSellerForbidden(t *testing.T) {
	f := newPassportFixture(t)

	_, err := f.service.UploadPassport(context.Background(), seller(20), f.equipmentID, pdfUpload())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Empty(t, f.fileStorage.files, "при отказе файл не должен сохраняться")
}

func TestUploadPassport_UnknownEquipment(t *testing.T) {
	f := newPassportFixture(t)

	_, err := f.service.UploadPassport(context.Background(), seller(10), 999, pdfUpload())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUploadPassport_InsertFailureCleansUpFile(t *testing.T) {
	f := newPassportFixture(t)
	f.passportRepo.failNext = true

	_, err := f.service.UploadPassport(context.Background(), seller(10), f.equipmentID, pdfUpload())
	require.Error(t, err)
	assert.Empty(t, f.fileStorage.files, "после сбоя вставки файл подчищается")
}

func TestUploadPassport_StorageFailure(t *testing.T) {
	f := newPassportFixture(t)
	f.fileStorage.failSave = true

	_, err := f.service.UploadPassport(context.Background(), seller(10), f.equipmentID, pdfUpload())
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 500, httpErr.Code)
	assert.Empty(t, f.passportRepo.passports, "строка не создаётся без файла")
}

func TestDeletePassport_RemovesFile(t *testing.T) {
	f := newPassportFixture(t)
	ctx := context.Background()

	passport, err := f.service.UploadPassport(ctx, seller(10), f.equipmentID, pdfUpload())
	require.NoError(t, err)

	require.NoError(t, f.service.DeletePassport(ctx, seller(10), passport.ID))
	assert.Empty(t, f.fileStorage.files)

	passports, err := f.service.GetPassportsByEquipment(ctx, f.equipmentID)
	require.NoError(t, err)
	assert.Empty(t, passports)
}
