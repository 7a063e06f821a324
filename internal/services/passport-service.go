package services

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"equipment-catalog/internal/authz"
	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/entities"
	"equipment-catalog/internal/repositories"
	apperrors "equipment-catalog/pkg/errors"
	"equipment-catalog/pkg/filestorage"
)

type PassportUpload struct {
	Description string
	FileName    string
	FileSize    int64
	File        io.Reader
}

type PassportServiceInterface interface {
	GetPassportsByEquipment(ctx context.Context, equipmentID uint64) ([]dto.PassportDTO, error)
	UploadPassport(ctx context.Context, actor *entities.User, equipmentID uint64, upload PassportUpload) (*dto.PassportDTO, error)
	DeletePassport(ctx context.Context, actor *entities.User, id uint64) error
}

type PassportService struct {
	passportRepo  repositories.PassportRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	fileStorage   filestorage.FileStorageInterface
	logger        *zap.Logger
}

func NewPassportService(
	passportRepo repositories.PassportRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) PassportServiceInterface {
	return &PassportService{
		passportRepo:  passportRepo,
		equipmentRepo: equipmentRepo,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

func mapPassportToDTO(p *entities.Passport) *dto.PassportDTO {
	return &dto.PassportDTO{
		ID:          p.ID,
		EquipmentID: p.EquipmentID,
		Description: p.Description,
		FileName:    p.FileName,
		FileSize:    p.FileSize,
		URL:         "/uploads/" + p.FilePath,
		UploadedAt:  p.UploadedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *PassportService) GetPassportsByEquipment(ctx context.Context, equipmentID uint64) ([]dto.PassportDTO, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}

	passports, err := s.passportRepo.FindPassportsByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.PassportDTO, 0, len(passports))
	for i := range passports {
		result = append(result, *mapPassportToDTO(&passports[i]))
	}
	return result, nil
}

// UploadPassport сначала кладёт файл на диск, потом пишет строку в БД.
// Если вставка не удалась, файл подчищается — осиротевших файлов после
// неудачной загрузки не остаётся.
func (s *PassportService) UploadPassport(ctx context.Context, actor *entities.User, equipmentID uint64, upload PassportUpload) (*dto.PassportDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(actor, authz.ActionUpdate, authz.PassportResource{Equipment: equipment}); err != nil {
		return nil, err
	}

	filePath, err := s.fileStorage.Save(upload.File, upload.FileName, "passports")
	if err != nil {
		s.logger.Error("не удалось сохранить файл паспорта", zap.Error(err))
		return nil, apperrors.NewHttpError(http.StatusInternalServerError,
			"не удалось сохранить файл, попробуйте ещё раз", err, nil)
	}

	passport := entities.Passport{
		EquipmentID: equipmentID,
		Description: upload.Description,
		FileName:    upload.FileName,
		FilePath:    filePath,
		FileSize:    upload.FileSize,
	}

	id, err := s.passportRepo.CreatePassport(ctx, passport)
	if err != nil {
		if delErr := s.fileStorage.Delete(filePath); delErr != nil {
			s.logger.Warn("не удалось удалить файл после сбоя вставки",
				zap.String("path", filePath), zap.Error(delErr))
		}
		return nil, err
	}

	created, err := s.passportRepo.FindPassport(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapPassportToDTO(created), nil
}

func (s *PassportService) DeletePassport(ctx context.Context, actor *entities.User, id uint64) error {
	passport, err := s.passportRepo.FindPassport(ctx, id)
	if err != nil {
		return err
	}

	equipment, err := s.equipmentRepo.FindEquipment(ctx, passport.EquipmentID)
	if err != nil {
		return err
	}
	if err := checkAccess(actor, authz.ActionDelete, authz.PassportResource{Equipment: equipment}); err != nil {
		return err
	}

	if err := s.passportRepo.DeletePassport(ctx, id); err != nil {
		return err
	}

	if err := s.fileStorage.Delete(passport.FilePath); err != nil {
		s.logger.Warn("не удалось удалить файл паспорта",
			zap.String("path", passport.FilePath), zap.Error(err))
	}
	return nil
}
