package services

import (
	"context"
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"equipment-catalog/internal/authz"
	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/entities"
	"equipment-catalog/internal/repositories"
	apperrors "equipment-catalog/pkg/errors"
	"equipment-catalog/pkg/filestorage"
	"equipment-catalog/pkg/types"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, actor *entities.User, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, actor *entities.User, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, actor *entities.User, id uint64) error
	UploadEquipmentImage(ctx context.Context, actor *entities.User, id uint64, file io.Reader, fileName string) (*dto.EquipmentDTO, error)
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	typeRepo      repositories.EquipmentTypeRepositoryInterface
	siteRepo      repositories.SiteRepositoryInterface
	workshopRepo  repositories.WorkshopRepositoryInterface
	passportRepo  repositories.PassportRepositoryInterface
	fileStorage   filestorage.FileStorageInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	typeRepo repositories.EquipmentTypeRepositoryInterface,
	siteRepo repositories.SiteRepositoryInterface,
	workshopRepo repositories.WorkshopRepositoryInterface,
	passportRepo repositories.PassportRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		typeRepo:      typeRepo,
		siteRepo:      siteRepo,
		workshopRepo:  workshopRepo,
		passportRepo:  passportRepo,
		fileStorage:   fileStorage,
		logger:        logger,
	}
}

func mapEquipmentToDTO(e *entities.Equipment) *dto.EquipmentDTO {
	result := &dto.EquipmentDTO{
		ID:              e.ID,
		Name:            e.Name,
		InventoryNumber: e.InventoryNumber,
		Description:     e.Description,
		Attributes:      e.Attributes,
		ImagePath:       e.ImagePath,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       formatTime(e.CreatedAt),
		UpdatedAt:       formatTime(e.UpdatedAt),
	}
	if result.Attributes == nil {
		result.Attributes = map[string]string{}
	}
	if e.EquipmentType != nil {
		result.EquipmentType = dto.ShortEquipmentTypeDTO{ID: e.EquipmentType.ID, Name: e.EquipmentType.Name}
	}
	if e.Site != nil {
		result.Site = dto.ShortSiteDTO{ID: e.Site.ID, Name: e.Site.Name}
	}
	if e.Workshop != nil {
		result.Workshop = dto.ShortWorkshopDTO{ID: e.Workshop.ID, Name: e.Workshop.Name}
	}
	for i := range e.Passports {
		result.Passports = append(result.Passports, *mapPassportToDTO(&e.Passports[i]))
	}
	return result
}

// parseAttributes принимает только JSON-объект вида строка → строка.
// Отсутствующее поле означает пустой набор, но явный null, списки,
// числа и вложенные объекты — ошибка поля.
func parseAttributes(raw json.RawMessage) (map[string]string, error) {
	if len(raw) == 0 {
		return map[string]string{}, nil
	}

	var attributes map[string]string
	err := json.Unmarshal(raw, &attributes)
	if err != nil || attributes == nil {
		return nil, apperrors.NewValidationError("ошибка валидации", map[string]string{
			"attributes": "атрибуты должны быть объектом со строковыми значениями",
		})
	}
	return attributes, nil
}

// checkReferences проверяет существование типа и согласованность
// площадка/цех: цех обязан принадлежать выбранной площадке.
func (s *EquipmentService) checkReferences(ctx context.Context, typeID, siteID, workshopID uint64) error {
	if _, err := s.typeRepo.FindEquipmentType(ctx, typeID); err != nil {
		if err == apperrors.ErrNotFound {
			return apperrors.NewValidationError("ошибка валидации", map[string]string{
				"equipment_type_id": "тип оборудования не найден",
			})
		}
		return err
	}

	if _, err := s.siteRepo.FindSite(ctx, siteID); err != nil {
		if err == apperrors.ErrNotFound {
			return apperrors.NewValidationError("ошибка валидации", map[string]string{
				"site_id": "площадка не найдена",
			})
		}
		return err
	}

	workshop, err := s.workshopRepo.FindWorkshop(ctx, workshopID)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return apperrors.NewValidationError("ошибка валидации", map[string]string{
				"workshop_id": "цех не найден",
			})
		}
		return err
	}
	if workshop.SiteID != siteID {
		return apperrors.NewValidationError("ошибка валидации", map[string]string{
			"workshop_id": "цех должен принадлежать выбранной площадке",
		})
	}
	return nil
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	equipments, total, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EquipmentDTO, 0, len(equipments))
	for i := range equipments {
		result = append(result, *mapEquipmentToDTO(&equipments[i]))
	}
	return result, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	passports, err := s.passportRepo.FindPassportsByEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	equipment.Passports = passports

	return mapEquipmentToDTO(equipment), nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, actor *entities.User, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := checkAccess(actor, authz.ActionCreate, authz.EquipmentResource{Equipment: &entities.Equipment{}}); err != nil {
		return nil, err
	}

	attributes, err := parseAttributes(payload.Attributes)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, payload.EquipmentTypeID, payload.SiteID, payload.WorkshopID); err != nil {
		return nil, err
	}

	createdBy := actor.ID
	id, err := s.equipmentRepo.CreateEquipment(ctx, entities.Equipment{
		Name:            payload.Name,
		InventoryNumber: payload.InventoryNumber,
		EquipmentTypeID: payload.EquipmentTypeID,
		SiteID:          payload.SiteID,
		WorkshopID:      payload.WorkshopID,
		Description:     payload.Description,
		Attributes:      attributes,
		CreatedBy:       &createdBy,
	})
	if err != nil {
		return nil, err
	}
	return s.FindEquipment(ctx, id)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, actor *entities.User, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(actor, authz.ActionUpdate, authz.EquipmentResource{Equipment: equipment}); err != nil {
		return nil, err
	}

	if payload.Name != nil {
		equipment.Name = *payload.Name
	}
	if payload.InventoryNumber != nil {
		equipment.InventoryNumber = *payload.InventoryNumber
	}
	if payload.EquipmentTypeID != nil {
		equipment.EquipmentTypeID = *payload.EquipmentTypeID
	}
	if payload.SiteID != nil {
		equipment.SiteID = *payload.SiteID
	}
	if payload.WorkshopID != nil {
		equipment.WorkshopID = *payload.WorkshopID
	}
	if payload.Description != nil {
		equipment.Description = *payload.Description
	}
	if payload.Attributes != nil {
		attributes, err := parseAttributes(payload.Attributes)
		if err != nil {
			return nil, err
		}
		equipment.Attributes = attributes
	}

	// Согласованность проверяем по итоговому состоянию: смена площадки
	// без смены цеха тоже должна упереться в проверку.
	if err := s.checkReferences(ctx, equipment.EquipmentTypeID, equipment.SiteID, equipment.WorkshopID); err != nil {
		return nil, err
	}

	if err := s.equipmentRepo.UpdateEquipment(ctx, id, *equipment); err != nil {
		return nil, err
	}
	return s.FindEquipment(ctx, id)
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, actor *entities.User, id uint64) error {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return err
	}
	if err := checkAccess(actor, authz.ActionDelete, authz.EquipmentResource{Equipment: equipment}); err != nil {
		return err
	}

	passports, err := s.passportRepo.FindPassportsByEquipment(ctx, id)
	if err != nil {
		return err
	}

	if err := s.equipmentRepo.DeleteEquipment(ctx, id); err != nil {
		return err
	}

	// Файлы чистим после удаления строк: сбой здесь оставит сироту на
	// диске, но не скрытую запись в БД.
	for _, passport := range passports {
		if err := s.fileStorage.Delete(passport.FilePath); err != nil {
			s.logger.Warn("не удалось удалить файл паспорта",
				zap.String("path", passport.FilePath), zap.Error(err))
		}
	}
	if equipment.ImagePath != nil {
		if err := s.fileStorage.Delete(*equipment.ImagePath); err != nil {
			s.logger.Warn("не удалось удалить изображение оборудования",
				zap.String("path", *equipment.ImagePath), zap.Error(err))
		}
	}
	return nil
}

func (s *EquipmentService) UploadEquipmentImage(ctx context.Context, actor *entities.User, id uint64, file io.Reader, fileName string) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkAccess(actor, authz.ActionUpdate, authz.EquipmentResource{Equipment: equipment}); err != nil {
		return nil, err
	}

	newPath, err := s.fileStorage.Save(file, fileName, "equipment")
	if err != nil {
		return nil, apperrors.NewHttpError(500, "не удалось сохранить файл", err, nil)
	}

	oldPath := equipment.ImagePath
	equipment.ImagePath = &newPath

	if err := s.equipmentRepo.UpdateEquipment(ctx, id, *equipment); err != nil {
		// Запись не обновилась — новый файл никому не нужен.
		_ = s.fileStorage.Delete(newPath)
		return nil, err
	}

	if oldPath != nil {
		_ = s.fileStorage.Delete(*oldPath)
	}
	return s.FindEquipment(ctx, id)
}
