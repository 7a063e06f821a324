package services

import (
	"context"

	"go.uber.org/zap"

	"equipment-catalog/internal/authz"
	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/entities"
	"equipment-catalog/internal/repositories"
	apperrors "equipment-catalog/pkg/errors"
	"equipment-catalog/pkg/types"
)

type WorkshopServiceInterface interface {
	GetWorkshops(ctx context.Context, filter types.Filter) ([]dto.WorkshopDTO, uint64, error)
	FindWorkshop(ctx context.Context, id uint64) (*dto.WorkshopDTO, error)
	CreateWorkshop(ctx context.Context, actor *entities.User, payload dto.CreateWorkshopDTO) (*dto.WorkshopDTO, error)
	UpdateWorkshop(ctx context.Context, actor *entities.User, id uint64, payload dto.UpdateWorkshopDTO) (*dto.WorkshopDTO, error)
	DeleteWorkshop(ctx context.Context, actor *entities.User, id uint64) error
}

type WorkshopService struct {
	workshopRepo  repositories.WorkshopRepositoryInterface
	siteRepo      repositories.SiteRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewWorkshopService(
	workshopRepo repositories.WorkshopRepositoryInterface,
	siteRepo repositories.SiteRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) WorkshopServiceInterface {
	return &WorkshopService{
		workshopRepo:  workshopRepo,
		siteRepo:      siteRepo,
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

func mapWorkshopToDTO(workshop *entities.Workshop) *dto.WorkshopDTO {
	result := &dto.WorkshopDTO{
		ID:          workshop.ID,
		Name:        workshop.Name,
		Description: workshop.Description,
	}
	if workshop.Site != nil {
		result.Site = dto.ShortSiteDTO{ID: workshop.Site.ID, Name: workshop.Site.Name}
	} else {
		result.Site = dto.ShortSiteDTO{ID: workshop.SiteID}
	}
	return result
}

// checkSiteExists превращает несуществующую площадку в ошибку поля,
// а не в голый 404: с точки зрения клиента это неверный ввод.
func (s *WorkshopService) checkSiteExists(ctx context.Context, siteID uint64) error {
	_, err := s.siteRepo.FindSite(ctx, siteID)
	if err == apperrors.ErrNotFound {
		return apperrors.NewValidationError("ошибка валидации", map[string]string{
			"site_id": "площадка не найдена",
		})
	}
	return err
}

// checkWorkshopNotInUse запрещает перенос цеха, пока на нём числится
// оборудование: его site_id перестал бы совпадать с площадкой цеха.
func (s *WorkshopService) checkWorkshopNotInUse(ctx context.Context, workshopID uint64) error {
	_, total, err := s.equipmentRepo.GetEquipments(ctx, types.Filter{
		Filter: map[string]interface{}{"workshop_id": workshopID},
	})
	if err != nil {
		return err
	}
	if total > 0 {
		return apperrors.NewValidationError("ошибка валидации", map[string]string{
			"site_id": "нельзя перенести цех на другую площадку, пока на нём числится оборудование",
		})
	}
	return nil
}

func (s *WorkshopService) GetWorkshops(ctx context.Context, filter types.Filter) ([]dto.WorkshopDTO, uint64, error) {
	workshops, total, err := s.workshopRepo.GetWorkshops(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.WorkshopDTO, 0, len(workshops))
	for i := range workshops {
		result = append(result, *mapWorkshopToDTO(&workshops[i]))
	}
	return result, total, nil
}

func (s *WorkshopService) FindWorkshop(ctx context.Context, id uint64) (*dto.WorkshopDTO, error) {
	workshop, err := s.workshopRepo.FindWorkshop(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapWorkshopToDTO(workshop), nil
}

func (s *WorkshopService) CreateWorkshop(ctx context.Context, actor *entities.User, payload dto.CreateWorkshopDTO) (*dto.WorkshopDTO, error) {
	if err := checkAccess(actor, authz.ActionCreate, authz.ReferenceResource{}); err != nil {
		return nil, err
	}
	if err := s.checkSiteExists(ctx, payload.SiteID); err != nil {
		return nil, err
	}

	id, err := s.workshopRepo.CreateWorkshop(ctx, entities.Workshop{
		SiteID:      payload.SiteID,
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		return nil, err
	}
	return s.FindWorkshop(ctx, id)
}

func (s *WorkshopService) UpdateWorkshop(ctx context.Context, actor *entities.User, id uint64, payload dto.UpdateWorkshopDTO) (*dto.WorkshopDTO, error) {
	if err := checkAccess(actor, authz.ActionUpdate, authz.ReferenceResource{}); err != nil {
		return nil, err
	}

	workshop, err := s.workshopRepo.FindWorkshop(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.SiteID != nil && *payload.SiteID != workshop.SiteID {
		if err := s.checkSiteExists(ctx, *payload.SiteID); err != nil {
			return nil, err
		}
		// Перенос цеха на другую площадку разорвал бы согласованность
		// площадки и цеха у привязанного оборудования.
		if err := s.checkWorkshopNotInUse(ctx, id); err != nil {
			return nil, err
		}
		workshop.SiteID = *payload.SiteID
	}
	if payload.Name.Valid {
		workshop.Name = payload.Name.String
	}
	if payload.Description.Valid {
		workshop.Description = payload.Description.String
	}

	if err := s.workshopRepo.UpdateWorkshop(ctx, id, *workshop); err != nil {
		return nil, err
	}
	return s.FindWorkshop(ctx, id)
}

func (s *WorkshopService) DeleteWorkshop(ctx context.Context, actor *entities.User, id uint64) error {
	if err := checkAccess(actor, authz.ActionDelete, authz.ReferenceResource{}); err != nil {
		return err
	}
	return s.workshopRepo.DeleteWorkshop(ctx, id)
}
