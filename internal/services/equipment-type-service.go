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

// maxTypeDepth ограничивает подъём по цепочке родителей: глубже каталог
// типов на практике не бывает, а защищает от испорченных данных.
const maxTypeDepth = 50

type EquipmentTypeServiceInterface interface {
	GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]dto.EquipmentTypeDTO, uint64, error)
	FindEquipmentType(ctx context.Context, id uint64) (*dto.EquipmentTypeDTO, error)
	CreateEquipmentType(ctx context.Context, actor *entities.User, payload dto.CreateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error)
	UpdateEquipmentType(ctx context.Context, actor *entities.User, id uint64, payload dto.UpdateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error)
	DeleteEquipmentType(ctx context.Context, actor *entities.User, id uint64) error
}

type EquipmentTypeService struct {
	typeRepo repositories.EquipmentTypeRepositoryInterface
	logger   *zap.Logger
}

func NewEquipmentTypeService(typeRepo repositories.EquipmentTypeRepositoryInterface, logger *zap.Logger) EquipmentTypeServiceInterface {
	return &EquipmentTypeService{typeRepo: typeRepo, logger: logger}
}

func mapEquipmentTypeToDTO(et *entities.EquipmentType) *dto.EquipmentTypeDTO {
	return &dto.EquipmentTypeDTO{
		ID:                et.ID,
		Name:              et.Name,
		ParentID:          et.ParentID,
		Description:       et.Description,
		DefaultAttributes: et.DefaultAttributes,
	}
}

// checkParent гарантирует, что родитель существует и что перестановка не
// замыкает дерево в цикл: поднимаемся от нового родителя к корню и следим,
// чтобы по пути не встретился сам тип.
func (s *EquipmentTypeService) checkParent(ctx context.Context, id uint64, parentID uint64) error {
	if parentID == id {
		return apperrors.NewValidationError("ошибка валидации", map[string]string{
			"parent_id": "тип не может быть родителем самого себя",
		})
	}

	current := parentID
	for depth := 0; depth < maxTypeDepth; depth++ {
		parent, err := s.typeRepo.FindEquipmentType(ctx, current)
		if err == apperrors.ErrNotFound {
			if current == parentID {
				return apperrors.NewValidationError("ошибка валидации", map[string]string{
					"parent_id": "родительский тип не найден",
				})
			}
			// Оборванная цепочка выше по дереву циклом быть не может.
			return nil
		}
		if err != nil {
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == id {
			return apperrors.NewValidationError("ошибка валидации", map[string]string{
				"parent_id": "циклическая иерархия типов недопустима",
			})
		}
		current = *parent.ParentID
	}

	return apperrors.NewValidationError("ошибка валидации", map[string]string{
		"parent_id": "слишком глубокая иерархия типов",
	})
}

func (s *EquipmentTypeService) GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]dto.EquipmentTypeDTO, uint64, error) {
	equipmentTypes, total, err := s.typeRepo.GetEquipmentTypes(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.EquipmentTypeDTO, 0, len(equipmentTypes))
	for i := range equipmentTypes {
		result = append(result, *mapEquipmentTypeToDTO(&equipmentTypes[i]))
	}
	return result, total, nil
}

func (s *EquipmentTypeService) FindEquipmentType(ctx context.Context, id uint64) (*dto.EquipmentTypeDTO, error) {
	et, err := s.typeRepo.FindEquipmentType(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapEquipmentTypeToDTO(et), nil
}

func (s *EquipmentTypeService) CreateEquipmentType(ctx context.Context, actor *entities.User, payload dto.CreateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error) {
	if err := checkAccess(actor, authz.ActionCreate, authz.ReferenceResource{}); err != nil {
		return nil, err
	}

	if payload.ParentID != nil {
		// id == 0 — нового типа ещё нет, циклом он стать не может,
		// но существование родителя проверить обязаны.
		if err := s.checkParent(ctx, 0, *payload.ParentID); err != nil {
			return nil, err
		}
	}

	defaultAttributes := payload.DefaultAttributes
	if defaultAttributes == nil {
		defaultAttributes = []string{}
	}

	id, err := s.typeRepo.CreateEquipmentType(ctx, entities.EquipmentType{
		Name:              payload.Name,
		ParentID:          payload.ParentID,
		Description:       payload.Description,
		DefaultAttributes: defaultAttributes,
	})
	if err != nil {
		return nil, err
	}
	return s.FindEquipmentType(ctx, id)
}

func (s *EquipmentTypeService) UpdateEquipmentType(ctx context.Context, actor *entities.User, id uint64, payload dto.UpdateEquipmentTypeDTO) (*dto.EquipmentTypeDTO, error) {
	if err := checkAccess(actor, authz.ActionUpdate, authz.ReferenceResource{}); err != nil {
		return nil, err
	}

	et, err := s.typeRepo.FindEquipmentType(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.ParentID != nil {
		if err := s.checkParent(ctx, id, *payload.ParentID); err != nil {
			return nil, err
		}
		et.ParentID = payload.ParentID
	}
	if payload.Name != nil {
		et.Name = *payload.Name
	}
	if payload.Description != nil {
		et.Description = *payload.Description
	}
	if payload.DefaultAttributes != nil {
		et.DefaultAttributes = payload.DefaultAttributes
	}

	if err := s.typeRepo.UpdateEquipmentType(ctx, id, *et); err != nil {
		return nil, err
	}
	return s.FindEquipmentType(ctx, id)
}

func (s *EquipmentTypeService) DeleteEquipmentType(ctx context.Context, actor *entities.User, id uint64) error {
	if err := checkAccess(actor, authz.ActionDelete, authz.ReferenceResource{}); err != nil {
		return err
	}
	return s.typeRepo.DeleteEquipmentType(ctx, id)
}
