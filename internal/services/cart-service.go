package services

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"equipment-catalog/internal/authz"
	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/entities"
	"equipment-catalog/internal/repositories"
)

type CartServiceInterface interface {
	GetCart(ctx context.Context, actor *entities.User) ([]dto.CartItemDTO, error)
	AddToCart(ctx context.Context, actor *entities.User, payload dto.AddToCartDTO) (*dto.CartItemDTO, error)
	RemoveFromCart(ctx context.Context, actor *entities.User, itemID uint64) error
}

type CartService struct {
	cartRepo      repositories.CartRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewCartService(
	cartRepo repositories.CartRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) CartServiceInterface {
	return &CartService{cartRepo: cartRepo, equipmentRepo: equipmentRepo, logger: logger}
}

// coerceQuantity повторяет поведение формы каталога: всё, что не похоже
// на положительное число, превращается в 1.
func coerceQuantity(raw string) uint32 {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return uint32(n)
}

func mapCartItemToDTO(item *entities.CartItem) *dto.CartItemDTO {
	result := &dto.CartItemDTO{
		ID:       item.ID,
		Quantity: item.Quantity,
		AddedAt:  item.AddedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if item.Equipment != nil {
		result.Equipment = dto.ShortEquipmentDTO{
			ID:              item.Equipment.ID,
			Name:            item.Equipment.Name,
			InventoryNumber: item.Equipment.InventoryNumber,
		}
		if item.Equipment.Site != nil {
			result.Site = item.Equipment.Site.Name
		}
		if item.Equipment.Workshop != nil {
			result.Workshop = item.Equipment.Workshop.Name
		}
	}
	return result
}

func (s *CartService) GetCart(ctx context.Context, actor *entities.User) ([]dto.CartItemDTO, error) {
	if err := checkAccess(actor, authz.ActionCreate, authz.CartResource{}); err != nil {
		return nil, err
	}

	items, err := s.cartRepo.GetCartItems(ctx, nil, actor.ID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CartItemDTO, 0, len(items))
	for i := range items {
		result = append(result, *mapCartItemToDTO(&items[i]))
	}
	return result, nil
}

func (s *CartService) AddToCart(ctx context.Context, actor *entities.User, payload dto.AddToCartDTO) (*dto.CartItemDTO, error) {
	if err := checkAccess(actor, authz.ActionCreate, authz.CartResource{}); err != nil {
		return nil, err
	}

	// Несуществующее оборудование — честный 404, а не ошибка FK.
	equipment, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		return nil, err
	}

	quantity := coerceQuantity(string(payload.Quantity))
	item, err := s.cartRepo.UpsertCartItem(ctx, actor.ID, payload.EquipmentID, quantity)
	if err != nil {
		return nil, err
	}

	item.Equipment = equipment
	return mapCartItemToDTO(item), nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, actor *entities.User, itemID uint64) error {
	if err := checkAccess(actor, authz.ActionDelete, authz.CartResource{}); err != nil {
		return err
	}
	return s.cartRepo.DeleteCartItem(ctx, actor.ID, itemID)
}
