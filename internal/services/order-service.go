package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"equipment-catalog/internal/authz"
	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/entities"
	"equipment-catalog/internal/repositories"
	apperrors "equipment-catalog/pkg/errors"
)

type OrderServiceInterface interface {
	Checkout(ctx context.Context, actor *entities.User, payload dto.CheckoutDTO) (*dto.OrderRequestDTO, error)
	GetMyOrders(ctx context.Context, actor *entities.User) ([]dto.OrderRequestDTO, error)
	FindOrder(ctx context.Context, actor *entities.User, id uint64) (*dto.OrderRequestDTO, error)
}

type OrderService struct {
	orderRepo repositories.OrderRequestRepositoryInterface
	cartRepo  repositories.CartRepositoryInterface
	txManager repositories.TxManagerInterface
	logger    *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRequestRepositoryInterface,
	cartRepo repositories.CartRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		txManager: txManager,
		logger:    logger,
	}
}

func mapOrderToDTO(order *entities.OrderRequest) *dto.OrderRequestDTO {
	return &dto.OrderRequestDTO{
		ID:        order.ID,
		Name:      order.Name,
		Email:     order.Email,
		Phone:     order.Phone,
		Comment:   order.Comment,
		Items:     order.Items,
		CreatedAt: order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Checkout переносит корзину в заявку одной транзакцией: читаем строки,
// снимаем денормализованный снимок, пишем заявку, чистим корзину.
// Параллельное добавление в корзину либо попадает в заявку целиком,
// либо остаётся лежать до следующего оформления.
func (s *OrderService) Checkout(ctx context.Context, actor *entities.User, payload dto.CheckoutDTO) (*dto.OrderRequestDTO, error) {
	if err := checkAccess(actor, authz.ActionCreate, authz.OrderResource{}); err != nil {
		return nil, err
	}

	var orderID uint64
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		items, err := s.cartRepo.GetCartItems(ctx, tx, actor.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apperrors.ErrCartIsEmpty
		}

		snapshots := make([]entities.OrderItemSnapshot, 0, len(items))
		for _, item := range items {
			snapshot := entities.OrderItemSnapshot{
				EquipmentID: item.EquipmentID,
				Quantity:    item.Quantity,
			}
			if item.Equipment != nil {
				snapshot.Equipment = item.Equipment.DisplayName()
				if item.Equipment.EquipmentType != nil {
					snapshot.Type = item.Equipment.EquipmentType.Name
				}
				if item.Equipment.Site != nil {
					snapshot.Site = item.Equipment.Site.Name
				}
				if item.Equipment.Workshop != nil {
					snapshot.Workshop = item.Equipment.Workshop.Name
				}
			}
			snapshots = append(snapshots, snapshot)
		}

		userID := actor.ID
		orderID, err = s.orderRepo.CreateOrderRequest(ctx, tx, entities.OrderRequest{
			UserID:  &userID,
			Name:    payload.Name,
			Email:   payload.Email,
			Phone:   payload.Phone,
			Comment: payload.Comment,
			Items:   snapshots,
		})
		if err != nil {
			return err
		}

		return s.cartRepo.ClearCart(ctx, tx, actor.ID)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindOrderRequest(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return mapOrderToDTO(order), nil
}

func (s *OrderService) GetMyOrders(ctx context.Context, actor *entities.User) ([]dto.OrderRequestDTO, error) {
	if err := checkAccess(actor, authz.ActionCreate, authz.OrderResource{}); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.GetOrderRequestsByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.OrderRequestDTO, 0, len(orders))
	for i := range orders {
		result = append(result, *mapOrderToDTO(&orders[i]))
	}
	return result, nil
}

// FindOrder отдаёт заявку владельцу или сотруднику. Чужая заявка
// выглядит как отсутствующая, чтобы не раскрывать её существование.
func (s *OrderService) FindOrder(ctx context.Context, actor *entities.User, id uint64) (*dto.OrderRequestDTO, error) {
	if err := checkAccess(actor, authz.ActionCreate, authz.OrderResource{}); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindOrderRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsStaff && !actor.IsSuperuser {
		if order.UserID == nil || *order.UserID != actor.ID {
			return nil, apperrors.ErrNotFound
		}
	}
	return mapOrderToDTO(order), nil
}
