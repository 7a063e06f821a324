package services

import (
	"context"

	"go.uber.org/zap"

	"equipment-catalog/internal/authz"
	"equipment-catalog/internal/dto"
	"equipment-catalog/internal/entities"
	"equipment-catalog/internal/repositories"
	"equipment-catalog/pkg/types"
)

type SiteServiceInterface interface {
	GetSites(ctx context.Context, filter types.Filter) ([]dto.SiteDTO, uint64, error)
	FindSite(ctx context.Context, id uint64) (*dto.SiteDTO, error)
	CreateSite(ctx context.Context, actor *entities.User, payload dto.CreateSiteDTO) (*dto.SiteDTO, error)
	UpdateSite(ctx context.Context, actor *entities.User, id uint64, payload dto.UpdateSiteDTO) (*dto.SiteDTO, error)
	DeleteSite(ctx context.Context, actor *entities.User, id uint64) error
}

type SiteService struct {
	siteRepo repositories.SiteRepositoryInterface
	logger   *zap.Logger
}

func NewSiteService(siteRepo repositories.SiteRepositoryInterface, logger *zap.Logger) SiteServiceInterface {
	return &SiteService{siteRepo: siteRepo, logger: logger}
}

func mapSiteToDTO(site *entities.Site) *dto.SiteDTO {
	return &dto.SiteDTO{
		ID:      site.ID,
		Name:    site.Name,
		Address: site.Address,
	}
}

func (s *SiteService) GetSites(ctx context.Context, filter types.Filter) ([]dto.SiteDTO, uint64, error) {
	sites, total, err := s.siteRepo.GetSites(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]dto.SiteDTO, 0, len(sites))
	for i := range sites {
		result = append(result, *mapSiteToDTO(&sites[i]))
	}
	return result, total, nil
}

func (s *SiteService) FindSite(ctx context.Context, id uint64) (*dto.SiteDTO, error) {
	site, err := s.siteRepo.FindSite(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapSiteToDTO(site), nil
}

func (s *SiteService) CreateSite(ctx context.Context, actor *entities.User, payload dto.CreateSiteDTO) (*dto.SiteDTO, error) {
	if err := checkAccess(actor, authz.ActionCreate, authz.ReferenceResource{}); err != nil {
		return nil, err
	}

	id, err := s.siteRepo.CreateSite(ctx, entities.Site{
		Name:    payload.Name,
		Address: payload.Address,
	})
	if err != nil {
		return nil, err
	}
	return s.FindSite(ctx, id)
}

func (s *SiteService) UpdateSite(ctx context.Context, actor *entities.User, id uint64, payload dto.UpdateSiteDTO) (*dto.SiteDTO, error) {
	if err := checkAccess(actor, authz.ActionUpdate, authz.ReferenceResource{}); err != nil {
		return nil, err
	}

	site, err := s.siteRepo.FindSite(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid {
		site.Name = payload.Name.String
	}
	if payload.Address.Valid {
		site.Address = payload.Address.String
	}

	if err := s.siteRepo.UpdateSite(ctx, id, *site); err != nil {
		return nil, err
	}
	return s.FindSite(ctx, id)
}

func (s *SiteService) DeleteSite(ctx context.Context, actor *entities.User, id uint64) error {
	if err := checkAccess(actor, authz.ActionDelete, authz.ReferenceResource{}); err != nil {
		return err
	}
	return s.siteRepo.DeleteSite(ctx, id)
}
