package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"equipment-catalog/internal/authz"
	"equipment-catalog/internal/entities"
	"equipment-catalog/internal/repositories"
	"equipment-catalog/pkg/types"
)

type EquipmentExportServiceInterface interface {
	ExportEquipmentsXLSX(ctx context.Context, actor *entities.User, filter types.Filter) (*bytes.Buffer, string, error)
}

type EquipmentExportService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentExportService(equipmentRepo repositories.EquipmentRepositoryInterface, logger *zap.Logger) EquipmentExportServiceInterface {
	return &EquipmentExportService{equipmentRepo: equipmentRepo, logger: logger}
}

var exportHeaders = []string{
	"ID", "Наименование", "Инвентарный номер", "Тип", "Площадка", "Цех", "Описание", "Атрибуты",
}

// ExportEquipmentsXLSX выгружает каталог с учётом переданных фильтров.
// Доступна продавцам и сотрудникам. Пагинация отключается: выгрузка
// всегда полная.
func (s *EquipmentExportService) ExportEquipmentsXLSX(ctx context.Context, actor *entities.User, filter types.Filter) (*bytes.Buffer, string, error) {
	if err := checkAccess(actor, authz.ActionExport, authz.EquipmentResource{Equipment: &entities.Equipment{}}); err != nil {
		return nil, "", err
	}

	filter.WithPagination = false
	filter.Limit = 0
	filter.Offset = 0

	equipments, _, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Оборудование"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
	}

	for rowIdx, equipment := range equipments {
		values := []interface{}{
			equipment.ID,
			equipment.Name,
			equipment.InventoryNumber,
			relatedName(equipment.EquipmentType),
			siteName(equipment.Site),
			workshopName(equipment.Workshop),
			equipment.Description,
			formatAttributes(equipment.Attributes),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	return buffer, "equipment-catalog.xlsx", nil
}

func relatedName(et *entities.EquipmentType) string {
	if et == nil {
		return ""
	}
	return et.Name
}

func siteName(site *entities.Site) string {
	if site == nil {
		return ""
	}
	return site.Name
}

func workshopName(workshop *entities.Workshop) string {
	if workshop == nil {
		return ""
	}
	return workshop.Name
}

// formatAttributes печатает атрибуты в стабильном порядке,
// чтобы две выгрузки одного каталога совпадали байт в байт.
func formatAttributes(attributes map[string]string) string {
	if len(attributes) == 0 {
		return ""
	}

	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, attributes[key]))
	}
	return strings.Join(parts, "; ")
}
