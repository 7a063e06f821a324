package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equipment-catalog/internal/dto"
	apperrors "equipment-catalog/pkg/errors"
)

func newTypeService(t *testing.T) (EquipmentTypeServiceInterface, *fakeTypeRepo) {
	t.Helper()
	typeRepo := newFakeTypeRepo()
	return NewEquipmentTypeService(typeRepo, zap.NewNop()), typeRepo
}

func createType(t *testing.T, service EquipmentTypeServiceInterface, name string, parentID *uint64) *dto.EquipmentTypeDTO {
	t.Helper()
	created, err := service.CreateEquipmentType(context.Background(), seller(1), dto.CreateEquipmentTypeDTO{
		Name:     name,
		ParentID: parentID,
	})
	require.NoError(t, err)
	return created
}

func TestCreateEquipmentType_Tree(t *testing.T) {
	service, _ := newTypeService(t)

	root := createType(t, service, "Оборудование", nil)
	child := createType(t, service, "Насосы", &root.ID)

	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)
	assert.NotNil(t, child.DefaultAttributes, "список атрибутов не должен быть nil")
}

func TestCreateEquipmentType_UnknownParent(t *testing.T) {
	service, _ := newTypeService(t)

	missing := uint64(777)
	_, err := service.CreateEquipmentType(context.Background(), seller(1), dto.CreateEquipmentTypeDTO{
		Name:     "Сироты",
		ParentID: &missing,
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Contains(t, httpErr.Details, "parent_id")
}

func TestCreateEquipmentType_DuplicateNamesAllowed(t *testing.T) {
	service, _ := newTypeService(t)

	// Названия типов не уникальны: "Насосы" могут существовать
	// в разных ветках дерева.
	first := createType(t, service, "Насосы", nil)
	second := createType(t, service, "Насосы", &first.ID)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Name, second.Name)
}

func TestUpdateEquipmentType_SelfParent(t *testing.T) {
	service, _ := newTypeService(t)
	root := createType(t, service, "Оборудование", nil)

	_, err := service.UpdateEquipmentType(context.Background(), seller(1), root.ID, dto.UpdateEquipmentTypeDTO{
		ParentID: &root.ID,
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Contains(t, httpErr.Details, "parent_id")
}

func TestUpdateEquipmentType_CycleRejected(t *testing.T) {
	service, _ := newTypeService(t)
	ctx := context.Background()

	// a ← b ← c, затем пытаемся сделать a потомком c.
	a := createType(t, service, "А", nil)
	b := createType(t, service, "Б", &a.ID)
	c := createType(t, service, "В", &b.ID)

	_, err := service.UpdateEquipmentType(ctx, seller(1), a.ID, dto.UpdateEquipmentTypeDTO{
		ParentID: &c.ID,
	})
	require.Error(t, err)

	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Contains(t, httpErr.Details, "parent_id")

	// Легальная перестановка при этом проходит: Б становится корнем.
	updated, err := service.UpdateEquipmentType(ctx, seller(1), c.ID, dto.UpdateEquipmentTypeDTO{
		ParentID: &a.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, a.ID, *updated.ParentID)
}

func TestEquipmentType_BuyerCannotMutate(t *testing.T) {
	service, _ := newTypeService(t)

	_, err := service.CreateEquipmentType(context.Background(), buyer(1), dto.CreateEquipmentTypeDTO{Name: "Нельзя"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
