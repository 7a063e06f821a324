package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"equipment-catalog/internal/entities"
	"equipment-catalog/internal/repositories"
	apperrors "equipment-catalog/pkg/errors"
	"equipment-catalog/pkg/types"

	"github.com/jackc/pgx/v5"
)

// Фейковые репозитории держат данные в памяти: сервисные тесты гоняют
// бизнес-логику без PostgreSQL и Redis.

type fakeSiteRepo struct {
	sites  map[uint64]entities.Site
	nextID uint64
}

func newFakeSiteRepo() *fakeSiteRepo {
	return &fakeSiteRepo{sites: make(map[uint64]entities.Site), nextID: 1}
}

func (r *fakeSiteRepo) GetSites(_ context.Context, _ types.Filter) ([]entities.Site, uint64, error) {
	result := make([]entities.Site, 0, len(r.sites))
	for _, s := range r.sites {
		result = append(result, s)
	}
	return result, uint64(len(result)), nil
}

func (r *fakeSiteRepo) FindSite(_ context.Context, id uint64) (*entities.Site, error) {
	s, ok := r.sites[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &s, nil
}

func (r *fakeSiteRepo) CreateSite(_ context.Context, site entities.Site) (uint64, error) {
	site.ID = r.nextID
	r.nextID++
	r.sites[site.ID] = site
	return site.ID, nil
}

func (r *fakeSiteRepo) UpdateSite(_ context.Context, id uint64, site entities.Site) error {
	if _, ok := r.sites[id]; !ok {
		return apperrors.ErrNotFound
	}
	site.ID = id
	r.sites[id] = site
	return nil
}

func (r *fakeSiteRepo) DeleteSite(_ context.Context, id uint64) error {
	if _, ok := r.sites[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.sites, id)
	return nil
}

type fakeWorkshopRepo struct {
	workshops map[uint64]entities.Workshop
	nextID    uint64
}

func newFakeWorkshopRepo() *fakeWorkshopRepo {
	return &fakeWorkshopRepo{workshops: make(map[uint64]entities.Workshop), nextID: 1}
}

func (r *fakeWorkshopRepo) GetWorkshops(_ context.Context, _ types.Filter) ([]entities.Workshop, uint64, error) {
	result := make([]entities.Workshop, 0, len(r.workshops))
	for _, w := range r.workshops {
		result = append(result, w)
	}
	return result, uint64(len(result)), nil
}

func (r *fakeWorkshopRepo) FindWorkshop(_ context.Context, id uint64) (*entities.Workshop, error) {
	w, ok := r.workshops[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &w, nil
}

func (r *fakeWorkshopRepo) CreateWorkshop(_ context.Context, workshop entities.Workshop) (uint64, error) {
	workshop.ID = r.nextID
	r.nextID++
	r.workshops[workshop.ID] = workshop
	return workshop.ID, nil
}

func (r *fakeWorkshopRepo) UpdateWorkshop(_ context.Context, id uint64, workshop entities.Workshop) error {
	if _, ok := r.workshops[id]; !ok {
		return apperrors.ErrNotFound
	}
	workshop.ID = id
	r.workshops[id] = workshop
	return nil
}

func (r *fakeWorkshopRepo) DeleteWorkshop(_ context.Context, id uint64) error {
	if _, ok := r.workshops[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.workshops, id)
	return nil
}

type fakeTypeRepo struct {
	equipmentTypes map[uint64]entities.EquipmentType
	nextID         uint64
}

func newFakeTypeRepo() *fakeTypeRepo {
	return &fakeTypeRepo{equipmentTypes: make(map[uint64]entities.EquipmentType), nextID: 1}
}

func (r *fakeTypeRepo) GetEquipmentTypes(_ context.Context, _ types.Filter) ([]entities.EquipmentType, uint64, error) {
	result := make([]entities.EquipmentType, 0, len(r.equipmentTypes))
	for _, et := range r.equipmentTypes {
		result = append(result, et)
	}
	return result, uint64(len(result)), nil
}

func (r *fakeTypeRepo) FindEquipmentType(_ context.Context, id uint64) (*entities.EquipmentType, error) {
	et, ok := r.equipmentTypes[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &et, nil
}

func (r *fakeTypeRepo) CreateEquipmentType(_ context.Context, et entities.EquipmentType) (uint64, error) {
	et.ID = r.nextID
	r.nextID++
	r.equipmentTypes[et.ID] = et
	return et.ID, nil
}

func (r *fakeTypeRepo) UpdateEquipmentType(_ context.Context, id uint64, et entities.EquipmentType) error {
	if _, ok := r.equipmentTypes[id]; !ok {
		return apperrors.ErrNotFound
	}
	et.ID = id
	r.equipmentTypes[id] = et
	return nil
}

func (r *fakeTypeRepo) DeleteEquipmentType(_ context.Context, id uint64) error {
	if _, ok := r.equipmentTypes[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.equipmentTypes, id)
	return nil
}

type fakeEquipmentRepo struct {
	equipments map[uint64]entities.Equipment
	nextID     uint64
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{equipments: make(map[uint64]entities.Equipment), nextID: 1}
}

func (r *fakeEquipmentRepo) GetEquipments(_ context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	result := make([]entities.Equipment, 0, len(r.equipments))
	for _, e := range r.equipments {
		if workshopID, ok := filter.Filter["workshop_id"]; ok {
			if fmt.Sprintf("%v", workshopID) != fmt.Sprintf("%v", e.WorkshopID) {
				continue
			}
		}
		result = append(result, e)
	}
	return result, uint64(len(result)), nil
}

func (r *fakeEquipmentRepo) FindEquipment(_ context.Context, id uint64) (*entities.Equipment, error) {
	e, ok := r.equipments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEquipmentRepo) CreateEquipment(_ context.Context, equipment entities.Equipment) (uint64, error) {
	equipment.ID = r.nextID
	r.nextID++
	r.equipments[equipment.ID] = equipment
	return equipment.ID, nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(_ context.Context, id uint64, equipment entities.Equipment) error {
	if _, ok := r.equipments[id]; !ok {
		return apperrors.ErrNotFound
	}
	equipment.ID = id
	r.equipments[id] = equipment
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(_ context.Context, id uint64) error {
	if _, ok := r.equipments[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.equipments, id)
	return nil
}

type fakePassportRepo struct {
	passports map[uint64]entities.Passport
	nextID    uint64
	failNext  bool
}

func newFakePassportRepo() *fakePassportRepo {
	return &fakePassportRepo{passports: make(map[uint64]entities.Passport), nextID: 1}
}

func (r *fakePassportRepo) CreatePassport(_ context.Context, passport entities.Passport) (uint64, error) {
	if r.failNext {
		r.failNext = false
		return 0, fmt.Errorf("вставка не удалась")
	}
	passport.ID = r.nextID
	passport.UploadedAt = time.Now()
	r.nextID++
	r.passports[passport.ID] = passport
	return passport.ID, nil
}

func (r *fakePassportRepo) FindPassport(_ context.Context, id uint64) (*entities.Passport, error) {
	p, ok := r.passports[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *fakePassportRepo) FindPassportsByEquipment(_ context.Context, equipmentID uint64) ([]entities.Passport, error) {
	result := make([]entities.Passport, 0)
	for _, p := range r.passports {
		if p.EquipmentID == equipmentID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePassportRepo) DeletePassport(_ context.Context, id uint64) error {
	if _, ok := r.passports[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.passports, id)
	return nil
}

// fakeCartRepo держит строки в порядке добавления и подтягивает
// оборудование из связанного репозитория, как делает SQL-джойн.
type fakeCartRepo struct {
	items         []entities.CartItem
	nextID        uint64
	equipmentRepo *fakeEquipmentRepo
}

func newFakeCartRepo(equipmentRepo *fakeEquipmentRepo) *fakeCartRepo {
	return &fakeCartRepo{nextID: 1, equipmentRepo: equipmentRepo}
}

func (r *fakeCartRepo) UpsertCartItem(_ context.Context, userID, equipmentID uint64, quantity uint32) (*entities.CartItem, error) {
	for i := range r.items {
		if r.items[i].UserID == userID && r.items[i].EquipmentID == equipmentID {
			r.items[i].Quantity += quantity
			item := r.items[i]
			return &item, nil
		}
	}
	item := entities.CartItem{
		ID:          r.nextID,
		UserID:      userID,
		EquipmentID: equipmentID,
		Quantity:    quantity,
		AddedAt:     time.Now(),
	}
	r.nextID++
	r.items = append(r.items, item)
	return &item, nil
}

func (r *fakeCartRepo) GetCartItems(_ context.Context, _ repositories.Querier, userID uint64) ([]entities.CartItem, error) {
	result := make([]entities.CartItem, 0)
	// свежие первыми
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].UserID != userID {
			continue
		}
		item := r.items[i]
		if e, ok := r.equipmentRepo.equipments[item.EquipmentID]; ok {
			equipment := e
			item.Equipment = &equipment
		}
		result = append(result, item)
	}
	return result, nil
}

func (r *fakeCartRepo) DeleteCartItem(_ context.Context, userID, itemID uint64) error {
	for i := range r.items {
		if r.items[i].ID == itemID && r.items[i].UserID == userID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakeCartRepo) ClearCart(_ context.Context, _ repositories.Querier, userID uint64) error {
	remaining := r.items[:0]
	for _, item := range r.items {
		if item.UserID != userID {
			remaining = append(remaining, item)
		}
	}
	r.items = remaining
	return nil
}

type fakeOrderRepo struct {
	orders map[uint64]entities.OrderRequest
	nextID uint64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint64]entities.OrderRequest), nextID: 1}
}

func (r *fakeOrderRepo) CreateOrderRequest(_ context.Context, _ repositories.Querier, order entities.OrderRequest) (uint64, error) {
	order.ID = r.nextID
	order.CreatedAt = time.Now()
	r.nextID++
	r.orders[order.ID] = order
	return order.ID, nil
}

func (r *fakeOrderRepo) FindOrderRequest(_ context.Context, id uint64) (*entities.OrderRequest, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) GetOrderRequestsByUser(_ context.Context, userID uint64) ([]entities.OrderRequest, error) {
	result := make([]entities.OrderRequest, 0)
	for _, o := range r.orders {
		if o.UserID != nil && *o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, nil
}

type fakeUserRepo struct {
	users  map[uint64]entities.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]entities.User), nextID: 1}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user entities.User) (uint64, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, apperrors.NewValidationError("пользователь с таким email уже зарегистрирован",
				map[string]string{"email": "пользователь с таким email уже зарегистрирован"})
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *fakeUserRepo) FindUser(_ context.Context, id uint64) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type fakeCacheRepo struct {
	values map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (r *fakeCacheRepo) Get(_ context.Context, key string) (string, error) {
	v, ok := r.values[key]
	if !ok {
		return "", fmt.Errorf("ключ не найден")
	}
	return v, nil
}

func (r *fakeCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	r.values[key] = fmt.Sprintf("%v", value)
	return nil
}

func (r *fakeCacheRepo) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(r.values, key)
	}
	return nil
}

// fakeTxManager прогоняет fn без настоящей транзакции.
type fakeTxManager struct{}

func (m fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeFileStorage struct {
	files    map[string][]byte
	nextID   int
	failSave bool
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{files: make(map[string][]byte)}
}

func (s *fakeFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	if s.failSave {
		return "", fmt.Errorf("диск недоступен")
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		return "", err
	}
	s.nextID++
	path := fmt.Sprintf("%s/%d-%s", prefix, s.nextID, originalFileName)
	s.files[path] = buf.Bytes()
	return path, nil
}

func (s *fakeFileStorage) Delete(filePath string) error {
	delete(s.files, filePath)
	return nil
}
