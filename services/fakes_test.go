package services

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

// In-memory repositories backing the service tests.

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*models.User
	roles  map[string]*models.Role
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		nextID: 1,
		users:  map[uint]*models.User{},
		roles: map[string]*models.Role{
			models.RoleUser:  {ID: 1, Name: models.RoleUser},
			models.RoleAdmin: {ID: 2, Name: models.RoleAdmin},
		},
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	for _, role := range r.roles {
		if role.ID == user.RoleID {
			user.Role = role
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) ByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string, excludeID uint) (bool, error) {
	for _, user := range r.users {
		if user.Email == email && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) PhoneExists(_ context.Context, phone string) (bool, error) {
	for _, user := range r.users {
		if user.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, skip, take int) ([]models.User, error) {
	ids := make([]uint, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []models.User{}
	for i, id := range ids {
		if i < skip || len(out) >= take {
			continue
		}
		out = append(out, *r.users[id])
	}
	return out, nil
}

func (r *fakeUserRepo) RoleByName(_ context.Context, name string) (*models.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

type fakeFoodRepo struct {
	nextID    uint
	foods     map[uint]*models.Food
	allergens map[uint]*models.Allergen
	joins     map[uint][]uint // foodID -> allergenIDs
}

func newFakeFoodRepo() *fakeFoodRepo {
	return &fakeFoodRepo{
		nextID:    1,
		foods:     map[uint]*models.Food{},
		allergens: map[uint]*models.Allergen{},
		joins:     map[uint][]uint{},
	}
}

func (r *fakeFoodRepo) Create(_ context.Context, food *models.Food, allergenIDs []uint) error {
	food.ID = r.nextID
	r.nextID++
	r.foods[food.ID] = food
	if allergenIDs != nil {
		r.joins[food.ID] = allergenIDs
	}
	return nil
}

func (r *fakeFoodRepo) Update(_ context.Context, food *models.Food, allergenIDs []uint) error {
	if _, ok := r.foods[food.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.foods[food.ID] = food
	if allergenIDs != nil {
		r.joins[food.ID] = allergenIDs
	}
	return nil
}

func (r *fakeFoodRepo) Delete(_ context.Context, id uint) error {
	delete(r.foods, id)
	delete(r.joins, id)
	return nil
}

func (r *fakeFoodRepo) ByID(_ context.Context, id uint) (*models.Food, error) {
	food, ok := r.foods[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *food
	copied.Allergens = []models.Allergen{}
	for _, aid := range r.joins[id] {
		if a, ok := r.allergens[aid]; ok {
			copied.Allergens = append(copied.Allergens, *a)
		}
	}
	return &copied, nil
}

func (r *fakeFoodRepo) All(ctx context.Context) ([]models.Food, error) {
	foods, _, err := r.Search(ctx, "", 0, 1, len(r.foods)+1)
	return foods, err
}

func (r *fakeFoodRepo) Search(_ context.Context, q string, categoryID uint, page, pageSize int) ([]models.Food, int64, error) {
	matched := []models.Food{}
	for _, food := range r.foods {
		if q != "" {
			needle := strings.ToLower(q)
			if !strings.Contains(strings.ToLower(food.Name), needle) &&
				!strings.Contains(strings.ToLower(food.Description), needle) {
				continue
			}
		}
		if categoryID > 0 && food.FoodCategoryID != categoryID {
			continue
		}
		matched = append(matched, *food)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	start := (page - 1) * pageSize
	if start >= len(matched) {
		return []models.Food{}, total, nil
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeFoodRepo) ByIDs(_ context.Context, ids []uint) ([]models.Food, error) {
	out := []models.Food{}
	seen := map[uint]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if food, ok := r.foods[id]; ok {
			out = append(out, *food)
		}
	}
	return out, nil
}

func (r *fakeFoodRepo) NameExists(_ context.Context, name string, excludeID uint) (bool, error) {
	for _, food := range r.foods {
		if strings.EqualFold(food.Name, name) && food.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFoodRepo) ExistingAllergenIDs(_ context.Context, ids []uint) ([]uint, error) {
	out := []uint{}
	for _, id := range ids {
		if _, ok := r.allergens[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	nextID     uint
	categories map[uint]*models.FoodCategory
	foods      *fakeFoodRepo
}

func newFakeCategoryRepo(foods *fakeFoodRepo) *fakeCategoryRepo {
	return &fakeCategoryRepo{nextID: 1, categories: map[uint]*models.FoodCategory{}, foods: foods}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *models.FoodCategory) error {
	category.ID = r.nextID
	r.nextID++
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *models.FoodCategory) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uint) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) ByID(_ context.Context, id uint) (*models.FoodCategory, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepo) All(_ context.Context) ([]models.FoodCategory, error) {
	out := []models.FoodCategory{}
	for _, c := range r.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCategoryRepo) NameExists(_ context.Context, name string, excludeID uint) (bool, error) {
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.categories[id]
	return ok, nil
}

func (r *fakeCategoryRepo) FoodCount(_ context.Context, id uint) (int64, error) {
	var count int64
	if r.foods == nil {
		return 0, nil
	}
	for _, food := range r.foods.foods {
		if food.FoodCategoryID == id {
			count++
		}
	}
	return count, nil
}

type fakeAllergenRepo struct {
	nextID uint
	items  map[uint]*models.Allergen
}

func newFakeAllergenRepo() *fakeAllergenRepo {
	return &fakeAllergenRepo{nextID: 1, items: map[uint]*models.Allergen{}}
}

func (r *fakeAllergenRepo) Create(_ context.Context, allergen *models.Allergen) error {
	allergen.ID = r.nextID
	r.nextID++
	r.items[allergen.ID] = allergen
	return nil
}

func (r *fakeAllergenRepo) Update(_ context.Context, allergen *models.Allergen) error {
	r.items[allergen.ID] = allergen
	return nil
}

func (r *fakeAllergenRepo) Delete(_ context.Context, id uint) error {
	delete(r.items, id)
	return nil
}

func (r *fakeAllergenRepo) ByID(_ context.Context, id uint) (*models.Allergen, error) {
	allergen, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return allergen, nil
}

func (r *fakeAllergenRepo) All(_ context.Context) ([]models.Allergen, error) {
	out := []models.Allergen{}
	for _, a := range r.items {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeAllergenRepo) NameExists(_ context.Context, name string, excludeID uint) (bool, error) {
	for _, a := range r.items {
		if strings.EqualFold(a.Name, name) && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeOrderRepo struct {
	nextID     uint
	orders     map[uint]*models.Order
	items      map[uint][]models.OrderFood
	foods      *fakeFoodRepo
	failCreate error
}

func newFakeOrderRepo(foods *fakeFoodRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		nextID: 1,
		orders: map[uint]*models.Order{},
		items:  map[uint][]models.OrderFood{},
		foods:  foods,
	}
}

func (r *fakeOrderRepo) CreateWithItems(_ context.Context, order *models.Order, items []models.OrderFood) error {
	if r.failCreate != nil {
		// All-or-nothing: on failure neither header nor items are stored.
		return r.failCreate
	}
	order.ID = r.nextID
	r.nextID++
	r.orders[order.ID] = order
	stored := make([]models.OrderFood, len(items))
	copy(stored, items)
	for i := range stored {
		stored[i].OrderID = order.ID
	}
	r.items[order.ID] = stored
	return nil
}

func (r *fakeOrderRepo) ByID(_ context.Context, id uint) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	copied.OrderFoods = nil
	for _, line := range r.items[id] {
		if food, ok := r.foods.foods[line.FoodID]; ok {
			line.Food = food
		}
		copied.OrderFoods = append(copied.OrderFoods, line)
	}
	return &copied, nil
}

func (r *fakeOrderRepo) ByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	out := []models.Order{}
	for id, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		full, err := r.ByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *full)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (r *fakeOrderRepo) All(ctx context.Context) ([]models.Order, error) {
	out := []models.Order{}
	for id := range r.orders {
		full, err := r.ByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *full)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (r *fakeOrderRepo) DeleteWithItems(_ context.Context, id uint) error {
	delete(r.orders, id)
	delete(r.items, id)
	return nil
}

type fakeLogRepo struct {
	entries []models.Log
	fail    error
}

func (r *fakeLogRepo) Append(_ context.Context, entry *models.Log) error {
	if r.fail != nil {
		return r.fail
	}
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeLogRepo) Recent(_ context.Context, n int) ([]models.Log, error) {
	out := []models.Log{}
	for i := len(r.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

func (r *fakeLogRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.entries)), nil
}
