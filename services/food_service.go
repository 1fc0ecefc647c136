package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

type FoodInput struct {
	Name           string
	Description    string
	Price          decimal.Decimal
	ImagePath      string
	FoodCategoryID uint
	// AllergenIDs replaces the food's allergen set when non-nil; unknown
	// ids are filtered out rather than failing the write.
	AllergenIDs []uint
}

type FoodView struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	ImagePath      string          `json:"imagePath,omitempty"`
	FoodCategoryID uint            `json:"foodCategoryId"`
	CategoryName   string          `json:"categoryName,omitempty"`
	Allergens      []models.Allergen `json:"allergens"`
}

// SearchResult is the paginated search envelope.
type SearchResult struct {
	Total           int64      `json:"total"`
	CurrentPage     int        `json:"currentPage"`
	CurrentPageSize int        `json:"currentPageSize"`
	PageSize        int        `json:"pageSize"`
	TotalPages      int        `json:"totalPages"`
	Data            []FoodView `json:"data"`
}

type FoodService struct {
	foods      FoodRepository
	categories CategoryRepository
	applog     *AppLogger
}

func NewFoodService(foods FoodRepository, categories CategoryRepository, applog *AppLogger) *FoodService {
	return &FoodService{foods: foods, categories: categories, applog: applog}
}

func (s *FoodService) GetAll(ctx context.Context) ([]FoodView, error) {
	foods, err := s.foods.All(ctx)
	if err != nil {
		return nil, s.fail(ctx, "Food.GetAll", err)
	}
	return foodViews(foods), nil
}

func (s *FoodService) GetByID(ctx context.Context, id uint) (*FoodView, error) {
	food, err := s.foods.ByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "food")
	}
	v := foodView(food)
	return &v, nil
}

// Search pages the catalog with a deterministic name-then-id order so
// consecutive pages are disjoint and their union covers the filtered set.
func (s *FoodService) Search(ctx context.Context, q string, categoryID uint, page, pageSize int) (*SearchResult, error) {
	if page < 1 || pageSize < 1 || pageSize > 100 {
		s.applog.Error(ctx, fmt.Sprintf("Food.Search failed: invalid paging parameters page=%d pageSize=%d", page, pageSize))
		return nil, validationf("invalid paging parameters")
	}

	foods, total, err := s.foods.Search(ctx, strings.TrimSpace(q), categoryID, page, pageSize)
	if err != nil {
		return nil, s.fail(ctx, "Food.Search", err)
	}

	data := foodViews(foods)
	result := &SearchResult{
		Total:           total,
		CurrentPage:     page,
		CurrentPageSize: len(data),
		PageSize:        pageSize,
		TotalPages:      int(math.Ceil(float64(total) / float64(pageSize))),
		Data:            data,
	}
	s.applog.Information(ctx, fmt.Sprintf("Food.Search q=%q categoryId=%d page=%d pageSize=%d total=%d",
		q, categoryID, page, pageSize, total))
	return result, nil
}

// validatePrice keeps prices inside decimal(10,2): positive, at most two
// fraction digits, below 10^8.
func validatePrice(p decimal.Decimal) error {
	if !p.IsPositive() {
		return validationf("price must be positive")
	}
	if p.Exponent() < -2 {
		return validationf("price cannot have more than two decimal places")
	}
	if p.GreaterThanOrEqual(decimal.New(1, 8)) {
		return validationf("price out of range")
	}
	return nil
}

func (s *FoodService) Create(ctx context.Context, input FoodInput) (*FoodView, error) {
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if taken, err := s.foods.NameExists(ctx, input.Name, 0); err != nil {
		return nil, s.fail(ctx, "Food.Create", err)
	} else if taken {
		s.applog.Error(ctx, fmt.Sprintf("Food.Create failed: conflict with %s", input.Name))
		return nil, conflictf("food with the same name already exists")
	}
	if ok, err := s.categories.Exists(ctx, input.FoodCategoryID); err != nil {
		return nil, s.fail(ctx, "Food.Create", err)
	} else if !ok {
		return nil, validationf("invalid food category id")
	}

	allergenIDs, err := s.validAllergens(ctx, input.AllergenIDs)
	if err != nil {
		return nil, s.fail(ctx, "Food.Create", err)
	}

	food := &models.Food{
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		ImagePath:      input.ImagePath,
		FoodCategoryID: input.FoodCategoryID,
	}
	if err := s.foods.Create(ctx, food, allergenIDs); err != nil {
		return nil, s.fail(ctx, "Food.Create", err)
	}

	s.applog.Information(ctx, fmt.Sprintf("Food.Create success: id=%d", food.ID))
	return s.GetByID(ctx, food.ID)
}

func (s *FoodService) Update(ctx context.Context, id uint, input FoodInput) (*FoodView, error) {
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	food, err := s.foods.ByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "food")
	}

	if !strings.EqualFold(food.Name, input.Name) {
		if taken, err := s.foods.NameExists(ctx, input.Name, id); err != nil {
			return nil, s.fail(ctx, "Food.Update", err)
		} else if taken {
			s.applog.Error(ctx, fmt.Sprintf("Food.Update failed: conflict with %s", input.Name))
			return nil, conflictf("food with the same name already exists")
		}
	}
	if ok, err := s.categories.Exists(ctx, input.FoodCategoryID); err != nil {
		return nil, s.fail(ctx, "Food.Update", err)
	} else if !ok {
		return nil, validationf("invalid food category id")
	}

	allergenIDs, err := s.validAllergens(ctx, input.AllergenIDs)
	if err != nil {
		return nil, s.fail(ctx, "Food.Update", err)
	}

	food.Name = input.Name
	food.Description = input.Description
	food.Price = input.Price
	food.ImagePath = input.ImagePath
	food.FoodCategoryID = input.FoodCategoryID
	if err := s.foods.Update(ctx, food, allergenIDs); err != nil {
		return nil, s.fail(ctx, "Food.Update", err)
	}

	s.applog.Information(ctx, fmt.Sprintf("Food.Update success: id=%d", id))
	return s.GetByID(ctx, id)
}

// Delete removes the food together with its join rows; the repository does
// both in one transaction.
func (s *FoodService) Delete(ctx context.Context, id uint) error {
	if _, err := s.foods.ByID(ctx, id); err != nil {
		return storeError(err, "food")
	}
	if err := s.foods.Delete(ctx, id); err != nil {
		return s.fail(ctx, "Food.Delete", err)
	}
	s.applog.Information(ctx, fmt.Sprintf("Food.Delete success: id=%d", id))
	return nil
}

func (s *FoodService) validAllergens(ctx context.Context, ids []uint) ([]uint, error) {
	if ids == nil {
		return nil, nil
	}
	return s.foods.ExistingAllergenIDs(ctx, ids)
}

func (s *FoodService) fail(ctx context.Context, op string, err error) error {
	classified := storeError(err, "food")
	s.applog.Error(ctx, fmt.Sprintf("%s failed: %v", op, err))
	return classified
}

func foodView(f *models.Food) FoodView {
	v := FoodView{
		ID:             f.ID,
		Name:           f.Name,
		Description:    f.Description,
		Price:          f.Price,
		ImagePath:      f.ImagePath,
		FoodCategoryID: f.FoodCategoryID,
		Allergens:      f.Allergens,
	}
	if v.Allergens == nil {
		v.Allergens = []models.Allergen{}
	}
	if f.FoodCategory != nil {
		v.CategoryName = f.FoodCategory.Name
	}
	return v
}

func foodViews(foods []models.Food) []FoodView {
	out := make([]FoodView, 0, len(foods))
	for i := range foods {
		out = append(out, foodView(&foods[i]))
	}
	return out
}
