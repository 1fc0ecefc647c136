package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

type CategoryView struct {
	ID    uint       `json:"id"`
	Name  string     `json:"name"`
	Foods []FoodView `json:"foods,omitempty"`
}

type CategoryService struct {
	categories CategoryRepository
	applog     *AppLogger
}

func NewCategoryService(categories CategoryRepository, applog *AppLogger) *CategoryService {
	return &CategoryService{categories: categories, applog: applog}
}

func (s *CategoryService) GetAll(ctx context.Context) ([]CategoryView, error) {
	categories, err := s.categories.All(ctx)
	if err != nil {
		return nil, s.fail(ctx, "FoodCategory.GetAll", err)
	}
	out := make([]CategoryView, 0, len(categories))
	for i := range categories {
		out = append(out, CategoryView{ID: categories[i].ID, Name: categories[i].Name})
	}
	return out, nil
}

// GetByID includes the category's foods in the view.
func (s *CategoryService) GetByID(ctx context.Context, id uint) (*CategoryView, error) {
	category, err := s.categories.ByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "food category")
	}
	return &CategoryView{ID: category.ID, Name: category.Name, Foods: foodViews(category.Foods)}, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (*CategoryView, error) {
	name = strings.TrimSpace(name)
	if taken, err := s.categories.NameExists(ctx, name, 0); err != nil {
		return nil, s.fail(ctx, "FoodCategory.Create", err)
	} else if taken {
		return nil, conflictf("category with the same name already exists")
	}

	category := &models.FoodCategory{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, s.fail(ctx, "FoodCategory.Create", err)
	}
	s.applog.Information(ctx, fmt.Sprintf("FoodCategory.Create success: id=%d", category.ID))
	return &CategoryView{ID: category.ID, Name: category.Name}, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, name string) (*CategoryView, error) {
	category, err := s.categories.ByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "food category")
	}

	name = strings.TrimSpace(name)
	if !strings.EqualFold(category.Name, name) {
		if taken, err := s.categories.NameExists(ctx, name, id); err != nil {
			return nil, s.fail(ctx, "FoodCategory.Update", err)
		} else if taken {
			return nil, conflictf("category with the same name already exists")
		}
	}

	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, s.fail(ctx, "FoodCategory.Update", err)
	}
	s.applog.Information(ctx, fmt.Sprintf("FoodCategory.Update success: id=%d", id))
	return &CategoryView{ID: category.ID, Name: category.Name}, nil
}

// Delete refuses to orphan foods: a category still referenced by the
// catalog cannot be removed.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.categories.ByID(ctx, id); err != nil {
		return storeError(err, "food category")
	}
	count, err := s.categories.FoodCount(ctx, id)
	if err != nil {
		return s.fail(ctx, "FoodCategory.Delete", err)
	}
	if count > 0 {
		return conflictf("category still has %d foods", count)
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return s.fail(ctx, "FoodCategory.Delete", err)
	}
	s.applog.Information(ctx, fmt.Sprintf("FoodCategory.Delete success: id=%d", id))
	return nil
}

func (s *CategoryService) fail(ctx context.Context, op string, err error) error {
	classified := storeError(err, "food category")
	s.applog.Error(ctx, fmt.Sprintf("%s failed: %v", op, err))
	return classified
}
