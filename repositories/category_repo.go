package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, category *models.FoodCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepo) Update(ctx context.Context, category *models.FoodCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *CategoryRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.FoodCategory{}, id).Error
}

func (r *CategoryRepo) ByID(ctx context.Context, id uint) (*models.FoodCategory, error) {
	var category models.FoodCategory
	err := r.db.WithContext(ctx).
		Preload("Foods").Preload("Foods.Allergens").
		First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepo) All(ctx context.Context) ([]models.FoodCategory, error) {
	var categories []models.FoodCategory
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepo) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.FoodCategory{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FoodCategory{}).
		Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepo) FoodCount(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Food{}).
		Where("food_category_id = ?", id).Count(&count).Error
	return count, err
}
