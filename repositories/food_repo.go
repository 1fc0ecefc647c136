package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

type FoodRepo struct {
	db *gorm.DB
}

func NewFoodRepo(db *gorm.DB) *FoodRepo {
	return &FoodRepo{db: db}
}

func (r *FoodRepo) Create(ctx context.Context, food *models.Food, allergenIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(food).Error; err != nil {
			return err
		}
		return replaceAllergens(tx, food.ID, allergenIDs)
	})
}

func (r *FoodRepo) Update(ctx context.Context, food *models.Food, allergenIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Allergens").Save(food).Error; err != nil {
			return err
		}
		return replaceAllergens(tx, food.ID, allergenIDs)
	})
}

// replaceAllergens swaps the join set when ids is non-nil; nil means keep
// the current associations.
func replaceAllergens(tx *gorm.DB, foodID uint, ids []uint) error {
	if ids == nil {
		return nil
	}
	if err := tx.Where("food_id = ?", foodID).Delete(&models.FoodAllergen{}).Error; err != nil {
		return err
	}
	for _, aid := range ids {
		if err := tx.Create(&models.FoodAllergen{FoodID: foodID, AllergenID: aid}).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the food and its join rows in the same transaction; no
// storage-level cascade is relied upon.
func (r *FoodRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("food_id = ?", id).Delete(&models.FoodAllergen{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Food{}, id).Error
	})
}

func (r *FoodRepo) ByID(ctx context.Context, id uint) (*models.Food, error) {
	var food models.Food
	err := r.db.WithContext(ctx).
		Preload("FoodCategory").Preload("Allergens").
		First(&food, id).Error
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *FoodRepo) All(ctx context.Context) ([]models.Food, error) {
	var foods []models.Food
	err := r.db.WithContext(ctx).
		Preload("FoodCategory").Preload("Allergens").
		Order("name").Find(&foods).Error
	return foods, err
}

func (r *FoodRepo) Search(ctx context.Context, q string, categoryID uint, page, pageSize int) ([]models.Food, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Food{})
	if q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if categoryID > 0 {
		query = query.Where("food_category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var foods []models.Food
	err := query.
		Preload("FoodCategory").Preload("Allergens").
		Order("name").Order("id").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&foods).Error
	return foods, total, err
}

func (r *FoodRepo) ByIDs(ctx context.Context, ids []uint) ([]models.Food, error) {
	var foods []models.Food
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&foods).Error
	return foods, err
}

func (r *FoodRepo) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Food{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *FoodRepo) ExistingAllergenIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return []uint{}, nil
	}
	var found []uint
	err := r.db.WithContext(ctx).Model(&models.Allergen{}).
		Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}
