package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

type AllergenRepo struct {
	db *gorm.DB
}

func NewAllergenRepo(db *gorm.DB) *AllergenRepo {
	return &AllergenRepo{db: db}
}

func (r *AllergenRepo) Create(ctx context.Context, allergen *models.Allergen) error {
	return r.db.WithContext(ctx).Create(allergen).Error
}

func (r *AllergenRepo) Update(ctx context.Context, allergen *models.Allergen) error {
	return r.db.WithContext(ctx).Save(allergen).Error
}

func (r *AllergenRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("allergen_id = ?", id).Delete(&models.FoodAllergen{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Allergen{}, id).Error
	})
}

func (r *AllergenRepo) ByID(ctx context.Context, id uint) (*models.Allergen, error) {
	var allergen models.Allergen
	if err := r.db.WithContext(ctx).First(&allergen, id).Error; err != nil {
		return nil, err
	}
	return &allergen, nil
}

func (r *AllergenRepo) All(ctx context.Context) ([]models.Allergen, error) {
	var allergens []models.Allergen
	err := r.db.WithContext(ctx).Order("name").Find(&allergens).Error
	return allergens, err
}

func (r *AllergenRepo) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Allergen{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
