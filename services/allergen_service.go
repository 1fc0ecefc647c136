package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

type AllergenService struct {
	allergens AllergenRepository
	applog    *AppLogger
}

func NewAllergenService(allergens AllergenRepository, applog *AppLogger) *AllergenService {
	return &AllergenService{allergens: allergens, applog: applog}
}

func (s *AllergenService) GetAll(ctx context.Context) ([]models.Allergen, error) {
	allergens, err := s.allergens.All(ctx)
	if err != nil {
		return nil, s.fail(ctx, "Allergen.GetAll", err)
	}
	return allergens, nil
}

func (s *AllergenService) GetByID(ctx context.Context, id uint) (*models.Allergen, error) {
	allergen, err := s.allergens.ByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "allergen")
	}
	return allergen, nil
}

// Create enforces case-insensitive name uniqueness.
func (s *AllergenService) Create(ctx context.Context, name string) (*models.Allergen, error) {
	name = strings.TrimSpace(name)
	if taken, err := s.allergens.NameExists(ctx, name, 0); err != nil {
		return nil, s.fail(ctx, "Allergen.Create", err)
	} else if taken {
		return nil, conflictf("allergen with the same name already exists")
	}

	allergen := &models.Allergen{Name: name}
	if err := s.allergens.Create(ctx, allergen); err != nil {
		return nil, s.fail(ctx, "Allergen.Create", err)
	}
	s.applog.Information(ctx, fmt.Sprintf("Allergen.Create success: id=%d", allergen.ID))
	return allergen, nil
}

func (s *AllergenService) Update(ctx context.Context, id uint, name string) (*models.Allergen, error) {
	allergen, err := s.allergens.ByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "allergen")
	}

	name = strings.TrimSpace(name)
	if !strings.EqualFold(allergen.Name, name) {
		if taken, err := s.allergens.NameExists(ctx, name, id); err != nil {
			return nil, s.fail(ctx, "Allergen.Update", err)
		} else if taken {
			return nil, conflictf("allergen with the same name already exists")
		}
	}

	allergen.Name = name
	if err := s.allergens.Update(ctx, allergen); err != nil {
		return nil, s.fail(ctx, "Allergen.Update", err)
	}
	s.applog.Information(ctx, fmt.Sprintf("Allergen.Update success: id=%d", id))
	return allergen, nil
}

// Delete removes the allergen and its join rows; foods themselves are
// untouched.
func (s *AllergenService) Delete(ctx context.Context, id uint) error {
	if _, err := s.allergens.ByID(ctx, id); err != nil {
		return storeError(err, "allergen")
	}
	if err := s.allergens.Delete(ctx, id); err != nil {
		return s.fail(ctx, "Allergen.Delete", err)
	}
	s.applog.Information(ctx, fmt.Sprintf("Allergen.Delete success: id=%d", id))
	return nil
}

func (s *AllergenService) fail(ctx context.Context, op string, err error) error {
	classified := storeError(err, "allergen")
	s.applog.Error(ctx, fmt.Sprintf("%s failed: %v", op, err))
	return classified
}
