package services

import (
	"context"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

// Repository interfaces, one named method per query shape. Services depend
// on these; the gorm implementations live in the repositories package and
// in-memory fakes back the tests.

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	ByID(ctx context.Context, id uint) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID uint) (bool, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, skip, take int) ([]models.User, error)
	RoleByName(ctx context.Context, name string) (*models.Role, error)
}

type FoodRepository interface {
	// Create and Update persist the food and, when allergenIDs is non-nil,
	// replace its allergen set in the same transaction.
	Create(ctx context.Context, food *models.Food, allergenIDs []uint) error
	Update(ctx context.Context, food *models.Food, allergenIDs []uint) error
	Delete(ctx context.Context, id uint) error
	ByID(ctx context.Context, id uint) (*models.Food, error)
	All(ctx context.Context) ([]models.Food, error)
	// Search matches q against name/description case-insensitively, filters
	// by category when categoryID > 0, orders by name then id and returns
	// the page slice plus the total filtered count.
	Search(ctx context.Context, q string, categoryID uint, page, pageSize int) ([]models.Food, int64, error)
	ByIDs(ctx context.Context, ids []uint) ([]models.Food, error)
	NameExists(ctx context.Context, name string, excludeID uint) (bool, error)
	ExistingAllergenIDs(ctx context.Context, ids []uint) ([]uint, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.FoodCategory) error
	Update(ctx context.Context, category *models.FoodCategory) error
	Delete(ctx context.Context, id uint) error
	ByID(ctx context.Context, id uint) (*models.FoodCategory, error)
	All(ctx context.Context) ([]models.FoodCategory, error)
	NameExists(ctx context.Context, name string, excludeID uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	FoodCount(ctx context.Context, id uint) (int64, error)
}

type AllergenRepository interface {
	Create(ctx context.Context, allergen *models.Allergen) error
	Update(ctx context.Context, allergen *models.Allergen) error
	// Delete removes the allergen and its food_allergens join rows in one
	// transaction.
	Delete(ctx context.Context, id uint) error
	ByID(ctx context.Context, id uint) (*models.Allergen, error)
	All(ctx context.Context) ([]models.Allergen, error)
	NameExists(ctx context.Context, name string, excludeID uint) (bool, error)
}

type OrderRepository interface {
	// CreateWithItems writes the order header and every line item as a
	// single unit; a failure anywhere aborts the whole write.
	CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderFood) error
	ByID(ctx context.Context, id uint) (*models.Order, error)
	ByUser(ctx context.Context, userID uint) ([]models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	// DeleteWithItems removes the header and its line items atomically.
	DeleteWithItems(ctx context.Context, id uint) error
}

type LogRepository interface {
	Append(ctx context.Context, entry *models.Log) error
	Recent(ctx context.Context, n int) ([]models.Log, error)
	Count(ctx context.Context) (int64, error)
}
