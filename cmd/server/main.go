package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/config"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/controllers"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/repositories"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/routes"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/services"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/utils"
)

var rootCmd = &cobra.Command{
	Use:   "pizzeria",
	Short: "Grill pizzeria ordering backend",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := connect()
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Println("schema is up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed roles and the initial admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := connect()
		if err != nil {
			return err
		}
		return seed(db)
	},
}

func connect() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := config.OpenDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func serve() error {
	cfg, db, err := connect()
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	userRepo := repositories.NewUserRepo(db)
	foodRepo := repositories.NewFoodRepo(db)
	categoryRepo := repositories.NewCategoryRepo(db)
	allergenRepo := repositories.NewAllergenRepo(db)
	orderRepo := repositories.NewOrderRepo(db)
	logRepo := repositories.NewLogRepo(db)

	applog := services.NewAppLogger(logRepo)
	feed := services.NewOrderFeed()

	authz, err := services.NewAuthorizer()
	if err != nil {
		return err
	}

	authService := services.NewAuthService(userRepo, applog, cfg.JWTSecret, cfg.TokenLifetime)
	userService := services.NewUserService(userRepo, applog)
	foodService := services.NewFoodService(foodRepo, categoryRepo, applog)
	categoryService := services.NewCategoryService(categoryRepo, applog)
	allergenService := services.NewAllergenService(allergenRepo, applog)
	orderService := services.NewOrderService(orderRepo, foodRepo, applog, feed)
	logService := services.NewLogService(logRepo)

	orderCtrl := controllers.NewOrderController(orderService, feed)

	r := routes.SetupRouter(routes.Deps{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		Authz:          authz,
		Auth:           controllers.NewAuthController(authService),
		Users:          controllers.NewUserController(userService),
		Foods:          controllers.NewFoodController(foodService),
		Categories:     controllers.NewCategoryController(categoryService),
		Allergens:      controllers.NewAllergenController(allergenService),
		Orders:         orderCtrl,
		Cart:           controllers.NewCartController(foodService, orderService),
		Logs:           controllers.NewLogController(logService),
	})

	return r.Run(":" + cfg.Port)
}

// seed creates the user/admin roles and, when ADMIN_PASSWORD is set, an
// initial administrator account.
func seed(db *gorm.DB) error {
	ctx := context.Background()

	for _, name := range []string{models.RoleUser, models.RoleAdmin} {
		role := models.Role{Name: name}
		if err := db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin account")
		return nil
	}

	var admin models.Role
	if err := db.WithContext(ctx).Where("name = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	account := models.User{
		Username:     "admin",
		PasswordHash: hash,
		Email:        "admin@grillpizzeria.local",
		FirstName:    "Admin",
		LastName:     "Admin",
		Phone:        "+000000000",
		DateCreation: time.Now().UTC(),
		RoleID:       admin.ID,
	}
	if err := db.WithContext(ctx).Where("username = ?", account.Username).FirstOrCreate(&account).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Println("seed complete")
	return nil
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
