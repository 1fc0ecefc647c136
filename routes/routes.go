package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/controllers"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/middlewares"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/services"
)

// Deps is everything the router needs, wired in main.
type Deps struct {
	JWTSecret      string
	AllowedOrigins []string
	Authz          *services.Authorizer

	Auth      *controllers.AuthController
	Users     *controllers.UserController
	Foods     *controllers.FoodController
	Categories *controllers.CategoryController
	Allergens *controllers.AllergenController
	Orders    *controllers.OrderController
	Cart      *controllers.CartController
	Logs      *controllers.LogController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middlewares.AuthMiddleware(d.JWTSecret)
	adminOnly := func(resource, action string) gin.HandlerFunc {
		return middlewares.RequirePermission(d.Authz, resource, action)
	}

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
		auth.POST("/change-password", authRequired, d.Auth.ChangePassword)
	}

	users := r.Group("/api/users", authRequired)
	{
		users.GET("/me", d.Users.Me)
		users.PUT("/me", d.Users.UpdateMe)
		users.GET("", adminOnly("users", "list"), d.Users.List)
	}

	// Catalog reads are anonymous; writes are admin only.
	food := r.Group("/api/food")
	{
		food.GET("", d.Foods.GetAll)
		food.GET("/search", d.Foods.Search)
		food.GET("/:id", d.Foods.GetByID)
		food.POST("", authRequired, adminOnly("foods", "write"), d.Foods.Create)
		food.PUT("/:id", authRequired, adminOnly("foods", "write"), d.Foods.Update)
		food.DELETE("/:id", authRequired, adminOnly("foods", "write"), d.Foods.Delete)
	}

	categories := r.Group("/api/categories")
	{
		categories.GET("", d.Categories.GetAll)
		categories.GET("/:id", d.Categories.GetByID)
		categories.POST("", authRequired, adminOnly("categories", "write"), d.Categories.Create)
		categories.PUT("/:id", authRequired, adminOnly("categories", "write"), d.Categories.Update)
		categories.DELETE("/:id", authRequired, adminOnly("categories", "write"), d.Categories.Delete)
	}

	allergens := r.Group("/api/allergens")
	{
		allergens.GET("", d.Allergens.GetAll)
		allergens.GET("/:id", d.Allergens.GetByID)
		allergens.POST("", authRequired, adminOnly("allergens", "write"), d.Allergens.Create)
		allergens.PUT("/:id", authRequired, adminOnly("allergens", "write"), d.Allergens.Update)
		allergens.DELETE("/:id", authRequired, adminOnly("allergens", "write"), d.Allergens.Delete)
	}

	orders := r.Group("/api/orders", authRequired)
	{
		orders.POST("", d.Orders.Create)
		orders.GET("", d.Orders.GetOwn)
		orders.GET("/all", adminOnly("orders", "read-all"), d.Orders.GetAll)
		orders.GET("/:id", d.Orders.GetByID)
		orders.DELETE("/:id", d.Orders.Delete)
	}

	cart := r.Group("/api/cart")
	{
		cart.GET("", d.Cart.Get)
		cart.POST("/items", d.Cart.AddItem)
		cart.DELETE("/items/:foodId", d.Cart.DecrementItem)
		cart.DELETE("", d.Cart.Clear)
		cart.POST("/checkout", authRequired, d.Cart.Checkout)
	}

	logs := r.Group("/api/logs", authRequired, adminOnly("logs", "read"))
	{
		logs.GET("/recent/:n", d.Logs.Recent)
		logs.GET("/count", d.Logs.Count)
	}

	r.GET("/ws/orders", authRequired, adminOnly("orders", "feed"), d.Orders.Feed)

	return r
}
