package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/middlewares"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/services"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/utils"
)

const (
	cartCookieName   = "Cart"
	cartCookieMaxAge = 7 * 24 * 60 * 60
)

// CartController keeps the pre-order cart in an http-only, same-site-strict
// JSON cookie and hands it to the order workflow on checkout.
type CartController struct {
	foods  *services.FoodService
	orders *services.OrderService
}

func NewCartController(foods *services.FoodService, orders *services.OrderService) *CartController {
	return &CartController{foods: foods, orders: orders}
}

func (ctrl *CartController) readCart(c *gin.Context) services.Cart {
	raw, err := c.Cookie(cartCookieName)
	if err != nil {
		return services.Cart{}
	}
	return services.ParseCart(raw)
}

func (ctrl *CartController) writeCart(c *gin.Context, cart services.Cart) {
	encoded, err := cart.Encode()
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cartCookieName, encoded, cartCookieMaxAge, "/", "", false, true)
}

func (ctrl *CartController) dropCart(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cartCookieName, "", -1, "/", "", false, true)
}

// GET /api/cart — materialized view with current names and prices.
func (ctrl *CartController) Get(c *gin.Context) {
	cart := ctrl.readCart(c)
	if cart.IsEmpty() {
		c.JSON(http.StatusOK, gin.H{"items": []any{}, "total": "0"})
		return
	}

	type cartLine struct {
		FoodID    uint   `json:"foodId"`
		FoodName  string `json:"foodName"`
		Quantity  int    `json:"quantity"`
		UnitPrice string `json:"unitPrice"`
		LineTotal string `json:"lineTotal"`
	}

	lines := make([]cartLine, 0, len(cart.Items))
	sum := decimal.Zero
	for _, it := range cart.Items {
		food, err := ctrl.foods.GetByID(c.Request.Context(), it.FoodID)
		if err != nil {
			// A food deleted since it was added just drops out of the view.
			continue
		}
		lineTotal := food.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(lineTotal)
		lines = append(lines, cartLine{
			FoodID:    food.ID,
			FoodName:  food.Name,
			Quantity:  it.Quantity,
			UnitPrice: food.Price.StringFixed(2),
			LineTotal: lineTotal.StringFixed(2),
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": lines, "total": sum.StringFixed(2)})
}

type CartAddRequest struct {
	FoodID   uint `json:"foodId" binding:"required"`
	Quantity int  `json:"quantity" binding:"gte=0,lte=100"`
}

// POST /api/cart/items — add or increment.
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.FieldErrors(err)})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if _, err := ctrl.foods.GetByID(c.Request.Context(), req.FoodID); err != nil {
		respondError(c, err)
		return
	}

	cart := ctrl.readCart(c).Add(req.FoodID, req.Quantity)
	ctrl.writeCart(c, cart)
	c.JSON(http.StatusOK, gin.H{"itemCount": countItems(cart)})
}

// DELETE /api/cart/items/:foodId — decrement; entry drops at zero.
func (ctrl *CartController) DecrementItem(c *gin.Context) {
	foodID, err := strconv.ParseUint(c.Param("foodId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid foodId"})
		return
	}

	cart := ctrl.readCart(c).Decrement(uint(foodID))
	ctrl.writeCart(c, cart)
	c.JSON(http.StatusOK, gin.H{"itemCount": countItems(cart)})
}

// POST /api/cart/checkout — submit to the order workflow and discard the
// cookie on success.
func (ctrl *CartController) Checkout(c *gin.Context) {
	identity, ok := middlewares.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	cart := ctrl.readCart(c)
	order, err := ctrl.orders.Create(c.Request.Context(), identity, cart.Items)
	if err != nil {
		respondError(c, err)
		return
	}

	ctrl.dropCart(c)
	c.JSON(http.StatusCreated, order)
}

// DELETE /api/cart — discard without ordering.
func (ctrl *CartController) Clear(c *gin.Context) {
	ctrl.dropCart(c)
	c.Status(http.StatusNoContent)
}

func countItems(cart services.Cart) int {
	total := 0
	for _, it := range cart.Items {
		total += it.Quantity
	}
	return total
}
