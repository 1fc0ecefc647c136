package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/middlewares"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/services"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/utils"
)

type OrderController struct {
	orders *services.OrderService
	feed   *services.OrderFeed
}

func NewOrderController(orders *services.OrderService, feed *services.OrderFeed) *OrderController {
	return &OrderController{orders: orders, feed: feed}
}

type OrderItemRequest struct {
	FoodID   uint `json:"foodId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gte=1,lte=100"`
}

type OrderCreateRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// POST /api/orders
func (ctrl *OrderController) Create(c *gin.Context) {
	identity, ok := middlewares.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.FieldErrors(err)})
		return
	}

	items := make([]services.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, services.OrderItemInput{FoodID: it.FoodID, Quantity: it.Quantity})
	}

	order, err := ctrl.orders.Create(c.Request.Context(), identity, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GET /api/orders (own orders)
func (ctrl *OrderController) GetOwn(c *gin.Context) {
	identity, ok := middlewares.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	orders, err := ctrl.orders.ListOwn(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/all (admin)
func (ctrl *OrderController) GetAll(c *gin.Context) {
	orders, err := ctrl.orders.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/:id (owner or admin)
func (ctrl *OrderController) GetByID(c *gin.Context) {
	identity, ok := middlewares.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	order, err := ctrl.orders.GetByID(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// DELETE /api/orders/:id (owner or admin)
func (ctrl *OrderController) Delete(c *gin.Context) {
	identity, ok := middlewares.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := ctrl.orders.Delete(c.Request.Context(), identity, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Feed upgrades to a websocket that receives every created order. Admin
// only; the token travels as a query parameter because browsers cannot set
// headers on websocket dials.
func (ctrl *OrderController) Feed(c *gin.Context) {
	identity, ok := middlewares.Identity(c)
	if !ok || identity.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return
	}

	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ctrl.feed.Register(conn)
	defer ctrl.feed.Unregister(client)

	// Reads are discarded; the connection exists to receive broadcasts.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
