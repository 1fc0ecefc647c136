package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/services"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/utils"
)

type FoodController struct {
	foods *services.FoodService
}

func NewFoodController(foods *services.FoodService) *FoodController {
	return &FoodController{foods: foods}
}

type FoodRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Description    string          `json:"description" binding:"required,max=1000"`
	Price          decimal.Decimal `json:"price" binding:"required"`
	ImagePath      string          `json:"imagePath" binding:"max=255"`
	FoodCategoryID uint            `json:"foodCategoryId" binding:"required"`
	AllergenIDs    []uint          `json:"allergenIds"`
}

// GET /api/food
func (ctrl *FoodController) GetAll(c *gin.Context) {
	foods, err := ctrl.foods.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

// GET /api/food/:id
func (ctrl *FoodController) GetByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	food, err := ctrl.foods.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// GET /api/food/search?q=margherita&categoryId=2&page=1&pageSize=10
func (ctrl *FoodController) Search(c *gin.Context) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paging parameters"})
		return
	}
	pageSize, err := intQuery(c, "pageSize", 10)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paging parameters"})
		return
	}
	categoryID, err := intQuery(c, "categoryId", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid categoryId"})
		return
	}

	result, err := ctrl.foods.Search(c.Request.Context(), c.Query("q"), uint(categoryID), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /api/food (admin)
func (ctrl *FoodController) Create(c *gin.Context) {
	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.FieldErrors(err)})
		return
	}

	food, err := ctrl.foods.Create(c.Request.Context(), foodInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

// PUT /api/food/:id (admin)
func (ctrl *FoodController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.FieldErrors(err)})
		return
	}

	food, err := ctrl.foods.Update(c.Request.Context(), id, foodInput(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// DELETE /api/food/:id (admin)
func (ctrl *FoodController) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := ctrl.foods.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "food deleted"})
}

func foodInput(req FoodRequest) services.FoodInput {
	return services.FoodInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		ImagePath:      req.ImagePath,
		FoodCategoryID: req.FoodCategoryID,
		AllergenIDs:    req.AllergenIDs,
	}
}

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
