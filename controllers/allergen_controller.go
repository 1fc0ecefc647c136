package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/services"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/utils"
)

type AllergenController struct {
	allergens *services.AllergenService
}

func NewAllergenController(allergens *services.AllergenService) *AllergenController {
	return &AllergenController{allergens: allergens}
}

type AllergenRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (ctrl *AllergenController) GetAll(c *gin.Context) {
	allergens, err := ctrl.allergens.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, allergens)
}

func (ctrl *AllergenController) GetByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	allergen, err := ctrl.allergens.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, allergen)
}

func (ctrl *AllergenController) Create(c *gin.Context) {
	var req AllergenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.FieldErrors(err)})
		return
	}
	allergen, err := ctrl.allergens.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, allergen)
}

func (ctrl *AllergenController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req AllergenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": utils.FieldErrors(err)})
		return
	}
	allergen, err := ctrl.allergens.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, allergen)
}

func (ctrl *AllergenController) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := ctrl.allergens.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "allergen deleted"})
}
