package controllers

import (
	"net/http"

	"frontdesk-backend/models"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	Service *services.RoomCategoryService
}

func NewCategoryController(s *services.RoomCategoryService) *CategoryController {
	return &CategoryController{Service: s}
}

func (cc *CategoryController) GetCategories(c *gin.Context) {
	categories, err := cc.Service.GetAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, categories)
}

func (cc *CategoryController) GetCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	category, err := cc.Service.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, category)
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var category models.RoomCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := cc.Service.Create(&category); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, category)
}

type updateCategoryPayload struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var payload updateCategoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	category, err := cc.Service.Update(id, payload.Name, payload.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, category)
}

func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := cc.Service.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "category deleted"})
}
