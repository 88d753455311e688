package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerlens/internal/middleware"
	"ledgerlens/internal/services"
)

// CategoryHandler serves chart-of-accounts endpoints.
type CategoryHandler struct {
	categories services.CategoryService
}

// NewCategoryHandler creates a category handler.
func NewCategoryHandler(categories services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List godoc
// @Summary List the user's categories
// @Tags categories
// @Security BearerAuth
// @Produce json
// @Param tree query bool false "Return root categories with children nested"
// @Success 200 {array} models.Category
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	if c.Query("tree") == "true" {
		categories, err := h.categories.ListRoots(userID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
		return
	}

	categories, err := h.categories.List(userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Get godoc
// @Summary Get one category
// @Tags categories
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.Category
// @Failure 404 {object} errors.AppError
// @Router /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	category, err := h.categories.GetByID(middleware.UserID(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body services.CreateCategoryRequest true "Category payload"
// @Success 201 {object} models.Category
// @Failure 400 {object} errors.AppError
// @Router /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categories.Create(middleware.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body services.UpdateCategoryRequest true "Updates"
// @Success 200 {object} models.Category
// @Failure 404 {object} errors.AppError
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categories.Update(middleware.UserID(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete godoc
// @Summary Delete a leaf category
// @Tags categories
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 204
// @Failure 409 {object} errors.AppError
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(middleware.UserID(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
