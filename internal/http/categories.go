package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jdih-api/internal/domain"
	"jdih-api/internal/service"
	"jdih-api/internal/validation"
)

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		h.respondInternal(c, err, "list categories")
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = categoryToResponse(categories[i])
	}
	c.JSON(http.StatusOK, gin.H{"categories": resp})
}

func (h *Handler) getCategory(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgCategoryNotFound})
			return
		}
		h.respondInternal(c, err, "get category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": categoryToResponse(*category)})
}

func (h *Handler) createCategory(c *gin.Context) {
	var req validation.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidation(c, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		h.respondValidation(c, err)
		return
	}

	user := currentUser(c)
	category, err := h.categories.Create(c.Request.Context(), actorFor(c, user.ID), domain.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondInternal(c, err, "create category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Kategori berhasil dibuat",
		"category": categoryToResponse(*category),
	})
}
