package handler

import (
	"github.com/damoang/angple-press/internal/common"
	"github.com/damoang/angple-press/internal/service"
	"github.com/gin-gonic/gin"
)

// TaxonomyHandler serves category and tag reference data
type TaxonomyHandler struct {
	service service.TaxonomyService
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(service service.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: service}
}

// ListCategories godoc
// @Summary      활성 카테고리 목록
// @Tags         taxonomy
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.Category}
// @Router       /categories [get]
func (h *TaxonomyHandler) ListCategories(c *gin.Context) {
	data, err := h.service.ListActiveCategories(c.Request.Context())
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, data)
}

// GetCategory godoc
// @Summary      카테고리 조회
// @Tags         taxonomy
// @Produce      json
// @Param        slug  path  string  true  "카테고리 slug"
// @Success      200  {object}  common.APIResponse{data=domain.Category}
// @Failure      404  {object}  common.APIResponse
// @Router       /categories/{slug} [get]
func (h *TaxonomyHandler) GetCategory(c *gin.Context) {
	data, err := h.service.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, data)
}

// ListTags godoc
// @Summary      태그 목록
// @Tags         taxonomy
// @Produce      json
// @Success      200  {object}  common.APIResponse{data=[]domain.Tag}
// @Router       /tags [get]
func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	data, err := h.service.ListTags(c.Request.Context())
	if err != nil {
		common.HandleError(c, err)
		return
	}
	common.Success(c, data)
}
