package admin

import (
	"errors"
	"strconv"

	"github.com/techgear-vn/techgear/internal/http/response"
	"github.com/techgear-vn/techgear/internal/models"
	"github.com/techgear-vn/techgear/internal/repository"
	"github.com/techgear-vn/techgear/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest creates or updates a product.
type ProductRequest struct {
	CategoryID    uint        `json:"category_id" binding:"required"`
	Slug          string      `json:"slug" binding:"required"`
	Name          models.JSON `json:"name" binding:"required"`
	Description   models.JSON `json:"description"`
	Brand         string      `json:"brand"`
	Price         int64       `json:"price"`
	PriceDiscount int64       `json:"priceDiscount"`
	Stock         int         `json:"stock"`
	Images        []string    `json:"images"`
	IsActive      *bool       `json:"is_active"`
	SortOrder     int         `json:"sort_order"`
}

func (r *ProductRequest) toModel() *models.Product {
	product := &models.Product{
		CategoryID:      r.CategoryID,
		Slug:            r.Slug,
		NameJSON:        r.Name,
		DescriptionJSON: r.Description,
		Brand:           r.Brand,
		PriceAmount:     models.NewMoneyFromInt(r.Price),
		PriceDiscount:   models.NewMoneyFromInt(r.PriceDiscount),
		Stock:           r.Stock,
		Images:          models.StringArray(r.Images),
		IsActive:        true,
		SortOrder:       r.SortOrder,
	}
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
	return product
}

// VariantRequest creates or updates a product variant.
type VariantRequest struct {
	SKU           string `json:"sku" binding:"required"`
	ColorName     string `json:"color_name"`
	ColorCode     string `json:"color_code"`
	ColorImage    string `json:"color_image"`
	StorageSize   string `json:"storage_size"`
	StorageName   string `json:"storage_name"`
	Price         int64  `json:"price"`
	PriceDiscount int64  `json:"priceDiscount"`
	Stock         int    `json:"stock"`
	IsActive      *bool  `json:"is_active"`
	SortOrder     int    `json:"sort_order"`
}

func (r *VariantRequest) toModel(productID uint) *models.ProductVariant {
	variant := &models.ProductVariant{
		ProductID:     productID,
		SKU:           r.SKU,
		ColorName:     r.ColorName,
		ColorCode:     r.ColorCode,
		ColorImage:    r.ColorImage,
		StorageSize:   r.StorageSize,
		StorageName:   r.StorageName,
		PriceAmount:   models.NewMoneyFromInt(r.Price),
		PriceDiscount: models.NewMoneyFromInt(r.PriceDiscount),
		Stock:         r.Stock,
		IsActive:      true,
		SortOrder:     r.SortOrder,
	}
	if r.IsActive != nil {
		variant.IsActive = *r.IsActive
	}
	return variant
}

// ListProducts returns the full catalog for the dashboard, inactive
// products included.
func (h *Handler) ListProducts(c *gin.Context) {
	filter := repository.ProductListFilter{
		Page:         parseIntQuery(c, "page", 1),
		PageSize:     parseIntQuery(c, "pageSize", 20),
		Brand:        c.Query("brand"),
		Search:       c.Query("search"),
		OrderBy:      c.Query("sort"),
		WithCategory: true,
	}
	if raw := c.Query("categoryId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.CategoryID = uint(id)
		}
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, gin.H{"products": products}, buildPagination(filter.Page, filter.PageSize, total))
}

// GetProduct returns one product with category and variants.
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// CreateProduct creates a product.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product := req.toModel()
	if err := h.ProductService.Create(product); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// UpdateProduct saves a product.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product := req.toModel()
	product.ID = id
	if err := h.ProductService.Update(c.Request.Context(), product); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// DeleteProduct removes a product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// CreateVariant adds a variant to a product.
func (h *Handler) CreateVariant(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	variant := req.toModel(productID)
	if err := h.ProductService.CreateVariant(c.Request.Context(), variant); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"variant": variant})
}

// UpdateVariant saves a variant.
func (h *Handler) UpdateVariant(c *gin.Context) {
	productID, ok := parseIDParam(c)
	if !ok {
		return
	}
	variantID, err := strconv.ParseUint(c.Param("variantId"), 10, 64)
	if err != nil || variantID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	variant := req.toModel(productID)
	variant.ID = uint(variantID)
	if err := h.ProductService.UpdateVariant(c.Request.Context(), variant); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"variant": variant})
}

// DeleteVariant removes a variant.
func (h *Handler) DeleteVariant(c *gin.Context) {
	variantID, err := strconv.ParseUint(c.Param("variantId"), 10, 64)
	if err != nil || variantID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.ProductService.DeleteVariant(c.Request.Context(), uint(variantID)); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
	case errors.Is(err, service.ErrVariantNotFound):
		respondError(c, response.CodeNotFound, "error.variant_not_found", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "error.category_not_found", nil)
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
