package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/httpresp"
	"github.com/AgendaPlusApp/agenda-plus/internal/middleware"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
)

// Retail inventory for the point of sale.

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	StockQty    int     `json:"stock_qty"`
	Category    string  `json:"category"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	StockQty    *int     `json:"stock_qty,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	tenantID := middleware.CurrentTenantID(c)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))

	q := h.db.Where("tenant_id = ?", tenantID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	var products []models.Product
	if err := q.Order("id ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Could not list products.")
		return
	}

	httpresp.List(c, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	tenantID := middleware.CurrentTenantID(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	product := models.Product{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		StockQty:    req.StockQty,
		Category:    strings.ToLower(req.Category),
		Active:      true,
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Could not create product.")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	tenantID := middleware.CurrentTenantID(c)

	id := c.Param("id")

	var product models.Product
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&product).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "No such product.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Could not load product.")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.StockQty != nil {
		product.StockQty = *req.StockQty
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Could not update product.")
		return
	}

	c.JSON(http.StatusOK, product)
}
