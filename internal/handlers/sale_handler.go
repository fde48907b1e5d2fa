package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AgendaPlusApp/agenda-plus/internal/audit"
	"github.com/AgendaPlusApp/agenda-plus/internal/httperr"
	"github.com/AgendaPlusApp/agenda-plus/internal/middleware"
	"github.com/AgendaPlusApp/agenda-plus/internal/models"
)

// Point-of-sale capture. A sale is a record; charging the customer
// happens outside this system.

type SaleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSaleHandler(db *gorm.DB, auditor *audit.Dispatcher) *SaleHandler {
	return &SaleHandler{db: db, audit: auditor}
}

// --------- Requests ---------

type SaleItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items" binding:"required,min=1"`
}

// --------- Handlers ---------

// Create records a sale and decrements stock in one transaction.
// Oversell fails the whole sale.
func (h *SaleHandler) Create(c *gin.Context) {
	tenantID := middleware.CurrentTenantID(c)
	userID := middleware.CurrentUserID(c)

	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	sale := models.Sale{
		TenantID: tenantID,
		UserID:   userID,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Items {
			var product models.Product
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND tenant_id = ? AND active = ?", item.ProductID, tenantID, true).
				First(&product).Error; err != nil {
				return httperr.ErrBusiness("product_not_found")
			}

			if product.StockQty < item.Quantity {
				return httperr.ErrBusiness("insufficient_stock")
			}

			product.StockQty -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			sale.Items = append(sale.Items, models.SaleItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			})
			sale.Total += product.Price * float64(item.Quantity)
		}

		return tx.Create(&sale).Error
	})

	if err != nil {
		switch {
		case httperr.IsBusiness(err, "product_not_found"):
			httperr.BadRequest(c, "product_not_found", "Unknown or inactive product.")
		case httperr.IsBusiness(err, "insufficient_stock"):
			httperr.Conflict(c, "insufficient_stock", "Not enough stock for this sale.")
		default:
			httperr.Internal(c, "failed_to_create_sale", "Could not record sale.")
		}
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "sale_recorded",
		Entity:   "sale",
		EntityID: &sale.ID,
	})

	c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandler) List(c *gin.Context) {
	tenantID := middleware.CurrentTenantID(c)

	fromStr := c.Query("from")
	toStr := c.Query("to")

	q := h.db.Preload("Items").Where("tenant_id = ?", tenantID)

	if fromStr != "" {
		if from, err := time.Parse("2006-01-02", fromStr); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if toStr != "" {
		if to, err := time.Parse("2006-01-02", toStr); err == nil {
			q = q.Where("created_at < ?", to.Add(24*time.Hour))
		}
	}

	var sales []models.Sale
	if err := q.Order("created_at DESC").Find(&sales).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sales", "Could not list sales.")
		return
	}

	c.JSON(http.StatusOK, sales)
}
