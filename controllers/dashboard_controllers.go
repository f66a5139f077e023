package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/utils"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetPortalStats returns the owner dashboard numbers for one portal:
// order counts by status, today's volume, paid revenue and the
// best-selling items.
func (dc *DashboardController) GetPortalStats(c *gin.Context) {
	uid, err := ownerID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var portal models.Portal
	if err := dc.DB.First(&portal, c.Param("portal_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if portal.OwnerID != uid {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var stats struct {
		OrdersByStatus []struct {
			Status string `json:"status"`
			Count  int64  `json:"count"`
		} `json:"orders_by_status"`
		OrdersToday  int64   `json:"orders_today"`
		PaidRevenue  float64 `json:"paid_revenue"`
		PopularItems []struct {
			MenuItemID uint    `json:"menu_item_id"`
			Name       string  `json:"name"`
			Count      int64   `json:"count"`
			Revenue    float64 `json:"revenue"`
		} `json:"popular_items"`
	}

	dc.DB.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Where("portal_id = ?", portal.ID).
		Group("status").
		Scan(&stats.OrdersByStatus)

	// Midnight in the server's local time zone, not UTC midnight.
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dc.DB.Model(&models.Order{}).
		Where("portal_id = ? AND created_at >= ?", portal.ID, startOfDay).
		Count(&stats.OrdersToday)

	dc.DB.Model(&models.Order{}).
		Where("portal_id = ? AND payment_status = ?", portal.ID, models.PaymentStatusPaid).
		Select("COALESCE(SUM(total), 0)").
		Row().Scan(&stats.PaidRevenue)

	dc.DB.Raw(`
		SELECT oi.menu_item_id, oi.name,
		SUM(oi.quantity) as count, SUM(oi.price * oi.quantity) as revenue
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id
		WHERE o.portal_id = ?
		GROUP BY oi.menu_item_id, oi.name
		ORDER BY count DESC
		LIMIT 10
	`, portal.ID).Scan(&stats.PopularItems)

	utils.RespondJSON(c, http.StatusOK, "Portal stats", stats)
}
