package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/controllers"
	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/utils"
)

func setupReceiptRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := setupOrderRouter(db)
	ctrl := controllers.NewReceiptController(db)
	r.GET("/admin/orders/:order_id/receipt.pdf", fakeAuth(2, "cashier"), ctrl.GenerateReceipt)
	return r
}

func TestReceiptRequiresPaidOrder(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	r := setupReceiptRouter(db)

	data := createTestOrder(t, r)
	orderID := int(data["id"].(float64))

	req, _ := http.NewRequest("GET", fmt.Sprintf("/admin/orders/%d/receipt.pdf", orderID), nil)
	w := doRequest(r, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceiptRendersPDF(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	r := setupReceiptRouter(db)

	data := createTestOrder(t, r)
	orderID := int(data["id"].(float64))

	w := doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/pay", orderID),
		map[string]interface{}{"payment_method": "card", "tip": 2.00})
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/admin/orders/%d/receipt.pdf", orderID), nil)
	w2 := doRequest(r, req)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "application/pdf", w2.Header().Get("Content-Type"))
	assert.True(t, len(w2.Body.Bytes()) > 500, "PDF body should not be empty")
	assert.Equal(t, "%PDF", string(w2.Body.Bytes()[:4]))
}

func TestPortalStats(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForOrders(t)
	r := setupOrderRouter(db)
	dash := controllers.NewDashboardController(db)
	r.GET("/admin/portals/:portal_id/stats", fakeAuth(1, "owner"), dash.GetPortalStats)

	data := createTestOrder(t, r)
	orderID := int(data["id"].(float64))
	createTestOrder(t, r)

	// An order from yesterday must not count toward today's volume.
	yesterday := createTestOrder(t, r)
	db.Model(&models.Order{}).Where("id = ?", int(yesterday["id"].(float64))).
		Update("created_at", time.Now().Add(-48*time.Hour))

	w := doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/pay", orderID),
		map[string]interface{}{"payment_method": "cash"})
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest("GET", "/admin/portals/1/stats", nil)
	w = doRequest(r, req)
	assert.Equal(t, http.StatusOK, w.Code)

	stats := orderData(t, w)
	assert.Equal(t, float64(2), stats["orders_today"])
	assert.InDelta(t, 42.46, stats["paid_revenue"].(float64), 1e-9)
	popular := stats["popular_items"].([]interface{})
	assert.NotEmpty(t, popular)
	top := popular[0].(map[string]interface{})
	assert.Equal(t, "Burger", top["name"])
	assert.Equal(t, float64(6), top["count"])
}
