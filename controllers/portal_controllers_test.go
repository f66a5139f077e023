package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/ai"
	"github.com/menuport/portal-app/controllers"
	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/utils"
)

// stubAI returns a canned completion, or an error to force the fallback.
type stubAI struct {
	output string
	err    error
}

func (s stubAI) Generate(ctx context.Context, prompt string) (string, error) {
	return s.output, s.err
}

func setupPortalDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Portal{}, &models.MenuItem{},
		&models.Order{}, &models.OrderItem{}, &models.ChatMessage{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupPortalRouter(db *gorm.DB, client ai.Client, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := controllers.NewPortalController(db, client)
	menuCtrl := controllers.NewMenuItemController(db)

	r.GET("/portals/:portal_id", ctrl.GetPortal)
	r.GET("/portals/:portal_id/menu", menuCtrl.GetMenuItems)

	owner := r.Group("/admin")
	owner.Use(fakeAuth(userID, "owner"))
	owner.POST("/portals", ctrl.CreatePortal)
	owner.GET("/portals", ctrl.GetMyPortals)
	owner.PATCH("/portals/:portal_id", ctrl.UpdatePortal)
	owner.DELETE("/portals/:portal_id", ctrl.DeletePortal)
	return r
}

func TestCreatePortalDefaults(t *testing.T) {
	utils.InitLogger()
	db := setupPortalDB(t)
	r := setupPortalRouter(db, stubAI{}, 1)

	w := doJSON(t, r, "POST", "/admin/portals", map[string]interface{}{"name": "Corner Cafe"})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := orderData(t, w)
	assert.Equal(t, "Corner Cafe", data["name"])
	assert.Equal(t, "draft", data["status"])
	assert.Equal(t, "USD", data["currency"])
	assert.InDelta(t, 0.10, data["tax_rate"].(float64), 1e-9)
	assert.InDelta(t, 3.99, data["delivery_fee"].(float64), 1e-9)
}

func TestCreatePortalGenerateFallsBackToSampleMenu(t *testing.T) {
	utils.InitLogger()
	db := setupPortalDB(t)
	r := setupPortalRouter(db, stubAI{err: errors.New("upstream down")}, 1)

	w := doJSON(t, r, "POST", "/admin/portals", map[string]interface{}{
		"name":     "Corner Cafe",
		"generate": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := orderData(t, w)
	fallback := ai.FallbackPortalContent("Corner Cafe")
	assert.Equal(t, fallback.Description, data["description"])
	assert.Equal(t, fallback.Theme.Primary, data["primary_color"])

	var items []models.MenuItem
	db.Where("portal_id = ?", uint(data["id"].(float64))).Order("id asc").Find(&items)
	assert.Len(t, items, 3)
	assert.Equal(t, "House Burger", items[0].Name)
	assert.InDelta(t, 8.99, items[0].Price, 1e-9)
	assert.True(t, items[0].Available)
}

func TestCreatePortalGenerateKeepsExplicitFields(t *testing.T) {
	utils.InitLogger()
	db := setupPortalDB(t)
	r := setupPortalRouter(db, stubAI{err: errors.New("upstream down")}, 1)

	w := doJSON(t, r, "POST", "/admin/portals", map[string]interface{}{
		"name":          "Corner Cafe",
		"description":   "My own words.",
		"primary_color": "#112233",
		"generate":      true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := orderData(t, w)
	assert.Equal(t, "My own words.", data["description"])
	assert.Equal(t, "#112233", data["primary_color"])
}

func TestUpdatePortalStatusAndOwnership(t *testing.T) {
	utils.InitLogger()
	db := setupPortalDB(t)
	r := setupPortalRouter(db, stubAI{}, 1)

	w := doJSON(t, r, "POST", "/admin/portals", map[string]interface{}{"name": "Corner Cafe"})
	assert.Equal(t, http.StatusCreated, w.Code)
	portalID := int(orderData(t, w)["id"].(float64))

	w = doJSON(t, r, "PATCH", "/admin/portals/1", map[string]interface{}{"status": "active"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "active", orderData(t, w)["status"])

	w = doJSON(t, r, "PATCH", "/admin/portals/1", map[string]interface{}{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A different owner may not touch the portal.
	other := setupPortalRouter(db, stubAI{}, 2)
	w = doJSON(t, other, "PATCH", "/admin/portals/1", map[string]interface{}{"name": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	_ = portalID
}

func TestUpdatePortalAcceptsZeroFeeAndTax(t *testing.T) {
	utils.InitLogger()
	db := setupPortalDB(t)
	r := setupPortalRouter(db, stubAI{}, 1)

	w := doJSON(t, r, "POST", "/admin/portals", map[string]interface{}{"name": "Corner Cafe"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "PATCH", "/admin/portals/1", map[string]interface{}{
		"tax_rate":     0,
		"delivery_fee": 0,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := orderData(t, w)
	assert.InDelta(t, 0.0, data["tax_rate"].(float64), 1e-9)
	assert.InDelta(t, 0.0, data["delivery_fee"].(float64), 1e-9)

	// The zeroes stick across a reload.
	var portal models.Portal
	db.First(&portal, 1)
	assert.NotNil(t, portal.TaxRate)
	assert.Equal(t, 0.0, *portal.TaxRate)
	assert.NotNil(t, portal.DeliveryFee)
	assert.Equal(t, 0.0, *portal.DeliveryFee)
}

func TestDeletePortalRemovesChildren(t *testing.T) {
	utils.InitLogger()
	db := setupPortalDB(t)
	r := setupPortalRouter(db, stubAI{err: errors.New("upstream down")}, 1)

	w := doJSON(t, r, "POST", "/admin/portals", map[string]interface{}{
		"name":     "Corner Cafe",
		"generate": true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	portalID := uint(orderData(t, w)["id"].(float64))

	db.Create(&models.ChatMessage{PortalID: portalID, SessionID: "s1", Role: "user", Content: "hi"})

	w = doJSON(t, r, "DELETE", "/admin/portals/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.MenuItem{}).Where("portal_id = ?", portalID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.ChatMessage{}).Where("portal_id = ?", portalID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Portal{}).Where("id = ?", portalID).Count(&count)
	assert.Zero(t, count)
}

func TestPublicMenuFilters(t *testing.T) {
	utils.InitLogger()
	db := setupPortalDB(t)
	portal := models.Portal{OwnerID: 1, Name: "Cafe", Status: models.PortalStatusActive}
	portal.ApplySettingDefaults()
	db.Create(&portal)
	db.Create(&models.MenuItem{PortalID: portal.ID, Name: "Burger", Price: 8.99, Category: "main", Available: true})
	db.Create(&models.MenuItem{PortalID: portal.ID, Name: "Lemonade", Price: 3.50, Category: "drink", Available: true})
	db.Create(&models.MenuItem{PortalID: portal.ID, Name: "Soup", Price: 4.99, Category: "main", Available: false})

	r := setupPortalRouter(db, stubAI{}, 1)

	w := doJSON(t, r, "GET", "/portals/1/menu", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	all := listData(t, w)
	assert.Len(t, all, 3)

	w = doJSON(t, r, "GET", "/portals/1/menu?category=drink", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	drinks := listData(t, w)
	assert.Len(t, drinks, 1)
	assert.Equal(t, "Lemonade", drinks[0].(map[string]interface{})["name"])

	w = doJSON(t, r, "GET", "/portals/1/menu?available=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listData(t, w), 2)
}
