package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/ai"
	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/utils"
)

type SeedController struct {
	DB *gorm.DB
}

func NewSeedController(db *gorm.DB) *SeedController {
	return &SeedController{DB: db}
}

// Seed wipes the caller's portals and recreates the sample storefront
// from the static fallback payload, plus one demo order. Destructive;
// owner-only.
func (sc *SeedController) Seed(c *gin.Context) {
	uid, err := ownerID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	tx := sc.DB.Begin()

	var portalIDs []uint
	tx.Model(&models.Portal{}).Where("owner_id = ?", uid).Pluck("id", &portalIDs)
	if len(portalIDs) > 0 {
		var orderIDs []uint
		tx.Model(&models.Order{}).Where("portal_id IN ?", portalIDs).Pluck("id", &orderIDs)
		if len(orderIDs) > 0 {
			tx.Where("order_id IN ?", orderIDs).Delete(&models.OrderItem{})
			tx.Where("id IN ?", orderIDs).Delete(&models.Order{})
		}
		tx.Where("portal_id IN ?", portalIDs).Delete(&models.MenuItem{})
		tx.Where("portal_id IN ?", portalIDs).Delete(&models.ChatMessage{})
		tx.Where("id IN ?", portalIDs).Delete(&models.Portal{})
	}

	content := ai.FallbackPortalContent("Sample Bistro")
	portal := models.Portal{
		OwnerID:        uid,
		Name:           "Sample Bistro",
		Description:    content.Description,
		Status:         models.PortalStatusActive,
		PrimaryColor:   content.Theme.Primary,
		SecondaryColor: content.Theme.Secondary,
		AccentColor:    content.Theme.Accent,
	}
	portal.ApplySettingDefaults()
	if err := tx.Create(&portal).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var seeded []models.MenuItem
	for _, item := range content.MenuItems {
		menuItem := models.MenuItem{
			PortalID:    portal.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Category:    item.Category,
			Tags:        item.Tags,
			Available:   true,
		}
		if err := tx.Create(&menuItem).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		seeded = append(seeded, menuItem)
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Demo order: two burgers and a lemonade.
	order, err := BuildOrder(sc.DB, portal,
		[]OrderLineRequest{
			{MenuItemID: seeded[0].ID, Quantity: 2},
			{MenuItemID: seeded[2].ID, Quantity: 1},
		},
		CustomerRequest{Name: "Demo Customer", Table: "4"},
		models.PaymentMethodCash,
	)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Sample data reseeded for owner %d (portal=%d)", uid, portal.ID)
	utils.RespondJSON(c, http.StatusOK, "Sample data seeded", gin.H{
		"portal":     portal,
		"menu_items": seeded,
		"order":      order,
	})
}
