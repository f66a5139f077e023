package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/ai"
	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/utils"
)

type PortalController struct {
	DB *gorm.DB
	AI ai.Client
}

func NewPortalController(db *gorm.DB, client ai.Client) *PortalController {
	return &PortalController{DB: db, AI: client}
}

// ownerID pulls the authenticated user's id from the context.
func ownerID(c *gin.Context) (uint, error) {
	idInterface, exists := c.Get("user_id")
	if !exists {
		return 0, errors.New("user id not found in context")
	}
	id, ok := idInterface.(uint)
	if !ok {
		return 0, errors.New("invalid user id type")
	}
	return id, nil
}

// CreatePortal creates a storefront for the authenticated owner. With
// "generate" set, the AI assistant fills in description, colors and an
// initial menu; on upstream failure the fixed sample content is used.
func (pc *PortalController) CreatePortal(c *gin.Context) {
	uid, err := ownerID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	type request struct {
		Name            string   `json:"name" binding:"required"`
		Description     string   `json:"description"`
		WebsiteURL      string   `json:"website_url"`
		Generate        bool     `json:"generate"`
		PrimaryColor    string   `json:"primary_color"`
		SecondaryColor  string   `json:"secondary_color"`
		AccentColor     string   `json:"accent_color"`
		Currency        string   `json:"currency"`
		TaxRate         *float64 `json:"tax_rate"`
		DeliveryFee     *float64 `json:"delivery_fee"`
		FreeDeliveryMin float64  `json:"free_delivery_min"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	portal := models.Portal{
		OwnerID:         uid,
		Name:            req.Name,
		Description:     req.Description,
		Status:          models.PortalStatusDraft,
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
		AccentColor:     req.AccentColor,
		Currency:        req.Currency,
		TaxRate:         req.TaxRate,
		DeliveryFee:     req.DeliveryFee,
		FreeDeliveryMin: req.FreeDeliveryMin,
	}
	portal.ApplySettingDefaults()

	var generated *ai.PortalContent
	if req.Generate {
		generated = ai.GeneratePortalContent(c.Request.Context(), pc.AI, req.Name, req.WebsiteURL)
		if portal.Description == "" {
			portal.Description = generated.Description
		}
		if portal.PrimaryColor == "" {
			portal.PrimaryColor = generated.Theme.Primary
		}
		if portal.SecondaryColor == "" {
			portal.SecondaryColor = generated.Theme.Secondary
		}
		if portal.AccentColor == "" {
			portal.AccentColor = generated.Theme.Accent
		}
	}

	if err := pc.DB.Create(&portal).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if generated != nil {
		for _, item := range generated.MenuItems {
			menuItem := models.MenuItem{
				PortalID:    portal.ID,
				Name:        item.Name,
				Description: item.Description,
				Price:       utils.RoundCents(item.Price),
				Category:    item.Category,
				Tags:        item.Tags,
				Available:   true,
			}
			if err := pc.DB.Create(&menuItem).Error; err != nil {
				utils.ErrorLogger.Printf("Error seeding generated menu item %q: %v", item.Name, err)
			}
		}
	}

	utils.InfoLogger.Printf("Portal created: %s (id=%d, owner=%d)", portal.Name, portal.ID, uid)
	utils.RespondJSON(c, http.StatusCreated, "Portal created", portal)
}

// GetMyPortals lists the authenticated owner's portals.
func (pc *PortalController) GetMyPortals(c *gin.Context) {
	uid, err := ownerID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var portals []models.Portal
	if err := pc.DB.Where("owner_id = ?", uid).Order("created_at desc").Find(&portals).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of portals", portals)
}

// GetPortal returns one portal. Public: customers load it to render the
// storefront.
func (pc *PortalController) GetPortal(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("portal_id"))

	var portal models.Portal
	if err := pc.DB.First(&portal, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Portal detail", portal)
}

// UpdatePortal applies a partial update to an owned portal.
func (pc *PortalController) UpdatePortal(c *gin.Context) {
	uid, err := ownerID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var portal models.Portal
	if err := pc.DB.First(&portal, c.Param("portal_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if portal.OwnerID != uid {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type request struct {
		Name            *string  `json:"name"`
		Description     *string  `json:"description"`
		Status          *string  `json:"status"`
		PrimaryColor    *string  `json:"primary_color"`
		SecondaryColor  *string  `json:"secondary_color"`
		AccentColor     *string  `json:"accent_color"`
		Currency        *string  `json:"currency"`
		TaxRate         *float64 `json:"tax_rate"`
		DeliveryFee     *float64 `json:"delivery_fee"`
		FreeDeliveryMin *float64 `json:"free_delivery_min"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Status != nil {
		switch *req.Status {
		case models.PortalStatusActive, models.PortalStatusInactive, models.PortalStatusDraft:
		default:
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown portal status %q", *req.Status))
			return
		}
		portal.Status = *req.Status
	}
	if req.Name != nil {
		portal.Name = *req.Name
	}
	if req.Description != nil {
		portal.Description = *req.Description
	}
	if req.PrimaryColor != nil {
		portal.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		portal.SecondaryColor = *req.SecondaryColor
	}
	if req.AccentColor != nil {
		portal.AccentColor = *req.AccentColor
	}
	if req.Currency != nil {
		portal.Currency = *req.Currency
	}
	if req.TaxRate != nil {
		portal.TaxRate = req.TaxRate
	}
	if req.DeliveryFee != nil {
		portal.DeliveryFee = req.DeliveryFee
	}
	if req.FreeDeliveryMin != nil {
		portal.FreeDeliveryMin = *req.FreeDeliveryMin
	}
	portal.UpdatedAt = time.Now()

	if err := pc.DB.Save(&portal).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Portal updated", portal)
}

// DeletePortal removes an owned portal. Menu items, orders and chat
// transcripts cascade with it.
func (pc *PortalController) DeletePortal(c *gin.Context) {
	uid, err := ownerID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var portal models.Portal
	if err := pc.DB.First(&portal, c.Param("portal_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if portal.OwnerID != uid {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	// SQLite in tests does not enforce the FK cascade, so delete
	// children explicitly.
	tx := pc.DB.Begin()
	if err := tx.Where("portal_id = ?", portal.ID).Delete(&models.MenuItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Where("portal_id = ?", portal.ID).Delete(&models.ChatMessage{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Where("order_id IN (?)",
		tx.Model(&models.Order{}).Select("id").Where("portal_id = ?", portal.ID),
	).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Where("portal_id = ?", portal.ID).Delete(&models.Order{}).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&portal).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	utils.RespondJSON(c, http.StatusOK, "Portal deleted", gin.H{"portal_id": portal.ID})
}
