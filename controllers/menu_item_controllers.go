package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/utils"
)

type MenuItemController struct {
	DB *gorm.DB
}

func NewMenuItemController(db *gorm.DB) *MenuItemController {
	return &MenuItemController{DB: db}
}

// GetMenuItems lists a portal's menu. Public; customers browse with it.
// Optional filters: ?category=..., ?available=true.
func (mc *MenuItemController) GetMenuItems(c *gin.Context) {
	portalID, _ := strconv.Atoi(c.Param("portal_id"))

	query := mc.DB.Where("portal_id = ?", portalID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("available") == "true" {
		query = query.Where("available = ?", true)
	}

	var items []models.MenuItem
	if err := query.Order("category asc, name asc").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetMenuItemByID returns one menu item.
func (mc *MenuItemController) GetMenuItemByID(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// CreateMenuItem adds a dish to an owned portal.
func (mc *MenuItemController) CreateMenuItem(c *gin.Context) {
	portal, ok := mc.ownedPortal(c)
	if !ok {
		return
	}

	type request struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Price       float64  `json:"price" binding:"required,gt=0"`
		ImageURL    string   `json:"image_url"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
		Available   *bool    `json:"available"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		PortalID:    portal.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       utils.RoundCents(req.Price),
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Tags:        req.Tags,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem applies a partial update to a dish.
func (mc *MenuItemController) UpdateMenuItem(c *gin.Context) {
	portal, ok := mc.ownedPortal(c)
	if !ok {
		return
	}

	var item models.MenuItem
	if err := mc.DB.Where("portal_id = ?", portal.ID).First(&item, c.Param("item_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type request struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		Price       *float64  `json:"price"`
		ImageURL    *string   `json:"image_url"`
		Category    *string   `json:"category"`
		Tags        *[]string `json:"tags"`
		Available   *bool     `json:"available"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = utils.RoundCents(*req.Price)
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Tags != nil {
		item.Tags = *req.Tags
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	item.UpdatedAt = time.Now()

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem removes a dish. Historical orders keep their snapshots.
func (mc *MenuItemController) DeleteMenuItem(c *gin.Context) {
	portal, ok := mc.ownedPortal(c)
	if !ok {
		return
	}

	id, _ := strconv.Atoi(c.Param("item_id"))
	if err := mc.DB.Where("portal_id = ?", portal.ID).Delete(&models.MenuItem{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"item_id": id})
}

// ownedPortal loads the route's portal and verifies the caller owns it.
// Responds with the appropriate error itself when the check fails.
func (mc *MenuItemController) ownedPortal(c *gin.Context) (models.Portal, bool) {
	uid, err := ownerID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return models.Portal{}, false
	}

	var portal models.Portal
	if err := mc.DB.First(&portal, c.Param("portal_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return models.Portal{}, false
	}
	if portal.OwnerID != uid {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return models.Portal{}, false
	}
	return portal, true
}
