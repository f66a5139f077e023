package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/menuport/portal-app/ai"
	"github.com/menuport/portal-app/models"
	"github.com/menuport/portal-app/utils"
)

type ChatController struct {
	DB *gorm.DB
	AI ai.Client
}

func NewChatController(db *gorm.DB, client ai.Client) *ChatController {
	return &ChatController{DB: db, AI: client}
}

// Chat answers a customer's question about a portal's menu. The reply
// comes from the generative backend primed with the portal description
// and current menu; on upstream failure a canned apology is returned
// instead of an error.
func (cc *ChatController) Chat(c *gin.Context) {
	type request struct {
		PortalID  uint          `json:"portal_id" binding:"required"`
		SessionID string        `json:"session_id"`
		Messages  []ai.ChatTurn `json:"messages" binding:"required,min=1,dive"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var portal models.Portal
	if err := cc.DB.First(&portal, req.PortalID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	portal.ApplySettingDefaults()

	var items []models.MenuItem
	if err := cc.DB.Where("portal_id = ? AND available = ?", portal.ID, true).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	prompt := ai.BuildChatPrompt(portal, items, req.Messages)
	reply, err := cc.AI.Generate(c.Request.Context(), prompt)
	if err != nil {
		utils.ErrorLogger.Printf("Chat generation failed for portal %d: %v", portal.ID, err)
		reply = ai.FallbackChatReply
	}

	// Persist the last customer turn and the reply for staff review.
	last := req.Messages[len(req.Messages)-1]
	cc.DB.Create(&models.ChatMessage{
		PortalID:  portal.ID,
		SessionID: sessionID,
		Role:      models.ChatRoleUser,
		Content:   last.Content,
	})
	cc.DB.Create(&models.ChatMessage{
		PortalID:  portal.ID,
		SessionID: sessionID,
		Role:      models.ChatRoleAssistant,
		Content:   reply,
	})

	utils.RespondJSON(c, http.StatusOK, "Assistant reply", gin.H{
		"session_id": sessionID,
		"reply":      reply,
	})
}

// GetTranscripts lists a portal's assistant conversations for its owner.
func (cc *ChatController) GetTranscripts(c *gin.Context) {
	uid, err := ownerID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var portal models.Portal
	if err := cc.DB.First(&portal, c.Param("portal_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if portal.OwnerID != uid {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var messages []models.ChatMessage
	if err := cc.DB.Where("portal_id = ?", portal.ID).
		Order("created_at asc").Find(&messages).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Chat transcripts", messages)
}
