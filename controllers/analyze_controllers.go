package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menuport/portal-app/ai"
	"github.com/menuport/portal-app/utils"
)

type AnalyzeController struct {
	AI ai.Client
}

func NewAnalyzeController(client ai.Client) *AnalyzeController {
	return &AnalyzeController{AI: client}
}

// AnalyzeRestaurant previews the AI-generated storefront content for a
// restaurant without creating anything. Owners use it to iterate on
// name/website input before committing to a portal.
func (ac *AnalyzeController) AnalyzeRestaurant(c *gin.Context) {
	type request struct {
		Name       string `json:"name" binding:"required"`
		WebsiteURL string `json:"website_url"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	content := ai.GeneratePortalContent(c.Request.Context(), ac.AI, req.Name, req.WebsiteURL)
	utils.RespondJSON(c, http.StatusOK, "Restaurant analysis", content)
}
