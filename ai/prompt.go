package ai

import (
	"fmt"
	"strings"

	"github.com/menuport/portal-app/models"
)

// BuildPortalContentPrompt asks the model for storefront content as
// strict JSON: a description, a 3-color theme and a categorized menu.
func BuildPortalContentPrompt(restaurantName, websiteURL string) string {
	var b strings.Builder

	b.WriteString(`You are a data generation engine for a restaurant storefront.

Your task:
- Generate storefront content for the restaurant described below.
- Output MUST be valid JSON.
- Output MUST start with { and end with }.
- Output MUST contain ONLY JSON.
- NO explanations.
- NO markdown.
- NO extra text.

Required JSON schema:
{
  "description": "string, 2-3 sentences",
  "theme": {
    "primary": "#hex",
    "secondary": "#hex",
    "accent": "#hex"
  },
  "menu_items": [
    {
      "name": "string",
      "description": "string",
      "price": number,
      "category": "appetizer | main | drink | dessert",
      "tags": ["string"]
    }
  ]
}

Restaurant name: `)
	b.WriteString(restaurantName)
	if websiteURL != "" {
		b.WriteString("\nWebsite: ")
		b.WriteString(websiteURL)
	}
	return b.String()
}

// BuildChatPrompt formats the assistant context: portal description plus
// the current menu, followed by the conversation so far.
func BuildChatPrompt(portal models.Portal, items []models.MenuItem, messages []ChatTurn) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are the ordering assistant for the restaurant %q.\n", portal.Name)
	if portal.Description != "" {
		fmt.Fprintf(&b, "About the restaurant: %s\n", portal.Description)
	}

	b.WriteString("\nCurrent menu:\n")
	for _, item := range items {
		if !item.Available {
			continue
		}
		fmt.Fprintf(&b, "- %s (%s): %.2f %s", item.Name, item.Category, item.Price, portal.Currency)
		if item.Description != "" {
			fmt.Fprintf(&b, " - %s", item.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString(`
Answer the customer's questions about the menu, suggest dishes, and help
them decide. Keep replies short. Never invent menu items that are not
listed above.

Conversation:
`)
	for _, m := range messages {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	b.WriteString("assistant:")
	return b.String()
}

// ChatTurn is one message of an assistant conversation.
type ChatTurn struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}
