package ai

import (
	"context"

	"github.com/menuport/portal-app/utils"
)

// GeneratePortalContent asks the model for storefront content and parses
// the response. Any failure (network, timeout, non-JSON output) degrades
// to the fixed fallback payload; the error is logged, never surfaced.
func GeneratePortalContent(ctx context.Context, client Client, restaurantName, websiteURL string) *PortalContent {
	prompt := BuildPortalContentPrompt(restaurantName, websiteURL)

	raw, err := client.Generate(ctx, prompt)
	if err != nil {
		utils.ErrorLogger.Printf("portal content generation failed for %q: %v", restaurantName, err)
		return FallbackPortalContent(restaurantName)
	}

	content, err := ParsePortalContent(raw)
	if err != nil {
		utils.ErrorLogger.Printf("portal content parse failed for %q: %v", restaurantName, err)
		return FallbackPortalContent(restaurantName)
	}

	return content
}
