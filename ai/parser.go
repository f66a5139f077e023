package ai

import (
	"encoding/json"
	"errors"
	"regexp"
)

// PortalContent is the parsed shape of a storefront generation response.
type PortalContent struct {
	Description string              `json:"description"`
	Theme       Theme               `json:"theme"`
	MenuItems   []GeneratedMenuItem `json:"menu_items"`
}

type Theme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
}

type GeneratedMenuItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

var jsonSpan = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSON pulls the first {...} span out of a raw model response.
// Models wrap JSON in markdown fences or prose often enough that this
// is cheaper than re-prompting.
func ExtractJSON(raw string) (string, error) {
	span := jsonSpan.FindString(raw)
	if span == "" {
		return "", errors.New("no JSON object in model output")
	}
	return span, nil
}

// ParsePortalContent extracts and decodes a generation response. Missing
// fields get defaults rather than failing; a response with no usable menu
// items is treated as a parse failure so the caller falls back.
func ParsePortalContent(raw string) (*PortalContent, error) {
	span, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var content PortalContent
	if err := json.Unmarshal([]byte(span), &content); err != nil {
		return nil, errors.New("invalid JSON in model output")
	}

	if content.Description == "" {
		content.Description = "A neighborhood restaurant serving fresh, seasonal dishes."
	}
	if content.Theme.Primary == "" {
		content.Theme.Primary = fallbackTheme.Primary
	}
	if content.Theme.Secondary == "" {
		content.Theme.Secondary = fallbackTheme.Secondary
	}
	if content.Theme.Accent == "" {
		content.Theme.Accent = fallbackTheme.Accent
	}

	items := content.MenuItems[:0]
	for _, item := range content.MenuItems {
		if item.Name == "" || item.Price <= 0 {
			continue
		}
		if item.Category == "" {
			item.Category = "main"
		}
		items = append(items, item)
	}
	content.MenuItems = items

	if len(content.MenuItems) == 0 {
		return nil, errors.New("model output contained no usable menu items")
	}

	return &content, nil
}
