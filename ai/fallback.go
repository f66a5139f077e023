package ai

var fallbackTheme = Theme{
	Primary:   "#B45309",
	Secondary: "#FEF3C7",
	Accent:    "#DC2626",
}

// FallbackPortalContent is the static substitute used when the upstream
// call fails or its output cannot be parsed. Deterministic: same three
// sample items every time.
func FallbackPortalContent(restaurantName string) *PortalContent {
	return &PortalContent{
		Description: restaurantName + " serves honest, made-to-order food in a warm, casual setting.",
		Theme:       fallbackTheme,
		MenuItems: []GeneratedMenuItem{
			{
				Name:        "House Burger",
				Description: "Char-grilled beef patty, cheddar, pickles and house sauce on a brioche bun.",
				Price:       8.99,
				Category:    "main",
				Tags:        []string{"popular"},
			},
			{
				Name:        "Caesar Salad",
				Description: "Crisp romaine, parmesan, croutons and creamy caesar dressing.",
				Price:       7.49,
				Category:    "appetizer",
				Tags:        []string{"vegetarian"},
			},
			{
				Name:        "Fresh Lemonade",
				Description: "Squeezed to order with a hint of mint.",
				Price:       3.50,
				Category:    "drink",
				Tags:        []string{},
			},
		},
	}
}

// FallbackChatReply is returned when the assistant backend is unavailable.
const FallbackChatReply = "Sorry, I'm having trouble answering right now. Please try again in a moment, or ask our staff directly."
