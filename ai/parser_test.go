package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/menuport/portal-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	m.Run()
}

func TestExtractJSONFromFencedOutput(t *testing.T) {
	raw := "Here is your content:\n```json\n{\"description\": \"A cozy diner.\"}\n```\nEnjoy!"
	span, err := ExtractJSON(raw)
	assert.NoError(t, err)
	assert.Equal(t, `{"description": "A cozy diner."}`, span)
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := ExtractJSON("I could not generate anything useful.")
	assert.Error(t, err)
}

func TestParsePortalContent(t *testing.T) {
	raw := `{
		"description": "Wood-fired pizza in the heart of town.",
		"theme": {"primary": "#112233", "secondary": "#445566", "accent": "#778899"},
		"menu_items": [
			{"name": "Margherita", "description": "Tomato, mozzarella, basil.", "price": 11.50, "category": "main", "tags": ["vegetarian"]},
			{"name": "", "price": 5.00},
			{"name": "Free Water", "price": 0}
		]
	}`

	content, err := ParsePortalContent(raw)
	assert.NoError(t, err)
	assert.Equal(t, "Wood-fired pizza in the heart of town.", content.Description)
	assert.Equal(t, "#112233", content.Theme.Primary)
	// Nameless and zero-priced items are dropped.
	assert.Len(t, content.MenuItems, 1)
	assert.Equal(t, "Margherita", content.MenuItems[0].Name)
}

func TestParsePortalContentDefaults(t *testing.T) {
	raw := `{"menu_items": [{"name": "Stew", "price": 9.00}]}`

	content, err := ParsePortalContent(raw)
	assert.NoError(t, err)
	assert.NotEmpty(t, content.Description)
	assert.NotEmpty(t, content.Theme.Primary)
	assert.NotEmpty(t, content.Theme.Secondary)
	assert.NotEmpty(t, content.Theme.Accent)
	assert.Equal(t, "main", content.MenuItems[0].Category)
}

func TestParsePortalContentNoUsableItems(t *testing.T) {
	_, err := ParsePortalContent(`{"description": "Nice place.", "menu_items": []}`)
	assert.Error(t, err)

	_, err = ParsePortalContent(`not json at all`)
	assert.Error(t, err)
}

type stubClient struct {
	output string
	err    error
}

func (s *stubClient) Generate(ctx context.Context, prompt string) (string, error) {
	return s.output, s.err
}

func TestGeneratePortalContentFallsBackOnError(t *testing.T) {
	client := &stubClient{err: errors.New("upstream timeout")}

	content := GeneratePortalContent(context.Background(), client, "Testaurant", "")
	fallback := FallbackPortalContent("Testaurant")
	assert.Equal(t, fallback, content)
	assert.Len(t, content.MenuItems, 3)
}

func TestGeneratePortalContentFallsBackOnGarbage(t *testing.T) {
	client := &stubClient{output: "sorry, I can only answer questions about cooking"}

	content := GeneratePortalContent(context.Background(), client, "Testaurant", "")
	assert.Equal(t, FallbackPortalContent("Testaurant"), content)
}

func TestFallbackIsDeterministic(t *testing.T) {
	a := FallbackPortalContent("Cafe A")
	b := FallbackPortalContent("Cafe A")
	assert.Equal(t, a, b)
	assert.Equal(t, "House Burger", a.MenuItems[0].Name)
	assert.Equal(t, 8.99, a.MenuItems[0].Price)
}

func TestBuildPortalContentPrompt(t *testing.T) {
	prompt := BuildPortalContentPrompt("Luigi's", "https://luigis.example")
	assert.Contains(t, prompt, "Luigi's")
	assert.Contains(t, prompt, "https://luigis.example")
	assert.Contains(t, prompt, "menu_items")
}
