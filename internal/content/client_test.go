package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"thriftbot-go/internal/config"
	"thriftbot-go/internal/models"
)

func TestTemplateListing(t *testing.T) {
	item := models.InventoryItem{
		SKU:       "TB-CLO-1",
		Brand:     "Patagonia",
		Name:      "Fleece Jacket",
		Size:      "M",
		Color:     "Navy",
		Condition: "Good",
	}

	result := TemplateListing(item)
	assert.Equal(t, SourceTemplate, result.Source)
	assert.Equal(t, "Patagonia Fleece Jacket M Navy - Good Condition", result.Title)
	assert.Contains(t, result.Description, "Size: M")
	assert.Contains(t, result.Description, "Condition: Good")

	// Deterministic: same item, same copy.
	assert.Equal(t, result, TemplateListing(item))
}

func TestListingFallsBackWithoutAPIKey(t *testing.T) {
	client := NewClient(&config.Content{RateLimit: 1, RateLimitBurst: 1}, zap.NewNop())
	assert.False(t, client.Available())

	item := models.InventoryItem{Brand: "Sony", Name: "Walkman", Condition: "Fair"}
	result := client.Listing(context.Background(), item)
	assert.Equal(t, SourceTemplate, result.Source)
	assert.NotEmpty(t, result.Title)
}

func TestSplitCopy(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expectedTitle string
		expectedDesc  string
		expectOK      bool
	}{
		{
			name:          "Title and description",
			input:         "Vintage Sony Walkman\n\nWorks great, tested.",
			expectedTitle: "Vintage Sony Walkman",
			expectedDesc:  "Works great, tested.",
			expectOK:      true,
		},
		{
			name:          "Title only reuses itself as description",
			input:         "Vintage Sony Walkman",
			expectedTitle: "Vintage Sony Walkman",
			expectedDesc:  "Vintage Sony Walkman",
			expectOK:      true,
		},
		{
			name:     "Blank reply rejected",
			input:    "   \n ",
			expectOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			title, desc, ok := splitCopy(tc.input)
			assert.Equal(t, tc.expectOK, ok)
			if tc.expectOK {
				assert.Equal(t, tc.expectedTitle, title)
				assert.Equal(t, tc.expectedDesc, desc)
			}
		})
	}
}
