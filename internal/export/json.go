package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"thriftbot-go/internal/models"
)

type jsonEnvelope struct {
	Metadata jsonMetadata           `json:"export_metadata"`
	Items    []models.InventoryItem `json:"items"`
}

type jsonMetadata struct {
	CreatedAt  time.Time `json:"created_at"`
	TotalItems int       `json:"total_items"`
}

// WriteJSON renders inventory records as JSON with an export envelope.
func WriteJSON(w io.Writer, items []models.InventoryItem) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err := enc.Encode(jsonEnvelope{
		Metadata: jsonMetadata{CreatedAt: time.Now().UTC(), TotalItems: len(items)},
		Items:    items,
	})
	if err != nil {
		return fmt.Errorf("could not encode JSON export: %w", err)
	}
	return nil
}
