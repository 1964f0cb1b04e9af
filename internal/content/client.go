package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"thriftbot-go/internal/config"
	"thriftbot-go/internal/models"
)

// Source tags on a Result distinguish real generated copy from the
// deterministic fallback.
const (
	SourceGenerated = "generated"
	SourceTemplate  = "template"
)

// Result is listing copy for one item. Source is always set; an unavailable
// or failing text service degrades to SourceTemplate, never to an error the
// caller has to catch.
type Result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// Generator produces listing copy for an inventory item.
type Generator interface {
	Available() bool
	Listing(ctx context.Context, item models.InventoryItem) Result
}

// Client talks to an OpenAI-style completions endpoint.
type Client struct {
	client  *resty.Client
	cfg     *config.Content
	logger  *zap.Logger
	limiter *rate.Limiter
}

var _ Generator = (*Client)(nil)

// NewClient creates the generative-content client.
func NewClient(cfg *config.Content, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(30 * time.Second)

	return &Client{
		client:  client,
		cfg:     cfg,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst),
	}
}

// Available reports whether the text service is configured at all.
func (c *Client) Available() bool {
	return c.cfg.APIKey != ""
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Listing returns listing copy for the item. Any failure along the way is
// logged and answered with the template fallback.
func (c *Client) Listing(ctx context.Context, item models.InventoryItem) Result {
	if !c.Available() {
		return TemplateListing(item)
	}

	generated, err := c.generate(ctx, item)
	if err != nil {
		c.logger.Warn("Text service unavailable, using template copy",
			zap.String("sku", item.SKU), zap.Error(err))
		return TemplateListing(item)
	}
	return generated
}

func (c *Client) generate(ctx context.Context, item models.InventoryItem) (Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	prompt := fmt.Sprintf(
		"Write an eBay listing for: %s %s, category %s, condition %s. "+
			"Reply with the title on the first line and the description after a blank line.",
		item.Brand, item.Name, item.Category, item.Condition)

	var response chatResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.cfg.APIKey).
		SetBody(chatRequest{
			Model: c.cfg.Model,
			Messages: []chatMessage{
				{Role: "system", Content: "You write concise, keyword-rich resale listings."},
				{Role: "user", Content: prompt},
			},
		}).
		SetResult(&response).
		Post("/chat/completions")
	if err != nil {
		return Result{}, fmt.Errorf("completion request failed: %w", err)
	}
	if resp.IsError() {
		return Result{}, fmt.Errorf("completion request failed with status %s", resp.Status())
	}
	if len(response.Choices) == 0 {
		return Result{}, fmt.Errorf("completion response had no choices")
	}

	title, description, ok := splitCopy(response.Choices[0].Message.Content)
	if !ok {
		return Result{}, fmt.Errorf("completion response was not title plus description")
	}
	return Result{Title: title, Description: description, Source: SourceGenerated}, nil
}

// splitCopy separates the first line from the rest of the reply.
func splitCopy(text string) (title, description string, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(text), "\n", 2)
	if len(parts) == 0 || strings.TrimSpace(parts[0]) == "" {
		return "", "", false
	}
	title = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		description = strings.TrimSpace(parts[1])
	}
	if description == "" {
		description = title
	}
	return title, description, true
}

// TemplateListing is the deterministic fallback: serviceable copy built from
// the item fields alone.
func TemplateListing(item models.InventoryItem) Result {
	fields := make([]string, 0, 4)
	for _, f := range []string{item.Brand, item.Name, item.Size, item.Color} {
		if strings.TrimSpace(f) != "" {
			fields = append(fields, strings.TrimSpace(f))
		}
	}
	title := strings.Join(fields, " ")
	if item.Condition != "" {
		title = fmt.Sprintf("%s - %s Condition", title, item.Condition)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s for sale.\n\n", item.Brand, item.Name)
	if item.Size != "" {
		fmt.Fprintf(&b, "Size: %s\n", item.Size)
	}
	if item.Color != "" {
		fmt.Fprintf(&b, "Color: %s\n", item.Color)
	}
	fmt.Fprintf(&b, "Condition: %s\n\n", item.Condition)
	b.WriteString("Fast shipping, ships within 1 business day. Check the photos for details.")

	return Result{
		Title:       title,
		Description: b.String(),
		Source:      SourceTemplate,
	}
}
