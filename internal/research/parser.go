package research

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"thriftbot-go/internal/models"
)

// ParseSearchResults extracts comparable listings from a marketplace
// search-results page. Rows without a usable price, and the "Shop on eBay"
// placeholder card the results page always starts with, are skipped.
func ParseSearchResults(r io.Reader) ([]models.MarketComparable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse search results: %w", err)
	}

	var comps []models.MarketComparable
	doc.Find(".s-item").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find(".s-item__title").First().Text())
		if title == "" || strings.EqualFold(title, "Shop on eBay") {
			return
		}

		price, ok := parsePrice(s.Find(".s-item__price").First().Text())
		if !ok {
			return
		}

		shipping, _ := parsePrice(s.Find(".s-item__shipping").First().Text())
		url, _ := s.Find(".s-item__link").First().Attr("href")

		status := "active"
		if s.Find(".s-item__ended-date, .POSITIVE").Length() > 0 {
			status = "sold"
		}

		comps = append(comps, models.MarketComparable{
			Title:         title,
			Price:         price,
			ShippingCost:  shipping,
			TotalPrice:    price + shipping,
			Platform:      "ebay",
			ListingURL:    url,
			ListingStatus: status,
		})
	})

	return comps, nil
}

// parsePrice pulls a dollar amount out of strings like "$45.00",
// "$30.00 to $40.00" (first bound wins) or "+$12.99 shipping". Free-shipping
// labels come back as 0.
func parsePrice(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	if strings.Contains(strings.ToLower(text), "free") {
		return 0, true
	}

	start := strings.IndexByte(text, '$')
	if start < 0 {
		return 0, false
	}
	text = text[start+1:]

	end := 0
	for end < len(text) && (text[end] >= '0' && text[end] <= '9' || text[end] == '.' || text[end] == ',') {
		end++
	}
	raw := strings.ReplaceAll(text[:end], ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
