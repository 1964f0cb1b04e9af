package research

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchResultsHTML = `
<html><body>
<ul>
  <li class="s-item">
    <a class="s-item__link" href="https://example.com/shop"></a>
    <div class="s-item__title">Shop on eBay</div>
    <span class="s-item__price">$20.00</span>
  </li>
  <li class="s-item">
    <a class="s-item__link" href="https://example.com/listing/1"></a>
    <div class="s-item__title">Levi's 501 Jeans 32x32 Dark Wash</div>
    <span class="s-item__price">$45.00</span>
    <span class="s-item__shipping">+$8.50 shipping</span>
    <span class="s-item__ended-date">Sold Apr 12</span>
  </li>
  <li class="s-item">
    <a class="s-item__link" href="https://example.com/listing/2"></a>
    <div class="s-item__title">Levi's 501 Jeans Vintage</div>
    <span class="s-item__price">$30.00 to $40.00</span>
    <span class="s-item__shipping">Free shipping</span>
  </li>
  <li class="s-item">
    <div class="s-item__title">Listing With No Price</div>
    <span class="s-item__price"></span>
  </li>
  <li class="s-item">
    <div class="s-item__title">Big Ticket</div>
    <span class="s-item__price">$1,200.00</span>
  </li>
</ul>
</body></html>`

func TestParseSearchResults(t *testing.T) {
	comps, err := ParseSearchResults(strings.NewReader(searchResultsHTML))
	require.NoError(t, err)
	require.Len(t, comps, 3)

	first := comps[0]
	assert.Equal(t, "Levi's 501 Jeans 32x32 Dark Wash", first.Title)
	assert.Equal(t, 45.00, first.Price)
	assert.Equal(t, 8.50, first.ShippingCost)
	assert.Equal(t, 53.50, first.TotalPrice)
	assert.Equal(t, "sold", first.ListingStatus)
	assert.Equal(t, "https://example.com/listing/1", first.ListingURL)

	second := comps[1]
	assert.Equal(t, 30.00, second.Price, "price ranges take the lower bound")
	assert.Equal(t, 0.0, second.ShippingCost)
	assert.Equal(t, "active", second.ListingStatus)

	third := comps[2]
	assert.Equal(t, 1200.00, third.Price, "thousands separators are handled")
}

func TestParseSearchResultsEmptyPage(t *testing.T) {
	comps, err := ParseSearchResults(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, comps)
}

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"Plain amount", "$45.00", 45.00, true},
		{"Range takes first bound", "$30.00 to $40.00", 30.00, true},
		{"Shipping prefix", "+$12.99 shipping", 12.99, true},
		{"Free shipping", "Free shipping", 0, true},
		{"Thousands separator", "$1,234.56", 1234.56, true},
		{"Empty", "", 0, false},
		{"No dollar amount", "Best Offer", 0, false},
		{"Zero amount", "$0.00", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := parsePrice(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, v)
		})
	}
}
