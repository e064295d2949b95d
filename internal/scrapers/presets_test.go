package scrapers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreset(t *testing.T) {
	s, err := Preset("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSelectors(), s)

	s, err = Preset(" Amazon ")
	require.NoError(t, err)
	assert.Equal(t, "data-asin", s.IDAttr)

	_, err = Preset("craigslist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ebay")
}

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{"amazon", "bestbuy", "default", "ebay", "flipkart", "target", "walmart"}, PresetNames())
}

func TestPreset_EveryPresetParsesItself(t *testing.T) {
	for _, name := range PresetNames() {
		s, err := Preset(name)
		require.NoError(t, err)
		assert.NotEmpty(t, s.Item, name)
		assert.NotEmpty(t, s.Name, name)
		assert.NotEmpty(t, s.Price, name)
	}
}

func TestParseListing_EbayPreset(t *testing.T) {
	html := `<ul class="srp-results">
<li class="s-item" data-listingid="3365">
  <div class="s-item__image"><img src="https://i.ebayimg.com/a.jpg"></div>
  <a class="s-item__link" href="https://www.ebay.com/itm/3365"><div class="s-item__title">Galaxy S24 128GB</div></a>
  <span class="s-item__price">$699.99</span>
</li>
</ul>`
	s, err := Preset("ebay")
	require.NoError(t, err)

	products, err := ParseListing(strings.NewReader(html), "eBay", s, nil)

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "3365", products[0].ID)
	assert.Equal(t, "Galaxy S24 128GB", products[0].Name)
	assert.Equal(t, 699.99, products[0].Price)
	assert.Equal(t, "https://www.ebay.com/itm/3365", products[0].URL)
	assert.Equal(t, "https://i.ebayimg.com/a.jpg", products[0].Image)
}
