package domain

import (
	"strconv"
	"strings"
)

// Money is a decimal amount as returned by the Storefront API.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// Cents converts the decimal amount to minor units. Malformed amounts yield 0.
func (m Money) Cents() int64 {
	whole, frac, _ := strings.Cut(strings.TrimSpace(m.Amount), ".")
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0
	}
	frac = (frac + "00")[:2]
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0
	}
	if w < 0 || strings.HasPrefix(whole, "-") {
		return w*100 - f
	}
	return w*100 + f
}

// Image is a product or variant image.
type Image struct {
	ID      string `json:"id,omitempty"`
	URL     string `json:"url"`
	AltText string `json:"alt_text,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// SelectedOption is one name/value pair picked on a variant.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant is a purchasable configuration of a product.
type Variant struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	SKU              string           `json:"sku,omitempty"`
	AvailableForSale bool             `json:"available_for_sale"`
	Price            Money            `json:"price"`
	CompareAtPrice   *Money           `json:"compare_at_price,omitempty"`
	SelectedOptions  []SelectedOption `json:"selected_options,omitempty"`
	Image            *Image           `json:"image,omitempty"`
}

// OnSale reports whether the variant has a compare-at price above its price.
func (v *Variant) OnSale() bool {
	return v.CompareAtPrice != nil && v.CompareAtPrice.Cents() > v.Price.Cents()
}

// PriceRange is the min/max variant price of a product.
type PriceRange struct {
	Min Money `json:"min"`
	Max Money `json:"max"`
}

// Product represents a catalog product.
type Product struct {
	ID              string     `json:"id"`
	Handle          string     `json:"handle"`
	Title           string     `json:"title"`
	Vendor          string     `json:"vendor,omitempty"`
	Tags            []string   `json:"tags"`
	Description     string     `json:"description,omitempty"`
	DescriptionHTML string     `json:"description_html,omitempty"`
	FeaturedImage   *Image     `json:"featured_image,omitempty"`
	PriceRange      PriceRange `json:"price_range"`
	SelectedVariant *Variant   `json:"selected_variant,omitempty"`
}

// HasTag reports whether the product carries tag, ignoring case.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Collection is a named group of products used as a catalog filter.
type Collection struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

// PageInfo is the cursor block of a GraphQL connection.
type PageInfo struct {
	HasPreviousPage bool   `json:"has_previous_page"`
	HasNextPage     bool   `json:"has_next_page"`
	StartCursor     string `json:"start_cursor,omitempty"`
	EndCursor       string `json:"end_cursor,omitempty"`
}

// ProductPage is one page of a filtered product listing.
type ProductPage struct {
	Products            []Product    `json:"products"`
	PageInfo            PageInfo     `json:"page_info"`
	Collections         []Collection `json:"collections"`
	SelectedCollections []string     `json:"selected_collections"`
	SelectedTags        []string     `json:"selected_tags"`
}
