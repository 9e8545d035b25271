package catalog

import "github.com/utafrali/storefront/internal/domain"

// GraphQL wire types. They mirror the Storefront schema and are mapped to
// domain types before leaving the package.

type gqlMoney struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

func (m gqlMoney) toDomain() domain.Money {
	return domain.Money{Amount: m.Amount, CurrencyCode: m.CurrencyCode}
}

type gqlImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

func (i *gqlImage) toDomain() *domain.Image {
	if i == nil {
		return nil
	}
	return &domain.Image{ID: i.ID, URL: i.URL, AltText: i.AltText, Width: i.Width, Height: i.Height}
}

type gqlVariant struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	SKU              string    `json:"sku"`
	AvailableForSale bool      `json:"availableForSale"`
	Price            gqlMoney  `json:"price"`
	CompareAtPrice   *gqlMoney `json:"compareAtPrice"`
	Image            *gqlImage `json:"image"`
	SelectedOptions  []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"selectedOptions"`
}

func (v *gqlVariant) toDomain() *domain.Variant {
	if v == nil {
		return nil
	}
	out := &domain.Variant{
		ID:               v.ID,
		Title:            v.Title,
		SKU:              v.SKU,
		AvailableForSale: v.AvailableForSale,
		Price:            v.Price.toDomain(),
		Image:            v.Image.toDomain(),
	}
	if v.CompareAtPrice != nil {
		m := v.CompareAtPrice.toDomain()
		out.CompareAtPrice = &m
	}
	for _, o := range v.SelectedOptions {
		out.SelectedOptions = append(out.SelectedOptions, domain.SelectedOption{Name: o.Name, Value: o.Value})
	}
	return out
}

type gqlProduct struct {
	ID              string    `json:"id"`
	Handle          string    `json:"handle"`
	Title           string    `json:"title"`
	Vendor          string    `json:"vendor"`
	Tags            []string  `json:"tags"`
	Description     string    `json:"description"`
	DescriptionHTML string    `json:"descriptionHtml"`
	FeaturedImage   *gqlImage `json:"featuredImage"`
	PriceRange      struct {
		MinVariantPrice gqlMoney `json:"minVariantPrice"`
		MaxVariantPrice gqlMoney `json:"maxVariantPrice"`
	} `json:"priceRange"`
	SelectedOrFirstAvailableVariant *gqlVariant `json:"selectedOrFirstAvailableVariant"`
}

func (p *gqlProduct) toDomain() domain.Product {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Product{
		ID:              p.ID,
		Handle:          p.Handle,
		Title:           p.Title,
		Vendor:          p.Vendor,
		Tags:            tags,
		Description:     p.Description,
		DescriptionHTML: p.DescriptionHTML,
		FeaturedImage:   p.FeaturedImage.toDomain(),
		PriceRange: domain.PriceRange{
			Min: p.PriceRange.MinVariantPrice.toDomain(),
			Max: p.PriceRange.MaxVariantPrice.toDomain(),
		},
		SelectedVariant: p.SelectedOrFirstAvailableVariant.toDomain(),
	}
}

type gqlPageInfo struct {
	HasPreviousPage bool    `json:"hasPreviousPage"`
	HasNextPage     bool    `json:"hasNextPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

func (p gqlPageInfo) toDomain() domain.PageInfo {
	out := domain.PageInfo{HasPreviousPage: p.HasPreviousPage, HasNextPage: p.HasNextPage}
	if p.StartCursor != nil {
		out.StartCursor = *p.StartCursor
	}
	if p.EndCursor != nil {
		out.EndCursor = *p.EndCursor
	}
	return out
}

type gqlCollection struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

type gqlFieldValue struct {
	Value string `json:"value"`
}

type gqlContactNode struct {
	ID           string         `json:"id"`
	StreetAdress *gqlFieldValue `json:"street_adress"`
	PhoneNumber  *gqlFieldValue `json:"phone_number"`
	EMail        *gqlFieldValue `json:"e_mail"`
}

func (f *gqlFieldValue) value() string {
	if f == nil {
		return ""
	}
	return f.Value
}

type gqlFAQNode struct {
	ID     string `json:"id"`
	Fields []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"fields"`
}

func (n gqlFAQNode) field(key string) string {
	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}
