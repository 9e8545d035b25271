package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/pagination"
)

// collectionsPageSize is how many collections a listing offers as filters.
const collectionsPageSize = 100

// ProductsByIDs fetches the products with the given global ids. Ids that no
// longer resolve to a product are skipped; the order of ids is kept.
func (c *Client) ProductsByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	var data struct {
		Nodes []json.RawMessage `json:"nodes"`
	}
	if err := c.query(ctx, "ProductsByIDs", productsByIDsQuery, map[string]any{"ids": ids}, &data); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(data.Nodes))
	for _, raw := range data.Nodes {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		var p gqlProduct
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, apperrors.Upstream(fmt.Sprintf("decode product node: %v", err))
		}
		// non-product nodes decode to an empty object
		if p.ID == "" {
			continue
		}
		products = append(products, p.toDomain())
	}
	return products, nil
}

// ListProducts returns one page of products matching filter, with every
// collection available as a filter.
func (c *Client) ListProducts(ctx context.Context, filter Filter, page pagination.Params) (*domain.ProductPage, error) {
	vars := page.Variables()
	if page.First == 0 && page.Last == 0 {
		vars["first"] = pagination.DefaultPageBy
	}
	vars["firstCollections"] = collectionsPageSize
	if q := BuildProductQuery(filter.Tags, filter.Collections); q != "" {
		vars["query"] = q
	}

	var data struct {
		Products struct {
			Nodes    []gqlProduct `json:"nodes"`
			PageInfo gqlPageInfo  `json:"pageInfo"`
		} `json:"products"`
		Collections struct {
			Nodes []gqlCollection `json:"nodes"`
		} `json:"collections"`
	}
	if err := c.query(ctx, "CatalogAndCollections", catalogQuery, vars, &data); err != nil {
		return nil, err
	}

	out := &domain.ProductPage{
		Products:     make([]domain.Product, 0, len(data.Products.Nodes)),
		PageInfo:     data.Products.PageInfo.toDomain(),
		Collections:  make([]domain.Collection, 0, len(data.Collections.Nodes)),
		SelectedTags: nonNil(filter.Tags),
	}
	for i := range data.Products.Nodes {
		out.Products = append(out.Products, data.Products.Nodes[i].toDomain())
	}
	for _, col := range data.Collections.Nodes {
		out.Collections = append(out.Collections, domain.Collection{ID: col.ID, Handle: col.Handle, Title: col.Title})
	}

	out.SelectedCollections = nonNil(filter.Collections)
	if len(filter.Collections) == 0 {
		for _, col := range out.Collections {
			out.SelectedCollections = append(out.SelectedCollections, col.Handle)
		}
	}
	return out, nil
}

// ProductByHandle fetches one product with the variant matching
// selectedOptions, or the first available one.
func (c *Client) ProductByHandle(ctx context.Context, handle string, selectedOptions []domain.SelectedOption) (*domain.Product, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, apperrors.InvalidInput("product handle is required")
	}

	opts := make([]map[string]string, 0, len(selectedOptions))
	for _, o := range selectedOptions {
		opts = append(opts, map[string]string{"name": o.Name, "value": o.Value})
	}

	var data struct {
		Product *gqlProduct `json:"product"`
	}
	vars := map[string]any{"handle": handle, "selectedOptions": opts}
	if err := c.query(ctx, "Product", productByHandleQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Product == nil || data.Product.ID == "" {
		return nil, apperrors.NotFound("product", handle)
	}

	p := data.Product.toDomain()
	return &p, nil
}

// AllProductHandles walks the whole catalog and returns every handle in
// catalog order.
func (c *Client) AllProductHandles(ctx context.Context) ([]string, error) {
	handles := []string{}
	var after *string

	for {
		vars := map[string]any{"first": pagination.MaxPageBy}
		if after != nil {
			vars["after"] = *after
		}

		var data struct {
			Products struct {
				Edges []struct {
					Node struct {
						Handle string `json:"handle"`
					} `json:"node"`
				} `json:"edges"`
				PageInfo gqlPageInfo `json:"pageInfo"`
			} `json:"products"`
		}
		if err := c.query(ctx, "GetAllProductHandles", allHandlesQuery, vars, &data); err != nil {
			return nil, err
		}

		for _, e := range data.Products.Edges {
			handles = append(handles, e.Node.Handle)
		}

		info := data.Products.PageInfo
		if !info.HasNextPage {
			return handles, nil
		}
		if info.EndCursor == nil || (after != nil && *info.EndCursor == *after) {
			c.logger.WarnContext(ctx, "handle pagination stalled",
				slog.Int("handles", len(handles)),
			)
			return handles, nil
		}
		after = info.EndCursor
	}
}

// Contact returns the shop's contact metaobject, or nil when the shop has
// none. Blank fields read "Not available".
func (c *Client) Contact(ctx context.Context) (*domain.ContactInfo, error) {
	var data struct {
		Metaobjects struct {
			Nodes []gqlContactNode `json:"nodes"`
		} `json:"metaobjects"`
	}
	if err := c.query(ctx, "Contact", contactQuery, nil, &data); err != nil {
		return nil, err
	}
	if len(data.Metaobjects.Nodes) == 0 {
		return nil, nil
	}

	n := data.Metaobjects.Nodes[0]
	info := domain.NewContactInfo(n.StreetAdress.value(), n.PhoneNumber.value(), n.EMail.value())
	return &info, nil
}

// FAQs returns the shop's FAQ metaobjects.
func (c *Client) FAQs(ctx context.Context) ([]domain.FAQ, error) {
	var data struct {
		Metaobjects struct {
			Nodes []gqlFAQNode `json:"nodes"`
		} `json:"metaobjects"`
	}
	if err := c.query(ctx, "GetFAQs", faqQuery, nil, &data); err != nil {
		return nil, err
	}

	faqs := make([]domain.FAQ, 0, len(data.Metaobjects.Nodes))
	for _, n := range data.Metaobjects.Nodes {
		faqs = append(faqs, domain.FAQ{ID: n.ID, Question: n.field("question"), Answer: n.field("answer")})
	}
	return faqs, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
