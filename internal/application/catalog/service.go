// Package catalog provides read access to the marketplace product catalog.
// Reads degrade to empty results on network failure; the storefront renders
// a placeholder state instead of an error page.
package catalog

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/foodcheq/storefront/internal/infrastructure/api"
)

// Product is a catalog entry as served by the marketplace API
type Product struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	PriceUSDCents int64  `json:"priceUsdCents"`
	ImageURL      string `json:"imageUrl"`
	Category      string `json:"category"`
	VendorID      string `json:"vendorId"`
	InStock       bool   `json:"inStock"`
}

// Service reads the product catalog
type Service struct {
	client *api.Client
	logger *zap.Logger
}

// NewService creates a catalog service
func NewService(client *api.Client, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger}
}

type listResponse struct {
	Products []Product `json:"products"`
}

type detailResponse struct {
	Product *Product `json:"product"`
}

// List returns the product catalog. Network failure yields an empty list.
func (s *Service) List(ctx context.Context) []Product {
	var resp listResponse
	if err := s.client.Get(ctx, "/products", api.AuthNone, &resp); err != nil {
		s.logger.Warn("failed to load products", zap.Error(err))
		return nil
	}
	return resp.Products
}

// Get returns one product by id or slug
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	var resp detailResponse
	if err := s.client.Get(ctx, "/products/"+url.PathEscape(id), api.AuthNone, &resp); err != nil {
		return nil, err
	}
	return resp.Product, nil
}
