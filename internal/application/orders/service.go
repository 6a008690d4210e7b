// Package orders provides read access to the shopper's order history and
// shipment tracking.
package orders

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/foodcheq/storefront/internal/domain/shared"
	"github.com/foodcheq/storefront/internal/infrastructure/api"
)

// Item is one line of a placed order as served by the marketplace API
type Item struct {
	ProductID     string `json:"productId"`
	Name          string `json:"name"`
	PriceUSDCents int64  `json:"priceUsdCents"`
	Quantity      int64  `json:"quantity"`
}

// Order is a placed order as served by the marketplace API
type Order struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PaymentMethod string `json:"paymentMethod"`
	ShippingType  string `json:"shippingType"`
	TotalUSDCents int64  `json:"totalUsdCents"`
	TrackingCode  string `json:"trackingCode"`
	CreatedAt     string `json:"createdAt"`
	Items         []Item `json:"items"`
}

// Shipment is the tracking view of an order or a standalone pickup request
type Shipment struct {
	TrackingCode    string `json:"trackingCode"`
	Status          string `json:"status"`
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation"`
	PickupDate      string `json:"pickupDate"`
	UpdatedAt       string `json:"updatedAt"`
}

// Service reads orders and shipment tracking state
type Service struct {
	client *api.Client
	logger *zap.Logger
}

// NewService creates an orders service
func NewService(client *api.Client, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger}
}

type listResponse struct {
	Orders []Order `json:"orders"`
}

type detailResponse struct {
	Order *Order `json:"order"`
}

type shipmentResponse struct {
	Shipment *Shipment `json:"shipment"`
}

type requestResponse struct {
	Request *Shipment `json:"request"`
}

// List returns the signed-in shopper's orders, newest first
func (s *Service) List(ctx context.Context) ([]Order, error) {
	var resp listResponse
	if err := s.client.Get(ctx, "/orders", api.AuthAuto, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// Get returns one order by id
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	var resp detailResponse
	if err := s.client.Get(ctx, "/orders/"+url.PathEscape(id), api.AuthAuto, &resp); err != nil {
		return nil, err
	}
	if resp.Order == nil {
		return nil, shared.ErrNotFound
	}
	return resp.Order, nil
}

// Track resolves a tracking code. Order shipments are tried first; codes
// issued for standalone pickup requests live under a separate endpoint, so a
// not-found answer falls through to that before giving up.
func (s *Service) Track(ctx context.Context, code string) (*Shipment, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Please enter a tracking code")
	}

	var resp shipmentResponse
	err := s.client.Get(ctx, "/logistics/track/"+url.PathEscape(code), api.AuthNone, &resp)
	if err == nil && resp.Shipment != nil {
		return resp.Shipment, nil
	}
	if err != nil && !api.IsStatus(err, 404) {
		return nil, err
	}

	s.logger.Debug("tracking code not found on shipments, trying pickup requests",
		zap.String("code", code))

	var reqResp requestResponse
	if err := s.client.Get(ctx, "/logistics/requests/"+url.PathEscape(code), api.AuthNone, &reqResp); err != nil {
		return nil, err
	}
	if reqResp.Request == nil {
		return nil, shared.ErrNotFound
	}
	return reqResp.Request, nil
}
