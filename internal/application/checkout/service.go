// Package checkout turns the local cart into a marketplace order and hands
// off to a payment provider. The cart is cleared only after the order has
// been accepted, never before.
package checkout

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	cartapp "github.com/foodcheq/storefront/internal/application/cart"
	"github.com/foodcheq/storefront/internal/domain/shared"
	"github.com/foodcheq/storefront/internal/infrastructure/api"
	"github.com/foodcheq/storefront/internal/infrastructure/storage"
)

// keyPendingPaypalOrder holds the order awaiting capture after the shopper
// returns from PayPal
const keyPendingPaypalOrder = "pendingPaypalOrder"

// PendingPayPalOrder is persisted across the PayPal redirect round-trip
type PendingPayPalOrder struct {
	OrderID       string `json:"orderId"`
	PayPalOrderID string `json:"paypalOrderId"`
}

// Payment methods accepted by the marketplace
const (
	PaymentPayPal   = "paypal"
	PaymentPaystack = "paystack"
)

// Shipping types accepted by the marketplace
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
)

// TokenSource reports whether any session (user or vendor) exists
type TokenSource interface {
	UserToken() string
	VendorToken() string
}

// OrderItem is one order line in the create-order payload. Only id and
// quantity travel; the server reprices every line from the live catalog.
type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// Result is a placed order with its payment handoff URL
type Result struct {
	OrderID string
	// RedirectURL is the provider page the shopper must be sent to:
	// the PayPal approval URL or the Paystack authorization URL
	RedirectURL string
	// PayPalOrderID is kept for capture after the shopper returns
	PayPalOrderID string
}

// Service drives the order-and-pay flow
type Service struct {
	carts  *cartapp.Service
	client *api.Client
	tokens TokenSource
	store  storage.Store
	logger *zap.Logger
}

// NewService creates a checkout service
func NewService(carts *cartapp.Service, client *api.Client, tokens TokenSource, store storage.Store, logger *zap.Logger) *Service {
	return &Service{carts: carts, client: client, tokens: tokens, store: store, logger: logger}
}

type orderResponse struct {
	Order struct {
		ID string `json:"id"`
	} `json:"order"`
}

type paypalInitResponse struct {
	ApprovalURL   string `json:"approvalUrl"`
	PayPalOrderID string `json:"paypalOrderId"`
}

type paystackInitResponse struct {
	AuthorizationURL string `json:"authorizationUrl"`
}

// PlaceOrder creates an order from the current cart and initialises payment.
// Preconditions mirror the storefront checks: a session must exist, the cart
// must be non-empty, and no line may carry a zero price (a zero price means a
// legacy record that failed to migrate cleanly and must be re-added).
func (s *Service) PlaceOrder(ctx context.Context, paymentMethod, shippingType string) (*Result, error) {
	if s.tokens.UserToken() == "" && s.tokens.VendorToken() == "" {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Please log in to place an order")
	}

	cart := s.carts.Get(ctx)
	if len(cart) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Your cart is empty")
	}

	items := make([]OrderItem, 0, len(cart))
	for _, line := range cart {
		if line.PriceUSDCents <= 0 {
			return nil, shared.NewDomainError("INVALID_CART_ITEM",
				"One or more items have missing prices. Please remove them and re-add from the shop")
		}
		items = append(items, OrderItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	if paymentMethod == "" {
		paymentMethod = PaymentPayPal
	}
	if shippingType == "" {
		shippingType = ShippingStandard
	}

	payload := map[string]any{
		"items":          items,
		"paymentMethod":  paymentMethod,
		"shippingType":   shippingType,
		"idempotencyKey": uuid.NewString(),
	}

	var created orderResponse
	if err := s.client.Post(ctx, "/orders", payload, api.AuthAuto, &created); err != nil {
		return nil, err
	}
	if created.Order.ID == "" {
		return nil, shared.NewDomainError("ORDER_ID_MISSING", "Order created but order id not returned")
	}

	result := &Result{OrderID: created.Order.ID}

	switch paymentMethod {
	case PaymentPaystack:
		var pay paystackInitResponse
		if err := s.client.Post(ctx, "/payments/paystack/init", map[string]string{"orderId": created.Order.ID}, api.AuthAuto, &pay); err != nil {
			return nil, err
		}
		if pay.AuthorizationURL == "" {
			return nil, shared.NewDomainError("PAYMENT_INIT_FAILED", "Payment init failed (no authorizationUrl)")
		}
		result.RedirectURL = pay.AuthorizationURL
	default:
		var pay paypalInitResponse
		if err := s.client.Post(ctx, "/payments/paypal/init", map[string]string{"orderId": created.Order.ID}, api.AuthAuto, &pay); err != nil {
			return nil, err
		}
		if pay.ApprovalURL == "" {
			return nil, shared.NewDomainError("PAYMENT_INIT_FAILED", "PayPal init failed (no approval URL)")
		}
		result.RedirectURL = pay.ApprovalURL
		result.PayPalOrderID = pay.PayPalOrderID
		if err := s.store.Set(keyPendingPaypalOrder, PendingPayPalOrder{
			OrderID:       created.Order.ID,
			PayPalOrderID: pay.PayPalOrderID,
		}); err != nil {
			s.logger.Warn("failed to persist pending paypal order", zap.Error(err))
		}
	}

	// order accepted and payment initialised: the cart's job is done
	s.carts.Clear(ctx)
	s.logger.Info("order placed",
		zap.String("order_id", result.OrderID),
		zap.String("payment_method", paymentMethod),
	)
	return result, nil
}
