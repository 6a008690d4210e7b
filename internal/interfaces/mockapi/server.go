// Package mockapi is an in-memory stand-in for the marketplace backend. It
// serves the same routes and response shapes the storefront talks to, which
// makes it usable both as a local dev server and as a test double.
package mockapi

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/foodcheq/storefront/internal/application/catalog"
)

// Config tunes the mock backend's behavior
type Config struct {
	// Rate is the USD→NGN rate served by the fx endpoint
	Rate float64
	// FailWishlist makes every wishlist mutation return 500, for exercising
	// rollback paths
	FailWishlist bool
}

// Server is the mock marketplace backend
type Server struct {
	cfg    Config
	logger *zap.Logger

	mu        sync.Mutex
	products  []catalog.Product
	wishlists map[string][]string // token -> product ids
	orders    map[string]*orderState
	requests  map[string]*pickupState
}

type orderState struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod"`
	ShippingType  string          `json:"shippingType"`
	Items         []orderItemBody `json:"items"`
	Token         string          `json:"-"`
}

type pickupState struct {
	TrackingCode    string `json:"trackingCode"`
	Status          string `json:"status"`
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation"`
	PickupDate      string `json:"pickupDate"`
}

// New creates a mock backend seeded with a small catalog
func New(cfg Config, logger *zap.Logger) *Server {
	if cfg.Rate <= 0 {
		cfg.Rate = 1650
	}
	registerValidators()
	return &Server{
		cfg:       cfg,
		logger:    logger,
		products:  seedProducts(),
		wishlists: make(map[string][]string),
		orders:    make(map[string]*orderState),
		requests:  make(map[string]*pickupState),
	}
}

func seedProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "p-jollof-spice", Slug: "jollof-spice-mix", Name: "Jollof Spice Mix", PriceUSDCents: 899, Category: "spices", InStock: true},
		{ID: "p-palm-oil-1l", Slug: "palm-oil-1l", Name: "Palm Oil 1L", PriceUSDCents: 1250, Category: "oils", InStock: true},
		{ID: "p-egusi-500g", Slug: "egusi-500g", Name: "Ground Egusi 500g", PriceUSDCents: 1050, Category: "soup", InStock: true},
		{ID: "p-chin-chin", Slug: "chin-chin", Name: "Chin Chin Snack Pack", PriceUSDCents: 450, Category: "snacks", InStock: false},
	}
}

// Router builds the gin engine serving the mock API under /api
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/products", s.listProducts)
		api.GET("/products/:id", s.getProduct)
		api.GET("/fx/usd-ngn", s.fxRate)

		api.GET("/wishlist/ids", s.requireAuth, s.wishlistIDs)
		api.POST("/wishlist", s.requireAuth, s.wishlistAdd)
		api.DELETE("/wishlist/:id", s.requireAuth, s.wishlistRemove)

		api.POST("/orders", s.requireAuth, s.createOrder)
		api.GET("/orders", s.requireAuth, s.listOrders)
		api.GET("/orders/:id", s.requireAuth, s.getOrder)

		api.POST("/payments/paypal/init", s.requireAuth, s.paypalInit)
		api.POST("/payments/paystack/init", s.requireAuth, s.paystackInit)

		api.POST("/logistics/requests", s.createPickup)
		api.GET("/logistics/requests/:code", s.getPickup)
		api.GET("/logistics/track/:code", s.trackShipment)
	}
	return r
}

// requireAuth rejects requests without a bearer token. The mock accepts any
// non-empty token and scopes wishlist state per token.
func (s *Server) requireAuth(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	c.Set("token", token)
	c.Next()
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

func (s *Server) listProducts(c *gin.Context) {
	s.mu.Lock()
	products := append([]catalog.Product(nil), s.products...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) getProduct(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id || s.products[i].Slug == id {
			c.JSON(http.StatusOK, gin.H{"product": s.products[i]})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
}

func (s *Server) fxRate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rate": s.cfg.Rate})
}

func (s *Server) wishlistIDs(c *gin.Context) {
	token := c.GetString("token")
	s.mu.Lock()
	ids := append([]string(nil), s.wishlists[token]...)
	s.mu.Unlock()
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"productIds": ids})
}

type wishlistBody struct {
	ProductID string `json:"productId" binding:"required"`
}

func (s *Server) wishlistAdd(c *gin.Context) {
	if s.cfg.FailWishlist {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Wishlist unavailable"})
		return
	}
	var body wishlistBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "productId is required"})
		return
	}
	token := c.GetString("token")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.wishlists[token] {
		if id == body.ProductID {
			c.JSON(http.StatusOK, gin.H{"productIds": s.wishlists[token]})
			return
		}
	}
	s.wishlists[token] = append([]string{body.ProductID}, s.wishlists[token]...)
	c.JSON(http.StatusOK, gin.H{"productIds": s.wishlists[token]})
}

func (s *Server) wishlistRemove(c *gin.Context) {
	if s.cfg.FailWishlist {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Wishlist unavailable"})
		return
	}
	token := c.GetString("token")
	target := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.wishlists[token][:0]
	for _, id := range s.wishlists[token] {
		if id != target {
			kept = append(kept, id)
		}
	}
	s.wishlists[token] = kept
	c.JSON(http.StatusOK, gin.H{"productIds": kept})
}

type orderItemBody struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

type createOrderBody struct {
	Items          []orderItemBody `json:"items" binding:"required,min=1,dive"`
	PaymentMethod  string          `json:"paymentMethod" binding:"required,oneof=paypal paystack"`
	ShippingType   string          `json:"shippingType" binding:"required,oneof=standard express"`
	IdempotencyKey string          `json:"idempotencyKey"`
}

func (s *Server) createOrder(c *gin.Context) {
	var body createOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	order := &orderState{
		ID:            uuid.NewString(),
		Status:        "pending_payment",
		PaymentMethod: body.PaymentMethod,
		ShippingType:  body.ShippingType,
		Items:         body.Items,
		Token:         c.GetString("token"),
	}
	s.mu.Lock()
	s.orders[order.ID] = order
	s.mu.Unlock()
	s.logger.Debug("mock order created", zap.String("order_id", order.ID))
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

func (s *Server) listOrders(c *gin.Context) {
	token := c.GetString("token")
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]*orderState, 0)
	for _, o := range s.orders {
		if o.Token == token {
			orders = append(orders, o)
		}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) getOrder(c *gin.Context) {
	s.mu.Lock()
	order, ok := s.orders[c.Param("id")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

type paymentInitBody struct {
	OrderID string `json:"orderId" binding:"required"`
}

func (s *Server) paypalInit(c *gin.Context) {
	var body paymentInitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "orderId is required"})
		return
	}
	paypalOrderID := "PAY-" + uuid.NewString()[:8]
	c.JSON(http.StatusOK, gin.H{
		"approvalUrl":   fmt.Sprintf("https://sandbox.paypal.example/approve/%s", paypalOrderID),
		"paypalOrderId": paypalOrderID,
	})
}

func (s *Server) paystackInit(c *gin.Context) {
	var body paymentInitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "orderId is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authorizationUrl": fmt.Sprintf("https://checkout.paystack.example/%s", body.OrderID),
	})
}

type pickupBody struct {
	OrderID         string `json:"orderId"`
	FullName        string `json:"fullName" binding:"required"`
	Phone           string `json:"phone" binding:"required,phone"`
	Email           string `json:"email" binding:"omitempty,email"`
	PickupLocation  string `json:"pickupLocation" binding:"required"`
	DropoffLocation string `json:"dropoffLocation" binding:"required"`
	PickupDate      string `json:"pickupDate"`
	PackageType     string `json:"packageType"`
	Notes           string `json:"notes"`
}

func (s *Server) createPickup(c *gin.Context) {
	var body pickupBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	req := &pickupState{
		TrackingCode:    "FCQ-" + strings.ToUpper(uuid.NewString()[:8]),
		Status:          "requested",
		PickupLocation:  body.PickupLocation,
		DropoffLocation: body.DropoffLocation,
		PickupDate:      body.PickupDate,
	}
	s.mu.Lock()
	s.requests[req.TrackingCode] = req
	s.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"request": req})
}

func (s *Server) getPickup(c *gin.Context) {
	s.mu.Lock()
	req, ok := s.requests[c.Param("code")]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Tracking code not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req})
}

// trackShipment serves order shipments. Orders get a shipment view once a
// tracking code is attached; the mock attaches none, so this always 404s and
// exercises the client's fallback to pickup requests.
func (s *Server) trackShipment(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Shipment not found"})
}
