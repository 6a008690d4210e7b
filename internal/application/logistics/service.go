// Package logistics submits standalone pickup requests to the delivery
// network. Requests are public; no session is required.
package logistics

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/foodcheq/storefront/internal/domain/shared"
	"github.com/foodcheq/storefront/internal/infrastructure/api"
)

// PickupRequest is the payload for a standalone delivery booking
type PickupRequest struct {
	OrderID         string `json:"orderId,omitempty"`
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	PickupLocation  string `json:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation"`
	PickupDate      string `json:"pickupDate,omitempty"`
	PackageType     string `json:"packageType,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// Service books pickup requests
type Service struct {
	client *api.Client
	logger *zap.Logger
}

// NewService creates a logistics service
func NewService(client *api.Client, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger}
}

type createResponse struct {
	Request struct {
		TrackingCode string `json:"trackingCode"`
	} `json:"request"`
	TrackingCode string `json:"trackingCode"`
}

// RequestPickup submits a pickup request and returns the tracking code the
// network assigned. The code may arrive nested under the created request or
// at the top level depending on the API version.
func (s *Service) RequestPickup(ctx context.Context, req PickupRequest) (string, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.PickupLocation = strings.TrimSpace(req.PickupLocation)
	req.DropoffLocation = strings.TrimSpace(req.DropoffLocation)

	if req.FullName == "" || req.Phone == "" || req.PickupLocation == "" || req.DropoffLocation == "" {
		return "", shared.NewDomainError("INVALID_INPUT",
			"Name, phone, pickup and dropoff locations are required")
	}

	var resp createResponse
	if err := s.client.Post(ctx, "/logistics/requests", req, api.AuthNone, &resp); err != nil {
		return "", err
	}

	code := resp.Request.TrackingCode
	if code == "" {
		code = resp.TrackingCode
	}
	if code == "" {
		return "", shared.NewDomainError("TRACKING_CODE_MISSING",
			"Request accepted but no tracking code returned")
	}

	s.logger.Info("pickup request created", zap.String("tracking_code", code))
	return code, nil
}
