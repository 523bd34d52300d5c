package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sevenmenu/gateway/internal/models"
)

// Analytics event types accepted by the backend.
const (
	EventPageView  = "page_view"
	EventAddToCart = "add_to_cart"
)

type MenuResponse struct {
	Restaurant models.Restaurant `json:"restaurant"`
	Categories []models.Category `json:"categories"`
	Products   []models.Product  `json:"products"`
}

// GetMenu fetches the public menu for a restaurant slug. An unknown slug
// returns ErrNotFound.
func (c *Client) GetMenu(ctx context.Context, slug string) (*MenuResponse, error) {
	var out MenuResponse
	if err := c.do(ctx, http.MethodGet, "/api/menu/"+url.PathEscape(slug), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type trackEventRequest struct {
	EventType string `json:"event_type"`
	ProductID int    `json:"product_id,omitempty"`
}

// TrackEvent posts an analytics beacon. Callers decide whether the result
// matters; the storefront dispatches these fire-and-forget.
func (c *Client) TrackEvent(ctx context.Context, slug, eventType string, productID int) error {
	body := trackEventRequest{EventType: eventType, ProductID: productID}
	return c.do(ctx, http.MethodPost, "/api/menu/"+url.PathEscape(slug)+"/analytics", "", body, nil)
}

type restaurantsResponse struct {
	Restaurants []models.Restaurant `json:"restaurants"`
}

// ListRestaurants returns the restaurants known to the backend. The checkout
// screen uses it to resolve the WhatsApp contact.
func (c *Client) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var out restaurantsResponse
	if err := c.do(ctx, http.MethodGet, "/api/restaurants", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Restaurants, nil
}
