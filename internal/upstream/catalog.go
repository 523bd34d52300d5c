package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sevenmenu/gateway/internal/models"
)

// Admin catalog CRUD. Every call needs a bearer token; the backend enforces
// that records belong to the token's restaurant.

type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

type categoriesResponse struct {
	Categories []models.Category `json:"categories"`
}

func (c *Client) ListCategories(ctx context.Context, token string) ([]models.Category, error) {
	var out categoriesResponse
	if err := c.do(ctx, http.MethodGet, "/api/categories", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, in CategoryInput) error {
	return c.do(ctx, http.MethodPost, "/api/categories", token, in, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, token string, id int, in CategoryInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/categories/%d", id), token, in, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), token, nil, nil)
}

type ProductInput struct {
	CategoryID  int              `json:"category_id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	PromoPrice  *decimal.Decimal `json:"promo_price"`
	Image       *string          `json:"image"`
	IsFeatured  bool             `json:"is_featured"`
	FeaturedTag *string          `json:"featured_tag"`
}

type productsResponse struct {
	Products []models.Product `json:"products"`
}

func (c *Client) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	var out productsResponse
	if err := c.do(ctx, http.MethodGet, "/api/products", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) error {
	return c.do(ctx, http.MethodPost, "/api/products", token, in, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id int, in ProductInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), token, in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), token, nil, nil)
}

type PromotionInput struct {
	ProductID  int             `json:"product_id"`
	Title      string          `json:"title"`
	PromoPrice decimal.Decimal `json:"promo_price"`
	IsActive   bool            `json:"is_active"`
}

type promotionsResponse struct {
	Promotions []models.Promotion `json:"promotions"`
}

func (c *Client) ListPromotions(ctx context.Context, token string) ([]models.Promotion, error) {
	var out promotionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/promotions", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Promotions, nil
}

func (c *Client) CreatePromotion(ctx context.Context, token string, in PromotionInput) error {
	return c.do(ctx, http.MethodPost, "/api/promotions", token, in, nil)
}

func (c *Client) UpdatePromotion(ctx context.Context, token string, id int, in PromotionInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/promotions/%d", id), token, in, nil)
}

func (c *Client) DeletePromotion(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/promotions/%d", id), token, nil, nil)
}

// UpdateRestaurant saves profile changes for the token's restaurant. The
// caller patches its cached copy only after this succeeds.
func (c *Client) UpdateRestaurant(ctx context.Context, token string, patch models.RestaurantPatch) error {
	return c.do(ctx, http.MethodPut, "/api/restaurants/me", token, patch, nil)
}
