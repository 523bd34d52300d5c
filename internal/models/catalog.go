package models

import "github.com/shopspring/decimal"

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Image       string `json:"image,omitempty"`
	Order       int    `json:"order"`
	IsActive    bool   `json:"is_active"`
}

type Product struct {
	ID          int              `json:"id"`
	CategoryID  int              `json:"category_id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	PromoPrice  *decimal.Decimal `json:"promo_price,omitempty"`
	Image       string           `json:"image,omitempty"`
	IsFeatured  bool             `json:"is_featured,omitempty"`
	FeaturedTag string           `json:"featured_tag,omitempty"`
	IsActive    bool             `json:"is_active"`
}

// EffectivePrice is the promotional price when one is set, the regular price
// otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.PromoPrice != nil {
		return *p.PromoPrice
	}
	return p.Price
}

type Promotion struct {
	ID         int             `json:"id"`
	ProductID  int             `json:"product_id"`
	Title      string          `json:"title"`
	PromoPrice decimal.Decimal `json:"promo_price"`
	StartsAt   string          `json:"starts_at,omitempty"`
	EndsAt     string          `json:"ends_at,omitempty"`
	IsActive   bool            `json:"is_active"`
}
