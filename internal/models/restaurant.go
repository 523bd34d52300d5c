package models

import "github.com/shopspring/decimal"

// Restaurant is the profile served by the upstream backend. The gateway only
// ever holds a cached copy; the backend owns the record.
type Restaurant struct {
	ID            int              `json:"id"`
	Slug          string           `json:"slug"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Logo          string           `json:"logo,omitempty"`
	Banner        string           `json:"banner,omitempty"`
	WhatsApp      string           `json:"whatsapp,omitempty"`
	PrimaryColor  string           `json:"primary_color,omitempty"`
	IsOpen        bool             `json:"is_open"`
	ClosedMessage string           `json:"closed_message,omitempty"`
	MinOrder      *decimal.Decimal `json:"min_order,omitempty"`
	DeliveryFee   *decimal.Decimal `json:"delivery_fee,omitempty"`
}

// RestaurantPatch carries the fields the settings screen may change. Nil
// fields are left untouched when merged.
type RestaurantPatch struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Logo          *string          `json:"logo,omitempty"`
	Banner        *string          `json:"banner,omitempty"`
	WhatsApp      *string          `json:"whatsapp,omitempty"`
	PrimaryColor  *string          `json:"primary_color,omitempty"`
	IsOpen        *bool            `json:"is_open,omitempty"`
	ClosedMessage *string          `json:"closed_message,omitempty"`
	MinOrder      *decimal.Decimal `json:"min_order,omitempty"`
	DeliveryFee   *decimal.Decimal `json:"delivery_fee,omitempty"`
}

// Apply merges the patch into a copy of r and returns it.
func (p RestaurantPatch) Apply(r Restaurant) Restaurant {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Logo != nil {
		r.Logo = *p.Logo
	}
	if p.Banner != nil {
		r.Banner = *p.Banner
	}
	if p.WhatsApp != nil {
		r.WhatsApp = *p.WhatsApp
	}
	if p.PrimaryColor != nil {
		r.PrimaryColor = *p.PrimaryColor
	}
	if p.IsOpen != nil {
		r.IsOpen = *p.IsOpen
	}
	if p.ClosedMessage != nil {
		r.ClosedMessage = *p.ClosedMessage
	}
	if p.MinOrder != nil {
		r.MinOrder = p.MinOrder
	}
	if p.DeliveryFee != nil {
		r.DeliveryFee = p.DeliveryFee
	}
	return r
}

type User struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
}
