package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevenmenu/gateway/internal/cart"
)

func pizzaCart() cart.Cart {
	c := cart.Cart{}
	c.AddItem(cart.LineItem{ID: "1", Name: "Pizza", UnitPrice: decimal.RequireFromString("30")})
	return c
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"adds country code", "11987654321", "5511987654321"},
		{"keeps existing country code", "5511987654321", "5511987654321"},
		{"strips formatting", "(11) 98765-4321", "5511987654321"},
		{"empty input", "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.in, "55"))
		})
	}
}

func TestBuildLinkPizzaScenario(t *testing.T) {
	link, err := BuildLink(Order{
		RestaurantName: "Pizzaria Sete",
		WhatsApp:       "11987654321",
		Cart:           pizzaCart(),
	}, "55")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link, "https://api.whatsapp.com/send?phone=5511987654321&text="), link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Contains(t, text, "TOTAL: R$ 30,00")
	assert.Contains(t, text, "1x R$ 30,00 = R$ 30,00")

	// encodeURIComponent style: no '+' for spaces in the raw link
	_, rawText, _ := strings.Cut(link, "&text=")
	assert.NotContains(t, rawText, "+")
}

func TestBuildLinkRejectsEmptyCart(t *testing.T) {
	_, err := BuildLink(Order{WhatsApp: "11987654321"}, "55")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildLinkRejectsMissingWhatsApp(t *testing.T) {
	_, err := BuildLink(Order{Cart: pizzaCart()}, "55")
	assert.ErrorIs(t, err, ErrNoWhatsApp)
}

func TestBuildMessageLayout(t *testing.T) {
	c := cart.Cart{}
	c.AddItem(cart.LineItem{ID: "7", Name: "Burger", UnitPrice: decimal.RequireFromString("25")})
	c.AddItem(cart.LineItem{ID: "7", Name: "Burger", UnitPrice: decimal.RequireFromString("25")})
	c.AddItem(cart.LineItem{ID: "1", Name: "Pizza", UnitPrice: decimal.RequireFromString("30")})

	msg := BuildMessage(Order{
		RestaurantName:  "Cantina da Ana",
		Cart:            c,
		CustomerName:    "João",
		CustomerAddress: "Rua A, 10",
		Observation:     "sem cebola",
	})

	assert.Contains(t, msg, "*PEDIDO - Cantina da Ana*")
	assert.Contains(t, msg, "👤 *Cliente:* João")
	assert.Contains(t, msg, "📍 *Endereço:* Rua A, 10")
	assert.Contains(t, msg, "1. Burger")
	assert.Contains(t, msg, "2x R$ 25,00 = R$ 50,00")
	assert.Contains(t, msg, "2. Pizza")
	assert.Contains(t, msg, "*TOTAL: R$ 80,00*")
	assert.Contains(t, msg, "📝 *Obs:* sem cebola")
	assert.Contains(t, msg, "_Pedido via Seven Menu_")
}

func TestBuildMessageSkipsOptionalSections(t *testing.T) {
	msg := BuildMessage(Order{RestaurantName: "Pizzaria Sete", Cart: pizzaCart()})

	assert.NotContains(t, msg, "Cliente")
	assert.NotContains(t, msg, "Endereço")
	assert.NotContains(t, msg, "Obs")
}
