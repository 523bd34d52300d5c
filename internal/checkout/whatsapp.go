// Package checkout turns a cart into a pre-filled WhatsApp message. There is
// no order API: the diner reviews the composed message in WhatsApp and sends
// it to the restaurant themselves.
package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sevenmenu/gateway/internal/cart"
	"github.com/sevenmenu/gateway/internal/money"
)

const (
	sendEndpoint = "https://api.whatsapp.com/send"

	// DefaultCountryCode is prefixed to numbers stored without one (Brazil).
	DefaultCountryCode = "55"
)

var (
	// ErrEmptyCart rejects checkout before any network or link composition.
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrNoWhatsApp means the restaurant has no WhatsApp number configured.
	ErrNoWhatsApp = errors.New("checkout: restaurant whatsapp unknown")
)

// Order is everything the message needs. Customer fields are optional.
type Order struct {
	RestaurantName  string
	WhatsApp        string
	Cart            cart.Cart
	CustomerName    string
	CustomerAddress string
	Observation     string
}

// BuildLink validates the order locally and returns the WhatsApp deep link.
func BuildLink(o Order, countryCode string) (string, error) {
	if o.Cart.IsEmpty() {
		return "", ErrEmptyCart
	}
	phone := NormalizePhone(o.WhatsApp, countryCode)
	if phone == "" {
		return "", ErrNoWhatsApp
	}
	return sendEndpoint + "?phone=" + phone + "&text=" + encodeMessage(BuildMessage(o)), nil
}

// BuildMessage renders the order summary in the storefront's message format.
func BuildMessage(o Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*PEDIDO - %s*\n", o.RestaurantName)
	b.WriteString("━━━━━━━━━━━━━━━━━━\n\n")

	if o.CustomerName != "" {
		fmt.Fprintf(&b, "👤 *Cliente:* %s\n", o.CustomerName)
	}
	if o.CustomerAddress != "" {
		fmt.Fprintf(&b, "📍 *Endereço:* %s\n", o.CustomerAddress)
	}
	if o.CustomerName != "" || o.CustomerAddress != "" {
		b.WriteString("\n")
	}

	b.WriteString("*ITENS DO PEDIDO:*\n\n")
	for i, item := range o.Cart.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		fmt.Fprintf(&b, "   %dx %s = %s\n\n",
			item.Quantity,
			money.FormatBRL(item.UnitPrice),
			money.FormatBRL(item.Subtotal()),
		)
	}

	b.WriteString("━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "*TOTAL: %s*\n", money.FormatBRL(o.Cart.TotalPrice()))

	if o.Observation != "" {
		fmt.Fprintf(&b, "\n📝 *Obs:* %s\n", o.Observation)
	}

	b.WriteString("\n_Pedido via Seven Menu_")
	return b.String()
}

// NormalizePhone strips everything but digits and prefixes the country code
// when it is missing. Returns "" when no digits remain.
func NormalizePhone(raw, countryCode string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	phone := digits.String()
	if phone == "" {
		return ""
	}
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	if !strings.HasPrefix(phone, countryCode) {
		phone = countryCode + phone
	}
	return phone
}

// encodeMessage escapes like encodeURIComponent does: query escaping, with
// spaces as %20 rather than '+'.
func encodeMessage(msg string) string {
	return strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}
