package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/sevenmenu/gateway/internal/analytics"
	"github.com/sevenmenu/gateway/internal/api/middleware"
	"github.com/sevenmenu/gateway/internal/cart"
	"github.com/sevenmenu/gateway/internal/checkout"
	"github.com/sevenmenu/gateway/internal/models"
	"github.com/sevenmenu/gateway/internal/upstream"
)

const defaultPrimaryColor = "#E63946"

// Messages shown to diners; the storefront speaks Portuguese.
const (
	msgRestaurantNotFound = "Restaurante não encontrado"
	msgMenuLoadError      = "Erro ao carregar cardápio"
	msgConnectionError    = "Erro de conexão"
	msgEmptyCart          = "Adicione produtos ao carrinho primeiro"
	msgNoWhatsApp         = "WhatsApp do restaurante não configurado"
)

// --- Page data ---

type menuPage struct {
	Slug             string
	Restaurant       models.Restaurant
	PrimaryColor     string
	Categories       []models.Category
	Products         []models.Product
	SelectedCategory int
	CartCount        int
	CartTotal        decimal.Decimal
}

type errorPage struct {
	Message  string
	RetryURL string
}

type cartPage struct {
	Slug       string
	Items      []cart.LineItem
	TotalItems int
	TotalPrice decimal.Decimal
	Error      string
}

type checkoutPage struct {
	Slug           string
	RestaurantName string
	Link           string
}

// --- Handler ---

type StorefrontHandler struct {
	client      *upstream.Client
	carts       cart.Store
	tracker     *analytics.Tracker
	log         *logrus.Entry
	countryCode string
}

func NewStorefrontHandler(client *upstream.Client, carts cart.Store, tracker *analytics.Tracker, countryCode string, log *logrus.Entry) *StorefrontHandler {
	return &StorefrontHandler{
		client:      client,
		carts:       carts,
		tracker:     tracker,
		log:         log,
		countryCode: countryCode,
	}
}

// Menu handles GET /m/{slug}: the public menu page.
func (h *StorefrontHandler) Menu(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	menu, err := h.client.GetMenu(r.Context(), slug)
	if err != nil {
		h.renderMenuError(w, r, err)
		return
	}
	h.tracker.PageView(slug)

	selected := 0
	if v := r.URL.Query().Get("category"); v != "" {
		selected, _ = strconv.Atoi(v)
	}
	if !hasCategory(menu.Categories, selected) && len(menu.Categories) > 0 {
		selected = menu.Categories[0].ID
	}

	products := menu.Products
	if selected != 0 {
		products = nil
		for _, p := range menu.Products {
			if p.CategoryID == selected {
				products = append(products, p)
			}
		}
	}

	c := h.visitorCart(r)
	color := menu.Restaurant.PrimaryColor
	if color == "" {
		color = defaultPrimaryColor
	}

	render(w, h.log, "menu.html", menuPage{
		Slug:             slug,
		Restaurant:       menu.Restaurant,
		PrimaryColor:     color,
		Categories:       menu.Categories,
		Products:         products,
		SelectedCategory: selected,
		CartCount:        c.TotalItems(),
		CartTotal:        c.TotalPrice(),
	})
}

// AddToCart handles POST /m/{slug}/add. It resolves the product against the
// live menu so price and name cannot be forged from the form.
func (h *StorefrontHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	productID, _ := strconv.Atoi(r.FormValue("product_id"))

	menu, err := h.client.GetMenu(r.Context(), slug)
	if err != nil {
		h.renderMenuError(w, r, err)
		return
	}

	var product *models.Product
	for i := range menu.Products {
		if menu.Products[i].ID == productID {
			product = &menu.Products[i]
			break
		}
	}
	if product != nil {
		item := cart.LineItem{
			ID:        strconv.Itoa(product.ID),
			Name:      product.Name,
			UnitPrice: product.EffectivePrice(),
			Image:     product.Image,
		}
		if err := h.carts.AddItem(r.Context(), middleware.SessionID(r.Context()), item); err != nil {
			h.log.WithError(err).Error("add to cart failed")
		} else {
			h.tracker.AddToCart(slug, product.ID)
		}
	}

	target := "/m/" + slug
	if c := r.FormValue("category"); c != "" {
		target += "?category=" + c
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// CartView handles GET /m/{slug}/cart.
func (h *StorefrontHandler) CartView(w http.ResponseWriter, r *http.Request) {
	h.renderCart(w, r, "")
}

// UpdateItem handles POST /m/{slug}/cart/update with op=inc|dec. Dropping a
// quantity-1 item removes it from the cart.
func (h *StorefrontHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())
	productID := r.FormValue("product_id")

	c, err := h.carts.GetCart(r.Context(), sessionID)
	if err != nil {
		h.log.WithError(err).Error("load cart failed")
		h.redirectToCart(w, r)
		return
	}

	for _, item := range c.Items {
		if item.ID != productID {
			continue
		}
		quantity := item.Quantity
		switch r.FormValue("op") {
		case "inc":
			quantity++
		case "dec":
			quantity--
		}
		if err := h.carts.UpdateQuantity(r.Context(), sessionID, productID, quantity); err != nil {
			h.log.WithError(err).Error("update quantity failed")
		}
		break
	}
	h.redirectToCart(w, r)
}

// RemoveItem handles POST /m/{slug}/cart/remove.
func (h *StorefrontHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())
	if err := h.carts.RemoveItem(r.Context(), sessionID, r.FormValue("product_id")); err != nil {
		h.log.WithError(err).Error("remove item failed")
	}
	h.redirectToCart(w, r)
}

// ClearCart handles POST /m/{slug}/cart/clear.
func (h *StorefrontHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())
	if err := h.carts.EmptyCart(r.Context(), sessionID); err != nil {
		h.log.WithError(err).Error("clear cart failed")
	}
	http.Redirect(w, r, "/m/"+chi.URLParam(r, "slug"), http.StatusSeeOther)
}

// Checkout handles POST /m/{slug}/checkout. An empty cart or missing
// WhatsApp number is rejected locally; the confirmation page carries the
// deep link plus an explicit clear-cart affordance, since nothing tells us
// whether the diner actually sent the message.
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	c := h.visitorCart(r)
	if c.IsEmpty() {
		h.renderCart(w, r, msgEmptyCart)
		return
	}

	restaurants, err := h.client.ListRestaurants(r.Context())
	if err != nil {
		h.log.WithError(err).Error("resolve restaurant failed")
		h.renderCart(w, r, msgConnectionError)
		return
	}
	if len(restaurants) == 0 || restaurants[0].WhatsApp == "" {
		h.renderCart(w, r, msgNoWhatsApp)
		return
	}
	restaurant := restaurants[0]

	link, err := checkout.BuildLink(checkout.Order{
		RestaurantName:  restaurant.Name,
		WhatsApp:        restaurant.WhatsApp,
		Cart:            c,
		CustomerName:    r.FormValue("customer_name"),
		CustomerAddress: r.FormValue("customer_address"),
		Observation:     r.FormValue("observation"),
	}, h.countryCode)
	if err != nil {
		h.renderCart(w, r, msgNoWhatsApp)
		return
	}

	render(w, h.log, "checkout.html", checkoutPage{
		Slug:           chi.URLParam(r, "slug"),
		RestaurantName: restaurant.Name,
		Link:           link,
	})
}

// --- helpers ---

func (h *StorefrontHandler) visitorCart(r *http.Request) cart.Cart {
	c, err := h.carts.GetCart(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.log.WithError(err).Error("load cart failed")
		return cart.Cart{}
	}
	return c
}

func (h *StorefrontHandler) renderCart(w http.ResponseWriter, r *http.Request, errMsg string) {
	c := h.visitorCart(r)
	render(w, h.log, "cart.html", cartPage{
		Slug:       chi.URLParam(r, "slug"),
		Items:      c.Items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		Error:      errMsg,
	})
}

func (h *StorefrontHandler) redirectToCart(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/m/"+chi.URLParam(r, "slug")+"/cart", http.StatusSeeOther)
}

func (h *StorefrontHandler) renderMenuError(w http.ResponseWriter, r *http.Request, err error) {
	var se *upstream.StatusError
	var message string
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, upstream.ErrNotFound):
		message = msgRestaurantNotFound
		status = http.StatusNotFound
	case errors.As(err, &se):
		message = msgMenuLoadError
	default:
		message = msgConnectionError
	}
	h.log.WithError(err).Warn("menu load failed")
	w.WriteHeader(status)
	render(w, h.log, "error.html", errorPage{Message: message, RetryURL: r.URL.RequestURI()})
}

func hasCategory(categories []models.Category, id int) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
