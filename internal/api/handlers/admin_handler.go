package handlers

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sevenmenu/gateway/internal/auth"
	"github.com/sevenmenu/gateway/internal/models"
	"github.com/sevenmenu/gateway/internal/money"
	"github.com/sevenmenu/gateway/internal/upstream"
)

const (
	msgFillCredentials  = "Preencha e-mail e senha"
	msgFillRegistration = "Preencha todos os campos"
	msgNameRequired     = "Nome é obrigatório"
	msgSaveError        = "Erro ao salvar"
)

type loginPage struct {
	Email         string
	LoginError    string
	RegisterError string
}

type dashboardPage struct {
	User       models.User
	Restaurant models.Restaurant
}

type settingsPage struct {
	Restaurant models.Restaurant
	Error      string
	Saved      bool
}

type AdminHandler struct {
	session *auth.Manager
	client  *upstream.Client
	log     *logrus.Entry
}

func NewAdminHandler(session *auth.Manager, client *upstream.Client, log *logrus.Entry) *AdminHandler {
	return &AdminHandler{session: session, client: client, log: log}
}

// Guard protects the admin section. While the startup token restore is
// still running it renders a neutral holding page and makes no redirect
// decision; only once restoring is done and no token exists does it send
// the visitor to the login screen.
func (h *AdminHandler) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.session.Loading() {
			render(w, h.log, "admin_loading.html", nil)
			return
		}
		if h.session.Token() == "" {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginView handles GET /admin/login.
func (h *AdminHandler) LoginView(w http.ResponseWriter, r *http.Request) {
	if h.session.Loading() {
		render(w, h.log, "admin_loading.html", nil)
		return
	}
	if h.session.Token() != "" {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	render(w, h.log, "admin_login.html", loginPage{})
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		render(w, h.log, "admin_login.html", loginPage{Email: email, LoginError: msgFillCredentials})
		return
	}

	if err := h.session.Login(r.Context(), email, password); err != nil {
		render(w, h.log, "admin_login.html", loginPage{Email: email, LoginError: authErrorMessage(err)})
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Register handles POST /admin/register.
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	name := strings.TrimSpace(r.FormValue("name"))
	restaurantName := strings.TrimSpace(r.FormValue("restaurant_name"))
	if email == "" || password == "" || name == "" || restaurantName == "" {
		render(w, h.log, "admin_login.html", loginPage{Email: email, RegisterError: msgFillRegistration})
		return
	}

	if err := h.session.Register(r.Context(), email, password, name, restaurantName); err != nil {
		render(w, h.log, "admin_login.html", loginPage{Email: email, RegisterError: authErrorMessage(err)})
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout handles POST /admin/logout. It cannot fail.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(r.Context())
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// Dashboard handles GET /admin.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := h.session.User()
	restaurant := h.session.Restaurant()
	if user == nil || restaurant == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}
	render(w, h.log, "admin_dashboard.html", dashboardPage{User: *user, Restaurant: *restaurant})
}

// SettingsView handles GET /admin/settings.
func (h *AdminHandler) SettingsView(w http.ResponseWriter, r *http.Request) {
	restaurant := h.session.Restaurant()
	if restaurant == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}
	render(w, h.log, "admin_settings.html", settingsPage{
		Restaurant: *restaurant,
		Saved:      r.URL.Query().Get("saved") == "1",
	})
}

// SaveSettings handles POST /admin/settings. The cached restaurant profile
// is patched only after the backend accepted the save.
func (h *AdminHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	restaurant := h.session.Restaurant()
	if restaurant == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	patch, errMsg := settingsPatch(r)
	if errMsg != "" {
		render(w, h.log, "admin_settings.html", settingsPage{Restaurant: *restaurant, Error: errMsg})
		return
	}

	if err := h.client.UpdateRestaurant(r.Context(), h.session.Token(), patch); err != nil {
		render(w, h.log, "admin_settings.html", settingsPage{Restaurant: *restaurant, Error: saveErrorMessage(err)})
		return
	}
	h.session.UpdateRestaurant(patch)
	http.Redirect(w, r, "/admin/settings?saved=1", http.StatusSeeOther)
}

func settingsPatch(r *http.Request) (models.RestaurantPatch, string) {
	var patch models.RestaurantPatch

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		return patch, msgNameRequired
	}
	patch.Name = &name

	description := r.FormValue("description")
	patch.Description = &description
	whatsapp := strings.TrimSpace(r.FormValue("whatsapp"))
	patch.WhatsApp = &whatsapp
	color := strings.TrimSpace(r.FormValue("primary_color"))
	patch.PrimaryColor = &color
	logo := strings.TrimSpace(r.FormValue("logo"))
	patch.Logo = &logo
	banner := strings.TrimSpace(r.FormValue("banner"))
	patch.Banner = &banner
	isOpen := r.FormValue("is_open") == "1"
	patch.IsOpen = &isOpen
	closedMessage := r.FormValue("closed_message")
	patch.ClosedMessage = &closedMessage

	if v := strings.TrimSpace(r.FormValue("min_order")); v != "" {
		amount, err := money.ParseAmount(v)
		if err != nil {
			return patch, "Pedido mínimo inválido"
		}
		patch.MinOrder = &amount
	}
	if v := strings.TrimSpace(r.FormValue("delivery_fee")); v != "" {
		amount, err := money.ParseAmount(v)
		if err != nil {
			return patch, "Taxa de entrega inválida"
		}
		patch.DeliveryFee = &amount
	}
	return patch, ""
}

func authErrorMessage(err error) string {
	var ae *upstream.AuthError
	if errors.As(err, &ae) {
		return ae.Detail
	}
	return msgConnectionError
}

func saveErrorMessage(err error) string {
	var se *upstream.StatusError
	switch {
	case errors.As(err, &se):
		if se.Detail != "" {
			return se.Detail
		}
		return msgSaveError
	case errors.Is(err, upstream.ErrNotFound):
		return msgSaveError
	default:
		return msgConnectionError
	}
}
