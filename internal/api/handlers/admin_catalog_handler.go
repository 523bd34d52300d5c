package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sevenmenu/gateway/internal/models"
	"github.com/sevenmenu/gateway/internal/money"
	"github.com/sevenmenu/gateway/internal/upstream"
)

// Catalog CRUD screens. Each save re-validates on the client side first
// (empty name, bad price) and only then calls the backend; the backend's
// `detail` message is shown verbatim when a save is rejected.

type categoryForm struct {
	Name        string
	Description string
	Icon        string
}

type categoriesPage struct {
	Categories []models.Category
	Editing    *models.Category
	Form       categoryForm
	Error      string
}

type productForm struct {
	CategoryID  int
	Name        string
	Description string
	Price       string
	PromoPrice  string
	Image       string
}

type productsPage struct {
	Products   []models.Product
	Categories []models.Category
	Editing    *models.Product
	Form       productForm
	Error      string
}

type promotionsPage struct {
	Promotions []models.Promotion
	Products   []models.Product
	Error      string
}

// --- Categories ---

// Categories handles GET /admin/categories, optionally with ?edit={id}.
func (h *AdminHandler) Categories(w http.ResponseWriter, r *http.Request) {
	h.renderCategories(w, r, "", nil)
}

func (h *AdminHandler) renderCategories(w http.ResponseWriter, r *http.Request, errMsg string, form *categoryForm) {
	page := categoriesPage{Error: errMsg}

	categories, err := h.client.ListCategories(r.Context(), h.session.Token())
	if err != nil {
		if page.Error == "" {
			page.Error = saveErrorMessage(err)
		}
	} else {
		page.Categories = categories
	}

	if editID, _ := strconv.Atoi(r.URL.Query().Get("edit")); editID != 0 {
		for i := range page.Categories {
			if page.Categories[i].ID == editID {
				page.Editing = &page.Categories[i]
				page.Form = categoryForm{
					Name:        page.Categories[i].Name,
					Description: page.Categories[i].Description,
					Icon:        page.Categories[i].Icon,
				}
				break
			}
		}
	}
	if form != nil {
		page.Form = *form
	}
	render(w, h.log, "admin_categories.html", page)
}

// CreateCategory handles POST /admin/categories.
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	h.saveCategory(w, r, 0)
}

// UpdateCategory handles POST /admin/categories/{id}.
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	h.saveCategory(w, r, id)
}

func (h *AdminHandler) saveCategory(w http.ResponseWriter, r *http.Request, id int) {
	form := categoryForm{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Icon:        strings.TrimSpace(r.FormValue("icon")),
	}
	if form.Name == "" {
		h.renderCategories(w, r, "Nome da categoria é obrigatório", &form)
		return
	}

	input := upstream.CategoryInput{
		Name:        form.Name,
		Description: optional(form.Description),
		Icon:        optional(form.Icon),
	}

	var err error
	if id == 0 {
		err = h.client.CreateCategory(r.Context(), h.session.Token(), input)
	} else {
		err = h.client.UpdateCategory(r.Context(), h.session.Token(), id, input)
	}
	if err != nil {
		h.renderCategories(w, r, saveErrorMessage(err), &form)
		return
	}
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// DeleteCategory handles POST /admin/categories/{id}/delete.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	if err := h.client.DeleteCategory(r.Context(), h.session.Token(), id); err != nil {
		h.renderCategories(w, r, saveErrorMessage(err), nil)
		return
	}
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// --- Products ---

// Products handles GET /admin/products, optionally with ?edit={id}.
func (h *AdminHandler) Products(w http.ResponseWriter, r *http.Request) {
	h.renderProducts(w, r, "", nil)
}

func (h *AdminHandler) renderProducts(w http.ResponseWriter, r *http.Request, errMsg string, form *productForm) {
	page := productsPage{Error: errMsg}
	token := h.session.Token()

	products, err := h.client.ListProducts(r.Context(), token)
	if err != nil {
		if page.Error == "" {
			page.Error = saveErrorMessage(err)
		}
	} else {
		page.Products = products
	}
	if categories, err := h.client.ListCategories(r.Context(), token); err == nil {
		page.Categories = categories
	}

	if editID, _ := strconv.Atoi(r.URL.Query().Get("edit")); editID != 0 {
		for i := range page.Products {
			if page.Products[i].ID == editID {
				p := page.Products[i]
				page.Editing = &page.Products[i]
				page.Form = productForm{
					CategoryID:  p.CategoryID,
					Name:        p.Name,
					Description: p.Description,
					Price:       money.FormatAmount(p.Price),
					Image:       p.Image,
				}
				if p.PromoPrice != nil {
					page.Form.PromoPrice = money.FormatAmount(*p.PromoPrice)
				}
				break
			}
		}
	}
	if form != nil {
		page.Form = *form
	}
	render(w, h.log, "admin_products.html", page)
}

// CreateProduct handles POST /admin/products.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, 0)
}

// UpdateProduct handles POST /admin/products/{id}.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	h.saveProduct(w, r, id)
}

func (h *AdminHandler) saveProduct(w http.ResponseWriter, r *http.Request, id int) {
	form := productForm{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Price:       strings.TrimSpace(r.FormValue("price")),
		PromoPrice:  strings.TrimSpace(r.FormValue("promo_price")),
		Image:       strings.TrimSpace(r.FormValue("image")),
	}
	form.CategoryID, _ = strconv.Atoi(r.FormValue("category_id"))

	if form.Name == "" {
		h.renderProducts(w, r, "Nome do produto é obrigatório", &form)
		return
	}
	price, err := money.ParseAmount(form.Price)
	if err != nil {
		h.renderProducts(w, r, "Preço inválido", &form)
		return
	}

	input := upstream.ProductInput{
		CategoryID:  form.CategoryID,
		Name:        form.Name,
		Description: optional(form.Description),
		Price:       price,
		Image:       optional(form.Image),
	}
	if form.PromoPrice != "" {
		promo, err := money.ParseAmount(form.PromoPrice)
		if err != nil {
			h.renderProducts(w, r, "Preço promocional inválido", &form)
			return
		}
		input.PromoPrice = &promo
	}

	if id == 0 {
		err = h.client.CreateProduct(r.Context(), h.session.Token(), input)
	} else {
		err = h.client.UpdateProduct(r.Context(), h.session.Token(), id, input)
	}
	if err != nil {
		h.renderProducts(w, r, saveErrorMessage(err), &form)
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// DeleteProduct handles POST /admin/products/{id}/delete.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	if err := h.client.DeleteProduct(r.Context(), h.session.Token(), id); err != nil {
		h.renderProducts(w, r, saveErrorMessage(err), nil)
		return
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

// --- Promotions ---

// Promotions handles GET /admin/promotions.
func (h *AdminHandler) Promotions(w http.ResponseWriter, r *http.Request) {
	h.renderPromotions(w, r, "")
}

func (h *AdminHandler) renderPromotions(w http.ResponseWriter, r *http.Request, errMsg string) {
	page := promotionsPage{Error: errMsg}
	token := h.session.Token()

	promotions, err := h.client.ListPromotions(r.Context(), token)
	if err != nil {
		if page.Error == "" {
			page.Error = saveErrorMessage(err)
		}
	} else {
		page.Promotions = promotions
	}
	if products, err := h.client.ListProducts(r.Context(), token); err == nil {
		page.Products = products
	}
	render(w, h.log, "admin_promotions.html", page)
}

// CreatePromotion handles POST /admin/promotions.
func (h *AdminHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		h.renderPromotions(w, r, "Título é obrigatório")
		return
	}
	promoPrice, err := money.ParseAmount(r.FormValue("promo_price"))
	if err != nil {
		h.renderPromotions(w, r, "Preço promocional inválido")
		return
	}
	productID, _ := strconv.Atoi(r.FormValue("product_id"))

	input := upstream.PromotionInput{
		ProductID:  productID,
		Title:      title,
		PromoPrice: promoPrice,
		IsActive:   r.FormValue("is_active") == "1",
	}
	if err := h.client.CreatePromotion(r.Context(), h.session.Token(), input); err != nil {
		h.renderPromotions(w, r, saveErrorMessage(err))
		return
	}
	http.Redirect(w, r, "/admin/promotions", http.StatusSeeOther)
}

// TogglePromotion handles POST /admin/promotions/{id}/toggle, flipping the
// promotion between active and paused.
func (h *AdminHandler) TogglePromotion(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	token := h.session.Token()

	promotions, err := h.client.ListPromotions(r.Context(), token)
	if err != nil {
		h.renderPromotions(w, r, saveErrorMessage(err))
		return
	}
	for _, p := range promotions {
		if p.ID != id {
			continue
		}
		input := upstream.PromotionInput{
			ProductID:  p.ProductID,
			Title:      p.Title,
			PromoPrice: p.PromoPrice,
			IsActive:   !p.IsActive,
		}
		if err := h.client.UpdatePromotion(r.Context(), token, id, input); err != nil {
			h.renderPromotions(w, r, saveErrorMessage(err))
			return
		}
		break
	}
	http.Redirect(w, r, "/admin/promotions", http.StatusSeeOther)
}

// DeletePromotion handles POST /admin/promotions/{id}/delete.
func (h *AdminHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(chi.URLParam(r, "id"))
	if err := h.client.DeletePromotion(r.Context(), h.session.Token(), id); err != nil {
		h.renderPromotions(w, r, saveErrorMessage(err))
		return
	}
	http.Redirect(w, r, "/admin/promotions", http.StatusSeeOther)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
