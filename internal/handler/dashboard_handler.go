package handler

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"inventory-dashboard/internal/model"
	"inventory-dashboard/internal/service"
	"inventory-dashboard/internal/view"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Notice codes carried in the redirect after a successful command.
const (
	NoticeCategoryAdded   = "category_added"
	NoticeCategoryDeleted = "category_deleted"
	NoticeProductAdded    = "product_added"
	NoticeProductDeleted  = "product_deleted"
	NoticeSnapshotSaved   = "snapshot_saved"
)

var notices = map[string]string{
	NoticeCategoryAdded:   "Category added.",
	NoticeCategoryDeleted: "Category deleted.",
	NoticeProductAdded:    "Product added.",
	NoticeProductDeleted:  "Product deleted.",
	NoticeSnapshotSaved:   "Snapshot saved.",
}

// DashboardHandler serves the HTML dashboard. Every successful command
// redirects back to the page, which reads everything from the store again.
type DashboardHandler struct {
	service   service.DashboardService
	renderer  *view.Renderer
	snapshots bool
	logger    zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler. snapshots toggles
// the snapshot button on the page.
func NewDashboardHandler(
	service service.DashboardService,
	renderer *view.Renderer,
	snapshots bool,
	logger zerolog.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		service:   service,
		renderer:  renderer,
		snapshots: snapshots,
		logger:    logger.With().Str("handler", "dashboard").Logger(),
	}
}

// Show handles GET / requests.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Load(r.Context())
	if err != nil {
		status, _, message := classifyError(err)
		h.logger.Error().Err(err).Int("status", status).Msg("failed to load dashboard")
		h.render(w, status, view.Page{Error: message})
		return
	}

	h.render(w, http.StatusOK, view.Page{
		Dashboard: dashboard,
		Notice:    notices[r.URL.Query().Get("notice")],
	})
}

// AddCategory handles POST /categories requests.
func (h *DashboardHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, model.NewValidationError("invalid form submission"))
		return
	}

	_, err := h.service.OnAddCategory(r.Context(), model.NewCategory{
		Name:        r.PostForm.Get("name"),
		Description: r.PostForm.Get("description"),
	})
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.redirect(w, r, NoticeCategoryAdded)
}

// DeleteCategory handles POST /categories/{id}/delete requests.
func (h *DashboardHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if err := h.service.OnDeleteCategory(r.Context(), id); err != nil {
		h.renderError(w, r, err)
		return
	}

	h.redirect(w, r, NoticeCategoryDeleted)
}

// AddProduct handles POST /products requests.
func (h *DashboardHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	form, err := parseProductForm(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if _, err := h.service.OnAddProduct(r.Context(), form); err != nil {
		h.renderError(w, r, err)
		return
	}

	h.redirect(w, r, NoticeProductAdded)
}

// DeleteProduct handles POST /products/{id}/delete requests.
func (h *DashboardHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if err := h.service.OnDeleteProduct(r.Context(), id); err != nil {
		h.renderError(w, r, err)
		return
	}

	h.redirect(w, r, NoticeProductDeleted)
}

// SaveSnapshot handles POST /snapshots requests.
func (h *DashboardHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	location, err := h.service.SaveSnapshot(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.logger.Info().Str("location", location).Msg("snapshot requested from dashboard")
	h.redirect(w, r, NoticeSnapshotSaved)
}

// ExportCSV handles GET /export.csv requests.
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.WriteReport(r.Context(), &buf); err != nil {
		h.renderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *DashboardHandler) redirect(w http.ResponseWriter, r *http.Request, notice string) {
	http.Redirect(w, r, "/?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}

// renderError re-renders the page from a fresh read with err shown inline.
// A failing reload leaves the page empty apart from the message.
func (h *DashboardHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := classifyError(err)

	event := h.logger.Warn()
	if status >= http.StatusInternalServerError {
		event = h.logger.Error()
	}
	event.Err(err).
		Str("code", code).
		Int("status", status).
		Str("path", r.URL.Path).
		Msg("dashboard command failed")

	dashboard, loadErr := h.service.Load(r.Context())
	if loadErr != nil {
		h.logger.Error().Err(loadErr).Msg("failed to reload dashboard")
	}

	h.render(w, status, view.Page{Dashboard: dashboard, Error: message})
}

func (h *DashboardHandler) render(w http.ResponseWriter, status int, page view.Page) {
	page.SnapshotsEnabled = h.snapshots
	if err := h.renderer.Render(w, status, page); err != nil {
		h.logger.Error().Err(err).Msg("failed to render dashboard")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// parseProductForm reads the product form. Malformed numbers are reported
// as validation errors before any store call.
func parseProductForm(r *http.Request) (model.ProductForm, error) {
	if err := r.ParseForm(); err != nil {
		return model.ProductForm{}, model.NewValidationError("invalid form submission")
	}

	form := model.ProductForm{
		Name:         r.PostForm.Get("name"),
		CategoryName: r.PostForm.Get("category"),
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("quantity")))
	if err != nil {
		return model.ProductForm{}, model.NewValidationError("quantity must be a whole number")
	}
	form.Quantity = quantity

	price, err := decimal.NewFromString(strings.TrimSpace(r.PostForm.Get("price")))
	if err != nil {
		return model.ProductForm{}, model.NewValidationError("price must be a number")
	}
	form.Price = price

	return form, nil
}
