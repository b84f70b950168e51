package http

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/httputil"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/pagination"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/validator"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/media"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/repository"
	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/service"
)

// AdminHandler serves the back-office catalog endpoints.
type AdminHandler struct {
	products *service.ProductService
	taxonomy *service.TaxonomyService
	uploader *media.Uploader
	logger   *slog.Logger
}

// NewAdminHandler creates an admin handler. uploader may be nil when no
// image host is configured.
func NewAdminHandler(products *service.ProductService, taxonomy *service.TaxonomyService, uploader *media.Uploader, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		products: products,
		taxonomy: taxonomy,
		uploader: uploader,
		logger:   logger,
	}
}

// --- Request DTOs ---

// CreateProductRequest is the JSON request body for creating a product.
type CreateProductRequest struct {
	Name          string        `json:"name" validate:"required,min=1,max=500"`
	Description   string        `json:"description"`
	Price         domain.Amount `json:"price" validate:"gte=0"`
	OriginalPrice domain.Amount `json:"original_price" validate:"gte=0"`
	Colors        []string      `json:"colors" validate:"omitempty,dive,hexcolor"`
	Sizes         []string      `json:"sizes"`
	CategoryID    *string       `json:"category_id" validate:"omitempty,uuid"`
	TagIDs        []string      `json:"tag_ids" validate:"omitempty,dive,uuid"`
	JustIn        bool          `json:"just_in"`
	DefaultImage  string        `json:"default_image" validate:"omitempty,url"`
	ImagePublicID string        `json:"image_public_id"`
}

// UpdateProductRequest is the JSON request body for updating a product.
type UpdateProductRequest struct {
	Name          *string        `json:"name" validate:"omitempty,min=1,max=500"`
	Description   *string        `json:"description"`
	Price         *domain.Amount `json:"price" validate:"omitempty,gte=0"`
	OriginalPrice *domain.Amount `json:"original_price" validate:"omitempty,gte=0"`
	Colors        []string       `json:"colors" validate:"omitempty,dive,hexcolor"`
	Sizes         []string       `json:"sizes"`
	CategoryID    *string        `json:"category_id" validate:"omitempty,uuid"`
	TagIDs        []string       `json:"tag_ids" validate:"omitempty,dive,uuid"`
	JustIn        *bool          `json:"just_in"`
	DefaultImage  *string        `json:"default_image" validate:"omitempty,url"`
	ImagePublicID *string        `json:"image_public_id"`
}

// CreateCategoryRequest is the JSON request body for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

// UpdateCategoryRequest is the JSON request body for updating a category.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

// CreateTagRequest is the JSON request body for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UploadImageRequest is the JSON request body for uploading an image.
type UploadImageRequest struct {
	Data        string `json:"data" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return false
	}
	if err := validator.Validate(dst); err != nil {
		httputil.WriteValidationError(w, err)
		return false
	}
	return true
}

// --- Products ---

// ListProducts handles GET /api/v1/admin/products.
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)
	filter := repository.ProductFilter{
		Page:    params.Page,
		PerPage: params.PerPage,
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		filter.CategoryID = &v
	}
	if v := r.URL.Query().Get("search"); v != "" {
		filter.Search = &v
	}

	products, total, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.NewResult(products, total, params),
	})
}

// GetProduct handles GET /api/v1/admin/products/{id}.
func (h *AdminHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// CreateProduct handles POST /api/v1/admin/products.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.products.CreateProduct(r.Context(), &service.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Colors:        req.Colors,
		Sizes:         req.Sizes,
		CategoryID:    req.CategoryID,
		TagIDs:        req.TagIDs,
		JustIn:        req.JustIn,
		DefaultImage:  req.DefaultImage,
		ImagePublicID: req.ImagePublicID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct handles PUT /api/v1/admin/products/{id}.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if !decodeBody(w, r, &req) {
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), chi.URLParam(r, "id"), &service.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Colors:        req.Colors,
		Sizes:         req.Sizes,
		CategoryID:    req.CategoryID,
		TagIDs:        req.TagIDs,
		JustIn:        req.JustIn,
		DefaultImage:  req.DefaultImage,
		ImagePublicID: req.ImagePublicID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// --- Categories ---

// ListCategories handles GET /api/v1/admin/categories.
func (h *AdminHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.taxonomy.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

// CreateCategory handles POST /api/v1/admin/categories.
func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.taxonomy.CreateCategory(r.Context(), &service.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: category})
}

// UpdateCategory handles PUT /api/v1/admin/categories/{id}.
func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	category, err := h.taxonomy.UpdateCategory(r.Context(), chi.URLParam(r, "id"), &service.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: category})
}

// DeleteCategory handles DELETE /api/v1/admin/categories/{id}.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.taxonomy.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// --- Tags ---

// ListTags handles GET /api/v1/admin/tags.
func (h *AdminHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.taxonomy.ListTags(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: tags})
}

// CreateTag handles POST /api/v1/admin/tags.
func (h *AdminHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tag, err := h.taxonomy.CreateTag(r.Context(), req.Name)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: tag})
}

// DeleteTag handles DELETE /api/v1/admin/tags/{id}.
func (h *AdminHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := h.taxonomy.DeleteTag(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// --- Media ---

// UploadImage handles POST /api/v1/admin/media.
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAVAILABLE", Message: "no image host configured"},
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 8<<20)

	var req UploadImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "data must be base64 encoded"},
		})
		return
	}

	upload, err := h.uploader.UploadImage(r.Context(), data, req.ContentType)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: upload})
}
