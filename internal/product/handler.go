// AngelaMos | 2026
// handler.go

package product

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/herooiboo/tenjaz/internal/core"
	"github.com/herooiboo/tenjaz/internal/middleware"
	"github.com/herooiboo/tenjaz/internal/pricing"
	"github.com/herooiboo/tenjaz/internal/upload"
)

type Handler struct {
	service    *Service
	calculator *pricing.Calculator
	validator  *validator.Validate
}

func NewHandler(service *Service, calculator *pricing.Calculator) *Handler {
	return &Handler{
		service:    service,
		calculator: calculator,
		validator:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/products", func(r chi.Router) {
		// Slug lookup is public; anonymous viewers see base prices.
		r.With(optionalAuth).Get("/s/{slug}", h.GetBySlug)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Get("/all", h.GetAll)
			r.Route("/{productID}", func(r chi.Router) {
				r.Get("/", h.Get)
				r.Put("/", h.Update)
				r.Delete("/", h.Delete)
			})
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	var image *upload.File

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			core.BadRequest(w, "invalid multipart body")
			return
		}
		price, err := decimal.NewFromString(r.FormValue("price"))
		if err != nil {
			core.BadRequest(w, "invalid price")
			return
		}
		req = CreateProductRequest{
			Name:        r.FormValue("name"),
			Description: formString(r, "description"),
			Price:       price,
			IsActive:    formBool(r, "is_active"),
		}
		image, err = upload.FromRequest(r, "image")
		if err != nil {
			core.BadRequest(w, "invalid image upload")
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	if image == nil {
		core.FieldErrors(w, map[string][]string{
			"image": {"this field is required"},
		})
		return
	}
	if !validImageSize(w, image) {
		return
	}

	p, err := h.service.Create(r.Context(), req, image)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	tier := middleware.GetUserTier(r.Context())
	core.CreatedMessage(w, ToProductResponse(p, h.calculator, tier), "product created")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProductID(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	tier := middleware.GetUserTier(r.Context())
	core.OK(w, ToProductResponse(p, h.calculator, tier))
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	tier := middleware.GetUserTier(r.Context())
	core.OK(w, ToProductResponse(p, h.calculator, tier))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProductID(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	var image *upload.File

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			core.BadRequest(w, "invalid multipart body")
			return
		}
		req = UpdateProductRequest{
			Name:        formString(r, "name"),
			Description: formString(r, "description"),
			IsActive:    formBool(r, "is_active"),
		}
		if raw := formString(r, "price"); raw != nil {
			price, err := decimal.NewFromString(*raw)
			if err != nil {
				core.BadRequest(w, "invalid price")
				return
			}
			req.Price = &price
		}
		var err error
		image, err = upload.FromRequest(r, "image")
		if err != nil {
			core.BadRequest(w, "invalid image upload")
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	if image != nil && !validImageSize(w, image) {
		return
	}

	p, err := h.service.Update(r.Context(), id, req, image)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	tier := middleware.GetUserTier(r.Context())
	core.OKMessage(w, ToProductResponse(p, h.calculator, tier), "product updated")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProductID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "page_size"),
	}

	products, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	tier := middleware.GetUserTier(r.Context())
	params.Normalize(h.service.pageSize)
	core.Paginated(w, ToProductResponseList(products, h.calculator, tier), params.Page, params.PageSize, total)
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAll(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	tier := middleware.GetUserTier(r.Context())
	core.OK(w, ToProductResponseList(products, h.calculator, tier))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.JSONError(w, core.NotFoundError("product"))
	case errors.Is(err, core.ErrDuplicateKey):
		core.JSONError(w, core.DuplicateError("name"))
	case errors.Is(err, core.ErrUnsupportedType):
		core.JSONError(w, core.UnsupportedTypeError("image"))
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid price")
	default:
		core.InternalServerError(w, err)
	}
}

const (
	maxUploadMemory = 32 << 20
	maxImageBytes   = 2 << 20
)

func validImageSize(w http.ResponseWriter, image *upload.File) bool {
	if len(image.Data) > maxImageBytes {
		core.FieldErrors(w, map[string][]string{
			"image": {"must be at most 2MB"},
		})
		return false
	}
	return true
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func parseProductID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid product id")
		return 0, false
	}
	return id, true
}

func formString(r *http.Request, key string) *string {
	if _, ok := r.Form[key]; !ok {
		return nil
	}
	v := r.FormValue(key)
	return &v
}

func formBool(r *http.Request, key string) *bool {
	if _, ok := r.Form[key]; !ok {
		return nil
	}
	v, err := strconv.ParseBool(r.FormValue(key))
	if err != nil {
		return nil
	}
	return &v
}

func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
