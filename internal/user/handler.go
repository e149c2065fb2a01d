// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/herooiboo/tenjaz/internal/core"
	"github.com/herooiboo/tenjaz/internal/upload"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/all", h.GetAll)
		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	var avatar *upload.File

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			core.BadRequest(w, "invalid multipart body")
			return
		}
		req = CreateUserRequest{
			Name:     r.FormValue("name"),
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
			Tier:     r.FormValue("tier"),
			IsActive: formBool(r, "is_active"),
		}
		var err error
		avatar, err = upload.FromRequest(r, "avatar")
		if err != nil {
			core.BadRequest(w, "invalid avatar upload")
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

	u, err := h.service.Create(r.Context(), req, avatar)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.CreatedMessage(w, ToUserResponse(u), "user created")
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	u, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ToUserResponse(u))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	var avatar *upload.File

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			core.BadRequest(w, "invalid multipart body")
			return
		}
		req = UpdateUserRequest{
			Name:     formString(r, "name"),
			Username: formString(r, "username"),
			Password: formString(r, "password"),
			Tier:     formString(r, "tier"),
			IsActive: formBool(r, "is_active"),
		}
		var err error
		avatar, err = upload.FromRequest(r, "avatar")
		if err != nil {
			core.BadRequest(w, "invalid avatar upload")
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

	u, err := h.service.Update(r.Context(), id, req, avatar)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OKMessage(w, ToUserResponse(u), "user updated")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
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

	users, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	params.Normalize(h.service.pageSize)
	core.Paginated(w, ToUserResponseList(users), params.Page, params.PageSize, total)
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAll(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToUserResponseList(users))
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.JSONError(w, core.NotFoundError("user"))
	case errors.Is(err, core.ErrDuplicateKey):
		core.JSONError(w, core.DuplicateError("username"))
	case errors.Is(err, core.ErrUnsupportedType):
		core.JSONError(w, core.UnsupportedTypeError("avatar"))
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid tier")
	default:
		core.InternalServerError(w, err)
	}
}

const maxUploadMemory = 32 << 20

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || id < 1 {
		core.BadRequest(w, "invalid user id")
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
