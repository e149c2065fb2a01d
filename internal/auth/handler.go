// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/herooiboo/tenjaz/internal/core"
	"github.com/herooiboo/tenjaz/internal/middleware"
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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	guestOnly func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(guestOnly)
		r.Post("/login", h.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/logout", h.Logout)
		r.Post("/logout-all", h.LogoutAll)
		r.Route("/auth/sessions", func(r chi.Router) {
			r.Get("/", h.GetSessions)
			r.Delete("/{sessionID}", h.RevokeSession)
		})
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	userAgent := r.UserAgent()
	ipAddress := extractIPAddress(r)

	resp, err := h.service.Login(r.Context(), req, userAgent, ipAddress)
	if err != nil {
		switch {
		// Unknown account and wrong password answer identically so
		// usernames cannot be enumerated.
		case errors.Is(err, core.ErrNotFound),
			errors.Is(err, core.ErrInvalidCredentials):
			core.JSONError(w, core.InvalidCredentialsError())
		case errors.Is(err, core.ErrInactive):
			core.JSONError(w, core.InactiveAccountError())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OKMessage(w, resp, "logged in")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	token := middleware.ExtractToken(r)

	revoked, err := h.service.Logout(r.Context(), userID, token)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OKMessage(w, LogoutResponse{Revoked: revoked}, "logged out")
}

func (h *Handler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	revoked, err := h.service.LogoutAll(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OKMessage(w, LogoutResponse{Revoked: revoked}, "logged out everywhere")
}

func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	currentTokenID := middleware.GetTokenID(ctx)

	sessions, err := h.service.Sessions(ctx, userID, currentTokenID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, sessions)
}

func (h *Handler) RevokeSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(chi.URLParam(r, "sessionID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid session id")
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.service.RevokeSession(r.Context(), userID, sessionID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.JSONError(w, core.NotFoundError("session"))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func extractIPAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[len(ips)-1])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
