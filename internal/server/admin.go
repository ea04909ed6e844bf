package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	goahttp "goa.design/goa/v3/http"
	"go.uber.org/zap"

	"portfolio/internal/domain"
	"portfolio/internal/services"
	"portfolio/internal/util"
	apperrors "portfolio/pkg/errors"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

type claimsKey struct{}

// ClaimsFromContext returns the token claims stored by RequireStaff
func ClaimsFromContext(ctx context.Context) (*util.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*util.Claims)
	return claims, ok
}

// AdminHandler serves the admin login and submission listing
type AdminHandler struct {
	auth    *services.AuthService
	contact *services.ContactService
	log     *zap.Logger
}

// NewAdminHandler creates the admin handlers
func NewAdminHandler(auth *services.AuthService, contact *services.ContactService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{auth: auth, contact: contact, log: logger.Named("admin")}
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges admin credentials for a bearer token
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var body loginBody
	if err := goahttp.RequestDecoder(r).Decode(&body); err != nil {
		writeMessage(w, r, h.log, http.StatusBadRequest, false, "username and password are required")
		return
	}

	res, err := h.auth.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeUnauthorized) {
			writeMessage(w, r, h.log, http.StatusUnauthorized, false, "incorrect username or password")
			return
		}
		writeMessage(w, r, h.log, http.StatusInternalServerError, false, MessageServerErr)
		return
	}

	writeJSON(w, r, h.log, http.StatusOK, res)
}

// ListSubmissions returns stored submissions, newest first
func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil || skip < 0 {
		writeMessage(w, r, h.log, http.StatusBadRequest, false, "skip must be a non-negative integer")
		return
	}
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil || limit < 1 || limit > maxListLimit {
		writeMessage(w, r, h.log, http.StatusBadRequest, false, "limit must be between 1 and 1000")
		return
	}

	if claims, ok := ClaimsFromContext(r.Context()); ok {
		h.log.Info("listing submissions", zap.String("username", claims.Username), zap.Int("skip", skip), zap.Int("limit", limit))
	}

	inquiries, err := h.contact.List(r.Context(), skip, limit)
	if err != nil {
		switch apperrors.CodeOf(err) {
		case apperrors.ErrCodeNotFound:
			message := "Not found"
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) {
				message = appErr.Message
			}
			writeMessage(w, r, h.log, http.StatusNotFound, false, message)
		case apperrors.ErrCodeStoreUnavailable:
			writeMessage(w, r, h.log, http.StatusServiceUnavailable, false, MessageServerErr)
		default:
			writeMessage(w, r, h.log, http.StatusInternalServerError, false, MessageServerErr)
		}
		return
	}

	if inquiries == nil {
		inquiries = []domain.ContactInquiry{}
	}
	writeJSON(w, r, h.log, http.StatusOK, inquiries)
}

// RequireStaff rejects requests without a valid staff bearer token
func (h *AdminHandler) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeMessage(w, r, h.log, http.StatusUnauthorized, false, "Authorization header required")
			return
		}

		claims, err := h.auth.Authorize(r.Context(), strings.TrimSpace(token))
		if err != nil {
			h.log.Info("rejected token", zap.String("path", r.URL.Path), zap.Error(err))
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
			writeMessage(w, r, h.log, http.StatusUnauthorized, false, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
