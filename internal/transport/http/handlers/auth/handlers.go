package authhandler

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kyronix/internal/domain/audit"
	"kyronix/internal/domain/auth"
	"kyronix/internal/platform/config"
	"kyronix/internal/platform/email"
	"kyronix/internal/transport/http/api"
	"kyronix/internal/transport/http/middleware"
)

type Handler struct {
	Store  *auth.Store
	Cfg    config.Config
	Mailer email.Mailer
	Audit  *audit.Recorder
}

func NewHandler(db *pgxpool.Pool, cfg config.Config, mailer email.Mailer) *Handler {
	return &Handler{
		Store:  auth.NewStore(db),
		Cfg:    cfg,
		Mailer: mailer,
		Audit:  audit.New(db),
	}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token            string `json:"token"`
	UserID           string `json:"userId"`
	Role             string `json:"role"`
	EmploymentStatus string `json:"employmentStatus"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_credentials", "email and password are required", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Store.FindUserByEmail(r.Context(), payload.Email)
	if err != nil || auth.CheckPassword(user.PasswordHash, payload.Password) != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
		return
	}

	token, err := auth.GenerateToken(h.Cfg.JWTSecret, auth.Claims{
		UserID:           user.ID,
		Role:             user.Role,
		EmploymentStatus: user.EmploymentStatus,
	}, h.Cfg.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_failed", "failed to issue token", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Store.UpdateLastLogin(r.Context(), user.ID); err != nil {
		slog.Warn("last login update failed", "err", err)
	}

	api.Success(w, loginResponse{
		Token:            token,
		UserID:           user.ID,
		Role:             user.Role,
		EmploymentStatus: user.EmploymentStatus,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; logout is client-side discard.
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

type requestResetPayload struct {
	Email string `json:"email"`
}

func (h *Handler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	var payload requestResetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	payload.Email = strings.TrimSpace(strings.ToLower(payload.Email))

	// Respond identically whether or not the account exists.
	response := map[string]string{"status": "reset_requested"}

	user, err := h.Store.FindUserByEmail(r.Context(), payload.Email)
	if err != nil {
		api.Success(w, response, middleware.GetRequestID(r.Context()))
		return
	}

	token := uuid.NewString()
	expires := time.Now().Add(h.Cfg.ResetTokenTTL)
	if err := h.Store.CreatePasswordReset(r.Context(), user.ID, hashToken(token), expires); err != nil {
		api.Fail(w, http.StatusInternalServerError, "reset_failed", "failed to create reset token", middleware.GetRequestID(r.Context()))
		return
	}

	body := "A password reset was requested for your Kyronix portal account.\n\n" +
		"Reset token: " + token + "\n\n" +
		"The token expires at " + expires.UTC().Format(time.RFC3339) + "."
	if err := h.Mailer.Send(r.Context(), h.Cfg.EmailFrom, user.Email, "Password reset", body); err != nil {
		slog.Warn("reset email send failed", "err", err)
	}

	api.Success(w, response, middleware.GetRequestID(r.Context()))
}

type resetPayload struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload resetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.NewPassword) < 8 {
		api.Fail(w, http.StatusBadRequest, "weak_password", "password must be at least 8 characters", middleware.GetRequestID(r.Context()))
		return
	}

	tokenHash := hashToken(strings.TrimSpace(payload.Token))
	userID, err := h.Store.PasswordResetUserID(r.Context(), tokenHash)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_token", "reset token is invalid or expired", middleware.GetRequestID(r.Context()))
		return
	}

	hash, err := auth.HashPassword(payload.NewPassword)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "reset_failed", "failed to reset password", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.UpdateUserPassword(r.Context(), userID, hash); err != nil {
		api.Fail(w, http.StatusInternalServerError, "reset_failed", "failed to reset password", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Store.MarkPasswordResetUsed(r.Context(), tokenHash); err != nil {
		slog.Warn("mark reset used failed", "err", err)
	}
	if err := h.Audit.Record(r.Context(), userID, audit.EventPasswordReset, "user", userID, middleware.GetRequestID(r.Context()), nil); err != nil {
		slog.Warn("audit write failed", "event", audit.EventPasswordReset, "err", err)
	}

	api.Success(w, map[string]string{"status": "password_reset"}, middleware.GetRequestID(r.Context()))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
