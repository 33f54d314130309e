package controllers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"medizo/config"
	"medizo/middleware"
	"medizo/models"
	"medizo/store"
	"medizo/utils"
)

// AdminAuthController handles the two-step back-office login: password check
// first, then the static verify code, which is what actually mints the token.
type AdminAuthController struct {
	users  store.UserStore
	cfg    *config.Config
	logger zerolog.Logger
}

func NewAdminAuthController(users store.UserStore, cfg *config.Config, logger zerolog.Logger) *AdminAuthController {
	return &AdminAuthController{users: users, cfg: cfg, logger: logger}
}

// Login checks admin credentials against the environment admin or a stored
// admin account. Success only signals that the verify code is required next.
func (ac *AdminAuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if body.Email == "" || body.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	email := normalizeEmail(body.Email)

	// Environment-configured admin.
	if ac.cfg.AdminEmail != "" &&
		email == normalizeEmail(ac.cfg.AdminEmail) &&
		constantTimeEqual(body.Password, ac.cfg.AdminPassword) {
		utils.WriteJSON(w, http.StatusOK, map[string]bool{"requiresCode": true})
		return
	}

	// Stored admin account.
	user, err := ac.users.GetByEmail(r.Context(), email)
	if err == nil && user.Role == models.RoleAdmin && utils.VerifyPassword(user.PasswordHash, body.Password) {
		utils.WriteJSON(w, http.StatusOK, map[string]bool{"requiresCode": true})
		return
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		ac.logger.Error().Err(err).Msg("admin login lookup")
	}

	utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
}

// Verify exchanges the admin email and verify code for an admin token.
func (ac *AdminAuthController) Verify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if ac.cfg.AdminEmail == "" || ac.cfg.AdminCode == "" ||
		normalizeEmail(body.Email) != normalizeEmail(ac.cfg.AdminEmail) ||
		!constantTimeEqual(body.Code, ac.cfg.AdminCode) {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid code")
		return
	}

	token, err := utils.GenerateAdminToken(normalizeEmail(body.Email))
	if err != nil {
		ac.logger.Error().Err(err).Msg("generate admin token")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Me returns the authenticated admin identity.
func (ac *AdminAuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"email": claims.Subject,
		"role":  models.RoleAdmin,
	})
}

// Users lists all registered accounts without credentials.
func (ac *AdminAuthController) Users(w http.ResponseWriter, r *http.Request) {
	users, err := ac.users.List(r.Context())
	if err != nil {
		ac.logger.Error().Err(err).Msg("list users")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	sanitized := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Public())
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": sanitized})
}
