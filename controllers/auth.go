package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"medizo/middleware"
	"medizo/models"
	"medizo/store"
	"medizo/utils"
)

// AuthController handles shopper signup, login and profile lookup.
type AuthController struct {
	users  store.UserStore
	logger zerolog.Logger
}

func NewAuthController(users store.UserStore, logger zerolog.Logger) *AuthController {
	return &AuthController{users: users, logger: logger}
}

type authResponse struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Signup registers a new account and returns a token for it.
func (ac *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if body.Name == "" || body.Email == "" || body.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	passwordHash, err := utils.HashPassword(body.Password)
	if err != nil {
		ac.logger.Error().Err(err).Msg("hash password")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	user := models.User{
		Name:         body.Name,
		Email:        normalizeEmail(body.Email),
		PasswordHash: passwordHash,
		Phone:        body.Phone,
		Role:         models.RoleUser,
	}

	if err := ac.users.Create(r.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			utils.WriteError(w, http.StatusConflict, "Email already registered")
			return
		}
		ac.logger.Error().Err(err).Msg("create user")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := utils.GenerateUserToken(user.ID)
	if err != nil {
		ac.logger.Error().Err(err).Msg("generate token")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, authResponse{Token: token, User: user.Public()})
}

// Login authenticates an account. Unknown emails and wrong passwords produce
// the same response, so the endpoint does not leak which emails exist.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
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

	user, err := ac.users.GetByEmail(r.Context(), normalizeEmail(body.Email))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			ac.logger.Error().Err(err).Msg("find user")
		}
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !utils.VerifyPassword(user.PasswordHash, body.Password) {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateUserToken(user.ID)
	if err != nil {
		ac.logger.Error().Err(err).Msg("generate token")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, authResponse{Token: token, User: user.Public()})
}

// Me returns the authenticated user's profile.
func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := ac.users.GetByID(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		ac.logger.Error().Err(err).Msg("find user")
		utils.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, user.Public())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
