package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/rajeshbyreddy95/server/internal/auth"
	"github.com/rajeshbyreddy95/server/internal/common/errors"
	"github.com/rajeshbyreddy95/server/internal/common/logging"
	"github.com/rajeshbyreddy95/server/internal/storage"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type signupRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type publicUser struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  publicUser `json:"user"`
}

// Signup creates a new account. Validation order is fixed: required
// fields, email format, password length, password match, uniqueness
// (email before username), then hash and persist.
// @Summary Register a new account
// @Accept json
// @Produce json
// @Success 201 {object} handlers.messageResponse
// @Failure 400 {object} handlers.messageResponse
// @Failure 503 {object} handlers.messageResponse
// @Router /auth/signup [post]
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Health(r.Context()); err != nil {
		h.respondMessage(w, http.StatusServiceUnavailable, "Database unavailable, please try again later")
		return
	}

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Username == "" || req.Name == "" || req.Password == "" || req.ConfirmPassword == "" {
		h.respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	if !emailPattern.MatchString(req.Email) {
		h.respondMessage(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	if len(req.Password) < 6 {
		h.respondMessage(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	if req.Password != req.ConfirmPassword {
		h.respondMessage(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	existing, err := h.storage.FindUserByEmailOrUsername(r.Context(), req.Email, req.Username)
	if err != nil && !errors.IsType(err, errors.ErrTypeNotFound) {
		h.respondError(w, r, err, "Failed to register user")
		return
	}
	if existing != nil {
		if existing.Email == normalizedEmail(req.Email) {
			h.respondMessage(w, http.StatusBadRequest, "Email already exists")
		} else {
			h.respondMessage(w, http.StatusBadRequest, "Username already exists")
		}
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.respondError(w, r, err, "Failed to register user")
		return
	}

	user := &storage.User{
		Email:    req.Email,
		Username: req.Username,
		Name:     req.Name,
		Password: hashed,
	}
	if err := h.storage.CreateUser(r.Context(), user); err != nil {
		h.respondError(w, r, err, "Failed to register user")
		return
	}

	h.logger.Info("user registered", logging.String("username", user.Username))
	h.respondMessage(w, http.StatusCreated, "User registered successfully")
}

// Login verifies credentials and issues a bearer token. The response
// never distinguishes an unknown email from a wrong password.
// @Summary Log in
// @Accept json
// @Produce json
// @Success 200 {object} handlers.loginResponse
// @Failure 400 {object} handlers.messageResponse
// @Router /auth/login [post]
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		h.respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.storage.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.IsType(err, errors.ErrTypeNotFound) {
			h.respondMessage(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		h.respondError(w, r, err, "Failed to log in")
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		h.respondMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.auth.GenerateToken(user.ID.Hex())
	if err != nil {
		h.respondError(w, r, err, "Failed to log in")
		return
	}

	h.respondJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User: publicUser{
			Name:     user.Name,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

// Me returns the authenticated account's public fields.
// @Summary Get current account
// @Produce json
// @Success 200 {object} handlers.publicUser
// @Failure 401 {object} handlers.messageResponse
// @Router /auth/me [get]
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.VerifyBearer(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		h.respondError(w, r, err, "Failed to load account")
		return
	}

	h.respondJSON(w, http.StatusOK, publicUser{
		Name:     user.Name,
		Username: user.Username,
		Email:    user.Email,
	})
}
