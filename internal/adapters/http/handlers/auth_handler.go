package handlers

import (
	"errors"
	"strings"
	"time"

	"willeasy/internal/adapters/http/middleware"
	"willeasy/internal/config"
	"willeasy/internal/core/domain"
	"willeasy/internal/core/services"
	"willeasy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	accounts services.AccountDirectory
	sessions services.SessionSlot
	cfg      *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts services.AccountDirectory, sessions services.SessionSlot, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		cfg:      cfg,
	}
}

// RegisterRequest represents registration request body.
// Field order is the order errors are reported in.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Aadhaar  string `json:"aadhaar" validate:"required,national_id"`
	PAN      string `json:"pan" validate:"required,tax_id"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *RegisterRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Aadhaar = strings.TrimSpace(r.Aadhaar)
	r.PAN = strings.TrimSpace(r.PAN)
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles account registration
// @Summary Register new account
// @Description Register a preparer account with email or mobile, Aadhaar and PAN, then sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response{data=SessionResponse}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err, "Failed to register")
	}

	account, err := h.accounts.Register(c.UserContext(), services.RegisterInput{
		Username:   req.Username,
		Password:   req.Password,
		NationalID: req.Aadhaar,
		TaxID:      req.PAN,
	})
	if err != nil {
		return respondError(c, err, "Failed to register")
	}

	session, err := h.signIn(c, account)
	if err != nil {
		return respondError(c, err, "Failed to sign in")
	}

	return response.Created(c, "Account registered successfully", session)
}

// Login handles sign-in
// @Summary Sign in
// @Description Authenticate with username and password and open a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response{data=SessionResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err, "Failed to login")
	}

	account, err := h.accounts.Authenticate(c.UserContext(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		return respondError(c, err, "Failed to login")
	}

	session, err := h.signIn(c, account)
	if err != nil {
		return respondError(c, err, "Failed to login")
	}

	return response.Success(c, "Login successful", session)
}

// Logout handles sign-out
// @Summary Sign out
// @Description Close the current session
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := middleware.TokenFromRequest(c); token != "" {
		err := h.sessions.SignOut(c.UserContext(), token)
		if err != nil && !errors.Is(err, domain.ErrSessionNotFound) && !errors.Is(err, domain.ErrSessionExpired) {
			return respondError(c, err, "Failed to logout")
		}
	}

	h.clearSessionCookie(c)

	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current account
// @Summary Get current account
// @Description Get the signed-in account
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=AccountResponse}
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	account, err := h.accounts.GetByID(c.UserContext(), session.AccountID)
	if err != nil {
		return respondError(c, err, "Failed to load account")
	}

	return response.Success(c, "Account retrieved successfully", NewAccountResponse(account))
}

// signIn opens a session for account and sets the session cookie
func (h *AuthHandler) signIn(c *fiber.Ctx, account *domain.Account) (*SessionResponse, error) {
	return signInAndSetCookie(c, h.sessions, h.cfg, account)
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// signInAndSetCookie is shared by login, register and signup completion
func signInAndSetCookie(c *fiber.Ctx, sessions services.SessionSlot, cfg *config.Config, account *domain.Account) (*SessionResponse, error) {
	token, session, err := sessions.SignIn(c.UserContext(), account)
	if err != nil {
		return nil, err
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})

	return &SessionResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      NewAccountResponse(account),
	}, nil
}
