package handlers

import (
	"strings"
	"time"

	"willeasy/internal/config"
	"willeasy/internal/core/services"
	"willeasy/internal/pkg/response"
	"willeasy/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// SignupHandler handles the three step signup wizard
type SignupHandler struct {
	signup   services.SignupWizard
	sessions services.SessionSlot
	cfg      *config.Config
}

// NewSignupHandler creates a new signup handler
func NewSignupHandler(signup services.SignupWizard, sessions services.SessionSlot, cfg *config.Config) *SignupHandler {
	return &SignupHandler{
		signup:   signup,
		sessions: sessions,
		cfg:      cfg,
	}
}

// SignupStartRequest is step 1: who is registering
type SignupStartRequest struct {
	Username string `json:"username" validate:"required,username"`
	Aadhaar  string `json:"aadhaar" validate:"required,national_id"`
	PAN      string `json:"pan" validate:"required,tax_id"`
}

func (r *SignupStartRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Aadhaar = strings.TrimSpace(r.Aadhaar)
	r.PAN = strings.TrimSpace(r.PAN)
}

// SignupStartResponse carries the signup ID for the next steps
type SignupStartResponse struct {
	SignupID  string    `json:"signup_id"`
	ExpiresAt time.Time `json:"expires_at"`
	OTP       string    `json:"otp,omitempty"`
}

// SignupVerifyRequest is step 2: the OTP
type SignupVerifyRequest struct {
	SignupID string `json:"signup_id" validate:"required"`
	OTP      string `json:"otp" validate:"required,numeric"`
}

// SignupCompleteRequest is step 3: the password
type SignupCompleteRequest struct {
	SignupID        string `json:"signup_id" validate:"required"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	TermsAccepted   bool   `json:"terms_accepted"`
}

// Start handles signup step 1
// @Summary Start signup
// @Description Check username, Aadhaar and PAN and send an OTP
// @Tags Signup
// @Accept json
// @Produce json
// @Param body body SignupStartRequest true "Identity"
// @Success 200 {object} response.Response{data=SignupStartResponse}
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /signup/start [post]
func (h *SignupHandler) Start(c *fiber.Ctx) error {
	var req SignupStartRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err, "Failed to send OTP")
	}

	result, err := h.signup.Start(c.UserContext(), validation.Identity{
		Username:   req.Username,
		NationalID: req.Aadhaar,
		TaxID:      req.PAN,
	})
	if err != nil {
		return respondError(c, err, "Failed to send OTP")
	}

	return response.Success(c, "OTP sent", SignupStartResponse{
		SignupID:  result.SignupID,
		ExpiresAt: result.ExpiresAt,
		OTP:       result.DevCode,
	})
}

// Verify handles signup step 2
// @Summary Verify signup OTP
// @Description Confirm the OTP sent in step 1
// @Tags Signup
// @Accept json
// @Produce json
// @Param body body SignupVerifyRequest true "OTP"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /signup/verify [post]
func (h *SignupHandler) Verify(c *fiber.Ctx) error {
	var req SignupVerifyRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err, "Failed to verify OTP")
	}

	if err := h.signup.VerifyOTP(c.UserContext(), req.SignupID, req.OTP); err != nil {
		return respondError(c, err, "Failed to verify OTP")
	}

	return response.Success(c, "OTP verified", nil)
}

// Complete handles signup step 3 and signs the new account in
// @Summary Complete signup
// @Description Set the password, accept terms, create the account and sign in
// @Tags Signup
// @Accept json
// @Produce json
// @Param body body SignupCompleteRequest true "Password"
// @Success 201 {object} response.Response{data=SessionResponse}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /signup/complete [post]
func (h *SignupHandler) Complete(c *fiber.Ctx) error {
	var req SignupCompleteRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err, "Failed to complete signup")
	}

	account, err := h.signup.Complete(c.UserContext(), services.CompleteInput{
		SignupID:        req.SignupID,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		TermsAccepted:   req.TermsAccepted,
	})
	if err != nil {
		return respondError(c, err, "Failed to complete signup")
	}

	session, err := signInAndSetCookie(c, h.sessions, h.cfg, account)
	if err != nil {
		return respondError(c, err, "Failed to sign in")
	}

	return response.Created(c, "Account created successfully", session)
}
