// Package validation holds the field format checks run before registration.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"willeasy/internal/core/domain"

	"github.com/go-playground/validator/v10"
)

// The patterns are intentionally loose; the email check is not RFC 5322.
var (
	nationalIDPattern = regexp.MustCompile(`^[0-9]{12}$`)
	taxIDPattern      = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	mobilePattern     = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsValidNationalID checks for exactly 12 ASCII digits (Aadhaar)
func IsValidNationalID(s string) bool {
	return nationalIDPattern.MatchString(s)
}

// IsValidTaxID checks the PAN layout: 5 uppercase letters, 4 digits, 1 uppercase letter
func IsValidTaxID(s string) bool {
	return taxIDPattern.MatchString(s)
}

// IsValidMobile checks for exactly 10 ASCII digits
func IsValidMobile(s string) bool {
	return mobilePattern.MatchString(s)
}

// IsValidEmail checks for local@domain.tld with no whitespace
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidUsername accepts an email or a mobile number
func IsValidUsername(s string) bool {
	return IsValidEmail(s) || IsValidMobile(s)
}

// Identity is the first signup step: who is registering
type Identity struct {
	Username   string
	NationalID string
	TaxID      string
}

// CheckIdentity runs the registration gate and reports the first failing field
func CheckIdentity(id Identity) error {
	if id.Username == "" {
		return domain.NewValidationError("username", "Username is required")
	}
	if !IsValidUsername(id.Username) {
		return domain.NewValidationError("username", "Please enter a valid Email or 10-digit Mobile Number")
	}
	if id.NationalID == "" {
		return domain.NewValidationError("aadhaar", "Aadhaar is required")
	}
	if !IsValidNationalID(id.NationalID) {
		return domain.NewValidationError("aadhaar", "Aadhaar must be 12 digits")
	}
	if id.TaxID == "" {
		return domain.NewValidationError("pan", "PAN is required")
	}
	if !IsValidTaxID(id.TaxID) {
		return domain.NewValidationError("pan", "Invalid PAN format (e.g. ABCDE1234F)")
	}
	return nil
}

// MinPasswordLength is the shortest secret accepted at signup
const MinPasswordLength = 6

// CheckPassword runs the final signup step checks
func CheckPassword(password, confirm string, termsAccepted bool) error {
	if len(password) < MinPasswordLength {
		return domain.NewValidationError("password", "Password must be at least 6 characters")
	}
	if password != confirm {
		return domain.NewValidationError("confirm_password", "Passwords do not match")
	}
	if !termsAccepted {
		return domain.NewValidationError("terms_accepted", "Please accept Terms & Conditions")
	}
	return nil
}

// New returns a struct validator with the identity tags registered:
// national_id, tax_id, mobile, loose_email and username.
// Field names in errors follow the json tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	register := func(tag string, fn func(string) bool) {
		// only fails on an empty tag or nil func
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	register("national_id", IsValidNationalID)
	register("tax_id", IsValidTaxID)
	register("mobile", IsValidMobile)
	register("loose_email", IsValidEmail)
	register("username", IsValidUsername)
	return v
}

// fieldLabels are the names shown in generic tag messages
var fieldLabels = map[string]string{
	"username":  "Username",
	"aadhaar":   "Aadhaar",
	"pan":       "PAN",
	"password":  "Password",
	"language":  "Language",
	"status":    "Status",
	"signup_id": "Signup ID",
	"otp":       "OTP",
}

// FirstFieldError converts a validator error into a ValidationError for the first failing field
func FirstFieldError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.NewValidationError(fe.Field(), fieldMessage(fe))
	}
	return domain.NewValidationError("request", err.Error())
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "username":
		return "Please enter a valid Email or 10-digit Mobile Number"
	case "national_id":
		return "Aadhaar must be 12 digits"
	case "tax_id":
		return "Invalid PAN format (e.g. ABCDE1234F)"
	case "mobile":
		return "Mobile number must be 10 digits"
	case "loose_email":
		return "Please enter a valid Email"
	case "min":
		return label + " must be at least " + fe.Param() + " characters"
	case "oneof":
		return label + " must be one of: " + fe.Param()
	case "numeric":
		return label + " must contain digits only"
	default:
		return label + " failed " + fe.Tag() + " check"
	}
}
