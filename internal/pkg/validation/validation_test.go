package validation

import (
	"errors"
	"testing"

	"willeasy/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) bool
		in    string
		want  bool
	}{
		{"national id 12 digits", IsValidNationalID, "123456789012", true},
		{"national id short", IsValidNationalID, "12345", false},
		{"national id 13 digits", IsValidNationalID, "1234567890123", false},
		{"national id letters", IsValidNationalID, "12345678901a", false},
		{"national id non-ascii digits", IsValidNationalID, "१२३४५६७८९०१२", false},
		{"national id trailing newline", IsValidNationalID, "123456789012\n", false},
		{"tax id", IsValidTaxID, "ABCDE1234F", true},
		{"tax id lowercase", IsValidTaxID, "abcde1234f", false},
		{"tax id wrong layout", IsValidTaxID, "ABCD12345F", false},
		{"tax id too long", IsValidTaxID, "ABCDE1234FG", false},
		{"mobile", IsValidMobile, "9876543210", true},
		{"mobile short", IsValidMobile, "987654321", false},
		{"mobile with plus", IsValidMobile, "+919876543", false},
		{"email", IsValidEmail, "user@example.com", true},
		{"email loose subdomain", IsValidEmail, "a@b.c", true},
		{"email loose symbols", IsValidEmail, "we!rd@do#main.x", true},
		{"email missing at", IsValidEmail, "bad-email", false},
		{"email missing dot", IsValidEmail, "user@example", false},
		{"email whitespace", IsValidEmail, "us er@example.com", false},
		{"email two ats", IsValidEmail, "a@b@c.com", false},
		{"email empty", IsValidEmail, "", false},
		{"username email", IsValidUsername, "user@will.com", true},
		{"username mobile", IsValidUsername, "9876543210", true},
		{"username neither", IsValidUsername, "someone", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.in))
			// pure: same input, same output
			assert.Equal(t, tt.check(tt.in), tt.check(tt.in))
		})
	}
}

func TestCheckIdentity(t *testing.T) {
	valid := Identity{Username: "user@example.com", NationalID: "123456789012", TaxID: "ABCDE1234F"}
	require.NoError(t, CheckIdentity(valid))

	tests := []struct {
		name  string
		mut   func(*Identity)
		field string
	}{
		{"empty username", func(i *Identity) { i.Username = "" }, "username"},
		{"bad username", func(i *Identity) { i.Username = "nobody" }, "username"},
		{"empty aadhaar", func(i *Identity) { i.NationalID = "" }, "aadhaar"},
		{"bad aadhaar", func(i *Identity) { i.NationalID = "12345" }, "aadhaar"},
		{"empty pan", func(i *Identity) { i.TaxID = "" }, "pan"},
		{"bad pan", func(i *Identity) { i.TaxID = "abcde1234f" }, "pan"},
		{"username checked first", func(i *Identity) { i.Username = "x"; i.TaxID = "" }, "username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mut(&in)
			err := CheckIdentity(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidationFailed)

			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestCheckPassword(t *testing.T) {
	require.NoError(t, CheckPassword("secret1", "secret1", true))

	var ve *domain.ValidationError
	require.True(t, errors.As(CheckPassword("short", "short", true), &ve))
	assert.Equal(t, "password", ve.Field)

	require.True(t, errors.As(CheckPassword("secret1", "secret2", true), &ve))
	assert.Equal(t, "confirm_password", ve.Field)

	require.True(t, errors.As(CheckPassword("secret1", "secret1", false), &ve))
	assert.Equal(t, "terms_accepted", ve.Field)
}

type identityRequest struct {
	Username string `json:"username" validate:"required,username"`
	Aadhaar  string `json:"aadhaar" validate:"required,national_id"`
	PAN      string `json:"pan" validate:"required,tax_id"`
	Mobile   string `json:"mobile,omitempty" validate:"omitempty,mobile"`
	Email    string `json:"email,omitempty" validate:"omitempty,loose_email"`
}

func TestValidator_CustomTags(t *testing.T) {
	v := New()

	ok := identityRequest{Username: "9876543210", Aadhaar: "123456789012", PAN: "ABCDE1234F"}
	require.NoError(t, v.Struct(ok))

	bad := ok
	bad.PAN = "abcde1234f"
	err := FirstFieldError(v.Struct(bad))
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "pan", ve.Field)
	assert.Equal(t, "Invalid PAN format (e.g. ABCDE1234F)", ve.Reason)

	bad = ok
	bad.Email = "bad-email"
	err = FirstFieldError(v.Struct(bad))
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "email", ve.Field)

	assert.NoError(t, FirstFieldError(nil))
}

func TestValidator_TagsMatchIdentityGate(t *testing.T) {
	v := New()
	valid := identityRequest{Username: "user@will.com", Aadhaar: "123456789012", PAN: "ABCDE1234F"}

	tests := []struct {
		name   string
		mutate func(r *identityRequest)
	}{
		{"username missing", func(r *identityRequest) { r.Username = "" }},
		{"username malformed", func(r *identityRequest) { r.Username = "user@will" }},
		{"aadhaar missing", func(r *identityRequest) { r.Aadhaar = "" }},
		{"aadhaar short", func(r *identityRequest) { r.Aadhaar = "12345" }},
		{"pan missing", func(r *identityRequest) { r.PAN = "" }},
		{"pan lowercase", func(r *identityRequest) { r.PAN = "abcde1234f" }},
		{"username and pan", func(r *identityRequest) { r.Username = "x"; r.PAN = "bad" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			var fromTags, fromGate *domain.ValidationError
			require.True(t, errors.As(FirstFieldError(v.Struct(req)), &fromTags))
			require.True(t, errors.As(CheckIdentity(Identity{
				Username:   req.Username,
				NationalID: req.Aadhaar,
				TaxID:      req.PAN,
			}), &fromGate))

			assert.Equal(t, fromGate.Field, fromTags.Field)
			assert.Equal(t, fromGate.Reason, fromTags.Reason)
		})
	}
}
