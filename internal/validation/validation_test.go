package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"ali@test.com", "a@b.c", "first.last@sub.domain.pk", "a@b@c.d"}
	for _, s := range valid {
		assert.True(t, IsValidEmail(s), s)
	}

	invalid := []string{"", "ali", "ali@test", "@.", "ali @test.com", "ali@test .com", "ali@.", "ali@test."}
	for _, s := range invalid {
		assert.False(t, IsValidEmail(s), s)
	}
}

func TestIsValidLocalPhone(t *testing.T) {
	assert.True(t, IsValidLocalPhone("03123456789"))
	assert.True(t, IsValidLocalPhone("03001234567"))

	assert.False(t, IsValidLocalPhone("0312345678"), "10 digits")
	assert.False(t, IsValidLocalPhone("031234567890"), "12 digits")
	assert.False(t, IsValidLocalPhone("04123456789"), "wrong prefix")
	assert.False(t, IsValidLocalPhone("0312345678a"))
	assert.False(t, IsValidLocalPhone("+923123456789"))
	assert.False(t, IsValidLocalPhone(""))
}

func TestIsValidNationalID(t *testing.T) {
	assert.True(t, IsValidNationalID("12345-1234567-1"))

	assert.False(t, IsValidNationalID("1234512345671"))
	assert.False(t, IsValidNationalID("1234-1234567-1"))
	assert.False(t, IsValidNationalID("12345-123456-1"))
	assert.False(t, IsValidNationalID("12345-1234567-12"))
	assert.False(t, IsValidNationalID("abcde-1234567-1"))
}

func TestPasswordMeetsMinimumLength(t *testing.T) {
	assert.True(t, PasswordMeetsMinimumLength("abcdef", 6))
	assert.False(t, PasswordMeetsMinimumLength("abcde", 6))
	assert.True(t, PasswordMeetsMinimumLength("abc", 3))

	t.Run("Should use the default minimum when min is not positive", func(t *testing.T) {
		assert.False(t, PasswordMeetsMinimumLength("abcde", 0))
		assert.True(t, PasswordMeetsMinimumLength("abcdef", 0))
	})
}

func TestClassifyPasswordStrength(t *testing.T) {
	cases := map[string]Strength{
		"":            StrengthNone,
		"abc":         StrengthWeak,
		"abcde":       StrengthWeak,
		"abcdef":      StrengthMedium,
		"abcdefghij1": StrengthMedium,
		"Abcdefghijk": StrengthMedium,
		"Abcdefghij1": StrengthStrong,
		"Abcdefgh1":   StrengthMedium,
	}
	for in, want := range cases {
		assert.Equal(t, want, ClassifyPasswordStrength(in), in)
	}
}

func TestCheckHelpers(t *testing.T) {
	assert.Empty(t, CheckEmail("ali@test.com"))
	assert.Equal(t, MsgInvalidEmail, CheckEmail("ali"))
	assert.Empty(t, CheckLocalPhone("03001234567"))
	assert.Equal(t, MsgInvalidPhone, CheckLocalPhone("123"))
	assert.Empty(t, CheckNationalID("12345-1234567-1"))
	assert.Equal(t, MsgInvalidCNIC, CheckNationalID("1"))
	assert.Empty(t, CheckPassword("abcdef"))
	assert.Equal(t, MsgPasswordTooWeak, CheckPassword("abc"))
	assert.Empty(t, CheckPassword(strings.Repeat("a", MaxPasswordBytes)))
	assert.Equal(t, MsgPasswordTooLong, CheckPassword(strings.Repeat("a", MaxPasswordBytes+1)))
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{}
	assert.True(t, errs.Empty())

	errs.Add("email", "Email is required")
	errs.Add("email", "second")
	errs.Add("cnic", "bad")

	assert.False(t, errs.Empty())
	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("phone"))
	assert.Equal(t, "Email is required", errs.First("email"))
	assert.Equal(t, "", errs.First("phone"))
	assert.Equal(t, "cnic: bad; email: Email is required, second", errs.Error())
}

type signupForm struct {
	Email   string `json:"email" validate:"required,kwemail"`
	Phone   string `json:"phone" validate:"required,kwphone"`
	CNIC    string `json:"cnic" validate:"omitempty,cnic"`
	Confirm string `json:"confirmPassword" validate:"eqfield=Email"`
}

func TestStruct(t *testing.T) {
	messages := map[string]string{
		"email.required": "Email is required",
		"phone.kwphone":  MsgInvalidPhone,
	}

	t.Run("Should pass a valid struct", func(t *testing.T) {
		errs, err := Struct(signupForm{Email: "a@b.co", Phone: "03001234567", Confirm: "a@b.co"}, messages)
		require.NoError(t, err)
		assert.Nil(t, errs)
	})

	t.Run("Should report fields by json name", func(t *testing.T) {
		errs, err := Struct(signupForm{Phone: "123", CNIC: "x", Confirm: "z"}, messages)
		require.NoError(t, err)

		assert.Equal(t, "Email is required", errs.First("email"))
		assert.Equal(t, MsgInvalidPhone, errs.First("phone"))
		assert.Equal(t, "cnic is invalid", errs.First("cnic"))
		assert.True(t, errs.Has("confirmPassword"))
	})
}
