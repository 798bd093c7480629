package validation

import (
	"html"
	"strings"
	"unicode"
)

// Field names of the sign-up form.
const (
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm-password"
)

// passwordSpecialSet is the fixed set of accepted special characters.
const passwordSpecialSet = "@$!%*?&"

// SignUpRules is the ordered rule list for registration. Rules run against
// the raw submitted values; normalization happens afterwards in
// NormalizeSignUp so the confirmation check stays byte-exact.
func SignUpRules() []Rule {
	return []Rule{
		{FieldFirstName, "First name is required", notEmpty},
		{FieldFirstName, "First name must only contain letters", lettersOnly},
		{FieldLastName, "Last name is required", notEmpty},
		{FieldLastName, "Last name must only contain letters", lettersOnly},
		{FieldUsername, "Username is required", notEmpty},
		{FieldEmail, "Must be a valid email", validEmail},
		{FieldPassword, "Password must be at least 8 characters long", minLength(8)},
		{FieldPassword, "Password must contain at least one uppercase letter", containsFunc(unicode.IsUpper)},
		{FieldPassword, "Password must contain at least one lowercase letter", containsFunc(unicode.IsLower)},
		{FieldPassword, "Password must contain at least one number", containsFunc(unicode.IsDigit)},
		{FieldPassword, "Password must contain at least one special character (@$!%*?&)", containsAny(passwordSpecialSet)},
		{FieldPassword, "Password is too common", notIn("password", "123456", "qwerty")},
		{FieldConfirmPassword, "Password confirmation does not match password", matchesField(FieldPassword)},
	}
}

// SignUp holds the normalized sign-up values after validation passed.
type SignUp struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// NormalizeSignUp canonicalizes the validated form values: names and
// username are trimmed, the email is trimmed and lowercased, and the
// password is trimmed and HTML-escaped before any further use.
func NormalizeSignUp(form Form) SignUp {
	return SignUp{
		FirstName: strings.TrimSpace(form[FieldFirstName]),
		LastName:  strings.TrimSpace(form[FieldLastName]),
		Username:  strings.TrimSpace(form[FieldUsername]),
		Email:     strings.ToLower(strings.TrimSpace(form[FieldEmail])),
		Password:  html.EscapeString(strings.TrimSpace(form[FieldPassword])),
	}
}
