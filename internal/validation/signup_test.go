package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignUpForm() Form {
	return Form{
		FieldFirstName:       "Jane",
		FieldLastName:        "Doe",
		FieldUsername:        "janedoe",
		FieldEmail:           "jane@example.com",
		FieldPassword:        "Secret1!",
		FieldConfirmPassword: "Secret1!",
	}
}

func TestSignUpRules_ValidFormPasses(t *testing.T) {
	violations := Apply(SignUpRules(), validSignUpForm())
	assert.Empty(t, violations)
}

func TestSignUpRules_FieldViolations(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(Form)
		wantParam string
		wantMsg   string
	}{
		{
			name:      "missing first name",
			mutate:    func(f Form) { f[FieldFirstName] = "   " },
			wantParam: FieldFirstName,
			wantMsg:   "First name is required",
		},
		{
			name:      "first name with digits",
			mutate:    func(f Form) { f[FieldFirstName] = "Jane42" },
			wantParam: FieldFirstName,
			wantMsg:   "First name must only contain letters",
		},
		{
			name:      "missing last name",
			mutate:    func(f Form) { f[FieldLastName] = "" },
			wantParam: FieldLastName,
			wantMsg:   "Last name is required",
		},
		{
			name:      "missing username",
			mutate:    func(f Form) { f[FieldUsername] = " " },
			wantParam: FieldUsername,
			wantMsg:   "Username is required",
		},
		{
			name:      "malformed email",
			mutate:    func(f Form) { f[FieldEmail] = "not-an-email" },
			wantParam: FieldEmail,
			wantMsg:   "Must be a valid email",
		},
		{
			name:      "short password",
			mutate:    func(f Form) { f[FieldPassword] = "Ab1!"; f[FieldConfirmPassword] = "Ab1!" },
			wantParam: FieldPassword,
			wantMsg:   "Password must be at least 8 characters long",
		},
		{
			name:      "password missing uppercase",
			mutate:    func(f Form) { f[FieldPassword] = "secret1!"; f[FieldConfirmPassword] = "secret1!" },
			wantParam: FieldPassword,
			wantMsg:   "Password must contain at least one uppercase letter",
		},
		{
			name:      "password missing lowercase",
			mutate:    func(f Form) { f[FieldPassword] = "SECRET1!"; f[FieldConfirmPassword] = "SECRET1!" },
			wantParam: FieldPassword,
			wantMsg:   "Password must contain at least one lowercase letter",
		},
		{
			name:      "password missing digit",
			mutate:    func(f Form) { f[FieldPassword] = "Secrets!"; f[FieldConfirmPassword] = "Secrets!" },
			wantParam: FieldPassword,
			wantMsg:   "Password must contain at least one number",
		},
		{
			name:      "password missing special character",
			mutate:    func(f Form) { f[FieldPassword] = "Secrets1"; f[FieldConfirmPassword] = "Secrets1" },
			wantParam: FieldPassword,
			wantMsg:   "Password must contain at least one special character (@$!%*?&)",
		},
		{
			name:      "confirmation mismatch",
			mutate:    func(f Form) { f[FieldConfirmPassword] = "Secret2!" },
			wantParam: FieldConfirmPassword,
			wantMsg:   "Password confirmation does not match password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validSignUpForm()
			tt.mutate(form)

			violations := Apply(SignUpRules(), form)
			require.NotEmpty(t, violations)
			assert.Equal(t, tt.wantParam, violations[0].Param)
			assert.Equal(t, tt.wantMsg, violations[0].Msg)
		})
	}
}

func TestSignUpRules_CommonPasswordRejected(t *testing.T) {
	for _, common := range []string{"password", "123456", "qwerty"} {
		form := validSignUpForm()
		form[FieldPassword] = common
		form[FieldConfirmPassword] = common

		violations := Apply(SignUpRules(), form)
		require.NotEmpty(t, violations, "expected violations for %q", common)

		var params []string
		for _, v := range violations {
			params = append(params, v.Param)
		}
		assert.Contains(t, params, FieldPassword)
	}
}

func TestSignUpRules_CollectsAllViolations(t *testing.T) {
	form := Form{
		FieldFirstName:       "",
		FieldLastName:        "",
		FieldUsername:        "",
		FieldEmail:           "bad",
		FieldPassword:        "short",
		FieldConfirmPassword: "other",
	}

	violations := Apply(SignUpRules(), form)
	// Every failing rule reports, not just the first one.
	assert.GreaterOrEqual(t, len(violations), 6)
}

func TestNormalizeSignUp(t *testing.T) {
	form := validSignUpForm()
	form[FieldEmail] = "  Jane@Example.COM "
	form[FieldFirstName] = " Jane "

	normalized := NormalizeSignUp(form)
	assert.Equal(t, "jane@example.com", normalized.Email)
	assert.Equal(t, "Jane", normalized.FirstName)
	assert.Equal(t, "Secret1!", normalized.Password)
}

func TestNormalizeSignUp_EscapesPassword(t *testing.T) {
	form := validSignUpForm()
	form[FieldPassword] = "Secret1!<b>"
	form[FieldConfirmPassword] = "Secret1!<b>"

	normalized := NormalizeSignUp(form)
	assert.Equal(t, "Secret1!&lt;b&gt;", normalized.Password)
}
