package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"catalog_service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHasher struct {
	err error
}

func (h fakeHasher) Hash(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + password, nil
}

// str encodes s as a JSON string field.
func str(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}

func validAccountInput() AccountInput {
	return AccountInput{
		Username:        str("test"),
		Email:           str("test@test.com"),
		Password:        str("secret"),
		ConfirmPassword: str("secret"),
	}
}

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()
	var fe FieldErrors
	require.True(t, errors.As(err, &fe), "expected FieldErrors, got %v", err)
	return fe.Fields()
}

func TestAccountValidator_AcceptsCompletePayload(t *testing.T) {
	for _, mode := range []Mode{ModeCreate, ModeUpdate} {
		t.Run(mode.String(), func(t *testing.T) {
			acc, err := NewAccountValidator(mode, fakeHasher{}).Validate(validAccountInput())
			require.NoError(t, err)
			assert.Equal(t, "test", acc.Username)
			assert.Equal(t, "test@test.com", acc.Email)
			require.NotNil(t, acc.Password)
			assert.Equal(t, "secret", *acc.Password)
		})
	}
}

func TestAccountValidator_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *AccountInput)
		want   []string
	}{
		{"missing email", func(in *AccountInput) { in.Email = nil }, []string{"email"}},
		{"malformed email", func(in *AccountInput) { in.Email = str("bad email") }, []string{"email"}},
		{"blank email", func(in *AccountInput) { in.Email = str("  ") }, []string{"email"}},
		{"missing username", func(in *AccountInput) { in.Username = nil }, []string{"username"}},
		{"username with spaces", func(in *AccountInput) { in.Username = str("john doe") }, []string{"username"}},
		{"missing email wins over mismatch", func(in *AccountInput) {
			in.Email = nil
			in.ConfirmPassword = str("other")
		}, []string{"email"}},
		{"blank password", func(in *AccountInput) { in.Password = str("") }, []string{"password"}},
		{"mismatch", func(in *AccountInput) { in.ConfirmPassword = str("no matching") }, []string{"confirm_password"}},
		{"password only", func(in *AccountInput) { in.ConfirmPassword = nil }, []string{"confirm_password"}},
		{"confirm only", func(in *AccountInput) { in.Password = nil }, []string{"password"}},
	}

	for _, mode := range []Mode{ModeCreate, ModeUpdate} {
		for _, tt := range tests {
			t.Run(mode.String()+"/"+tt.name, func(t *testing.T) {
				in := validAccountInput()
				tt.mutate(&in)
				_, err := NewAccountValidator(mode, fakeHasher{}).Validate(in)
				assert.Equal(t, tt.want, fieldsOf(t, err))
			})
		}
	}
}

func TestAccountValidator_PasswordLengthLimit(t *testing.T) {
	in := validAccountInput()
	in.Password = str(strings.Repeat("a", 72))
	in.ConfirmPassword = str(strings.Repeat("a", 72))
	_, err := NewAccountValidator(ModeCreate, fakeHasher{}).Validate(in)
	require.NoError(t, err)

	for _, mode := range []Mode{ModeCreate, ModeUpdate} {
		in.Password = str(strings.Repeat("a", 73))
		in.ConfirmPassword = str(strings.Repeat("a", 73))
		_, err = NewAccountValidator(mode, fakeHasher{}).Validate(in)

		var fe FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, []string{MsgPasswordTooLong}, fe["password"])
		assert.Equal(t, []string{MsgPasswordTooLong}, fe["confirm_password"])
	}

	// Multi-byte runes count by byte
	in.Password = str(strings.Repeat("é", 37))
	in.ConfirmPassword = in.Password
	_, err = NewAccountValidator(ModeCreate, fakeHasher{}).Validate(in)
	assert.Equal(t, []string{"confirm_password", "password"}, fieldsOf(t, err))
}

func TestAccountValidator_FieldTypes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *AccountInput)
		field  string
		msg    string
	}{
		{"username bool", func(in *AccountInput) { in.Username = json.RawMessage(`true`) }, "username", MsgNotAString},
		{"email object", func(in *AccountInput) { in.Email = json.RawMessage(`{"a":1}`) }, "email", MsgNotAString},
		{"password list", func(in *AccountInput) { in.Password = json.RawMessage(`["x"]`) }, "password", MsgNotAString},
		{"username null", func(in *AccountInput) { in.Username = json.RawMessage(`null`) }, "username", MsgNull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validAccountInput()
			tt.mutate(&in)
			_, err := NewAccountValidator(ModeCreate, fakeHasher{}).Validate(in)

			var fe FieldErrors
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, []string{tt.field}, fe.Fields())
			assert.Equal(t, []string{tt.msg}, fe[tt.field])
		})
	}
}

func TestAccountValidator_NumbersAreCoerced(t *testing.T) {
	in := validAccountInput()
	in.Username = json.RawMessage(`123`)
	in.Password = json.RawMessage(`1234`)
	in.ConfirmPassword = str("1234")

	acc, err := NewAccountValidator(ModeCreate, fakeHasher{}).Validate(in)
	require.NoError(t, err)
	assert.Equal(t, "123", acc.Username)
	assert.Equal(t, "1234", *acc.Password)
}

func TestAccountValidator_PasswordPairMessages(t *testing.T) {
	in := validAccountInput()
	in.ConfirmPassword = str("other")
	_, err := NewAccountValidator(ModeCreate, fakeHasher{}).Validate(in)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{MsgPasswordMismatch}, fe["confirm_password"])

	in = validAccountInput()
	in.Password = nil
	_, err = NewAccountValidator(ModeCreate, fakeHasher{}).Validate(in)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{MsgPasswordRequired}, fe["password"])
}

func TestAccountValidator_NoPasswordsCreateMode(t *testing.T) {
	in := validAccountInput()
	in.Password, in.ConfirmPassword = nil, nil

	acc, err := NewAccountValidator(ModeCreate, fakeHasher{}).Validate(in)
	require.NoError(t, err)
	assert.Nil(t, acc.Password)
}

func TestAccountValidator_NoPasswordsUpdateMode(t *testing.T) {
	in := validAccountInput()
	in.Password, in.ConfirmPassword = nil, nil

	_, err := NewAccountValidator(ModeUpdate, fakeHasher{}).Validate(in)
	assert.Equal(t, []string{"confirm_password", "password"}, fieldsOf(t, err))
}

func TestAccountValidator_NormalizesEmailAndUsername(t *testing.T) {
	in := validAccountInput()
	in.Email = str(" Jane.Doe@Example.COM ")
	in.Username = str(" jane.doe+shop ")

	acc, err := NewAccountValidator(ModeCreate, fakeHasher{}).Validate(in)
	require.NoError(t, err)
	assert.Equal(t, "Jane.Doe@example.com", acc.Email)
	assert.Equal(t, "jane.doe+shop", acc.Username)
}

func TestAccountValidator_Finalize(t *testing.T) {
	v := NewAccountValidator(ModeCreate, fakeHasher{})
	acc, err := v.Validate(validAccountInput())
	require.NoError(t, err)

	var user domain.User
	require.NoError(t, v.Finalize(acc, &user))
	assert.Equal(t, "test", user.Username)
	assert.Equal(t, "test@test.com", user.Email)
	assert.Equal(t, "hashed:secret", user.Password)
}

func TestAccountValidator_FinalizeWithoutPasswordKeepsHash(t *testing.T) {
	v := NewAccountValidator(ModeCreate, fakeHasher{})
	user := domain.User{Password: "old-hash"}

	require.NoError(t, v.Finalize(ValidatedAccount{Username: "u", Email: "u@x.io"}, &user))
	assert.Equal(t, "old-hash", user.Password)
}

func TestAccountValidator_FinalizeHashError(t *testing.T) {
	v := NewAccountValidator(ModeUpdate, fakeHasher{err: errors.New("boom")})
	acc, err := v.Validate(validAccountInput())
	require.NoError(t, err)

	err = v.Finalize(acc, &domain.User{})
	assert.ErrorContains(t, err, "boom")
}

func TestAccountValidator_FinalizeWithoutModePanics(t *testing.T) {
	var v AccountValidator
	acc := ValidatedAccount{Username: "u", Email: "u@x.io"}

	assert.Panics(t, func() { _ = v.Finalize(acc, &domain.User{}) })
}

func TestValidateLogin(t *testing.T) {
	email, password, err := ValidateLogin(LoginInput{Email: str("a@B.io"), Password: str("pw")})
	require.NoError(t, err)
	assert.Equal(t, "a@b.io", email)
	assert.Equal(t, "pw", password)

	_, _, err = ValidateLogin(LoginInput{})
	assert.Equal(t, []string{"email", "password"}, fieldsOf(t, err))

	_, _, err = ValidateLogin(LoginInput{Email: str("nope"), Password: str("pw")})
	assert.Equal(t, []string{"email"}, fieldsOf(t, err))

	_, _, err = ValidateLogin(LoginInput{Email: str("a@b.io"), Password: json.RawMessage(`false`)})
	assert.Equal(t, []string{"password"}, fieldsOf(t, err))
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{}
	assert.NoError(t, errs.Err())

	errs.Add("name", MsgRequired)
	errs.Add("name", MsgBlank)
	errs.Add("email", MsgRequired)

	assert.True(t, errs.Has("name"))
	assert.False(t, errs.Has("price"))
	assert.Len(t, errs["name"], 2)
	assert.EqualError(t, errs.Err(), "validation failed: email, name")
}
