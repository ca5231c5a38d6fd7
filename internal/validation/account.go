package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"catalog_service/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Mode selects which credential rules apply to an account payload.
type Mode int

const (
	// ModeUnset is the zero value. A validator in this mode cannot finalize.
	ModeUnset Mode = iota
	// ModeCreate treats the password pair as optional, but never half-filled.
	ModeCreate
	// ModeUpdate requires both password fields.
	ModeUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	default:
		return "unset"
	}
}

const (
	usernameMaxLen = 150
	emailMaxLen    = 254
)

// bcrypt only reads this many bytes of a password.
const passwordMaxBytes = 72

const (
	MsgPasswordRequired        = "password field is required"
	MsgConfirmPasswordRequired = "confirm password is required"
	MsgPasswordMismatch        = "confirm password does not match password"
	MsgInvalidEmail            = "Enter a valid email address."
	MsgInvalidUsername         = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	MsgPasswordTooLong         = "Ensure this field has no more than 72 bytes."
)

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	fieldValidator  = validator.New()
)

// PasswordHasher derives the stored one-way credential from a plaintext password.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// AccountInput is an account payload as received. Fields keep their raw
// JSON so type errors are reported per field; a nil field was absent.
type AccountInput struct {
	Username        json.RawMessage `json:"username"`
	Email           json.RawMessage `json:"email"`
	Password        json.RawMessage `json:"password"`
	ConfirmPassword json.RawMessage `json:"confirm_password"`
}

// ValidatedAccount is a normalized account payload. It has no confirm
// password: that value is only used for the comparison.
type ValidatedAccount struct {
	Username string
	Email    string
	Password *string
}

// AccountValidator validates account payloads for one Mode.
type AccountValidator struct {
	mode   Mode
	hasher PasswordHasher
}

// NewAccountValidator returns a validator applying the rules of mode.
func NewAccountValidator(mode Mode, hasher PasswordHasher) *AccountValidator {
	return &AccountValidator{mode: mode, hasher: hasher}
}

// Mode returns the designated mode.
func (v *AccountValidator) Mode() Mode { return v.mode }

// Validate checks in and returns its normalized form, or FieldErrors.
// Field rules run first; the password pair rules only run when every field
// is individually valid.
func (v *AccountValidator) Validate(in AccountInput) (ValidatedAccount, error) {
	errs := FieldErrors{}

	username := validateUsername(in.Username, errs)
	email := validateEmail(in.Email, errs)
	password := validatePassword("password", in.Password, errs)
	confirm := validatePassword("confirm_password", in.ConfirmPassword, errs)
	if len(errs) > 0 {
		return ValidatedAccount{}, errs
	}

	v.checkPasswordPair(password, confirm, errs)
	if len(errs) > 0 {
		return ValidatedAccount{}, errs
	}

	return ValidatedAccount{Username: username, Email: email, Password: password}, nil
}

func (v *AccountValidator) checkPasswordPair(password, confirm *string, errs FieldErrors) {
	switch {
	case v.mode == ModeUpdate && password == nil && confirm == nil:
		errs.Add("password", MsgPasswordRequired)
		errs.Add("confirm_password", MsgConfirmPasswordRequired)
	case password == nil && confirm != nil:
		errs.Add("password", MsgPasswordRequired)
	case password != nil && confirm == nil:
		errs.Add("confirm_password", MsgConfirmPasswordRequired)
	case password != nil && *password != *confirm:
		errs.Add("confirm_password", MsgPasswordMismatch)
	}
}

// Finalize copies a validated account onto user, hashing the password when
// one was supplied. It panics if the validator has no designated mode.
func (v *AccountValidator) Finalize(acc ValidatedAccount, user *domain.User) error {
	if v.mode != ModeCreate && v.mode != ModeUpdate {
		panic("validation: account validator finalized without a mode")
	}
	user.Username = acc.Username
	user.Email = acc.Email
	if acc.Password == nil {
		return nil
	}
	hash, err := v.hasher.Hash(*acc.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = hash
	return nil
}

// LoginInput is the payload of a login request.
type LoginInput struct {
	Email    json.RawMessage `json:"email"`
	Password json.RawMessage `json:"password"`
}

// ValidateLogin checks that a login payload is structurally complete.
// It does not verify the credentials.
func ValidateLogin(in LoginInput) (email, password string, err error) {
	errs := FieldErrors{}
	email = validateEmail(in.Email, errs)
	pw, ok := decodeString(errs, "password", in.Password)
	switch {
	case !ok:
	case pw == nil:
		errs.Add("password", MsgRequired)
	default:
		checkNotBlank("password", pw, errs)
	}
	if len(errs) > 0 {
		return "", "", errs
	}
	return email, *pw, nil
}

func validateUsername(raw json.RawMessage, errs FieldErrors) string {
	value, ok := decodeString(errs, "username", raw)
	if !ok {
		return ""
	}
	if value == nil {
		errs.Add("username", MsgRequired)
		return ""
	}
	username := strings.TrimSpace(*value)
	switch {
	case username == "":
		errs.Add("username", MsgBlank)
	case utf8.RuneCountInString(username) > usernameMaxLen:
		errs.Add("username", maxLengthMsg(usernameMaxLen))
	case !usernamePattern.MatchString(username):
		errs.Add("username", MsgInvalidUsername)
	}
	return username
}

func validateEmail(raw json.RawMessage, errs FieldErrors) string {
	value, ok := decodeString(errs, "email", raw)
	if !ok {
		return ""
	}
	if value == nil {
		errs.Add("email", MsgRequired)
		return ""
	}
	email := strings.TrimSpace(*value)
	switch {
	case email == "":
		errs.Add("email", MsgBlank)
	case utf8.RuneCountInString(email) > emailMaxLen:
		errs.Add("email", maxLengthMsg(emailMaxLen))
	case fieldValidator.Var(email, "email") != nil:
		errs.Add("email", MsgInvalidEmail)
	}
	return NormalizeEmail(email)
}

// NormalizeEmail lower-cases the domain part of an address.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// validatePassword decodes an optional password field. Passwords are not
// trimmed; bcrypt cannot hash more than passwordMaxBytes.
func validatePassword(field string, raw json.RawMessage, errs FieldErrors) *string {
	value, ok := decodeString(errs, field, raw)
	if !ok || value == nil {
		return nil
	}
	switch {
	case strings.TrimSpace(*value) == "":
		errs.Add(field, MsgBlank)
	case len(*value) > passwordMaxBytes:
		errs.Add(field, MsgPasswordTooLong)
	}
	return value
}

func checkNotBlank(field string, raw *string, errs FieldErrors) {
	if raw != nil && strings.TrimSpace(*raw) == "" {
		errs.Add(field, MsgBlank)
	}
}

func maxLengthMsg(n int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", n)
}
