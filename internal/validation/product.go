package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	productNameMaxLen = 20
	priceMaxDigits    = 10
	priceDecimals     = 2
)

const MsgInvalidNumber = "A valid number is required."

const (
	msgIncorrectPKType = "Incorrect type. Expected pk value, received %s."
	msgPKDoesNotExist  = "Invalid pk \"%s\" - object does not exist."
)

var errInvalidNumber = errors.New(MsgInvalidNumber)

// AccountLookup answers whether an account primary key exists.
type AccountLookup interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// ProductInput is a product payload as received. Fields keep their raw JSON
// so numbers and numeric strings are both accepted and type errors are
// reported per field.
type ProductInput struct {
	Name   json.RawMessage `json:"name"`
	Price  json.RawMessage `json:"price"`
	Seller json.RawMessage `json:"seller"`
}

// ValidatedProduct is a normalized product payload.
type ValidatedProduct struct {
	Name     string
	Price    decimal.NullDecimal
	SellerID *uint
}

// ProductValidator validates product payloads.
type ProductValidator struct {
	accounts AccountLookup
}

// NewProductValidator returns a validator resolving sellers through accounts.
// A nil lookup skips the seller existence check.
func NewProductValidator(accounts AccountLookup) *ProductValidator {
	return &ProductValidator{accounts: accounts}
}

// ValidateCreate checks a product creation payload. FieldErrors are returned
// for bad input; any other error comes from the account lookup.
func (v *ProductValidator) ValidateCreate(ctx context.Context, in ProductInput) (ValidatedProduct, error) {
	errs := FieldErrors{}
	out := ValidatedProduct{}

	out.Name = validateProductName(in.Name, errs)

	price, err := ParsePrice(in.Price)
	if err != nil {
		errs.Add("price", err.Error())
	}
	out.Price = price

	seller, err := v.validateSeller(ctx, in.Seller, errs)
	if err != nil {
		return ValidatedProduct{}, err
	}
	out.SellerID = seller

	if len(errs) > 0 {
		return ValidatedProduct{}, errs
	}
	return out, nil
}

// validateSeller resolves an optional seller pk given as a number or a
// numeric string. Null and "" mean no seller.
func (v *ProductValidator) validateSeller(ctx context.Context, raw json.RawMessage, errs FieldErrors) (*uint, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	literal := string(raw)
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			errs.Add("seller", fmt.Sprintf(msgIncorrectPKType, "str"))
			return nil, nil
		}
		literal = strings.TrimSpace(s)
		if literal == "" {
			return nil, nil // An empty string counts as no seller
		}
	case 't', 'f', '{', '[':
		errs.Add("seller", fmt.Sprintf(msgIncorrectPKType, jsonKind(raw)))
		return nil, nil
	}

	n, err := strconv.ParseInt(literal, 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange):
		errs.Add("seller", fmt.Sprintf(msgPKDoesNotExist, literal))
		return nil, nil
	case err != nil:
		errs.Add("seller", fmt.Sprintf(msgIncorrectPKType, jsonKind(raw)))
		return nil, nil
	case n <= 0 || uint64(n) > math.MaxUint:
		errs.Add("seller", fmt.Sprintf(msgPKDoesNotExist, literal))
		return nil, nil
	}

	id := uint(n)
	ok, err := v.sellerExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		errs.Add("seller", fmt.Sprintf(msgPKDoesNotExist, literal))
		return nil, nil
	}
	return &id, nil
}

func (v *ProductValidator) sellerExists(ctx context.Context, id uint) (bool, error) {
	if v.accounts == nil {
		return true, nil
	}
	ok, err := v.accounts.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("lookup seller %d: %w", id, err)
	}
	return ok, nil
}

func validateProductName(raw json.RawMessage, errs FieldErrors) string {
	value, ok := decodeString(errs, "name", raw)
	if !ok {
		return ""
	}
	if value == nil {
		errs.Add("name", MsgRequired)
		return ""
	}
	name := strings.TrimSpace(*value)
	switch {
	case name == "":
		errs.Add("name", MsgBlank)
	case utf8.RuneCountInString(name) > productNameMaxLen:
		errs.Add("name", maxLengthMsg(productNameMaxLen))
	}
	return name
}

// ParsePrice reads an optional price from raw JSON. Absent or null yields an
// invalid NullDecimal and no error.
func ParsePrice(raw json.RawMessage) (decimal.NullDecimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.NullDecimal{}, nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.NullDecimal{}, errInvalidNumber
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return decimal.NullDecimal{}, nil
		}
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.NullDecimal{}, errInvalidNumber
	}
	if err := checkPrecision(d); err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// checkPrecision enforces decimal(10,2) on the literal as written, so
// "1.500" has three decimal places.
func checkPrecision(d decimal.Decimal) error {
	exp := int(d.Exponent())
	digits := len(strings.TrimPrefix(d.Coefficient().String(), "-"))

	var total, decimals int
	switch {
	case exp >= 0:
		total, decimals = digits+exp, 0
	case digits > -exp:
		total, decimals = digits, -exp
	default:
		total, decimals = -exp, -exp
	}
	whole := total - decimals

	switch {
	case total > priceMaxDigits:
		return fmt.Errorf("Ensure that there are no more than %d digits in total.", priceMaxDigits)
	case decimals > priceDecimals:
		return fmt.Errorf("Ensure that there are no more than %d decimal places.", priceDecimals)
	case whole > priceMaxDigits-priceDecimals:
		return fmt.Errorf("Ensure that there are no more than %d digits before the decimal point.", priceMaxDigits-priceDecimals)
	}
	return nil
}
