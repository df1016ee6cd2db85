package model

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Supported currency symbols. The euro is the storefront default.
const (
	CurrencyGBP = "£"
	CurrencyEUR = "€"
	CurrencyUSD = "$"
)

// ValidCurrency reports whether s is one of the supported currency symbols.
func ValidCurrency(s string) bool {
	return s == CurrencyGBP || s == CurrencyEUR || s == CurrencyUSD
}

// Decimal is an arbitrary-precision decimal amount. It marshals to JSON as a
// quoted decimal string and to BSON as a Decimal128 value, so amounts never
// pass through binary floating point.
type Decimal struct {
	decimal.Decimal
}

// NewDecimal wraps a shopspring decimal value.
func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{d}
}

// ParseDecimal parses a decimal string such as "29.99".
func ParseDecimal(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Decimal{d}, nil
}

// MustDecimal parses a decimal string and panics on failure. Intended for
// constants and tests.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalBSONValue encodes the amount as a BSON Decimal128.
func (d Decimal) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d128, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode decimal %q: %w", d.String(), err)
	}
	return bsontype.Decimal128, bsoncore.AppendDecimal128(nil, d128), nil
}

// UnmarshalBSONValue decodes a BSON Decimal128 or string amount.
func (d *Decimal) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bsoncore.Value{Type: t, Data: data}

	var raw string
	switch t {
	case bsontype.Decimal128:
		d128, ok := v.Decimal128OK()
		if !ok {
			return fmt.Errorf("corrupt decimal128 value")
		}
		raw = d128.String()
	case bsontype.String:
		s, ok := v.StringValueOK()
		if !ok {
			return fmt.Errorf("corrupt string value")
		}
		raw = s
	default:
		return fmt.Errorf("cannot decode %s into a decimal amount", t)
	}

	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid decimal amount %q: %w", raw, err)
	}
	d.Decimal = parsed
	return nil
}

// Money is a decimal amount paired with a currency symbol.
type Money struct {
	Amount   Decimal `json:"amount" bson:"amount"`
	Currency string  `json:"currency" bson:"currency"`
}

// NewMoney parses an amount string into Money. An empty currency defaults to
// the euro.
func NewMoney(amount, currency string) (Money, error) {
	if currency == "" {
		currency = CurrencyEUR
	}
	if !ValidCurrency(currency) {
		return Money{}, fmt.Errorf("unsupported currency %q", currency)
	}
	d, err := ParseDecimal(amount)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: d, Currency: currency}, nil
}

// LineTotal computes quantity × unit price, rounded to 2 decimal places. The
// currency of the unit price carries over to the total.
func LineTotal(quantity int, unitPrice Money) Money {
	total := unitPrice.Amount.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	return Money{Amount: Decimal{total}, Currency: unitPrice.Currency}
}
