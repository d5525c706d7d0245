// Package extract turns normalized receipt text into a structured expense record.
//
// Every stage is a pure function over its input. Fields are independently
// optional: a value that fails its stage's validity check is left empty and
// extraction carries on with the remaining fields.
package extract

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// DateFormat is the user's preferred numeric date layout. It decides how an
// ambiguous slash-separated date such as 05/06/2023 is read.
type DateFormat string

const (
	DayMonthYear DateFormat = "DD/MM/YYYY"
	MonthDayYear DateFormat = "MM/DD/YYYY"
	YearMonthDay DateFormat = "YYYY/MM/DD"
)

// PaymentMethod identifies the payment instrument printed on a receipt.
type PaymentMethod string

const (
	Cash         PaymentMethod = "cash"
	CreditCard   PaymentMethod = "credit-card"
	DebitCard    PaymentMethod = "debit-card"
	PayPal       PaymentMethod = "paypal"
	Check        PaymentMethod = "check"
	BankTransfer PaymentMethod = "bank-transfer"
)

// Category is a spending category derived from the merchant name.
type Category string

const (
	Restaurant     Category = "restaurant"
	HotelLodging   Category = "hotel-lodging"
	CarRelated     Category = "car-related"
	Groceries      Category = "groceries"
	Transportation Category = "transportation"
	Other          Category = "other"
)

// Preferences are the caller-owned settings that steer extraction. They are
// read only; Extract never changes them.
type Preferences struct {
	DateFormat              DateFormat `json:"dateFormat" validate:"oneof=DD/MM/YYYY MM/DD/YYYY YYYY/MM/DD"`
	DefaultCurrency         string     `json:"defaultCurrency" validate:"required,iso4217"`
	AutoCategorizeMerchants bool       `json:"autoCategorizeMerchants"`
}

// DefaultPreferences mirrors the settings a fresh install starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		DateFormat:              DayMonthYear,
		DefaultCurrency:         "USD",
		AutoCategorizeMerchants: true,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports whether p holds a known date format and an ISO 4217 currency.
func (p Preferences) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	return nil
}

// Candidate is a provisional value produced by a ranking stage.
type Candidate[T any] struct {
	Value   T
	Text    string
	Score   float64
	Context string
}

// Record is the result of one extraction call. Empty strings and nil
// pointers mean the field was not found.
type Record struct {
	Merchant      string        `json:"merchant,omitempty"`
	Amount        string        `json:"amount,omitempty"`
	Currency      string        `json:"currency,omitempty"`
	Date          string        `json:"date,omitempty"`
	VATRate       *float64      `json:"vatRate,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	CardLastFour  string        `json:"cardLastFour,omitempty"`
	Project       string        `json:"project,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Category      Category      `json:"category,omitempty"`
}

// VATRateString formats the VAT rate without trailing zeros ("17", "7.5").
func (r Record) VATRateString() string {
	if r.VATRate == nil {
		return ""
	}
	return strconv.FormatFloat(*r.VATRate, 'f', -1, 64)
}

// CardNote is the note line shown to the user when a card suffix was found.
func (r Record) CardNote() string {
	if r.CardLastFour == "" {
		return ""
	}
	return "Card ending in " + r.CardLastFour
}

// PopulatedFields lists the JSON names of the fields that carry a value.
func (r Record) PopulatedFields() []string {
	var out []string
	add := func(name, v string) {
		if v != "" {
			out = append(out, name)
		}
	}
	add("merchant", r.Merchant)
	add("amount", r.Amount)
	add("currency", r.Currency)
	add("date", r.Date)
	add("vatRate", r.VATRateString())
	add("paymentMethod", string(r.PaymentMethod))
	add("cardLastFour", r.CardLastFour)
	add("project", r.Project)
	add("notes", r.Notes)
	add("category", string(r.Category))
	return out
}
