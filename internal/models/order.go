package models

import (
	"github.com/shopspring/decimal"
)

// Order is the validated, typed form of an incoming purchase order.
// The edifact validator builds it as a deep copy of the raw payload,
// so it never aliases caller data.
type Order struct {
	MessageRef          string
	OrderNumber         string
	OrderDate           string
	Parties             []Party
	Items               []Item
	DeliveryDate        string
	Currency            string
	DeliveryLocation    string
	PaymentTerms        string
	TaxRate             *decimal.Decimal
	SpecialInstructions string
	Incoterms           string
}

// Party identifies a trading partner by its NAD role qualifier.
type Party struct {
	Qualifier string
	ID        string
	Name      string
	Address   string
	Contact   string
}
