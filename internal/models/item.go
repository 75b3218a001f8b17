package models

import "github.com/shopspring/decimal"

// Item is one order line. Price is kept as an exact decimal; float
// arithmetic never touches monetary values.
type Item struct {
	ProductCode string
	Description string
	Quantity    int
	Price       decimal.Decimal
	Unit        string
}
