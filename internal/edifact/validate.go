package edifact

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"edi-orders/internal/models"
)

const maxProductCodeLength = 35

var requiredFields = []string{"message_ref", "order_number", "order_date", "parties", "items"}

// ValidDate reports whether s parses under the given DTM format code.
func ValidDate(s, formatCode string) bool {
	layout, ok := dateFormats[formatCode]
	if !ok {
		return false
	}
	_, err := time.Parse(layout, s)
	return err == nil
}

// ValidateOrder turns a raw decoded order into a typed models.Order.
// Every gate is hard: the first violated rule aborts with a
// GenerationError and no partial result escapes. The raw map is
// sanitized into a deep copy first, so the caller's data is never
// mutated. A nil shape validator skips the schema gate.
func ValidateOrder(raw map[string]any, cfg Config, shape ShapeValidator) (*models.Order, error) {
	data, _ := Sanitize(raw).(map[string]any)
	if data == nil {
		data = map[string]any{}
	}

	if shape != nil {
		if err := shape.ValidateShape(data); err != nil {
			return nil, err
		}
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := data[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, newError(CodeMissingFields, "missing required fields: %v", missing).
			withDetail("fields", missing)
	}

	rawItems, ok := data["items"].([]any)
	if !ok || len(rawItems) == 0 {
		return nil, newError(CodeNoItems, "at least one item is required")
	}

	ord := &models.Order{
		MessageRef:          asString(data["message_ref"]),
		OrderNumber:         asString(data["order_number"]),
		OrderDate:           asString(data["order_date"]),
		Currency:            asString(data["currency"]),
		DeliveryLocation:    asString(data["delivery_location"]),
		PaymentTerms:        asString(data["payment_terms"]),
		SpecialInstructions: asString(data["special_instructions"]),
		Incoterms:           asString(data["incoterms"]),
	}

	if !ValidDate(ord.OrderDate, cfg.DateFormat) {
		return nil, newError(CodeBadOrderDate, "order_date %q is not valid for format %s", ord.OrderDate, cfg.DateFormat).
			withDetail("value", ord.OrderDate).
			withDetail("format", cfg.DateFormat)
	}

	if deliveryDate := asString(data["delivery_date"]); deliveryDate != "" {
		if !ValidDate(deliveryDate, cfg.DateFormat) {
			return nil, newError(CodeBadDeliveryDate, "delivery_date %q is not valid for format %s", deliveryDate, cfg.DateFormat).
				withDetail("value", deliveryDate).
				withDetail("format", cfg.DateFormat)
		}
		ord.DeliveryDate = deliveryDate
	}

	ord.Items = make([]models.Item, 0, len(rawItems))
	for i, rawItem := range rawItems {
		fields, _ := rawItem.(map[string]any)

		productCode := asString(fields["product_code"])
		if len(productCode) > maxProductCodeLength {
			return nil, newError(CodeLongProductCode, "item %d: product code exceeds %d characters", i, maxProductCodeLength).
				withDetail("index", i).
				withDetail("length", len(productCode)).
				withDetail("max", maxProductCodeLength)
		}

		quantity, err := toInt(fields["quantity"])
		if err != nil {
			return nil, badNumeric(i, "quantity", fields["quantity"])
		}
		price, err := toDecimal(fields["price"])
		if err != nil {
			return nil, badNumeric(i, "price", fields["price"])
		}

		unit := asString(fields["unit"])
		if unit == "" {
			unit = "EA"
		}

		ord.Items = append(ord.Items, models.Item{
			ProductCode: productCode,
			Description: asString(fields["description"]),
			Quantity:    quantity,
			Price:       price,
			Unit:        unit,
		})
	}

	if rate, present := data["tax_rate"]; present && rate != nil {
		taxRate, err := toDecimal(rate)
		if err != nil {
			return nil, newError(CodeBadNumeric, "tax_rate %q is not a valid number", fmt.Sprint(rate)).
				withDetail("field", "tax_rate").
				withDetail("value", fmt.Sprint(rate))
		}
		ord.TaxRate = &taxRate
	}

	rawParties, _ := data["parties"].([]any)
	ord.Parties = make([]models.Party, 0, len(rawParties))
	for i, rawParty := range rawParties {
		fields, _ := rawParty.(map[string]any)

		qualifier := asString(fields["qualifier"])
		id := asString(fields["id"])
		if qualifier == "" || id == "" {
			return nil, newError(CodeBadParty, "party %d must contain qualifier and id", i).
				withDetail("index", i)
		}
		if !cfg.qualifierAllowed(qualifier) {
			return nil, newError(CodeBadQualifier, "party %d: qualifier %q is not allowed", i, qualifier).
				withDetail("index", i).
				withDetail("qualifier", qualifier).
				withDetail("allowed", append([]string(nil), cfg.AllowedQualifiers...))
		}

		ord.Parties = append(ord.Parties, models.Party{
			Qualifier: qualifier,
			ID:        id,
			Name:      asString(fields["name"]),
			Address:   asString(fields["address"]),
			Contact:   asString(fields["contact"]),
		})
	}

	return ord, nil
}

func badNumeric(index int, field string, value any) *GenerationError {
	return newError(CodeBadNumeric, "item %d: %s %q is not a valid number", index, field, fmt.Sprint(value)).
		withDetail("index", index).
		withDetail("field", field).
		withDetail("value", fmt.Sprint(value))
}

func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		// JSON numbers decode as float64; only integral values count.
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("%v is not an integer", t)
		}
		return int(t), nil
	case string:
		return strconv.Atoi(t)
	default:
		return 0, fmt.Errorf("%v is not an integer", v)
	}
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case string:
		return decimal.NewFromString(t)
	case float64:
		// Mirror the exactness of parsing the shortest decimal form
		// instead of converting the binary float directly.
		return decimal.NewFromString(strconv.FormatFloat(t, 'f', -1, 64))
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%v is not a number", v)
	}
}
