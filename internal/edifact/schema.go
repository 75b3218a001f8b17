package edifact

import (
	"github.com/xeipuuv/gojsonschema"
)

// ShapeValidator checks the raw decoded order before field-level
// validation runs. The engine depends only on this contract.
type ShapeValidator interface {
	ValidateShape(raw map[string]any) error
}

// orderSchema constrains the top-level shape of an incoming order.
// Identifying fields get their maximum lengths here; they are rejected
// outright rather than truncated. Free-text fields are unconstrained
// because the length enforcer chunks or truncates them later.
const orderSchema = `{
  "type": "object",
  "required": ["message_ref", "order_number", "order_date", "parties", "items"],
  "properties": {
    "message_ref":          {"type": "string", "maxLength": 14},
    "order_number":         {"type": "string", "maxLength": 35},
    "order_date":           {"type": "string"},
    "delivery_date":        {"type": ["string", "null"]},
    "currency":             {"type": ["string", "null"], "maxLength": 3},
    "delivery_location":    {"type": ["string", "null"], "maxLength": 35},
    "payment_terms":        {"type": ["string", "null"], "maxLength": 35},
    "incoterms":            {"type": ["string", "null"], "maxLength": 3},
    "special_instructions": {"type": ["string", "null"]},
    "tax_rate":             {"type": ["number", "string", "null"]},
    "parties": {
      "type": "array",
      "items": {"type": "object"}
    },
    "items": {
      "type": "array",
      "items": {"type": "object"}
    }
  }
}`

// SchemaValidator is the gojsonschema-backed ShapeValidator used by
// default.
type SchemaValidator struct {
	schema *gojsonschema.Schema
}

func NewSchemaValidator() (*SchemaValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(orderSchema))
	if err != nil {
		return nil, err
	}
	return &SchemaValidator{schema: schema}, nil
}

func (v *SchemaValidator) ValidateShape(raw map[string]any) error {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return newError(CodeSchema, "schema validation failed").withCause(err)
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, resErr := range result.Errors() {
			violations = append(violations, resErr.String())
		}
		return newError(CodeSchema, "input does not match the ORDERS input schema").
			withDetail("violations", violations)
	}
	return nil
}
