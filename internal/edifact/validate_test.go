package edifact_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"edi-orders/internal/edifact"
)

func validRawOrder() map[string]any {
	return map[string]any{
		"message_ref":  "ORD0001",
		"order_number": "2025-0509-A",
		"order_date":   "20250509",
		"parties": []any{
			map[string]any{"qualifier": "BY", "id": "1234567890123", "name": "Buyer Corp", "contact": "+123456789"},
			map[string]any{"qualifier": "SU", "id": "3210987654321", "address": "Industrial?Park"},
		},
		"items": []any{
			map[string]any{"product_code": "ITEM001", "description": "Widget A (Special)", "quantity": 10.0, "price": "12.50", "unit": "EA"},
		},
		"delivery_date":     "20250515",
		"currency":          "USD",
		"delivery_location": "WAREHOUSE1",
		"payment_terms":     "NET30",
		"tax_rate":          "7.5",
		"incoterms":         "FOB",
	}
}

func requireCode(t *testing.T, err error, code string) *edifact.GenerationError {
	t.Helper()
	require.Error(t, err)
	var ge *edifact.GenerationError
	require.ErrorAs(t, err, &ge)
	require.Equal(t, code, ge.Code)
	return ge
}

func TestValidateOrder_OK(t *testing.T) {
	cfg := edifact.DefaultConfig()

	ord, err := edifact.ValidateOrder(validRawOrder(), cfg, nil)
	require.NoError(t, err)

	require.Equal(t, "ORD0001", ord.MessageRef)
	require.Len(t, ord.Items, 1)
	require.Equal(t, 10, ord.Items[0].Quantity)
	require.Equal(t, "12.5", ord.Items[0].Price.String())
	require.Equal(t, "EA", ord.Items[0].Unit)
	require.NotNil(t, ord.TaxRate)
	require.Equal(t, "7.5", ord.TaxRate.String())
	require.Len(t, ord.Parties, 2)
	require.Equal(t, "Industrial?Park", ord.Parties[1].Address)
}

func TestValidateOrder_UnitDefaultsToEA(t *testing.T) {
	raw := validRawOrder()
	item := raw["items"].([]any)[0].(map[string]any)
	delete(item, "unit")
	delete(item, "description")

	ord, err := edifact.ValidateOrder(raw, edifact.DefaultConfig(), nil)
	require.NoError(t, err)
	require.Equal(t, "EA", ord.Items[0].Unit)
	require.Equal(t, "", ord.Items[0].Description)
}

func TestValidateOrder_MissingFields(t *testing.T) {
	raw := validRawOrder()
	delete(raw, "items")
	delete(raw, "order_number")

	err := validateErr(t, raw)
	ge := requireCode(t, err, edifact.CodeMissingFields)
	require.ElementsMatch(t, []string{"items", "order_number"}, ge.Details["fields"])
}

func TestValidateOrder_EmptyItems(t *testing.T) {
	raw := validRawOrder()
	raw["items"] = []any{}
	requireCode(t, validateErr(t, raw), edifact.CodeNoItems)
}

func TestValidateOrder_BadOrderDate(t *testing.T) {
	raw := validRawOrder()
	raw["order_date"] = "2025-13-40"
	requireCode(t, validateErr(t, raw), edifact.CodeBadOrderDate)
}

func TestValidateOrder_BadDeliveryDate(t *testing.T) {
	raw := validRawOrder()
	raw["delivery_date"] = "tomorrow"
	requireCode(t, validateErr(t, raw), edifact.CodeBadDeliveryDate)
}

func TestValidateOrder_EmptyDeliveryDateSkipped(t *testing.T) {
	raw := validRawOrder()
	raw["delivery_date"] = ""
	ord, err := edifact.ValidateOrder(raw, edifact.DefaultConfig(), nil)
	require.NoError(t, err)
	require.Equal(t, "", ord.DeliveryDate)
}

func TestValidateOrder_BadNumerics(t *testing.T) {
	raw := validRawOrder()
	raw["items"].([]any)[0].(map[string]any)["quantity"] = "ten"
	ge := requireCode(t, validateErr(t, raw), edifact.CodeBadNumeric)
	require.Equal(t, "quantity", ge.Details["field"])

	raw = validRawOrder()
	raw["items"].([]any)[0].(map[string]any)["price"] = "12,50"
	requireCode(t, validateErr(t, raw), edifact.CodeBadNumeric)

	raw = validRawOrder()
	raw["items"].([]any)[0].(map[string]any)["quantity"] = 10.5
	requireCode(t, validateErr(t, raw), edifact.CodeBadNumeric)

	raw = validRawOrder()
	raw["tax_rate"] = "lots"
	ge = requireCode(t, validateErr(t, raw), edifact.CodeBadNumeric)
	require.Equal(t, "tax_rate", ge.Details["field"])
}

func TestValidateOrder_LongProductCode(t *testing.T) {
	raw := validRawOrder()
	raw["items"].([]any)[0].(map[string]any)["product_code"] = "PRODUCT-CODE-THAT-IS-FAR-TOO-LONG-TO-PASS"
	ge := requireCode(t, validateErr(t, raw), edifact.CodeLongProductCode)
	require.Equal(t, 0, ge.Details["index"])
}

func TestValidateOrder_PartyMissingID(t *testing.T) {
	raw := validRawOrder()
	raw["parties"].([]any)[1].(map[string]any)["id"] = ""
	ge := requireCode(t, validateErr(t, raw), edifact.CodeBadParty)
	require.Equal(t, 1, ge.Details["index"])
}

func TestValidateOrder_DisallowedQualifier(t *testing.T) {
	raw := validRawOrder()
	raw["parties"].([]any)[0].(map[string]any)["qualifier"] = "ZZ"
	ge := requireCode(t, validateErr(t, raw), edifact.CodeBadQualifier)
	require.Equal(t, "ZZ", ge.Details["qualifier"])
	require.Equal(t, 0, ge.Details["index"])
	require.Contains(t, ge.Details["allowed"].([]string), "BY")
}

func TestValidateOrder_DoesNotMutateInput(t *testing.T) {
	raw := validRawOrder()
	raw["special_instructions"] = "keep\x00this"

	_, err := edifact.ValidateOrder(raw, edifact.DefaultConfig(), nil)
	require.NoError(t, err)

	// The caller's map still carries the control character and the
	// original item types.
	require.Equal(t, "keep\x00this", raw["special_instructions"])
	require.Equal(t, "12.50", raw["items"].([]any)[0].(map[string]any)["price"])
}

func validateErr(t *testing.T, raw map[string]any) error {
	t.Helper()
	_, err := edifact.ValidateOrder(raw, edifact.DefaultConfig(), nil)
	return err
}
