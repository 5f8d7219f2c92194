package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerCells(names map[int]string, width int) []CellValue {
	cells := make([]CellValue, width)
	for i := range cells {
		cells[i] = CellValue{Kind: CellEmpty}
	}
	for idx, name := range names {
		cells[idx] = CellValue{Kind: CellText, Text: name}
	}
	return cells
}

func TestMapColumnsAliases(t *testing.T) {
	header := headerCells(map[int]string{
		0: "Route#",
		1: "S No.",
		2: "Ship To",
		3: "Driver Name",
		4: "QB Invoice #",
	}, 5)

	mapping, missing := MapColumns(header, TemplateV3)
	require.Empty(t, missing)
	assert.Equal(t, 0, mapping.Col(FieldRouteNumber))
	assert.Equal(t, 1, mapping.Col(FieldSequence))
	assert.Equal(t, 2, mapping.Col(FieldCustomerName))
	assert.Equal(t, 3, mapping.Col(FieldDriverName))
	assert.Equal(t, 4, mapping.Col(FieldInvoice))
	assert.Equal(t, -1, mapping.Col(FieldGroupCode))
}

// The fixed template positions must beat a mislabeled header: spreadsheet
// authors are known to move the invoice and payment columns while leaving
// stale headers behind.
func TestMapColumnsFixedOverridesWin(t *testing.T) {
	names := map[int]string{
		0:  "Route #",
		1:  "S No.",
		2:  "Customer Name",
		5:  "Driver",    // stale header; real driver data lives at 8
		20: "Invoice #", // stale header; real invoice data lives at 24
		21: "Payment Cash",
	}
	header := headerCells(names, 40)

	mapping, missing := MapColumns(header, TemplateV3)
	require.Empty(t, missing)
	assert.Equal(t, TemplateV3.DriverName, mapping.Col(FieldDriverName))
	assert.Equal(t, TemplateV3.Invoice, mapping.Col(FieldInvoice))
	assert.Equal(t, TemplateV3.AmtCash, mapping.Col(FieldAmtCash))
	assert.Equal(t, TemplateV3.AmtCheck, mapping.Col(FieldAmtCheck))
	assert.Equal(t, TemplateV3.AmtCC, mapping.Col(FieldAmtCC))
}

func TestMapColumnsNarrowSheetSkipsOverrides(t *testing.T) {
	header := headerCells(map[int]string{
		0: "Route #",
		1: "Seq",
		2: "Customer",
		3: "Driver",
		4: "Invoice #",
	}, 5)

	mapping, missing := MapColumns(header, TemplateV3)
	require.Empty(t, missing)
	// The sheet is narrower than the pinned columns, so alias matches stand.
	assert.Equal(t, 3, mapping.Col(FieldDriverName))
	assert.Equal(t, 4, mapping.Col(FieldInvoice))
}

func TestMapColumnsMissingRequired(t *testing.T) {
	header := headerCells(map[int]string{0: "Customer Name"}, 1)

	_, missing := MapColumns(header, TemplateV3)
	require.Len(t, missing, 3)
	for _, err := range missing {
		assert.Contains(t, err.Error(), "required column")
	}
}
