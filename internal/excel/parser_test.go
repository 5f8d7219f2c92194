package excel

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// testHeader mirrors the narrow export layout used in tests. The driver
// column sits at index 8 on purpose: that is the position TemplateV3 pins,
// and the template's other overrides (24, 34-36) fall outside this header so
// alias matching handles invoice and payment columns.
var testHeader = []interface{}{
	"Route #", "S No.", "Customer Name", "Group Code", "Email", "Web Order #",
	"Notes for Driver", "Admin Notes", "Driver", "Cash", "Check", "Credit Card",
	"COD", "Returns", "Invoice #", "Invoice Amount", "Payment Cash",
	"Payment Check", "Payment CC", "Date",
}

// testRow is one data row keyed like testHeader.
type testRow struct {
	route, customer, group, email, webOrder, driverNotes, adminNotes, driver string

	seq interface{}

	cash, check, cc, cod, returns string

	invoice string

	invoiceAmt, amtCash, amtCheck, amtCC interface{}

	date string
}

func buildWorkbook(t *testing.T, rows []testRow) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &testHeader))
	reserved := []interface{}{"GENERATED - DO NOT EDIT THIS ROW"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &reserved))

	for i, r := range rows {
		cells := []interface{}{
			r.route, r.seq, r.customer, r.group, r.email, r.webOrder,
			r.driverNotes, r.adminNotes, r.driver, r.cash, r.check, r.cc,
			r.cod, r.returns, r.invoice, r.invoiceAmt, r.amtCash, r.amtCheck,
			r.amtCC, r.date,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &cells))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func newTestParser() *Parser {
	return NewParser(TemplateV3, time.UTC)
}

func TestParseSingleValidRowWithNoiseRow(t *testing.T) {
	data := buildWorkbook(t, []testRow{
		{route: "R12", seq: 1, customer: "Acme Corp", driver: "John Smith", invoice: "INV-100"},
		{route: "R12", seq: 2, customer: "test@x.com", driver: "John Smith"},
	})

	res := newTestParser().Parse(data)
	require.True(t, res.Success)
	assert.Equal(t, 2, res.RowsProcessed)
	assert.Equal(t, 1, res.RowsSucceeded)
	assert.Equal(t, 1, res.RowsFailed)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "row 3")
	assert.Contains(t, res.Warnings[0], "test@x.com")

	require.NotNil(t, res.Route)
	require.Len(t, res.Route.Stops, 1)
	stop := res.Route.Stops[0]
	assert.Equal(t, "Acme Corp", stop.CustomerName)
	assert.Equal(t, "John Smith", stop.DriverName)
	assert.Equal(t, "INV-100", stop.InvoiceNumber)
	assert.Equal(t, 1, stop.Sequence)
	assert.Equal(t, "R12", res.Route.RouteNumber)
	assert.Equal(t, "John Smith", res.Route.DriverName)
}

func TestParseCounterInvariant(t *testing.T) {
	data := buildWorkbook(t, []testRow{
		{route: "R1", seq: 1, customer: "Acme Corp", driver: "John Smith"},
		{route: "R1", seq: 2, customer: "", driver: "John Smith"}, // blank: skipped silently
		{route: "R1", seq: "abc", customer: "Beta Foods", driver: "John Smith"},
		{route: "R1", seq: 3, customer: "Gamma Deli", driver: "ADMIN"},
		{route: "R1", seq: 4, customer: "Delta Market", driver: "John Smith"},
	})

	res := newTestParser().Parse(data)
	require.True(t, res.Success)
	assert.Equal(t, res.RowsProcessed, res.RowsSucceeded+res.RowsFailed+res.RowsSkipped)
	assert.Equal(t, 2, res.RowsSucceeded)
	assert.Equal(t, 2, res.RowsFailed)
	assert.Equal(t, 1, res.RowsSkipped)
	assert.Equal(t, 5, res.RowsProcessed)
}

func TestParsePaymentDerivation(t *testing.T) {
	data := buildWorkbook(t, []testRow{
		{route: "R1", seq: 1, customer: "Acme Corp", driver: "John Smith",
			cash: "X", amtCash: 20.0, amtCheck: 0.0},
		{route: "R1", seq: 2, customer: "Beta Foods", driver: "John Smith"},
	})

	res := newTestParser().Parse(data)
	require.True(t, res.Success)
	require.Len(t, res.Route.Stops, 2)

	paid := res.Route.Stops[0]
	assert.True(t, paid.PaymentFlagCash)
	assert.False(t, paid.PaymentFlagNotPaid)
	require.NotNil(t, paid.TotalPaymentAmount)
	assert.True(t, paid.TotalPaymentAmount.Equal(decimal.NewFromInt(20)))

	unpaid := res.Route.Stops[1]
	assert.True(t, unpaid.PaymentFlagNotPaid)
	assert.Nil(t, unpaid.TotalPaymentAmount, "no recorded payment must stay nil, not zero")
}

func TestParseRouteHeaderFirstRowWins(t *testing.T) {
	data := buildWorkbook(t, []testRow{
		{route: "R7", seq: 1, customer: "Acme Corp", driver: "John Smith", date: "1/15/26"},
		{route: "R8", seq: 2, customer: "Beta Foods", driver: "Jane Doe"},
	})

	res := newTestParser().Parse(data)
	require.True(t, res.Success)
	assert.Equal(t, "R7", res.Route.RouteNumber)
	assert.Equal(t, "John Smith", res.Route.DriverName)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), res.Route.Date)
}

func TestParseDateDefaultsToToday(t *testing.T) {
	data := buildWorkbook(t, []testRow{
		{route: "R7", seq: 1, customer: "Acme Corp", driver: "John Smith"},
	})

	p := newTestParser()
	p.now = func() time.Time { return time.Date(2026, 8, 30, 14, 45, 0, 0, time.UTC) }
	res := p.Parse(data)
	require.True(t, res.Success)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), res.Route.Date)
}

func TestParseZeroValidStopsFails(t *testing.T) {
	data := buildWorkbook(t, []testRow{
		{route: "R1", seq: 1, customer: "ops@example.com", driver: "John Smith"},
		{route: "R1", seq: 2, customer: "Acme Corp", driver: "TEST DRIVER"},
	})

	res := newTestParser().Parse(data)
	assert.False(t, res.Success)
	assert.Nil(t, res.Route)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "no valid stops")
	assert.Equal(t, 2, res.RowsFailed)
}

func TestParseMissingRequiredColumns(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	header := []interface{}{"Customer Name", "Driver"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"Acme Corp", "John Smith"}
	require.NoError(t, f.SetSheetRow(sheet, "A3", &row))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res := newTestParser().Parse(buf.Bytes())
	assert.False(t, res.Success)
	require.Len(t, res.Errors, 2)
	assert.Zero(t, res.RowsProcessed, "no rows may be touched when required columns are missing")
}

func TestParseEmptyInput(t *testing.T) {
	res := newTestParser().Parse(nil)
	assert.False(t, res.Success)
	require.NotEmpty(t, res.Errors)
}
