package excel

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ParsedStop is one validated workbook row, resolved to typed fields.
type ParsedStop struct {
	Sequence     int
	CustomerName string
	DriverName   string

	GroupCode      string
	Email          string
	WebOrderNumber string
	InvoiceNumber  string
	DriverNotes    string
	AdminNotes     string

	PaymentFlagCash    bool
	PaymentFlagCheck   bool
	PaymentFlagCC      bool
	PaymentFlagNotPaid bool
	IsCOD              bool
	HasReturn          bool

	InvoiceAmount      *decimal.Decimal
	PaymentAmountCash  *decimal.Decimal
	PaymentAmountCheck *decimal.Decimal
	PaymentAmountCC    *decimal.Decimal
	TotalPaymentAmount *decimal.Decimal
}

// ParsedRoute is the outcome of parsing one workbook: the route header plus
// its stops in workbook order.
type ParsedRoute struct {
	RouteNumber string
	DriverName  string
	Date        time.Time
	Stops       []ParsedStop
}

// ParseResult is what the uploader sees: fatal errors, per-row warnings with
// 1-based row numbers, and row counters. RowsProcessed always equals
// RowsSucceeded + RowsFailed + RowsSkipped.
type ParseResult struct {
	Success  bool         `json:"success"`
	Route    *ParsedRoute `json:"route,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`

	RowsProcessed int `json:"rows_processed"`
	RowsSucceeded int `json:"rows_succeeded"`
	RowsFailed    int `json:"rows_failed"`
	RowsSkipped   int `json:"rows_skipped"`
}

// Parser turns workbook bytes into a ParsedRoute. The template revision and
// timezone are injected so nothing here reads ambient configuration.
type Parser struct {
	tmpl Template
	loc  *time.Location
	now  func() time.Time
}

// NewParser builds a parser for one template revision. Route dates are
// normalized to midnight in loc.
func NewParser(tmpl Template, loc *time.Location) *Parser {
	return &Parser{tmpl: tmpl, loc: loc, now: time.Now}
}

// Parse processes the whole workbook. Row-level problems become warnings and
// the row is dropped; the batch only fails outright on unreadable input,
// missing required columns, or zero surviving stops.
func (p *Parser) Parse(data []byte) *ParseResult {
	res := &ParseResult{}

	grid, err := ReadWorkbook(data)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	cols, missing := MapColumns(grid[0], p.tmpl)
	if len(missing) > 0 {
		for _, err := range missing {
			res.Errors = append(res.Errors, err.Error())
		}
		return res
	}

	route := &ParsedRoute{}
	for i := firstDataRow; i < len(grid); i++ {
		row := grid[i]
		// Row numbers in warnings count the header as row 1 and data rows
		// from row 2, skipping the reserved row the export tool emits.
		rowNum := i - firstDataRow + 2

		rawCustomer := cellAt(row, cols.Col(FieldCustomerName))
		if rawCustomer.IsEmpty() {
			res.RowsSkipped++
			continue
		}
		res.RowsProcessed++

		stop, reject := p.buildStop(row, cols)
		if reject != nil {
			res.RowsFailed++
			res.Warnings = append(res.Warnings, fmt.Sprintf("row %d skipped - %s", rowNum, reject.String()))
			continue
		}
		res.RowsSucceeded++

		if route.RouteNumber == "" {
			route.RouteNumber = cellAt(row, cols.Col(FieldRouteNumber)).String()
		}
		if route.DriverName == "" {
			route.DriverName = stop.DriverName
		}
		if route.Date.IsZero() {
			if d := cellAt(row, cols.Col(FieldRouteDate)); d.Kind == CellDate {
				route.Date = d.Date
			}
		}
		route.Stops = append(route.Stops, *stop)
	}
	// Skipped blank rows count toward processed for the ledger invariant.
	res.RowsProcessed += res.RowsSkipped

	if len(route.Stops) == 0 {
		res.Errors = append(res.Errors, "no valid stops found in workbook")
		return res
	}

	route.Date = p.normalizeDate(route.Date)
	res.Success = true
	res.Route = route

	logrus.WithFields(logrus.Fields{
		"route":    route.RouteNumber,
		"stops":    len(route.Stops),
		"failed":   res.RowsFailed,
		"template": p.tmpl.Version,
	}).Info("workbook parsed")
	return res
}

// buildStop assembles one ParsedStop from a data row, rejecting noise rows.
func (p *Parser) buildStop(row []CellValue, cols ColumnMap) (*ParsedStop, *RejectReason) {
	driverName := cellAt(row, cols.Col(FieldDriverName)).String()
	if reject := ValidateDriverName(driverName); reject != nil {
		return nil, reject
	}

	customer := SanitizeName(cellAt(row, cols.Col(FieldCustomerName)).String())
	if reject := ValidateCustomerName(customer); reject != nil {
		return nil, reject
	}

	seq, reject := ValidateSequence(cellAt(row, cols.Col(FieldSequence)))
	if reject != nil {
		return nil, reject
	}

	stop := &ParsedStop{
		Sequence:       seq,
		CustomerName:   customer,
		DriverName:     SanitizeName(driverName),
		GroupCode:      cellAt(row, cols.Col(FieldGroupCode)).String(),
		Email:          cellAt(row, cols.Col(FieldEmail)).String(),
		WebOrderNumber: cellAt(row, cols.Col(FieldWebOrder)).String(),
		InvoiceNumber:  cellAt(row, cols.Col(FieldInvoice)).String(),
		DriverNotes:    cellAt(row, cols.Col(FieldDriverNotes)).String(),
		AdminNotes:     cellAt(row, cols.Col(FieldAdminNotes)).String(),

		PaymentFlagCash:  cellAt(row, cols.Col(FieldFlagCash)).Flag(),
		PaymentFlagCheck: cellAt(row, cols.Col(FieldFlagCheck)).Flag(),
		PaymentFlagCC:    cellAt(row, cols.Col(FieldFlagCC)).Flag(),
		IsCOD:            cellAt(row, cols.Col(FieldFlagCOD)).Flag(),
		HasReturn:        cellAt(row, cols.Col(FieldHasReturn)).Flag(),

		InvoiceAmount:      cellAt(row, cols.Col(FieldInvoiceAmt)).Amount(),
		PaymentAmountCash:  cellAt(row, cols.Col(FieldAmtCash)).Amount(),
		PaymentAmountCheck: cellAt(row, cols.Col(FieldAmtCheck)).Amount(),
		PaymentAmountCC:    cellAt(row, cols.Col(FieldAmtCC)).Amount(),
	}
	stop.PaymentFlagNotPaid = !stop.PaymentFlagCash && !stop.PaymentFlagCheck && !stop.PaymentFlagCC

	// The total is only set when at least one per-method amount is present,
	// so "no payment recorded" stays distinct from "zero paid".
	if stop.PaymentAmountCash != nil || stop.PaymentAmountCheck != nil || stop.PaymentAmountCC != nil {
		total := amountOrZero(stop.PaymentAmountCash).
			Add(amountOrZero(stop.PaymentAmountCheck)).
			Add(amountOrZero(stop.PaymentAmountCC))
		stop.TotalPaymentAmount = &total
	}
	return stop, nil
}

// normalizeDate clamps a route date to midnight in the configured timezone,
// defaulting to today when the workbook carries no date column.
func (p *Parser) normalizeDate(d time.Time) time.Time {
	if d.IsZero() {
		d = p.now()
	}
	d = d.In(p.loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, p.loc)
}

func cellAt(row []CellValue, idx int) CellValue {
	if idx < 0 || idx >= len(row) {
		return CellValue{Kind: CellEmpty}
	}
	return row[idx]
}

func amountOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
