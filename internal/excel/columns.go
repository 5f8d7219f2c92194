package excel

import (
	"fmt"
	"strings"
)

// Field names the logical columns of the route workbook.
type Field string

const (
	FieldRouteNumber  Field = "routeNumber"
	FieldRouteDate    Field = "routeDate"
	FieldDriverName   Field = "driverName"
	FieldSequence     Field = "sequence"
	FieldCustomerName Field = "customerName"
	FieldGroupCode    Field = "groupCode"
	FieldEmail        Field = "email"
	FieldWebOrder     Field = "webOrderNumber"
	FieldInvoice      Field = "invoiceNumber"
	FieldDriverNotes  Field = "driverNotes"
	FieldAdminNotes   Field = "adminNotes"
	FieldFlagCash     Field = "flagCash"
	FieldFlagCheck    Field = "flagCheck"
	FieldFlagCC       Field = "flagCC"
	FieldFlagCOD      Field = "flagCOD"
	FieldHasReturn    Field = "hasReturn"
	FieldInvoiceAmt   Field = "invoiceAmount"
	FieldAmtCash      Field = "paymentAmountCash"
	FieldAmtCheck     Field = "paymentAmountCheck"
	FieldAmtCC        Field = "paymentAmountCC"
)

// requiredFields abort the parse when absent from the header row.
var requiredFields = []Field{FieldRouteNumber, FieldDriverName, FieldSequence, FieldCustomerName}

// headerAliases maps each logical field to the exact header strings observed
// in the wild. Matching is exact after trimming, case-sensitive, because the
// export tool emits stable casing and loosening it has caused false matches.
var headerAliases = map[Field][]string{
	FieldRouteNumber:  {"Route #", "Route#", "Route", "Route Number"},
	FieldRouteDate:    {"Date", "Route Date", "Delivery Date"},
	FieldDriverName:   {"Driver", "Driver Name", "Assigned Driver"},
	FieldSequence:     {"S No.", "S No", "Seq", "Stop #", "Sequence"},
	FieldCustomerName: {"Customer Name", "Customer", "Ship To"},
	FieldGroupCode:    {"Group Code", "Group"},
	FieldEmail:        {"Email", "Customer Email"},
	FieldWebOrder:     {"Web Order #", "Web Order#", "Web Order"},
	FieldInvoice:      {"Invoice #", "Invoice#", "QB Invoice #", "Invoice Number"},
	FieldDriverNotes:  {"Notes for Driver", "Driver Notes", "Notes"},
	FieldAdminNotes:   {"Admin Notes", "Office Notes"},
	FieldFlagCash:     {"Cash", "CASH"},
	FieldFlagCheck:    {"Check", "CHECK"},
	FieldFlagCC:       {"Credit Card", "CC", "Card"},
	FieldFlagCOD:      {"COD", "C.O.D."},
	FieldHasReturn:    {"Returns", "Return", "Has Return"},
	FieldInvoiceAmt:   {"Invoice Amount", "Amount", "Invoice Amt"},
	FieldAmtCash:      {"Payment Cash", "Amt Cash", "Cash Amount"},
	FieldAmtCheck:     {"Payment Check", "Amt Check", "Check Amount"},
	FieldAmtCC:        {"Payment CC", "Amt CC", "CC Amount"},
}

// Template pins the column indices (zero-based) that override header
// matching. Upstream spreadsheet authors are known to mislabel or move the
// invoice-number, driver-name and payment-amount headers, so for those
// fields the fixed position wins over whatever the alias match found. The
// authoritative positions have drifted between template revisions (invoice
// number was column 34 in v2, the payment amounts then shifted by one), so
// they are pinned here per revision instead of being inlined where used.
type Template struct {
	Version    string
	DriverName int
	Invoice    int
	AmtCash    int
	AmtCheck   int
	AmtCC      int
}

var (
	// TemplateV2 matched the 2023 export layout.
	TemplateV2 = Template{Version: "v2", DriverName: 8, Invoice: 34, AmtCash: 35, AmtCheck: 36, AmtCC: 37}
	// TemplateV3 is the current export layout.
	TemplateV3 = Template{Version: "v3", DriverName: 8, Invoice: 24, AmtCash: 34, AmtCheck: 35, AmtCC: 36}
)

// overrides returns the fixed field positions for this template revision.
func (t Template) overrides() map[Field]int {
	return map[Field]int{
		FieldDriverName: t.DriverName,
		FieldInvoice:    t.Invoice,
		FieldAmtCash:    t.AmtCash,
		FieldAmtCheck:   t.AmtCheck,
		FieldAmtCC:      t.AmtCC,
	}
}

// ColumnMap resolves logical fields to column indices for one workbook.
type ColumnMap map[Field]int

// Col returns the column index for a field, or -1 when the workbook does not
// carry it.
func (m ColumnMap) Col(f Field) int {
	if idx, ok := m[f]; ok {
		return idx
	}
	return -1
}

// MapColumns builds the field-to-column mapping from the header row, applies
// the template's fixed overrides, and reports every missing required column.
func MapColumns(header []CellValue, tmpl Template) (ColumnMap, []error) {
	byName := make(map[string]int, len(header))
	for idx, cell := range header {
		name := strings.TrimSpace(cell.String())
		if name == "" {
			continue
		}
		if _, seen := byName[name]; !seen {
			byName[name] = idx
		}
	}

	mapping := make(ColumnMap)
	for field, aliases := range headerAliases {
		for _, alias := range aliases {
			if idx, ok := byName[alias]; ok {
				mapping[field] = idx
				break
			}
		}
	}

	// Fixed positions win over alias matches, but only when the workbook is
	// wide enough to actually have that column.
	for field, idx := range tmpl.overrides() {
		if idx < len(header) {
			mapping[field] = idx
		}
	}

	var missing []error
	for _, field := range requiredFields {
		if _, ok := mapping[field]; !ok {
			missing = append(missing, fmt.Errorf("required column %q not found in header row", field))
		}
	}
	return mapping, missing
}
