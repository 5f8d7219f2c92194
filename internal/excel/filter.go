package excel

import (
	"fmt"
	"strings"
	"unicode"
)

// Sequence numbers outside this range are operator typos or summary rows.
const (
	minSequence = 0
	maxSequence = 9999
)

// ignoredDriverTokens mark rows that carry something other than a driver in
// the driver column: invoice and credit-memo reference lines, email
// addresses, office staff who appear when a route is still unassigned, and
// placeholder markers.
var ignoredDriverTokens = []string{
	"INVOICE",
	"CREDIT MEMO",
	"CM#",
	"@",
	"MELISSA", // office dispatcher, shows up on unassigned routes
	"ADMIN",
	"TEST",
	"UNKNOWN",
}

// boilerplateCustomerRows are documentation lines the export tool injects
// into the customer column. They are route-level compliance notices, not
// delivery stops. Compared after normalizeBoilerplate.
var boilerplateCustomerRows = map[string]bool{
	"all invoices must be signed by the receiver":       true,
	"driver must collect payment before unloading":      true,
	"see route manifest for special delivery windows":   true,
	"end of route - return all paperwork to the office": true,
}

// RejectReason explains why a row was dropped; it becomes a user-visible
// warning with the row number attached.
type RejectReason struct {
	Field string
	Msg   string
}

func (r *RejectReason) String() string { return fmt.Sprintf("%s: %s", r.Field, r.Msg) }

// ValidateDriverName decides whether the driver cell holds a usable driver
// name. Names with any character outside letters, spaces and hyphens are
// rejected wholesale rather than cleaned up, because every observed instance
// was a non-driver row.
func ValidateDriverName(name string) *RejectReason {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return &RejectReason{Field: "driver", Msg: "driver name is empty"}
	}
	upper := strings.ToUpper(trimmed)
	for _, tok := range ignoredDriverTokens {
		if strings.Contains(upper, tok) {
			return &RejectReason{Field: "driver", Msg: fmt.Sprintf("ignored driver token %q in %q", tok, trimmed)}
		}
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' {
			return &RejectReason{Field: "driver", Msg: fmt.Sprintf("invalid character %q in driver name %q", r, trimmed)}
		}
	}
	return nil
}

// ValidateCustomerName decides whether the sanitized customer cell holds a
// real customer. The caller has already skipped blank cells.
func ValidateCustomerName(sanitized string) *RejectReason {
	if looksLikeEmail(sanitized) {
		return &RejectReason{Field: "customer", Msg: fmt.Sprintf("customer name %q is an email address", sanitized)}
	}
	if boilerplateCustomerRows[normalizeBoilerplate(sanitized)] {
		return &RejectReason{Field: "customer", Msg: fmt.Sprintf("boilerplate row %q", sanitized)}
	}
	if len([]rune(sanitized)) < 2 {
		return &RejectReason{Field: "customer", Msg: fmt.Sprintf("customer name %q too short", sanitized)}
	}
	if len([]rune(sanitized)) > 100 {
		return &RejectReason{Field: "customer", Msg: fmt.Sprintf("customer name %q too long", sanitized)}
	}
	return nil
}

// ValidateSequence parses and bounds-checks the stop sequence cell.
func ValidateSequence(cell CellValue) (int, *RejectReason) {
	seq, ok := cell.Int()
	if !ok {
		return 0, &RejectReason{Field: "sequence", Msg: fmt.Sprintf("sequence %q is not an integer", cell.String())}
	}
	if seq < minSequence || seq > maxSequence {
		return 0, &RejectReason{Field: "sequence", Msg: fmt.Sprintf("sequence %d out of range", seq)}
	}
	return seq, nil
}
