package excel

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CellKind tags the primitive type a cell resolved to.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

// CellValue is the typed value of one spreadsheet cell. Rows are resolved to
// typed fields in the stop builder and never carried further as loose data.
type CellValue struct {
	Kind CellKind
	Text string
	Num  float64
	Date time.Time
}

// NewCellValue classifies a raw cell string as produced by excelize. Numeric
// strings become numbers; a handful of common spreadsheet date layouts become
// dates; everything else is text.
func NewCellValue(raw string) CellValue {
	s := strings.TrimSpace(raw)
	if s == "" {
		return CellValue{Kind: CellEmpty}
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return CellValue{Kind: CellNumber, Num: n, Text: s}
	}
	for _, layout := range []string{"1/2/06", "01/02/2006", "2006-01-02", "1-2-06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return CellValue{Kind: CellDate, Date: t, Text: s}
		}
	}
	return CellValue{Kind: CellText, Text: s}
}

// IsEmpty reports whether the cell held no value.
func (c CellValue) IsEmpty() bool { return c.Kind == CellEmpty }

// String returns the cell as text. Numbers are rendered without a trailing
// ".0" so integer-formatted cells round-trip cleanly (sequence numbers,
// invoice numbers stored as numeric cells).
func (c CellValue) String() string {
	switch c.Kind {
	case CellEmpty:
		return ""
	case CellNumber:
		if c.Num == float64(int64(c.Num)) {
			return strconv.FormatInt(int64(c.Num), 10)
		}
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	default:
		return c.Text
	}
}

// Int parses the cell as an integer.
func (c CellValue) Int() (int, bool) {
	switch c.Kind {
	case CellNumber:
		if c.Num != float64(int64(c.Num)) {
			return 0, false
		}
		return int(c.Num), true
	case CellText:
		n, err := strconv.Atoi(strings.TrimSpace(c.Text))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Amount parses the cell as a money amount, tolerating "$" and thousands
// separators. Returns nil for empty or unparseable cells.
func (c CellValue) Amount() *decimal.Decimal {
	switch c.Kind {
	case CellNumber:
		d := decimal.NewFromFloat(c.Num)
		return &d
	case CellText:
		s := strings.TrimSpace(c.Text)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil
		}
		return &d
	default:
		return nil
	}
}

// Flag interprets the cell as a checkbox-style marker. Spreadsheet authors
// use "X", "yes", "1" or a nonzero amount interchangeably.
func (c CellValue) Flag() bool {
	switch c.Kind {
	case CellNumber:
		return c.Num != 0
	case CellText:
		switch strings.ToLower(strings.TrimSpace(c.Text)) {
		case "x", "xx", "y", "yes", "true":
			return true
		}
		return false
	default:
		return false
	}
}
