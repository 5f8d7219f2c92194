package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stop lifecycle while the driver works the route.
const (
	StopStatusPending   = "PENDING"
	StopStatusOnTheWay  = "ON_THE_WAY"
	StopStatusArrived   = "ARRIVED"
	StopStatusCompleted = "COMPLETED"
	StopStatusFailed    = "FAILED"
)

// Stop is one customer visit within a route. The spreadsheet has no stable
// key for a stop, so reconciliation matches by customer name first and falls
// back to sequence number. Operational fields (arrival/completion times,
// driver remark, signed invoice, recorded payments) are owned by the delivery
// execution flow once the stop exists; a later import must not clobber them
// unless the new data is materially different.
type Stop struct {
	gorm.Model
	RouteID    uint     `json:"route_id" gorm:"index"`
	Route      *Route   `gorm:"foreignKey:RouteID" json:"-"`
	CustomerID uint     `json:"customer_id" gorm:"index"`
	Customer   Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Sequence int    `json:"sequence"`
	Status   string `json:"status"`

	// Raw values from the workbook, kept alongside the resolved customer so
	// the next import can re-match the row exactly as it was uploaded.
	CustomerNameFromUpload string `json:"customer_name_from_upload"`
	DriverNameFromUpload   string `json:"driver_name_from_upload"`

	GroupCode      string `json:"group_code"`
	CustomerEmail  string `json:"customer_email"`
	WebOrderNumber string `json:"web_order_number"`
	InvoiceNumber  string `json:"invoice_number"`
	DriverNotes    string `json:"driver_notes"`
	AdminNotes     string `json:"admin_notes"`

	PaymentFlagCash    bool `json:"payment_flag_cash"`
	PaymentFlagCheck   bool `json:"payment_flag_check"`
	PaymentFlagCC      bool `json:"payment_flag_cc"`
	PaymentFlagNotPaid bool `json:"payment_flag_not_paid"`
	IsCOD              bool `json:"is_cod"`
	HasReturn          bool `json:"has_return"`

	// Nil means "no amount recorded", which is not the same as zero.
	InvoiceAmount      *decimal.Decimal `json:"invoice_amount" gorm:"type:numeric(12,2)"`
	PaymentAmountCash  *decimal.Decimal `json:"payment_amount_cash" gorm:"type:numeric(12,2)"`
	PaymentAmountCheck *decimal.Decimal `json:"payment_amount_check" gorm:"type:numeric(12,2)"`
	PaymentAmountCC    *decimal.Decimal `json:"payment_amount_cc" gorm:"type:numeric(12,2)"`
	TotalPaymentAmount *decimal.Decimal `json:"total_payment_amount" gorm:"type:numeric(12,2)"`

	// Owned by delivery execution after creation.
	ArrivalTime         *time.Time `json:"arrival_time"`
	CompletionTime      *time.Time `json:"completion_time"`
	DriverRemark        string     `json:"driver_remark"`
	SignedInvoicePDFURL string     `json:"signed_invoice_pdf_url"`
}
