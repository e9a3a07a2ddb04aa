package domain

import "time"

// Campaign statuses. The status column stores these values verbatim.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusPending  = "Pending"
)

// Payment models. Optional on a campaign; an empty string means not set.
const (
	PaymentCPL   = "CPL"
	PaymentPPR   = "PPR"
	PaymentOther = "Other"
)

// Campaign represents a client campaign specification record. Notes holds
// the current note text only; past values live in the notes history.
// PDFFilename is a denormalized pointer to the latest uploaded spec file
// and is kept in sync with the highest spec version on every upload.
type Campaign struct {
	ID           int64
	Name         string
	Client       string
	Status       string
	PaymentModel string   // empty when not set
	CPA          *float64 // nil when not set
	PDFFilename  string
	Notes        string
	SpecURL      string
	LastUpdated  time.Time
}

// ValidStatus reports whether s is one of the known campaign statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// ValidPaymentModel reports whether m is a known payment model. The empty
// string is valid because the field is optional.
func ValidPaymentModel(m string) bool {
	switch m {
	case "", PaymentCPL, PaymentPPR, PaymentOther:
		return true
	}
	return false
}
