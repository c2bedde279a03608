package models

import "time"

// ConfirmationCode is one row of the confirmation ledger. At most one unused
// code per address is valid at a time: issuing a new code marks prior unused
// rows used, and a successful check consumes the row.
type ConfirmationCode struct {
	ID        string
	Address   string
	Code      string
	Used      bool
	CreatedAt time.Time
}
