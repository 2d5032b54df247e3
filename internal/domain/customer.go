package domain

import "time"

// Customer is a bank customer. Identity fields (ID, Number, Username)
// are immutable once created. The customer's portfolio is addressed by
// the customer id; positions are looked up by (customer id, symbol)
// rather than traversed through back-references.
type Customer struct {
	ID        string
	Number    int64 // unique customer number assigned by the bank
	Username  string
	FirstName string
	LastName  string
	Address   string
	CreatedAt time.Time
}
