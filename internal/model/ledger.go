package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	// TransactionCredit is a finalized, realized earning.
	TransactionCredit TransactionType = "credit"
	// TransactionPending is an earning not yet confirmed by the task network.
	TransactionPending TransactionType = "pending"
)

// Transaction is an append-only ledger row. The core never mutates or
// deletes these; it only sums them.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Points      decimal.Decimal
	Type        TransactionType
	Description string
	CreatedAt   time.Time
}

type TaskCompletion struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TaskName  string
	CreatedAt time.Time
}

// Referral is a directed edge from the referrer to the referred user.
type Referral struct {
	ID         uuid.UUID
	ReferrerID uuid.UUID
	ReferredID uuid.UUID
	CreatedAt  time.Time
}
