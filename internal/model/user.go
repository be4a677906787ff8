package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID            uuid.UUID
	SubjectID     string
	Email         string
	Username      string
	ReferralCode  *string
	PointsBalance int64
	CreatedAt     time.Time
}

// Profile is the aggregated view returned on resolve: stored user fields
// plus figures recomputed from the raw transaction ledger on every call.
type Profile struct {
	Username           string
	CreatedAt          time.Time
	PointsBalance      int64
	TotalEarned        decimal.Decimal
	CompletedOffers    int
	TotalReferrals     int
	EarningsLast30Days decimal.Decimal
	EarningsInProgress decimal.Decimal
}

type ReferralInfo struct {
	ReferralCode string
	ReferralLink string
}
