package model

import "github.com/shopspring/decimal"

type PaymentMethod string

const (
	PaymentMobileMoney PaymentMethod = "momo"
	PaymentBank        PaymentMethod = "bank"
	PaymentBitcoin     PaymentMethod = "bitcoin"
)

// WithdrawalRequest is forwarded to the operator channel as-is. There is no
// corresponding ledger debit; payout is handled manually by the operator.
type WithdrawalRequest struct {
	SubjectID     string
	Username      string
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod

	Network        string
	MobileNumber   string
	AccountName    string
	BankName       string
	AccountNumber  string
	BitcoinAddress string
}
