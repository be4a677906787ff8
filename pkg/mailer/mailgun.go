package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"earnhub_backend/internal/model"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun dispatches operator notices via the Mailgun API.
type Mailgun struct {
	Domain   string
	APIKey   string
	Sender   string
	Operator string
}

func NewMailgun(domain, apiKey, sender, operator string) *Mailgun {
	return &Mailgun{
		Domain:   domain,
		APIKey:   apiKey,
		Sender:   sender,
		Operator: operator,
	}
}

// NotifyWithdrawal sends the payout request to the operator mailbox. The
// notice is the whole withdrawal flow: there is no ledger debit here.
func (m *Mailgun) NotifyWithdrawal(ctx context.Context, w *model.WithdrawalRequest) error {
	subject := fmt.Sprintf("New Withdrawal Request - GHS %s", w.Amount.StringFixed(2))

	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, withdrawalNotice(w), m.Operator)

	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, _, err := client.Send(c, msg)
	if err != nil {
		return fmt.Errorf("failed to send withdrawal notice: %w", err)
	}

	return nil
}

func withdrawalNotice(w *model.WithdrawalRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "User: %s (%s)\n", w.Username, w.SubjectID)
	fmt.Fprintf(&b, "Amount: GHS %s\n", w.Amount.StringFixed(2))
	fmt.Fprintf(&b, "Payment method: %s\n\n", paymentMethodLabel(w.PaymentMethod))

	switch w.PaymentMethod {
	case model.PaymentMobileMoney:
		fmt.Fprintf(&b, "Network: %s\n", orNotProvided(w.Network))
		fmt.Fprintf(&b, "Mobile number: %s\n", orNotProvided(w.MobileNumber))
		fmt.Fprintf(&b, "Account name: %s\n", orNotProvided(w.AccountName))
	case model.PaymentBank:
		fmt.Fprintf(&b, "Bank name: %s\n", orNotProvided(w.BankName))
		fmt.Fprintf(&b, "Account name: %s\n", orNotProvided(w.AccountName))
		fmt.Fprintf(&b, "Account number: %s\n", orNotProvided(w.AccountNumber))
	case model.PaymentBitcoin:
		fmt.Fprintf(&b, "Wallet address: %s\n", orNotProvided(w.BitcoinAddress))
		b.WriteString("Verify the address before sending BTC.\n")
	}

	b.WriteString("\nPlease process this request within 24 hours.\n")

	return b.String()
}

func paymentMethodLabel(method model.PaymentMethod) string {
	switch method {
	case model.PaymentMobileMoney:
		return "Mobile Money"
	case model.PaymentBank:
		return "Bank Transfer"
	case model.PaymentBitcoin:
		return "Bitcoin"
	default:
		return string(method)
	}
}

func orNotProvided(v string) string {
	if v == "" {
		return "Not provided"
	}
	return v
}
