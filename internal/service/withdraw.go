package service

import (
	"context"
	"errors"
	"fmt"

	"earnhub_backend/internal/model"
	"earnhub_backend/internal/repository"
)

type WithdrawService struct {
	repo     UserRepository
	notifier WithdrawalNotifier
}

func NewWithdrawService(repo UserRepository, notifier WithdrawalNotifier) *WithdrawService {
	return &WithdrawService{
		repo:     repo,
		notifier: notifier,
	}
}

// Submit validates the payout details and forwards them to the operator
// channel. No ledger debit happens here; payouts are settled manually.
func (s *WithdrawService) Submit(ctx context.Context, w *model.WithdrawalRequest) error {
	if err := validateWithdrawal(w); err != nil {
		return err
	}

	user, err := s.repo.GetUserBySubjectID(ctx, w.SubjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user by subject: %w", err)
	}
	w.Username = user.Username

	if err := s.notifier.NotifyWithdrawal(ctx, w); err != nil {
		return fmt.Errorf("failed to submit withdrawal request: %w", err)
	}

	return nil
}

func validateWithdrawal(w *model.WithdrawalRequest) error {
	if !w.Amount.IsPositive() {
		return ErrInvalidWithdrawal
	}

	switch w.PaymentMethod {
	case model.PaymentMobileMoney:
		if w.Network == "" || w.MobileNumber == "" || w.AccountName == "" {
			return ErrInvalidWithdrawal
		}
	case model.PaymentBank:
		if w.BankName == "" || w.AccountName == "" || w.AccountNumber == "" {
			return ErrInvalidWithdrawal
		}
	case model.PaymentBitcoin:
		if w.BitcoinAddress == "" {
			return ErrInvalidWithdrawal
		}
	default:
		return ErrInvalidWithdrawal
	}

	return nil
}
