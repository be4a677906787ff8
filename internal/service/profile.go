package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"earnhub_backend/internal/model"
	"earnhub_backend/internal/repository"
	"earnhub_backend/pkg/auth"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const earningsWindow = 30 * 24 * time.Hour

type ProfileService struct {
	repo   UserRepository
	ledger LedgerRepository
	alloc  *HandleAllocator
}

func NewProfileService(repo UserRepository, ledger LedgerRepository, alloc *HandleAllocator) *ProfileService {
	return &ProfileService{
		repo:   repo,
		ledger: ledger,
		alloc:  alloc,
	}
}

// ResolveProfile exchanges a verified identity assertion for the local user,
// creating one on first sight, and returns the aggregated profile view.
func (s *ProfileService) ResolveProfile(ctx context.Context, identity *auth.Identity) (*model.Profile, error) {
	user, err := s.repo.GetUserByEmailOrSubject(ctx, identity.Email, identity.SubjectID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}

		user, err = s.createUser(ctx, identity)
		if err != nil {
			return nil, err
		}
	}

	return s.buildProfile(ctx, user)
}

func (s *ProfileService) createUser(ctx context.Context, identity *auth.Identity) (*model.User, error) {
	seed := identity.DisplayName
	if seed == "" {
		seed = emailLocalPart(identity.Email)
	}

	username, err := s.alloc.Allocate(ctx, seed)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:            uuid.New(),
		SubjectID:     identity.SubjectID,
		Email:         identity.Email,
		Username:      username,
		PointsBalance: 0,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrCreationConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *ProfileService) buildProfile(ctx context.Context, user *model.User) (*model.Profile, error) {
	txs, err := s.ledger.ListTransactions(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	completions, err := s.ledger.CountTaskCompletions(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count task completions: %w", err)
	}

	referrals, err := s.ledger.CountReferrals(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count referrals: %w", err)
	}

	totals := aggregateLedger(txs, time.Now().UTC())

	return &model.Profile{
		Username:           user.Username,
		CreatedAt:          user.CreatedAt,
		PointsBalance:      user.PointsBalance,
		TotalEarned:        totals.earned,
		CompletedOffers:    completions,
		TotalReferrals:     referrals,
		EarningsLast30Days: totals.earnedLast30Days,
		EarningsInProgress: totals.inProgress,
	}, nil
}

func (s *ProfileService) GetUser(ctx context.Context, subjectID string) (*model.User, error) {
	user, err := s.repo.GetUserBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by subject: %w", err)
	}
	return user, nil
}

type ledgerTotals struct {
	earned           decimal.Decimal
	earnedLast30Days decimal.Decimal
	inProgress       decimal.Decimal
}

// aggregateLedger is a pure projection over the full transaction history,
// recomputed on every call. Amounts stay in the decimal domain end to end.
func aggregateLedger(txs []model.Transaction, now time.Time) ledgerTotals {
	totals := ledgerTotals{
		earned:           decimal.Zero,
		earnedLast30Days: decimal.Zero,
		inProgress:       decimal.Zero,
	}

	windowStart := now.Add(-earningsWindow)

	for _, tx := range txs {
		switch tx.Type {
		case model.TransactionCredit:
			totals.earned = totals.earned.Add(tx.Points)
			if tx.CreatedAt.After(windowStart) {
				totals.earnedLast30Days = totals.earnedLast30Days.Add(tx.Points)
			}
		case model.TransactionPending:
			totals.inProgress = totals.inProgress.Add(tx.Points)
		}
	}

	return totals
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
