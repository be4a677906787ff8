package mocks

import (
	"context"

	"earnhub_backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmailOrSubject(ctx context.Context, email, subjectID string) (*model.User, error) {
	args := m.Called(ctx, email, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetUserBySubjectID(ctx context.Context, subjectID string) (*model.User, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ClaimReferralCode(ctx context.Context, userID uuid.UUID, candidate string) (string, error) {
	args := m.Called(ctx, userID, candidate)
	return args.String(0), args.Error(1)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) CountTaskCompletions(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) CountReferrals(ctx context.Context, referrerID uuid.UUID) (int, error) {
	args := m.Called(ctx, referrerID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) CreateCredit(ctx context.Context, userID uuid.UUID, points int64, taskName string) error {
	args := m.Called(ctx, userID, points, taskName)
	return args.Error(0)
}

type MockWithdrawalNotifier struct {
	mock.Mock
}

func (m *MockWithdrawalNotifier) NotifyWithdrawal(ctx context.Context, w *model.WithdrawalRequest) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
