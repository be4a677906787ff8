package service

import (
	"context"
	"errors"

	"earnhub_backend/internal/model"
	"earnhub_backend/pkg/auth"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidSeed means the candidate normalized to an empty string.
	ErrInvalidSeed = errors.New("handle seed contains no usable characters")

	// ErrAllocationExhausted means every probe collided within the attempt
	// bound. The caller may resubmit with a different seed.
	ErrAllocationExhausted = errors.New("could not allocate a unique handle")

	// ErrCreationConflict means the store rejected the insert on a
	// uniqueness race. Resolution should be retried from the top.
	ErrCreationConflict = errors.New("user creation conflicted with a concurrent request")

	ErrInvalidWithdrawal = errors.New("withdrawal request is missing required fields")
	ErrInvalidCredit     = errors.New("credit amount must be positive")
)

type Service struct {
	*ProfileService
	*ReferralService
	*WithdrawService
	*TaskService
}

func NewService(profile *ProfileService, referral *ReferralService, withdraw *WithdrawService, tasks *TaskService) *Service {
	return &Service{
		ProfileService:  profile,
		ReferralService: referral,
		WithdrawService: withdraw,
		TaskService:     tasks,
	}
}

type ProfileServiceI interface {
	ResolveProfile(ctx context.Context, identity *auth.Identity) (*model.Profile, error)
	GetUser(ctx context.Context, subjectID string) (*model.User, error)
}

type ReferralServiceI interface {
	GetReferralInfo(ctx context.Context, subjectID string) (*model.ReferralInfo, error)
}

type WithdrawServiceI interface {
	Submit(ctx context.Context, w *model.WithdrawalRequest) error
}

type TaskServiceI interface {
	CreditTask(ctx context.Context, username string, points int64, taskName string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByEmailOrSubject(ctx context.Context, email, subjectID string) (*model.User, error)
	GetUserBySubjectID(ctx context.Context, subjectID string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	ClaimReferralCode(ctx context.Context, userID uuid.UUID, candidate string) (string, error)
}

type LedgerRepository interface {
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]model.Transaction, error)
	CountTaskCompletions(ctx context.Context, userID uuid.UUID) (int, error)
	CountReferrals(ctx context.Context, referrerID uuid.UUID) (int, error)
	CreateCredit(ctx context.Context, userID uuid.UUID, points int64, taskName string) error
}

type WithdrawalNotifier interface {
	NotifyWithdrawal(ctx context.Context, w *model.WithdrawalRequest) error
}
