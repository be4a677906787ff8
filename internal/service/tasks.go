package service

import (
	"context"
	"errors"
	"fmt"

	"earnhub_backend/internal/repository"
)

type TaskService struct {
	repo   UserRepository
	ledger LedgerRepository
}

func NewTaskService(repo UserRepository, ledger LedgerRepository) *TaskService {
	return &TaskService{
		repo:   repo,
		ledger: ledger,
	}
}

// CreditTask records a fulfilled task for the user: one credit transaction,
// one task completion and the balance bump, atomically in the store.
func (s *TaskService) CreditTask(ctx context.Context, username string, points int64, taskName string) error {
	if points <= 0 {
		return ErrInvalidCredit
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := s.ledger.CreateCredit(ctx, user.ID, points, taskName); err != nil {
		return fmt.Errorf("failed to record task credit: %w", err)
	}

	return nil
}
