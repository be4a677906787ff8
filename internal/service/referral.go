package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"earnhub_backend/internal/model"
	"earnhub_backend/internal/repository"
)

type ReferralService struct {
	repo    UserRepository
	baseURL string
}

func NewReferralService(repo UserRepository, baseURL string) *ReferralService {
	return &ReferralService{
		repo:    repo,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GetReferralInfo returns the user's stable referral code, generating and
// persisting one on first request. Codes are not checked against other
// users; the code space is large relative to the user count.
func (s *ReferralService) GetReferralInfo(ctx context.Context, subjectID string) (*model.ReferralInfo, error) {
	user, err := s.repo.GetUserBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by subject: %w", err)
	}

	code := ""
	if user.ReferralCode != nil {
		code = *user.ReferralCode
	}

	if code == "" {
		candidate := referralCandidate(user.Username)
		code, err = s.repo.ClaimReferralCode(ctx, user.ID, candidate)
		if err != nil {
			return nil, fmt.Errorf("failed to persist referral code: %w", err)
		}
	}

	return &model.ReferralInfo{
		ReferralCode: code,
		ReferralLink: fmt.Sprintf("%s/signup?ref=%s", s.baseURL, code),
	}, nil
}

func referralCandidate(username string) string {
	base := strings.ReplaceAll(strings.ToLower(username), " ", "")
	return fmt.Sprintf("%s%d", base, 1000+rand.Intn(9000))
}
