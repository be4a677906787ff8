package service

import (
	"context"
	"regexp"
	"testing"

	"earnhub_backend/internal/model"
	"earnhub_backend/internal/repository"
	"earnhub_backend/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReferralService_GetReferralInfo(t *testing.T) {
	codePattern := regexp.MustCompile(`^maria\d{4}$`)

	t.Run("stored code is returned unchanged", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}

		code := "maria4821"
		user := &model.User{
			ID:           uuid.New(),
			SubjectID:    "sub-1",
			Username:     "maria",
			ReferralCode: &code,
		}
		mockRepo.On("GetUserBySubjectID", mock.Anything, "sub-1").
			Return(user, nil)

		service := NewReferralService(mockRepo, "https://earnhub.example")

		first, err := service.GetReferralInfo(context.Background(), "sub-1")
		assert.NoError(t, err)
		second, err := service.GetReferralInfo(context.Background(), "sub-1")
		assert.NoError(t, err)

		assert.Equal(t, "maria4821", first.ReferralCode)
		assert.Equal(t, first.ReferralCode, second.ReferralCode)
		assert.Equal(t, "https://earnhub.example/signup?ref=maria4821", first.ReferralLink)

		mockRepo.AssertNotCalled(t, "ClaimReferralCode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing code is generated and persisted", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}

		userID := uuid.New()
		user := &model.User{
			ID:        userID,
			SubjectID: "sub-1",
			Username:  "Maria",
		}
		mockRepo.On("GetUserBySubjectID", mock.Anything, "sub-1").
			Return(user, nil)
		mockRepo.On("ClaimReferralCode", mock.Anything, userID, mock.MatchedBy(func(c string) bool {
			return codePattern.MatchString(c)
		})).Return("maria1234", nil)

		service := NewReferralService(mockRepo, "https://earnhub.example/")

		info, err := service.GetReferralInfo(context.Background(), "sub-1")

		assert.NoError(t, err)
		assert.Equal(t, "maria1234", info.ReferralCode)
		assert.Equal(t, "https://earnhub.example/signup?ref=maria1234", info.ReferralLink)
		mockRepo.AssertExpectations(t)
	})

	t.Run("race loser converges on the stored code", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}

		userID := uuid.New()
		user := &model.User{
			ID:        userID,
			SubjectID: "sub-1",
			Username:  "maria",
		}
		mockRepo.On("GetUserBySubjectID", mock.Anything, "sub-1").
			Return(user, nil)
		// conditional write lost; the store hands back the winner's code
		mockRepo.On("ClaimReferralCode", mock.Anything, userID, mock.Anything).
			Return("maria9999", nil)

		service := NewReferralService(mockRepo, "https://earnhub.example")

		info, err := service.GetReferralInfo(context.Background(), "sub-1")

		assert.NoError(t, err)
		assert.Equal(t, "maria9999", info.ReferralCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}

		mockRepo.On("GetUserBySubjectID", mock.Anything, "missing").
			Return(nil, repository.ErrNotFound)

		service := NewReferralService(mockRepo, "https://earnhub.example")

		_, err := service.GetReferralInfo(context.Background(), "missing")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestReferralCandidate(t *testing.T) {
	pattern := regexp.MustCompile(`^mariagarcia\d{4}$`)

	for i := 0; i < 50; i++ {
		candidate := referralCandidate("Maria Garcia")
		assert.Regexp(t, pattern, candidate)
	}
}
