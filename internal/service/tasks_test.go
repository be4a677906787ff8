package service

import (
	"context"
	"testing"

	"earnhub_backend/internal/model"
	"earnhub_backend/internal/repository"
	"earnhub_backend/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTaskService_CreditTask(t *testing.T) {
	userID := uuid.New()
	user := &model.User{ID: userID, Username: "maria"}

	t.Run("records credit for the user", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		mockLedger := &mocks.MockLedgerRepository{}

		mockRepo.On("GetUserByUsername", mock.Anything, "maria").Return(user, nil)
		mockLedger.On("CreateCredit", mock.Anything, userID, int64(250), "survey-7").Return(nil)

		service := NewTaskService(mockRepo, mockLedger)
		err := service.CreditTask(context.Background(), "maria", 250, "survey-7")

		assert.NoError(t, err)
		mockLedger.AssertExpectations(t)
	})

	t.Run("rejects non-positive points", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		mockLedger := &mocks.MockLedgerRepository{}

		service := NewTaskService(mockRepo, mockLedger)
		err := service.CreditTask(context.Background(), "maria", 0, "survey-7")

		assert.ErrorIs(t, err, ErrInvalidCredit)
		mockLedger.AssertNotCalled(t, "CreateCredit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		mockLedger := &mocks.MockLedgerRepository{}

		mockRepo.On("GetUserByUsername", mock.Anything, "ghost").
			Return(nil, repository.ErrNotFound)

		service := NewTaskService(mockRepo, mockLedger)
		err := service.CreditTask(context.Background(), "ghost", 100, "survey-7")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
