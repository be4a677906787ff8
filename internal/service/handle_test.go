package service

import (
	"context"
	"regexp"
	"testing"

	"earnhub_backend/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleAllocator_Allocate(t *testing.T) {
	randomVariant := regexp.MustCompile(`^john123\d{1,3}$`)

	tests := []struct {
		name          string
		seed          string
		mockSetup     func(repo *mocks.MockUserRepository)
		expected      *regexp.Regexp
		expectedError error
		probes        int
	}{
		{
			name: "free seed returned as-is",
			seed: "John123",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("UsernameExists", mock.Anything, "john123").
					Return(false, nil)
			},
			expected: regexp.MustCompile(`^john123$`),
			probes:   1,
		},
		{
			name:          "seed with no usable characters",
			seed:          "!!! ***",
			mockSetup:     func(repo *mocks.MockUserRepository) {},
			expectedError: ErrInvalidSeed,
			probes:        0,
		},
		{
			name: "seed truncated to twenty characters",
			seed: "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("UsernameExists", mock.Anything, "abcdefghijklmnopqrst").
					Return(false, nil)
			},
			expected: regexp.MustCompile(`^abcdefghijklmnopqrst$`),
			probes:   1,
		},
		{
			name: "first retry appends a random suffix",
			seed: "john123",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("UsernameExists", mock.Anything, "john123").
					Return(true, nil).Once()
				repo.On("UsernameExists", mock.Anything, mock.MatchedBy(func(h string) bool {
					return randomVariant.MatchString(h)
				})).Return(false, nil).Once()
			},
			expected: randomVariant,
			probes:   2,
		},
		{
			name: "later retries append a counter",
			seed: "john123",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("UsernameExists", mock.Anything, "john123").
					Return(true, nil).Once()
				repo.On("UsernameExists", mock.Anything, mock.MatchedBy(func(h string) bool {
					return randomVariant.MatchString(h)
				})).Return(true, nil).Once()
				repo.On("UsernameExists", mock.Anything, "john1232").
					Return(false, nil).Once()
			},
			expected: regexp.MustCompile(`^john1232$`),
			probes:   3,
		},
		{
			name: "exhausted after ten probes",
			seed: "john123",
			mockSetup: func(repo *mocks.MockUserRepository) {
				repo.On("UsernameExists", mock.Anything, mock.Anything).
					Return(true, nil)
			},
			expectedError: ErrAllocationExhausted,
			probes:        10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockUserRepository{}
			tt.mockSetup(mockRepo)

			allocator := NewHandleAllocator(mockRepo)
			handle, err := allocator.Allocate(context.Background(), tt.seed)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Regexp(t, tt.expected, handle)
			}

			mockRepo.AssertNumberOfCalls(t, "UsernameExists", tt.probes)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNormalizeHandle(t *testing.T) {
	tests := []struct {
		seed     string
		expected string
	}{
		{"John123", "john123"},
		{"John Doe", "johndoe"},
		{"mark.42", "mark42"},
		{"---", ""},
		{"Ümlaut", "mlaut"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeHandle(tt.seed))
	}
}
