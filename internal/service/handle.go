package service

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

const (
	maxHandleLength = 20
	maxProbes       = 10
)

var handleStrip = regexp.MustCompile(`[^a-z0-9]+`)

// HandleAllocator produces a username not present in the store at call
// time. The probing is a best-effort pre-check only; the unique index on
// usernames is what actually prevents two racing allocations from both
// landing the same handle.
type HandleAllocator struct {
	repo UserRepository
}

func NewHandleAllocator(repo UserRepository) *HandleAllocator {
	return &HandleAllocator{
		repo: repo,
	}
}

// Allocate normalizes the seed and probes up to maxProbes candidates: the
// seed itself, then the seed with a random 3-digit suffix, then the seed
// with a counter starting at 2.
func (a *HandleAllocator) Allocate(ctx context.Context, seed string) (string, error) {
	base := normalizeHandle(seed)
	if base == "" {
		return "", ErrInvalidSeed
	}

	candidate := base
	for attempt := 1; attempt <= maxProbes; attempt++ {
		taken, err := a.repo.UsernameExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to probe handle %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}

		if attempt == 1 {
			candidate = fmt.Sprintf("%s%d", base, rand.Intn(1000))
		} else {
			candidate = fmt.Sprintf("%s%d", base, attempt)
		}
	}

	return "", ErrAllocationExhausted
}

func normalizeHandle(seed string) string {
	normalized := handleStrip.ReplaceAllString(strings.ToLower(seed), "")
	if len(normalized) > maxHandleLength {
		normalized = normalized[:maxHandleLength]
	}
	return normalized
}
