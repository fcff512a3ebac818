package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
)

func newUser(id int64, email string, balance int64) *entity.User {
	now := time.Now().UTC()
	return &entity.User{
		ID:            id,
		Email:         email,
		Name:          "user",
		Role:          entity.RoleStudent,
		WalletBalance: balance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestNextIDIsGapFreeUnderConcurrency(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	const workers, perWorker = 8, 50
	seen := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id, err := s.NextID(ctx, repository.SeqPayments)
				if err != nil {
					t.Error(err)
					return
				}
				seen <- id
			}
		}()
	}
	wg.Wait()
	close(seen)

	ids := make(map[int64]bool)
	for id := range seen {
		assert.False(t, ids[id], "duplicate id %d", id)
		ids[id] = true
	}
	assert.Len(t, ids, workers*perWorker)
	for i := int64(1); i <= workers*perWorker; i++ {
		assert.True(t, ids[i], "missing id %d", i)
	}
	assert.EqualValues(t, workers*perWorker, s.CounterValue(repository.SeqPayments))
}

func TestWithTransactionRollsBack(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, newUser(1, "a@example.com", 100)))

	boom := errors.New("boom")
	err := s.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.NextID(ctx, repository.SeqWithdrawals); err != nil {
			return err
		}
		if _, err := s.Users().AdjustWalletBalance(ctx, 1, -60); err != nil {
			return err
		}
		// nested calls join the outer transaction
		return s.WithTransaction(ctx, func(ctx context.Context) error {
			return boom
		})
	})
	require.ErrorIs(t, err, boom)

	u, err := s.Users().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 100, u.WalletBalance)
	assert.EqualValues(t, 0, s.CounterValue(repository.SeqWithdrawals))
}

func TestWithTransactionRollsBackOnPanic(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.WithTransaction(ctx, func(ctx context.Context) error {
			_, _ = s.NextID(ctx, repository.SeqUsers)
			panic("bad")
		})
	})
	assert.EqualValues(t, 0, s.CounterValue(repository.SeqUsers))

	// the lock was released
	_, err := s.NextID(ctx, repository.SeqUsers)
	require.NoError(t, err)
}

func TestAdjustWalletBalanceNeverGoesNegative(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, newUser(1, "a@example.com", 50)))

	_, err := s.Users().AdjustWalletBalance(ctx, 1, -51)
	assert.ErrorIs(t, err, repository.ErrConflict)

	u, err := s.Users().AdjustWalletBalance(ctx, 1, -50)
	require.NoError(t, err)
	assert.EqualValues(t, 0, u.WalletBalance)

	_, err = s.Users().AdjustWalletBalance(ctx, 2, 10)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserEmailIsUniqueIgnoringCase(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, newUser(1, "a@example.com", 0)))

	err := s.Users().Create(ctx, newUser(2, "A@Example.com", 0))
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestReturnedDocumentsAreCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, newUser(1, "a@example.com", 10)))

	u, err := s.Users().GetByID(ctx, 1)
	require.NoError(t, err)
	u.WalletBalance = 9999

	again, err := s.Users().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 10, again.WalletBalance)
}
