package memory

import (
	"context"
	"strings"
	"time"

	"studymarket/internal/domain/entity"
	"studymarket/internal/domain/repository"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	defer r.s.acquire(ctx)()
	email := strings.ToLower(user.Email)
	if exists(r.s.data.users, func(u entity.User) bool { return strings.ToLower(u.Email) == email }) {
		return repository.ErrDuplicate
	}
	return insert(r.s.data.users, user.ID, *user)
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	defer r.s.acquire(ctx)()
	return get(r.s.data.users, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	defer r.s.acquire(ctx)()
	email = strings.ToLower(email)
	return findOne(r.s.data.users, func(u entity.User) bool { return strings.ToLower(u.Email) == email })
}

func (r *userRepo) Update(ctx context.Context, id int64, update entity.UserUpdate) (*entity.User, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.users, id, func(entity.User) bool { return true }, func(u *entity.User) {
		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.LineID != nil {
			u.LineID = update.LineID
		}
		u.UpdatedAt = time.Now().UTC()
	})
}

func (r *userRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	defer r.s.acquire(ctx)()
	_, err := compareAndSwap(r.s.data.users, id, func(entity.User) bool { return true }, func(u *entity.User) {
		u.PasswordHash = hash
		u.UpdatedAt = time.Now().UTC()
	})
	return err
}

func (r *userRepo) AdjustWalletBalance(ctx context.Context, id int64, delta int64) (*entity.User, error) {
	defer r.s.acquire(ctx)()
	return compareAndSwap(r.s.data.users, id,
		func(u entity.User) bool { return u.WalletBalance+delta >= 0 },
		func(u *entity.User) {
			u.WalletBalance += delta
			u.UpdatedAt = time.Now().UTC()
		})
}
