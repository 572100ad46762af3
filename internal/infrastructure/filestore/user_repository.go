package filestore

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/billmaster-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billmaster-api/internal/domain/repository"
)

type userRepository struct {
	s *Store
}

// NewUserRepository creates a user repository over the file store
func NewUserRepository(s *Store) domainRepo.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	user.Email = strings.ToLower(user.Email)
	return r.s.update(ctx, func(st *state) error {
		var highest uint
		for _, u := range st.Users {
			if u.Email == user.Email {
				return domainRepo.ErrDuplicate
			}
			if u.ID > highest {
				highest = u.ID
			}
		}
		now := r.s.now()
		user.ID = r.s.nextID(st, colUsers, highest)
		user.CreatedAt = now
		user.UpdatedAt = now
		st.Users = append(st.Users, *user)
		r.s.touch(colUsers)
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.find(ctx, func(u *entity.User) bool { return u.ID == id })
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(email)
	return r.find(ctx, func(u *entity.User) bool { return u.Email == email })
}

func (r *userRepository) List(ctx context.Context) ([]entity.User, error) {
	var out []entity.User
	err := r.s.view(ctx, func(st *state) error {
		out = append([]entity.User{}, st.Users...)
		return nil
	})
	return out, err
}

func (r *userRepository) find(ctx context.Context, match func(*entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.s.view(ctx, func(st *state) error {
		for i := range st.Users {
			if match(&st.Users[i]) {
				u := st.Users[i]
				out = &u
				break
			}
		}
		return nil
	})
	return out, err
}

type idempotencyRepository struct {
	s *Store
}

// NewIdempotencyRepository creates an idempotency key repository over the file store
func NewIdempotencyRepository(s *Store) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{s: s}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uint) (*entity.IdempotencyKey, error) {
	var out *entity.IdempotencyKey
	err := r.s.view(ctx, func(st *state) error {
		for i := range st.IdempotencyKeys {
			k := st.IdempotencyKeys[i]
			if k.Key == key && k.UserID == userID {
				out = &k
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return r.s.update(ctx, func(st *state) error {
		for _, k := range st.IdempotencyKeys {
			if k.Key == ikey.Key {
				return domainRepo.ErrDuplicate
			}
		}
		if ikey.ID == uuid.Nil {
			ikey.ID = uuid.New()
		}
		ikey.CreatedAt = r.s.now()
		st.IdempotencyKeys = append(st.IdempotencyKeys, *ikey)
		r.s.touch(colIdempotency)
		return nil
	})
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return r.s.update(ctx, func(st *state) error {
		now := r.s.now()
		kept := make([]entity.IdempotencyKey, 0, len(st.IdempotencyKeys))
		for _, k := range st.IdempotencyKeys {
			if k.ExpiresAt.After(now) {
				kept = append(kept, k)
			}
		}
		if len(kept) != len(st.IdempotencyKeys) {
			st.IdempotencyKeys = kept
			r.s.touch(colIdempotency)
		}
		return nil
	})
}
