package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"autocatalog/auth"
	"autocatalog/db"
	"autocatalog/models"

	"go.uber.org/zap"
)

// ErrBadCredentials is returned by Authenticate for unknown users, wrong
// passwords and inactive accounts alike.
var ErrBadCredentials = errors.New("LOGIN_BAD_CREDENTIALS")

// UserService manages the accounts allowed to call the API.
type UserService struct {
	store db.Store
	log   *zap.Logger
}

func NewUserService(store db.Store, log *zap.Logger) *UserService {
	return &UserService{store: store, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser registers a new active user.
func (s *UserService) CreateUser(ctx context.Context, email, password string, superuser bool) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, &ValidationError{Reason: "email and password are required"}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:          email,
		HashedPassword: hash,
		IsActive:       true,
		IsSuperuser:    superuser,
	}
	err = s.store.Transaction(ctx, func(tx db.Store) error {
		if _, err := tx.Users().FindByEmail(ctx, email); err == nil {
			return &AlreadyExistsError{What: email}
		} else if !errors.Is(err, db.ErrNotFound) {
			return fmt.Errorf("check user email: %w", err)
		}
		if err := tx.Users().Insert(ctx, user); err != nil {
			if errors.Is(err, db.ErrConstraintViolation) {
				return &AlreadyExistsError{What: email}
			}
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user created", zap.Uint("id", user.ID), zap.String("email", user.Email))
	return user, nil
}

// EnsureUser creates the user unless one with the same email already exists.
func (s *UserService) EnsureUser(ctx context.Context, email, password string, superuser bool) error {
	_, err := s.CreateUser(ctx, email, password, superuser)
	if IsAlreadyExists(err) {
		s.log.Info("user already exists", zap.String("email", normalizeEmail(email)))
		return nil
	}
	return err
}

// Authenticate returns the active user matching email and password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.Users().FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !auth.CheckPassword(user.HashedPassword, password) || !user.IsActive {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.getUser(ctx, s.store, id)
}

func (s *UserService) getUser(ctx context.Context, tx db.Store, id uint) (*models.User, error) {
	user, err := tx.Users().Get(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, &NotFoundError{What: fmt.Sprintf("user id=%d", id)}
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// Update applies the fields present in in to the user. Account flags are
// applied only when withFlags is set; a user editing their own account
// cannot change them.
func (s *UserService) Update(ctx context.Context, id uint, in models.UserUpdate, withFlags bool) (*models.User, error) {
	fields := map[string]any{}
	if withFlags {
		fields = in.FlagFields()
	}

	var email string
	if in.Email != nil {
		email = normalizeEmail(*in.Email)
		if email == "" {
			return nil, &ValidationError{Reason: "email must not be empty"}
		}
		fields["email"] = email
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, &ValidationError{Reason: "password must not be empty"}
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["hashed_password"] = hash
	}

	var user *models.User
	err := s.store.Transaction(ctx, func(tx db.Store) error {
		u, err := s.getUser(ctx, tx, id)
		if err != nil {
			return err
		}
		if email != "" && email != u.Email {
			if _, err := tx.Users().FindByEmail(ctx, email); err == nil {
				return &AlreadyExistsError{What: email}
			} else if !errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("check user email: %w", err)
			}
		}
		if err := tx.Users().UpdateFields(ctx, u, fields); err != nil {
			if errors.Is(err, db.ErrConstraintViolation) {
				return &AlreadyExistsError{What: email}
			}
			return fmt.Errorf("update user %d: %w", id, err)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user updated", zap.Uint("id", id))
	return user, nil
}

// Delete removes the user. Tokens already issued to it stop working.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	err := s.store.Transaction(ctx, func(tx db.Store) error {
		u, err := s.getUser(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := tx.Users().Delete(ctx, u); err != nil {
			return fmt.Errorf("delete user %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("user deleted", zap.Uint("id", id))
	return nil
}
