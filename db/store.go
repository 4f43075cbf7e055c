package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"autocatalog/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when an id or lookup key resolves to no row.
	ErrNotFound = errors.New("record not found")
	// ErrConstraintViolation is returned when a write would break a unique constraint.
	ErrConstraintViolation = errors.New("constraint violation")
)

// Store is the storage gateway over brands, vehicles and users.
type Store interface {
	Brands() BrandStore
	Vehicles() VehicleStore
	Users() UserStore

	// Transaction runs fn against a Store bound to a single transaction.
	// It commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(Store) error) error
}

type BrandStore interface {
	Get(ctx context.Context, id uint) (*models.Brand, error)
	FindByName(ctx context.Context, name string) (*models.Brand, error)
	Insert(ctx context.Context, brand *models.Brand) error
	UpdateFields(ctx context.Context, brand *models.Brand, fields map[string]any) error
	// Delete removes the brand and all of its vehicles.
	Delete(ctx context.Context, brand *models.Brand) error
	Vehicles(ctx context.Context, brandID uint) ([]models.Vehicle, error)
}

type VehicleStore interface {
	Get(ctx context.Context, id uint) (*models.Vehicle, error)
	FindByBrandAndName(ctx context.Context, brandID uint, name string) (*models.Vehicle, error)
	Insert(ctx context.Context, vehicle *models.Vehicle) error
	UpdateFields(ctx context.Context, vehicle *models.Vehicle, fields map[string]any) error
	Delete(ctx context.Context, vehicle *models.Vehicle) error
}

type UserStore interface {
	Get(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, user *models.User, fields map[string]any) error
	Delete(ctx context.Context, user *models.User) error
}

type gormStore struct {
	db       *gorm.DB
	brands   BrandStore
	vehicles VehicleStore
	users    UserStore
}

// NewStore creates a Store backed by db.
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:       db,
		brands:   &brandStore{db: db},
		vehicles: &vehicleStore{db: db},
		users:    &userStore{db: db},
	}
}

func (s *gormStore) Brands() BrandStore     { return s.brands }
func (s *gormStore) Vehicles() VehicleStore { return s.vehicles }
func (s *gormStore) Users() UserStore       { return s.users }

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// translateError maps driver errors onto the package sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	return err
}
