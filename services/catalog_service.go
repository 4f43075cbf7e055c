package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"autocatalog/db"
	"autocatalog/models"

	"go.uber.org/zap"
)

// OperationObserver receives the outcome of every catalog operation.
type OperationObserver interface {
	ObserveOperation(op string, result string)
}

// CatalogService implements brand and vehicle CRUD on top of a db.Store.
// Uniqueness is checked before writing, and a constraint violation reported
// by the store on write is also returned as AlreadyExistsError.
type CatalogService struct {
	store    db.Store
	log      *zap.Logger
	observer OperationObserver
}

// NewCatalogService creates a catalog service. observer may be nil.
func NewCatalogService(store db.Store, log *zap.Logger, observer OperationObserver) *CatalogService {
	return &CatalogService{
		store:    store,
		log:      log,
		observer: observer,
	}
}

func (s *CatalogService) observe(op string, err error) {
	if s.observer == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case IsNotFound(err):
		result = "not_found"
	case IsAlreadyExists(err):
		result = "already_exists"
	case IsValidation(err):
		result = "invalid"
	default:
		result = "error"
	}
	s.observer.ObserveOperation(op, result)
}

var errEmptyName = &ValidationError{Reason: "name must not be empty"}

func brandNotFound(id uint) error {
	return &NotFoundError{What: fmt.Sprintf("brand id=%d", id)}
}

func vehicleNotFound(id uint) error {
	return &NotFoundError{What: fmt.Sprintf("vehicle id=%d", id)}
}

func getBrand(ctx context.Context, tx db.Store, id uint) (*models.Brand, error) {
	brand, err := tx.Brands().Get(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, brandNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get brand %d: %w", id, err)
	}
	return brand, nil
}

func getVehicle(ctx context.Context, tx db.Store, id uint) (*models.Vehicle, error) {
	vehicle, err := tx.Vehicles().Get(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, vehicleNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle %d: %w", id, err)
	}
	return vehicle, nil
}

// ensureBrandNameFree fails with AlreadyExistsError if another brand uses name.
func ensureBrandNameFree(ctx context.Context, tx db.Store, name string, exceptID uint) error {
	existing, err := tx.Brands().FindByName(ctx, name)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check brand name: %w", err)
	case existing.ID == exceptID:
		return nil
	}
	return &AlreadyExistsError{What: name}
}

// ensureVehicleNameFree fails with AlreadyExistsError if another vehicle of
// the same brand uses name.
func ensureVehicleNameFree(ctx context.Context, tx db.Store, brandID uint, name string, exceptID uint) error {
	existing, err := tx.Vehicles().FindByBrandAndName(ctx, brandID, name)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check vehicle name: %w", err)
	case existing.ID == exceptID:
		return nil
	}
	return &AlreadyExistsError{What: fmt.Sprintf("vehicle name=%s brand id=%d", name, brandID)}
}

func (s *CatalogService) CreateBrand(ctx context.Context, in models.BrandCreate) (brand *models.Brand, err error) {
	defer func() { s.observe("create_brand", err) }()

	if strings.TrimSpace(in.Name) == "" {
		return nil, errEmptyName
	}

	err = s.store.Transaction(ctx, func(tx db.Store) error {
		if err := ensureBrandNameFree(ctx, tx, in.Name, 0); err != nil {
			return err
		}
		b := &models.Brand{Name: in.Name}
		if err := tx.Brands().Insert(ctx, b); err != nil {
			if errors.Is(err, db.ErrConstraintViolation) {
				return &AlreadyExistsError{What: in.Name}
			}
			return fmt.Errorf("insert brand: %w", err)
		}
		brand = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("created brand", zap.Uint("id", brand.ID), zap.String("name", brand.Name))
	return brand, nil
}

func (s *CatalogService) GetBrand(ctx context.Context, id uint) (brand *models.Brand, err error) {
	defer func() { s.observe("get_brand", err) }()
	return getBrand(ctx, s.store, id)
}

// UpdateBrand applies only the fields present in in.
func (s *CatalogService) UpdateBrand(ctx context.Context, id uint, in models.BrandUpdate) (brand *models.Brand, err error) {
	defer func() { s.observe("update_brand", err) }()

	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, errEmptyName
	}

	err = s.store.Transaction(ctx, func(tx db.Store) error {
		b, err := getBrand(ctx, tx, id)
		if err != nil {
			return err
		}
		if in.Name != nil && *in.Name != b.Name {
			if err := ensureBrandNameFree(ctx, tx, *in.Name, b.ID); err != nil {
				return err
			}
		}
		if err := tx.Brands().UpdateFields(ctx, b, in.Fields()); err != nil {
			if errors.Is(err, db.ErrConstraintViolation) {
				return &AlreadyExistsError{What: *in.Name}
			}
			return fmt.Errorf("update brand %d: %w", id, err)
		}
		brand = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("updated brand", zap.Uint("id", id))
	return brand, nil
}

// DeleteBrand removes the brand together with all of its vehicles.
func (s *CatalogService) DeleteBrand(ctx context.Context, id uint) (err error) {
	defer func() { s.observe("delete_brand", err) }()

	err = s.store.Transaction(ctx, func(tx db.Store) error {
		b, err := getBrand(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := tx.Brands().Delete(ctx, b); err != nil {
			return fmt.Errorf("delete brand %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("deleted brand", zap.Uint("id", id))
	return nil
}

// ListBrandVehicles returns the vehicles owned by a brand, oldest first.
func (s *CatalogService) ListBrandVehicles(ctx context.Context, brandID uint) (vehicles []models.Vehicle, err error) {
	defer func() { s.observe("list_brand_vehicles", err) }()

	err = s.store.Transaction(ctx, func(tx db.Store) error {
		if _, err := getBrand(ctx, tx, brandID); err != nil {
			return err
		}
		list, err := tx.Brands().Vehicles(ctx, brandID)
		if err != nil {
			return fmt.Errorf("list vehicles of brand %d: %w", brandID, err)
		}
		vehicles = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (s *CatalogService) CreateVehicle(ctx context.Context, in models.VehicleCreate) (vehicle *models.Vehicle, err error) {
	defer func() { s.observe("create_vehicle", err) }()

	if strings.TrimSpace(in.Name) == "" || in.Year == nil || in.BrandID == nil {
		return nil, &ValidationError{Reason: "name, year and brand_id are required"}
	}

	err = s.store.Transaction(ctx, func(tx db.Store) error {
		if _, err := getBrand(ctx, tx, *in.BrandID); err != nil {
			return err
		}
		if err := ensureVehicleNameFree(ctx, tx, *in.BrandID, in.Name, 0); err != nil {
			return err
		}
		v := &models.Vehicle{Name: in.Name, Year: *in.Year, BrandID: *in.BrandID}
		if err := tx.Vehicles().Insert(ctx, v); err != nil {
			if errors.Is(err, db.ErrConstraintViolation) {
				return &AlreadyExistsError{What: in.Name}
			}
			return fmt.Errorf("insert vehicle: %w", err)
		}
		vehicle = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("created vehicle", zap.Uint("id", vehicle.ID), zap.String("name", vehicle.Name), zap.Uint("brand_id", vehicle.BrandID))
	return vehicle, nil
}

func (s *CatalogService) GetVehicle(ctx context.Context, id uint) (vehicle *models.Vehicle, err error) {
	defer func() { s.observe("get_vehicle", err) }()
	return getVehicle(ctx, s.store, id)
}

// UpdateVehicle applies only the fields present in in. At least one of
// name or year must be given.
func (s *CatalogService) UpdateVehicle(ctx context.Context, id uint, in models.VehicleUpdate) (vehicle *models.Vehicle, err error) {
	defer func() { s.observe("update_vehicle", err) }()

	if in.Empty() {
		return nil, &ValidationError{Reason: "year or name should be passed"}
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, errEmptyName
	}

	err = s.store.Transaction(ctx, func(tx db.Store) error {
		v, err := getVehicle(ctx, tx, id)
		if err != nil {
			return err
		}
		if in.Name != nil && *in.Name != v.Name {
			if err := ensureVehicleNameFree(ctx, tx, v.BrandID, *in.Name, v.ID); err != nil {
				return err
			}
		}
		if err := tx.Vehicles().UpdateFields(ctx, v, in.Fields()); err != nil {
			if errors.Is(err, db.ErrConstraintViolation) {
				return &AlreadyExistsError{What: *in.Name}
			}
			return fmt.Errorf("update vehicle %d: %w", id, err)
		}
		vehicle = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("updated vehicle", zap.Uint("id", id))
	return vehicle, nil
}

func (s *CatalogService) DeleteVehicle(ctx context.Context, id uint) (err error) {
	defer func() { s.observe("delete_vehicle", err) }()

	err = s.store.Transaction(ctx, func(tx db.Store) error {
		v, err := getVehicle(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := tx.Vehicles().Delete(ctx, v); err != nil {
			return fmt.Errorf("delete vehicle %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("deleted vehicle", zap.Uint("id", id))
	return nil
}
