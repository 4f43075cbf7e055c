package db

import (
	"context"

	"autocatalog/models"

	"gorm.io/gorm"
)

type vehicleStore struct {
	db *gorm.DB
}

func (s *vehicleStore) Get(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &vehicle, nil
}

func (s *vehicleStore) FindByBrandAndName(ctx context.Context, brandID uint, name string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := s.db.WithContext(ctx).
		Where("brand_id = ? AND name = ?", brandID, name).
		First(&vehicle).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &vehicle, nil
}

func (s *vehicleStore) Insert(ctx context.Context, vehicle *models.Vehicle) error {
	return translateError(s.db.WithContext(ctx).Create(vehicle).Error)
}

func (s *vehicleStore) UpdateFields(ctx context.Context, vehicle *models.Vehicle, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	db := s.db.WithContext(ctx)
	if err := db.Model(vehicle).Updates(fields).Error; err != nil {
		return translateError(err)
	}
	return translateError(db.First(vehicle, vehicle.ID).Error)
}

func (s *vehicleStore) Delete(ctx context.Context, vehicle *models.Vehicle) error {
	return translateError(s.db.WithContext(ctx).Delete(vehicle).Error)
}
