package db

import (
	"context"

	"autocatalog/models"

	"gorm.io/gorm"
)

type brandStore struct {
	db *gorm.DB
}

func (s *brandStore) Get(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.WithContext(ctx).First(&brand, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &brand, nil
}

func (s *brandStore) FindByName(ctx context.Context, name string) (*models.Brand, error) {
	var brand models.Brand
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&brand).Error; err != nil {
		return nil, translateError(err)
	}
	return &brand, nil
}

func (s *brandStore) Insert(ctx context.Context, brand *models.Brand) error {
	// Vehicles are never created through their brand
	brand.Vehicles = nil
	return translateError(s.db.WithContext(ctx).Create(brand).Error)
}

func (s *brandStore) UpdateFields(ctx context.Context, brand *models.Brand, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	db := s.db.WithContext(ctx)
	if err := db.Model(brand).Updates(fields).Error; err != nil {
		return translateError(err)
	}
	return translateError(db.First(brand, brand.ID).Error)
}

func (s *brandStore) Delete(ctx context.Context, brand *models.Brand) error {
	return translateError(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("brand_id = ?", brand.ID).Delete(&models.Vehicle{}).Error; err != nil {
			return err
		}
		return tx.Delete(brand).Error
	}))
}

func (s *brandStore) Vehicles(ctx context.Context, brandID uint) ([]models.Vehicle, error) {
	vehicles := []models.Vehicle{}
	if err := s.db.WithContext(ctx).Where("brand_id = ?", brandID).Order("id").Find(&vehicles).Error; err != nil {
		return nil, translateError(err)
	}
	return vehicles, nil
}
