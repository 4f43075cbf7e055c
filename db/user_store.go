package db

import (
	"context"

	"autocatalog/models"

	"gorm.io/gorm"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *userStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *userStore) Insert(ctx context.Context, user *models.User) error {
	return translateError(s.db.WithContext(ctx).Create(user).Error)
}

func (s *userStore) UpdateFields(ctx context.Context, user *models.User, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	db := s.db.WithContext(ctx)
	if err := db.Model(user).Updates(fields).Error; err != nil {
		return translateError(err)
	}
	return translateError(db.First(user, user.ID).Error)
}

func (s *userStore) Delete(ctx context.Context, user *models.User) error {
	return translateError(s.db.WithContext(ctx).Delete(user).Error)
}
