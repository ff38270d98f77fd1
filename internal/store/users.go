package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

func (s *GORMStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *GORMStore) CreateUser(ctx context.Context, user *User) error {
	user.CreatedAt = time.Now()
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (s *GORMStore) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.db.WithContext(ctx).Order("username").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
