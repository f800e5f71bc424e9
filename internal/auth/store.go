package auth

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// UserStore is the credential-store surface the handlers need. Lookups return
// (nil, nil) when no record matches.
type UserStore interface {
	FindByEmailOrUsername(email, username string) (*User, error)
	FindByUsername(username string) (*User, error)
	FindByID(id uint) (*User, error)
	Create(user *User) error
	TouchLastLogin(id uint, at time.Time) error
}

type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) FindByEmailOrUsername(email, username string) (*User, error) {
	var user User
	err := s.DB.Where("email = ? OR username = ?", email, username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) FindByUsername(username string) (*User, error) {
	var user User
	err := s.DB.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) FindByID(id uint) (*User, error) {
	var user User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) Create(user *User) error {
	return s.DB.Create(user).Error
}

func (s *GormStore) TouchLastLogin(id uint, at time.Time) error {
	return s.DB.Model(&User{}).Where("id = ?", id).Update("last_login", at).Error
}
