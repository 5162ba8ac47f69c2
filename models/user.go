package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ArbeitEmployee/arbeit-crm-backend/config"
	"github.com/ArbeitEmployee/arbeit-crm-backend/utils"
	"gorm.io/gorm"
)

// User is an admin account. Every document series and every document row is
// owned by exactly one admin.
type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:50;default:'admin'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewUser struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		Name:     input.Name,
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: string(hashed),
		Role:     "admin",
	}

	db := config.GetDB()
	dbCtx := db.WithContext(utils.SetSkipTenantScopeInContext(ctx, true))
	if err := dbCtx.Create(&user).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			return nil, utils.FieldError("email", "email is already registered")
		}
		return nil, err
	}
	return &user, nil
}

// Login checks the credentials and issues a signed token carrying the admin
// id. The same generic message covers a missing account and a wrong
// password.
func Login(ctx context.Context, input *LoginInput) (string, *User, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(utils.SetSkipTenantScopeInContext(ctx, true))

	var user User
	err := dbCtx.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, errors.New("invalid email or password")
	} else if err != nil {
		return "", nil, err
	}

	if err := utils.ComparePassword(user.Password, input.Password); err != nil {
		return "", nil, errors.New("invalid email or password")
	}

	token, err := utils.JwtGenerate(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}
