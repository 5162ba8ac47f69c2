package models

import (
	"context"
	"errors"
	"time"

	"github.com/ArbeitEmployee/arbeit-crm-backend/config"
	"github.com/ArbeitEmployee/arbeit-crm-backend/utils"
	"gorm.io/gorm"
)

const (
	historyActionCreate = "create"
	historyActionUpdate = "update"
	historyActionDelete = "delete"
)

// History is an append-only audit row written from the model hooks inside
// the same transaction as the change it records.
type History struct {
	ID          int       `gorm:"primary_key" json:"id"`
	AdminId     int       `gorm:"index;not null" json:"admin"`
	UserId      int       `gorm:"index" json:"userId"`
	UserName    string    `gorm:"size:255" json:"userName"`
	EntityType  string    `gorm:"size:50;index;not null" json:"entityType"`
	EntityId    int       `gorm:"index;not null" json:"entityId"`
	Action      string    `gorm:"size:20;not null" json:"action"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func saveHistory(tx *gorm.DB, entityType string, entityId int, action string, description string) error {
	ctx := tx.Statement.Context
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		// migrations and seed paths run without a signed-in admin
		return nil
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	userName, _ := utils.GetUserNameFromContext(ctx)
	if userName == "" {
		// fall back to the account email for display
		userName, _ = utils.GetUserEmailFromContext(ctx)
	}
	history := History{
		AdminId:     adminId,
		UserId:      userId,
		UserName:    userName,
		EntityType:  entityType,
		EntityId:    entityId,
		Action:      action,
		Description: description,
	}
	return tx.Session(&gorm.Session{NewDB: true}).Create(&history).Error
}

func GetHistories(ctx context.Context, entityType string, entityId int) ([]*History, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("admin_id = ?", adminId)
	if entityType != "" {
		dbCtx = dbCtx.Where("entity_type = ?", entityType)
	}
	if entityId != 0 {
		dbCtx = dbCtx.Where("entity_id = ?", entityId)
	}
	var results []*History
	if err := dbCtx.Order("id DESC").Limit(200).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
