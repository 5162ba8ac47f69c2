package models

import (
	"context"
	"errors"

	"github.com/ArbeitEmployee/arbeit-crm-backend/config"
	"github.com/ArbeitEmployee/arbeit-crm-backend/utils"
	"github.com/shopspring/decimal"
)

// StatusStat is one row of a per-status rollup: row count and summed total
// for every status value present in the admin's documents.
type StatusStat struct {
	Status      string          `gorm:"column:current_status" json:"_id"`
	Count       int64           `gorm:"column:doc_count" json:"count"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount" json:"totalAmount"`
}

func statusStats(ctx context.Context, table string) ([]*StatusStat, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	db := config.GetDB()
	var results []*StatusStat
	err := db.WithContext(ctx).
		Table(table).
		Select("current_status, COUNT(*) AS doc_count, COALESCE(SUM(total), 0) AS total_amount").
		Where("admin_id = ?", adminId).
		Group("current_status").
		Order("current_status ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// paymentStats sums the amount column instead of total.
func paymentStats(ctx context.Context) ([]*StatusStat, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	db := config.GetDB()
	var results []*StatusStat
	err := db.WithContext(ctx).
		Table("payments").
		Select("current_status, COUNT(*) AS doc_count, COALESCE(SUM(amount), 0) AS total_amount").
		Where("admin_id = ?", adminId).
		Group("current_status").
		Order("current_status ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
