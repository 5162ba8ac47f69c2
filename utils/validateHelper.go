package utils

import (
	"context"
	"errors"
	"reflect"

	"github.com/ArbeitEmployee/arbeit-crm-backend/config"
)

// check if id exists, using admin_id in WHERE, return RecordNotFound error
func ValidateResourceId[T any](ctx context.Context, adminId int, id interface{}) error {

	count, err := ResourceCountWhere[T](ctx, adminId, "id = ?", id)
	if err != nil {
		return err
	}
	if count <= 0 {
		return ErrorRecordNotFound
	}

	return nil
}

func ValidateUnique[T any](ctx context.Context, adminId int, column string, value interface{}, exceptId interface{}) error {
	var count int64
	var err error
	if reflect.ValueOf(exceptId).IsZero() {
		count, err = ResourceCountWhere[T](ctx, adminId, column+" = ?", value)
	} else {
		count, err = ResourceCountWhere[T](ctx, adminId, column+" = ? AND NOT id = ?", value, exceptId)
	}

	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("duplicate " + column)
	}
	return nil
}

// count records, using WHERE admin_id = ? AND $condition
// adminId can be zero for unscoped tables (users)
func ResourceCountWhere[T any](ctx context.Context, adminId int, condition string, value ...interface{}) (int64, error) {
	var model T

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&model)
	var count int64
	if adminId > 0 {
		dbCtx = dbCtx.Where("admin_id = ?", adminId)
	}
	dbCtx = dbCtx.Where(condition, value...)
	if err := dbCtx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
