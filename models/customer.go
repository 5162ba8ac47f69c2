package models

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/ArbeitEmployee/arbeit-crm-backend/config"
	"github.com/ArbeitEmployee/arbeit-crm-backend/utils"
	"github.com/ttacon/libphonenumber"
)

type Customer struct {
	ID        int       `gorm:"primary_key" json:"id"`
	AdminId   int       `gorm:"index;not null" json:"admin"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100" json:"email"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Company   string    `gorm:"size:100" json:"company"`
	Address   string    `gorm:"type:text" json:"address"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type NewCustomer struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

/*
caches:
	Customer:$id
	CustomerList:$adminId
*/

func (c Customer) RemoveInstanceRedis() error {
	return utils.RemoveRedisItem[Customer](c.ID)
}

func (c Customer) RemoveAllRedis() error {
	return utils.RemoveRedisList[Customer](c.AdminId)
}

func (input *NewCustomer) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if input.Phone != "" {
		num, err := libphonenumber.Parse(input.Phone, defaultPhoneRegion())
		if err != nil || !libphonenumber.IsValidNumber(num) {
			fields["phone"] = "invalid phone number"
		}
	}
	if len(fields) > 0 {
		return utils.NewValidationError("customer validation failed", fields)
	}
	return nil
}

// default parsing region for numbers without a country code
func defaultPhoneRegion() string {
	region := strings.TrimSpace(os.Getenv("PHONE_REGION"))
	if region == "" {
		return "US"
	}
	return region
}

func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	if err := input.validate(); err != nil {
		return nil, err
	}
	if input.Email != "" {
		if err := utils.ValidateUnique[Customer](ctx, adminId, "email", input.Email, 0); err != nil {
			return nil, utils.FieldError("email", "a customer with this email already exists")
		}
	}

	customer := Customer{
		AdminId: adminId,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Address: input.Address,
		Notes:   input.Notes,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func UpdateCustomer(ctx context.Context, id int, input *NewCustomer) (*Customer, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	if err := input.validate(); err != nil {
		return nil, err
	}
	if input.Email != "" {
		if err := utils.ValidateUnique[Customer](ctx, adminId, "email", input.Email, id); err != nil {
			return nil, utils.FieldError("email", "a customer with this email already exists")
		}
	}

	existing, err := utils.FetchModel[Customer](ctx, adminId, id)
	if err != nil {
		return nil, err
	}

	existing.Name = input.Name
	existing.Email = input.Email
	existing.Phone = input.Phone
	existing.Company = input.Company
	existing.Address = input.Address
	existing.Notes = input.Notes

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func DeleteCustomer(ctx context.Context, id int) (*Customer, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	result, err := utils.FetchModel[Customer](ctx, adminId, id)
	if err != nil {
		return nil, err
	}

	// Keep documents referencing this customer intact; they carry the
	// denormalized name for display.
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// GetCustomer reads through the redis cache, falling back to the db.
func GetCustomer(ctx context.Context, id int) (*Customer, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	result, err := utils.RetrieveRedis[Customer](id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result, err = utils.FetchModel[Customer](ctx, adminId, id)
		if err != nil {
			return nil, err
		}
		if err := utils.StoreRedis[Customer](result, id); err != nil {
			return nil, err
		}
	} else if result.AdminId != adminId {
		// cached copy owned by another admin
		return nil, utils.ErrorRecordNotFound
	}

	return result, nil
}

// GetCustomers lists the admin's customers. The unfiltered list is served
// from the redis cache; any write to a customer invalidates it.
func GetCustomers(ctx context.Context, name string) ([]*Customer, error) {
	adminId, ok := utils.GetAdminIdFromContext(ctx)
	if !ok || adminId == 0 {
		return nil, errors.New("admin id is required")
	}

	if name == "" {
		cached, err := utils.RetrieveRedisList[Customer](adminId)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			return cached, nil
		}
	}

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("admin_id = ?", adminId)
	if name != "" {
		dbCtx = dbCtx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	var results []*Customer
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	if name == "" {
		if err := utils.StoreRedisList[Customer](results, adminId); err != nil {
			return nil, err
		}
	}
	return results, nil
}
