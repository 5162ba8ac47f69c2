package models

import (
	"github.com/ArbeitEmployee/arbeit-crm-backend/config"
)

func MigrateTable() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&User{},
		&Customer{},
		&NumberSequence{},
		&Invoice{},
		&InvoiceItem{},
		&Estimate{},
		&EstimateItem{},
		&CreditNote{},
		&CreditNoteItem{},
		&Proposal{},
		&ProposalItem{},
		&Payment{},
		&History{},
	)
}
