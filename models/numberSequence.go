package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Document number prefixes, one series per document type.
const (
	InvoiceNumberPrefix    = "INV"
	EstimateNumberPrefix   = "EST"
	CreditNoteNumberPrefix = "CN"
	ProposalNumberPrefix   = "PRO"
	PaymentNumberPrefix    = "PAY"
)

// Series keys stored in number_sequences.name.
const (
	InvoiceNumberSeries    = "invoiceNumber"
	EstimateNumberSeries   = "estimateNumber"
	CreditNoteNumberSeries = "creditNoteNumber"
	ProposalNumberSeries   = "proposalNumber"
	PaymentNumberSeries    = "paymentNumber"
)

// NumberSequence is the shared counter: one row per (admin, series).
// Rows are created lazily on first allocation and never deleted.
type NumberSequence struct {
	ID        int       `gorm:"primary_key" json:"id"`
	AdminId   int       `gorm:"uniqueIndex:idx_number_sequences_admin_name;not null" json:"admin"`
	Name      string    `gorm:"size:100;uniqueIndex:idx_number_sequences_admin_name;not null" json:"name"`
	Seq       int64     `gorm:"not null;default:0" json:"seq"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// NextSequence hands out the next value for a series as a single atomic
// upsert-increment-read. LAST_INSERT_ID(expr) pins the post-increment value to
// the session, so the read below cannot observe another caller's allocation.
//
// Must be called on a transaction (a transaction is pinned to one connection;
// LAST_INSERT_ID is per-connection). A rollback of the surrounding transaction
// also rolls back the increment, so committed documents stay gap-free.
func NextSequence(tx *gorm.DB, adminId int, name string) (int64, error) {
	if adminId <= 0 {
		return 0, errors.New("admin id is required")
	}

	err := tx.Exec(
		`INSERT INTO number_sequences (admin_id, name, seq, created_at, updated_at)
		 VALUES (?, ?, LAST_INSERT_ID(1), NOW(), NOW())
		 ON DUPLICATE KEY UPDATE seq = LAST_INSERT_ID(seq + 1), updated_at = NOW()`,
		adminId, name,
	).Error
	if err != nil {
		return 0, err
	}

	var seq int64
	if err := tx.Raw(`SELECT LAST_INSERT_ID()`).Scan(&seq).Error; err != nil {
		return 0, err
	}
	if seq <= 0 {
		return 0, errors.New("sequence allocation failed for series " + name)
	}
	return seq, nil
}

// FormatDocumentNumber renders a public identifier, e.g. ("INV", 7) -> "INV-000007".
func FormatDocumentNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%06d", prefix, seq)
}
