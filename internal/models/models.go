package models

import (
	"time"

	"gorm.io/gorm"
)

// Purchase and custom-lead statuses surfaced to the client.
const (
	PurchaseCompleted = "completed"

	CustomPending   = "pending"
	CustomReady     = "ready"
	CustomCompleted = "completed"

	RefundPending = "pending"
)

// User represents a marketplace account
type User struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// LeadBundle is a catalog entry: a batch of contact records for sale
type LeadBundle struct {
	ID           int     `json:"id" gorm:"primaryKey"`
	Title        string  `json:"title" gorm:"not null"`
	Industry     string  `json:"industry" gorm:"not null;index"`
	Region       string  `json:"region" gorm:"not null;index"`
	LeadCount    int     `json:"leadCount" gorm:"not null"`
	PricePerLead float64 `json:"pricePerLead" gorm:"not null"`
	Description  string  `json:"description"`
}

// Purchase is a completed order for leads from a bundle
type Purchase struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	UserID       int       `json:"-" gorm:"not null;index"`
	LeadBundleID int       `json:"leadBundleId" gorm:"not null"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	TotalPrice   float64   `json:"totalPrice" gorm:"not null"`
	Status       string    `json:"status" gorm:"not null;default:completed"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`

	LeadBundle LeadBundle `json:"-" gorm:"foreignKey:LeadBundleID"`
}

// CustomLeadRequest is a client-submitted spec for a bespoke batch
type CustomLeadRequest struct {
	ID              int       `json:"id" gorm:"primaryKey"`
	UserID          int       `json:"-" gorm:"not null;index"`
	Industry        string    `json:"industry" gorm:"not null"`
	Location        string    `json:"location" gorm:"not null"`
	Quantity        int       `json:"quantity" gorm:"not null"`
	AdditionalNotes string    `json:"additionalNotes"`
	Status          string    `json:"status" gorm:"not null;default:pending"`
	TotalPrice      float64   `json:"totalPrice" gorm:"not null"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// RefundRequest is a refund claim against a purchase
type RefundRequest struct {
	ID         int       `json:"id" gorm:"primaryKey"`
	UserID     int       `json:"-" gorm:"not null;index"`
	PurchaseID int       `json:"purchaseId" gorm:"not null"`
	Reason     string    `json:"reason" gorm:"not null"`
	SampleData string    `json:"sampleData"`
	Status     string    `json:"status" gorm:"not null;default:pending"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{}, &LeadBundle{}, &Purchase{}, &CustomLeadRequest{}, &RefundRequest{},
	)
}
