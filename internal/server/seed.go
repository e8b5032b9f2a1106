package server

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/leadmart-dev/leadmart/internal/models"
)

// SeedCatalog inserts the demo lead-bundle catalog on first run.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.LeadBundle{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count lead bundles: %w", err)
	}
	if count > 0 {
		return nil
	}

	bundles := []models.LeadBundle{
		{Title: "Tech Startups West Coast", Industry: "Technology", Region: "US West", LeadCount: 2500, PricePerLead: 0.45, Description: "Seed to Series B startups with verified founder contacts"},
		{Title: "SaaS Decision Makers", Industry: "Technology", Region: "US East", LeadCount: 1800, PricePerLead: 0.55, Description: "VP+ contacts at B2B SaaS companies"},
		{Title: "Healthcare Practices Midwest", Industry: "Healthcare", Region: "US Midwest", LeadCount: 3200, PricePerLead: 0.38, Description: "Private practices and clinics with office manager contacts"},
		{Title: "European Fintech", Industry: "Finance", Region: "Europe", LeadCount: 1200, PricePerLead: 0.62, Description: "Fintech companies across the EU with compliance contacts"},
		{Title: "Retail Chains Nationwide", Industry: "Retail", Region: "US Nationwide", LeadCount: 4100, PricePerLead: 0.29, Description: "Multi-location retail with purchasing department contacts"},
		{Title: "Manufacturing APAC", Industry: "Manufacturing", Region: "APAC", LeadCount: 2700, PricePerLead: 0.41, Description: "Mid-size manufacturers with operations contacts"},
	}

	if err := db.Create(&bundles).Error; err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}
