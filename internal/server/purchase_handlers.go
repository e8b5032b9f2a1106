package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leadmart-dev/leadmart/internal/models"
)

// CreatePurchaseRequest represents a purchase order
type CreatePurchaseRequest struct {
	LeadBundleID int `json:"leadBundleId" binding:"required"`
	Quantity     int `json:"quantity" binding:"required,gt=0"`
}

// PurchaseDetail is the purchase payload surfaced to the client,
// including the bundle title downloads are named after.
type PurchaseDetail struct {
	models.Purchase
	BundleTitle string `json:"bundleTitle"`
}

func (s *Server) createPurchase(c *gin.Context) {
	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "leadBundleId and a positive quantity are required"})
		return
	}

	var bundle models.LeadBundle
	if err := s.db.First(&bundle, req.LeadBundleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Lead bundle not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find lead bundle")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if req.Quantity > bundle.LeadCount {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Bundle only contains %d leads", bundle.LeadCount)})
		return
	}

	purchase := &models.Purchase{
		UserID:       currentUserID(c),
		LeadBundleID: bundle.ID,
		Quantity:     req.Quantity,
		TotalPrice:   float64(req.Quantity) * bundle.PricePerLead,
		Status:       models.PurchaseCompleted,
	}
	if err := s.db.Create(purchase).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create purchase")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create purchase"})
		return
	}

	s.logger.Info().Int("purchase_id", purchase.ID).Int("user_id", purchase.UserID).Msg("Purchase created")

	c.JSON(http.StatusCreated, PurchaseDetail{Purchase: *purchase, BundleTitle: bundle.Title})
}

func (s *Server) purchaseHistory(c *gin.Context) {
	var purchases []models.Purchase
	err := s.db.Preload("LeadBundle").
		Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&purchases).Error
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list purchases")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	details := make([]PurchaseDetail, len(purchases))
	for i, purchase := range purchases {
		details[i] = PurchaseDetail{Purchase: purchase, BundleTitle: purchase.LeadBundle.Title}
	}

	c.JSON(http.StatusOK, details)
}

func (s *Server) downloadPurchase(c *gin.Context) {
	id, ok := parseIntParam(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid purchase id"})
		return
	}

	var purchase models.Purchase
	err := s.db.Preload("LeadBundle").
		Where("id = ? AND user_id = ?", id, currentUserID(c)).
		First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Purchase not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find purchase")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	records := generateLeads(purchase.LeadBundle.Industry, purchase.LeadBundle.Region, purchase.Quantity)
	data, err := leadsCSV(records)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate file")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate file"})
		return
	}

	filename := downloadFilename(purchase.LeadBundle.Title, "leads.csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
