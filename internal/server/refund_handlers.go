package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leadmart-dev/leadmart/internal/models"
)

// CreateRefundRequest represents a refund claim
type CreateRefundRequest struct {
	PurchaseID int    `json:"purchaseId" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
	SampleData string `json:"sampleData"`
}

func (s *Server) createRefund(c *gin.Context) {
	var req CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "purchaseId and reason are required"})
		return
	}

	// The purchase must belong to the caller.
	var purchase models.Purchase
	err := s.db.Where("id = ? AND user_id = ?", req.PurchaseID, currentUserID(c)).First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Purchase not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find purchase")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	refund := &models.RefundRequest{
		UserID:     currentUserID(c),
		PurchaseID: req.PurchaseID,
		Reason:     req.Reason,
		SampleData: req.SampleData,
		Status:     models.RefundPending,
	}
	if err := s.db.Create(refund).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create refund request")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create refund request"})
		return
	}

	s.logger.Info().Int("refund_id", refund.ID).Int("purchase_id", refund.PurchaseID).Msg("Refund request created")

	c.JSON(http.StatusCreated, refund)
}

func (s *Server) listRefunds(c *gin.Context) {
	var refunds []models.RefundRequest
	err := s.db.Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&refunds).Error
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list refund requests")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, refunds)
}
