package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leadmart-dev/leadmart/internal/models"
)

func (s *Server) listLeads(c *gin.Context) {
	query := s.db.Model(&models.LeadBundle{})

	if industry := c.Query("industry"); industry != "" {
		query = query.Where("industry = ?", industry)
	}
	if region := c.Query("region"); region != "" {
		query = query.Where("region = ?", region)
	}

	var bundles []models.LeadBundle
	if err := query.Order("id").Find(&bundles).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list lead bundles")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, bundles)
}

func (s *Server) leadSample(c *gin.Context) {
	id, ok := parseIntParam(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bundle id"})
		return
	}

	var bundle models.LeadBundle
	if err := s.db.First(&bundle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Lead bundle not found"})
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find lead bundle")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	records := generateLeads(bundle.Industry, bundle.Region, sampleSize)
	c.JSON(http.StatusOK, records)
}
