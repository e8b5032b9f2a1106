package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/leadmart-dev/leadmart/internal/models"
)

// customLeadPricePerLead is the flat quote the development backend applies.
const customLeadPricePerLead = 0.50

// CreateCustomLeadRequest represents a bespoke batch request
type CreateCustomLeadRequest struct {
	Industry        string `json:"industry" binding:"required"`
	Location        string `json:"location" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,gt=0"`
	AdditionalNotes string `json:"additionalNotes"`
}

func (s *Server) createCustomLead(c *gin.Context) {
	var req CreateCustomLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "industry, location and a positive quantity are required"})
		return
	}

	// The development backend fulfils requests immediately so the
	// sample/confirm/download flow can be exercised without a pipeline.
	lead := &models.CustomLeadRequest{
		UserID:          currentUserID(c),
		Industry:        req.Industry,
		Location:        req.Location,
		Quantity:        req.Quantity,
		AdditionalNotes: req.AdditionalNotes,
		Status:          models.CustomReady,
		TotalPrice:      float64(req.Quantity) * customLeadPricePerLead,
	}
	if err := s.db.Create(lead).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create custom lead request")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create request"})
		return
	}

	s.logger.Info().Int("request_id", lead.ID).Int("user_id", lead.UserID).Msg("Custom lead request created")

	c.JSON(http.StatusCreated, lead)
}

func (s *Server) listCustomLeads(c *gin.Context) {
	var leads []models.CustomLeadRequest
	err := s.db.Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&leads).Error
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list custom lead requests")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, leads)
}

// findCustomLead loads a request owned by the caller, writing the error
// response itself when that fails.
func (s *Server) findCustomLead(c *gin.Context) (*models.CustomLeadRequest, bool) {
	id, ok := parseIntParam(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request id"})
		return nil, false
	}

	var lead models.CustomLeadRequest
	err := s.db.Where("id = ? AND user_id = ?", id, currentUserID(c)).First(&lead).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Custom lead request not found"})
			return nil, false
		}
		s.logger.Error().Err(err).Msg("Failed to find custom lead request")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return nil, false
	}

	return &lead, true
}

func (s *Server) customLeadSample(c *gin.Context) {
	lead, ok := s.findCustomLead(c)
	if !ok {
		return
	}

	if lead.Status == models.CustomPending {
		c.JSON(http.StatusConflict, gin.H{"message": "Request is still being assembled"})
		return
	}

	records := generateLeads(lead.Industry, lead.Location, sampleSize)
	c.JSON(http.StatusOK, records)
}

func (s *Server) confirmCustomLead(c *gin.Context) {
	lead, ok := s.findCustomLead(c)
	if !ok {
		return
	}

	if lead.Status != models.CustomReady {
		c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("Request cannot be confirmed while %s", lead.Status)})
		return
	}

	lead.Status = models.CustomCompleted
	if err := s.db.Save(lead).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to confirm custom lead request")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to confirm request"})
		return
	}

	s.logger.Info().Int("request_id", lead.ID).Msg("Custom lead request confirmed")

	c.JSON(http.StatusOK, lead)
}

func (s *Server) downloadCustomLead(c *gin.Context) {
	lead, ok := s.findCustomLead(c)
	if !ok {
		return
	}

	if lead.Status != models.CustomCompleted {
		c.JSON(http.StatusConflict, gin.H{"message": "Request must be confirmed before download"})
		return
	}

	records := generateLeads(lead.Industry, lead.Location, lead.Quantity)
	data, err := leadsCSV(records)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate file")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate file"})
		return
	}

	filename := downloadFilename(lead.Industry, "custom_leads.csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}
