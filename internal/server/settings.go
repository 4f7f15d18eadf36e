package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tanda-tracker-go/internal/models"
)

func (s *Server) handleGetPartnerLabels(c *gin.Context) {
	labels, err := s.store.GetPartnerLabels(c.Request.Context())
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, labels)
}

func (s *Server) handleUpdatePartnerLabels(c *gin.Context) {
	var labels models.PartnerLabels
	if err := c.ShouldBindJSON(&labels); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	if err := s.store.UpdatePartnerLabels(c.Request.Context(), labels); err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}

	updated, err := s.store.GetPartnerLabels(c.Request.Context())
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// handleGetModelHistory serves the last-seen spec per model so the frontend
// can pre-fill new unit forms.
func (s *Server) handleGetModelHistory(c *gin.Context) {
	history, err := s.store.GetModelHistory(c.Request.Context())
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
