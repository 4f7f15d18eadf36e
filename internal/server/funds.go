package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tanda-tracker-go/internal/ledger"
	"tanda-tracker-go/internal/models"
	"tanda-tracker-go/internal/store"
)

func (s *Server) handleListFundMovements(c *gin.Context) {
	movements, err := s.store.GetFundMovements(c.Request.Context())
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	if movements == nil {
		movements = []models.FundMovement{}
	}
	c.JSON(http.StatusOK, movements)
}

// handleAddFundMovement records a deposit or withdrawal. Withdrawals beyond
// the current balance of their own currency come back as 422 with the
// shortfall details rather than being written.
func (s *Server) handleAddFundMovement(c *gin.Context) {
	var movement models.FundMovement
	if err := c.ShouldBindJSON(&movement); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	saved, err := s.store.AddFundMovement(c.Request.Context(), movement)
	var insufficientErr *ledger.InsufficientFundsError
	if errors.As(err, &insufficientErr) {
		errorJSON(c, http.StatusUnprocessableEntity, err)
		return
	} else if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleDeleteFundMovement(c *gin.Context) {
	err := s.store.DeleteFundMovement(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrMovementNotFound) {
		errorJSON(c, http.StatusNotFound, err)
		return
	} else if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}
