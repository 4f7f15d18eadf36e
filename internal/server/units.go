package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tanda-tracker-go/internal/economics"
	"tanda-tracker-go/internal/models"
	"tanda-tracker-go/internal/store"
)

func (s *Server) handleListUnits(c *gin.Context) {
	units, err := s.store.GetUnits(c.Request.Context())
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	if units == nil {
		units = []models.Unit{}
	}
	c.JSON(http.StatusOK, units)
}

func (s *Server) handleCreateUnit(c *gin.Context) {
	var unit models.Unit
	if err := c.ShouldBindJSON(&unit); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	unit.Id = ""
	if unit.Status == "" {
		unit.Status = models.StatusStock
	}

	saved, err := s.store.SaveUnit(c.Request.Context(), unit)
	if err != nil {
		s.unitSaveError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleUpdateUnit(c *gin.Context) {
	var unit models.Unit
	if err := c.ShouldBindJSON(&unit); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	unit.Id = c.Param("id")

	saved, err := s.store.SaveUnit(c.Request.Context(), unit)
	if err != nil {
		s.unitSaveError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) unitSaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrUnitNotFound), errors.Is(err, store.ErrBatchNotFound):
		errorJSON(c, http.StatusNotFound, err)
	default:
		errorJSON(c, http.StatusInternalServerError, err)
	}
}

func (s *Server) handleDeleteUnit(c *gin.Context) {
	err := s.store.DeleteUnit(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrUnitNotFound) {
		errorJSON(c, http.StatusNotFound, err)
		return
	} else if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pricingResponse bundles the advisory price ladders with the expected
// profit for a planned sale, when a planned price is supplied.
type pricingResponse struct {
	TotalCost      decimal.Decimal           `json:"total_cost"`
	Suggested      economics.SuggestedPrices `json:"suggested"`
	ExpectedProfit *decimal.Decimal          `json:"expected_profit,omitempty"`
}

// handlePricing computes the advisory numbers from raw cost inputs passed
// as query parameters. Nothing here is persisted; the frontend calls this
// live while a unit form is being edited.
func (s *Server) handlePricing(c *gin.Context) {
	costUSD, err := queryDecimal(c, "cost_usd")
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	rate, err := queryDecimal(c, "exchange_rate")
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	shipping, err := queryDecimal(c, "shipping_cost")
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	extra, err := queryDecimal(c, "extra_cost")
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	totalCost := economics.TotalCost(costUSD, rate, shipping, extra)
	resp := pricingResponse{
		TotalCost: totalCost,
		Suggested: economics.SuggestPrices(totalCost),
	}

	if planned := c.Query("planned_price"); planned != "" {
		price, err := decimal.NewFromString(planned)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, errors.New("invalid planned_price"))
			return
		}
		profit := economics.ExpectedProfit(price, totalCost, c.Query("channel"))
		resp.ExpectedProfit = &profit
	}

	c.JSON(http.StatusOK, resp)
}

func queryDecimal(c *gin.Context, name string) (decimal.Decimal, error) {
	value := c.Query(name)
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, errors.New("invalid " + name)
	}
	return d, nil
}

func (s *Server) handleListBatches(c *gin.Context) {
	batches, err := s.store.GetBatches(c.Request.Context())
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	if batches == nil {
		batches = []models.Batch{}
	}
	c.JSON(http.StatusOK, batches)
}

func (s *Server) handleCreateBatch(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	batch, err := s.store.CreateBatch(c.Request.Context(), req.Name)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}
