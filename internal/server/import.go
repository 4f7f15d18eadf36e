package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tanda-tracker-go/internal/importer"
	"tanda-tracker-go/internal/models"
	"tanda-tracker-go/internal/store"
)

// handleImport bulk-loads a pasted CSV block into one batch. Each parsed
// row goes through the regular save path, so the derived fields get frozen
// exactly as they would on manual entry.
func (s *Server) handleImport(c *gin.Context) {
	var req models.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	// The whole import lands in one batch, so the new-batch sentinel is
	// resolved once up front instead of per row.
	if req.BatchId == store.NewBatchSentinel {
		batch, err := s.store.CreateBatch(c.Request.Context(), "")
		if err != nil {
			errorJSON(c, http.StatusInternalServerError, err)
			return
		}
		req.BatchId = batch.Id
	}

	units, err := importer.ParseCSV(req.CSV, req.BatchId)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	saved := make([]models.Unit, 0, len(units))
	for _, unit := range units {
		result, err := s.store.SaveUnit(c.Request.Context(), unit)
		if errors.Is(err, store.ErrBatchNotFound) {
			errorJSON(c, http.StatusNotFound, err)
			return
		} else if err != nil {
			errorJSON(c, http.StatusInternalServerError, err)
			return
		}
		saved = append(saved, *result)
	}

	zap.L().Info("CSV import completed",
		zap.String("batch_id", req.BatchId),
		zap.Int("imported", len(saved)))

	c.JSON(http.StatusOK, models.ImportResponse{Imported: len(saved), Units: saved})
}
