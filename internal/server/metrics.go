package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tanda-tracker-go/internal/metrics"
)

// handleState serves one consistent snapshot of everything the frontend
// renders: units, batches, fund movements, partner labels and model history.
func (s *Server) handleState(c *gin.Context) {
	snapshot, err := s.store.Snapshot(c.Request.Context())
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// handleMetrics recomputes the full dashboard from the current snapshot.
// The optional batch query parameter scopes the per-tanda figures; global
// figures ignore it.
func (s *Server) handleMetrics(c *gin.Context) {
	snapshot, err := s.store.Snapshot(c.Request.Context())
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, metrics.Compute(snapshot, c.Query("batch")))
}
