package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mfontes/hspulse/internal/domain/dto"
)

// GetProduction handles GET /api/v1/production, returning the yearly
// Kimberley Process production dataset.
//
// GetProduction godoc
// @Summary      Production dataset
// @Description  Returns the yearly production records (carat and US value)
// @Tags         production
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/production [get]
func (h *Handler) GetProduction(c *gin.Context) {
	recs, err := h.svc.Production(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to load production dataset", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(recs), "records": recs})
}
