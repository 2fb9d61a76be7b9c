package platform

import (
	"net/http"

	"github.com/gin-gonic/gin"

	platformModels "github.com/alexandreDinis/sistema-comi-platform/internal/models/platform"
	platformService "github.com/alexandreDinis/sistema-comi-platform/internal/services/platform"
)

type StatsHandler struct {
	ownership *platformService.OwnershipService
}

func NewStatsHandler(ownership *platformService.OwnershipService) *StatsHandler {
	return &StatsHandler{ownership: ownership}
}

// GetPlatformStats retorna as métricas globais da plataforma
// GET /platform/stats
func (h *StatsHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.ownership.PlatformStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListPlanos retorna o catálogo de planos (com cache Redis)
// GET /platform/plans
func (h *StatsHandler) ListPlanos(c *gin.Context) {
	planos, err := h.ownership.ListPlanos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, platformModels.PlanoListResponse{
		Planos: planos,
		Total:  len(planos),
	})
}

// ListFeatures retorna o catálogo de features que os guards reconhecem
// GET /platform/features
func (h *StatsHandler) ListFeatures(c *gin.Context) {
	features := h.ownership.FeatureCatalog()
	c.JSON(http.StatusOK, gin.H{
		"features": features,
		"total":    len(features),
	})
}
