package platform

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	platformModels "github.com/alexandreDinis/sistema-comi-platform/internal/models/platform"
	"github.com/alexandreDinis/sistema-comi-platform/internal/models/shared"
	platformService "github.com/alexandreDinis/sistema-comi-platform/internal/services/platform"
)

type LicencaHandler struct {
	licencas *platformService.LicencaService
}

func NewLicencaHandler(licencas *platformService.LicencaService) *LicencaHandler {
	return &LicencaHandler{licencas: licencas}
}

// ListLicencas lista as licenças de revenda, com filtro opcional de status
// GET /platform/licencas?status=
func (h *LicencaHandler) ListLicencas(c *gin.Context) {
	var licencas []platformModels.Licenca
	var err error

	if raw := c.Query("status"); raw != "" {
		status := shared.LicencaStatus(strings.ToUpper(strings.TrimSpace(raw)))
		licencas, err = h.licencas.ListByStatus(c.Request.Context(), status)
	} else {
		licencas, err = h.licencas.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, platformModels.LicencaListResponse{
		Licencas: licencas,
		Total:    len(licencas),
	})
}

// GetLicenca retorna uma licença específica
// GET /platform/licencas/:id
func (h *LicencaHandler) GetLicenca(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	licenca, err := h.licencas.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, licenca)
}

// CreateLicenca faz o onboarding de uma revenda
// POST /platform/licencas
func (h *LicencaHandler) CreateLicenca(c *gin.Context) {
	var req platformModels.CreateLicencaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	licenca, err := h.licencas.Onboard(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, licenca)
}

// GetStats agrega métricas da licença (disponível em qualquer status)
// GET /platform/licencas/:id/stats
func (h *LicencaHandler) GetStats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	stats, err := h.licencas.Stats(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Suspender suspende a licença com motivo obrigatório
// POST /platform/licencas/:id/suspender
func (h *LicencaHandler) Suspender(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req platformModels.SuspenderLicencaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	licenca, err := h.licencas.Suspender(c.Request.Context(), id, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, licenca)
}

// Reativar devolve uma licença suspensa para ATIVA
// POST /platform/licencas/:id/reativar
func (h *LicencaHandler) Reativar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	licenca, err := h.licencas.Reativar(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, licenca)
}

// Rescindir cancela a licença em definitivo, desvinculando as empresas
// POST /platform/licencas/:id/rescindir
func (h *LicencaHandler) Rescindir(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	licenca, err := h.licencas.Rescindir(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, licenca)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid licenca ID"})
		return uuid.Nil, false
	}
	return id, true
}
