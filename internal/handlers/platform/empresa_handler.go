package platform

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	platformModels "github.com/alexandreDinis/sistema-comi-platform/internal/models/platform"
	platformService "github.com/alexandreDinis/sistema-comi-platform/internal/services/platform"
)

type EmpresaHandler struct {
	ownership *platformService.OwnershipService
	migracao  *platformService.MigracaoService
}

func NewEmpresaHandler(ownership *platformService.OwnershipService, migracao *platformService.MigracaoService) *EmpresaHandler {
	return &EmpresaHandler{
		ownership: ownership,
		migracao:  migracao,
	}
}

// ListEmpresas lista todas as empresas da plataforma
// GET /platform/tenants
func (h *EmpresaHandler) ListEmpresas(c *gin.Context) {
	empresas, err := h.ownership.ListEmpresas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, platformModels.EmpresaListResponse{
		Empresas: empresas,
		Total:    len(empresas),
	})
}

// GetEmpresa retorna uma empresa específica
// GET /platform/tenants/:id
func (h *EmpresaHandler) GetEmpresa(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid empresa ID"})
		return
	}

	empresa, err := h.ownership.GetEmpresa(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, empresa)
}

// CreateEmpresa faz o onboarding de uma empresa nova
// POST /platform/tenants
func (h *EmpresaHandler) CreateEmpresa(c *gin.Context) {
	var req platformModels.CreateEmpresaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	empresa, err := h.ownership.OnboardEmpresa(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, empresa)
}

// UpdateEmpresa altera os dados cadastrais de uma empresa
// PUT /platform/tenants/:id
func (h *EmpresaHandler) UpdateEmpresa(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid empresa ID"})
		return
	}

	var req platformModels.UpdateEmpresaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	empresa, err := h.ownership.UpdateEmpresa(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, empresa)
}

// ToggleStatus liga/desliga o acesso da empresa (kill switch)
// PUT /platform/tenants/:id/toggle-status
func (h *EmpresaHandler) ToggleStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid empresa ID"})
		return
	}

	empresa, err := h.ownership.ToggleStatus(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, empresa)
}

// ListOrphans lista as empresas de posse direta da plataforma
// GET /platform/tenants/orphans
func (h *EmpresaHandler) ListOrphans(c *gin.Context) {
	empresas, err := h.ownership.ListOrphans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, platformModels.EmpresaListResponse{
		Empresas: empresas,
		Total:    len(empresas),
	})
}

// ListAtRisk lista as empresas cuja licença não está ATIVA
// GET /platform/tenants/at-risk
func (h *EmpresaHandler) ListAtRisk(c *gin.Context) {
	empresas, err := h.ownership.ListAtRisk(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, platformModels.EmpresaListResponse{
		Empresas: empresas,
		Total:    len(empresas),
	})
}

// ListByLicenca lista as empresas vinculadas a uma licença
// GET /platform/licencas/:id/tenants
func (h *EmpresaHandler) ListByLicenca(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid licenca ID"})
		return
	}

	empresas, err := h.ownership.ListEmpresasByLicenca(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, platformModels.EmpresaListResponse{
		Empresas: empresas,
		Total:    len(empresas),
	})
}

// Reassign muda a posse da empresa via query param (rota legada; a rota
// nova é POST /platform/migracoes). licencaId vazio devolve a empresa à
// posse direta; motivo continua obrigatório pela trilha de auditoria.
// POST /platform/tenants/:id/reassign?licencaId=&motivo=
func (h *EmpresaHandler) Reassign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid empresa ID"})
		return
	}

	var novaLicencaID *uuid.UUID
	if raw := c.Query("licencaId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid licenca ID"})
			return
		}
		novaLicencaID = &parsed
	}

	empresa, err := h.migracao.Migrate(c.Request.Context(), id, novaLicencaID, c.Query("motivo"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, empresa)
}

// Migrar executa uma migração de posse com trilha de auditoria
// POST /platform/migracoes
func (h *EmpresaHandler) Migrar(c *gin.Context) {
	var req platformModels.MigrarEmpresaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	empresa, err := h.migracao.Migrate(c.Request.Context(), req.EmpresaID, req.NovaLicencaID, req.Motivo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, empresa)
}
