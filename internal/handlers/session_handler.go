package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/alexandreDinis/sistema-comi-platform/internal/apperr"
	"github.com/alexandreDinis/sistema-comi-platform/internal/middleware"
	platformService "github.com/alexandreDinis/sistema-comi-platform/internal/services/platform"
)

// SessionHandler expõe a visão do próprio principal e o resumo do painel da
// empresa. As telas CRUD em si são do front; aqui só a admissão e os dados
// que dependem do grafo de posse.
type SessionHandler struct {
	ownership *platformService.OwnershipService
}

func NewSessionHandler(ownership *platformService.OwnershipService) *SessionHandler {
	return &SessionHandler{ownership: ownership}
}

// GetMe devolve o principal canônico da sessão corrente
// GET /api/v1/me
func (h *SessionHandler) GetMe(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	if p == nil {
		respondError(c, apperr.New(apperr.CodeUnauthenticated, "user not authenticated"))
		return
	}

	features := make([]string, 0, len(p.Features))
	for f := range p.Features {
		features = append(features, f)
	}

	var empresaID *uuid.UUID
	if p.EmpresaID != nil {
		id := *p.EmpresaID
		empresaID = &id
	}

	c.JSON(http.StatusOK, gin.H{
		"role":       p.Role,
		"roles":      p.Roles,
		"features":   features,
		"empresa_id": empresaID,
	})
}

// GetDashboard devolve o resumo da empresa do principal
// GET /api/v1/empresa/dashboard (guard: DASHBOARD_VIEW)
func (h *SessionHandler) GetDashboard(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	if p == nil {
		respondError(c, apperr.New(apperr.CodeUnauthenticated, "user not authenticated"))
		return
	}
	if p.EmpresaID == nil {
		respondError(c, apperr.New(apperr.CodeAccessDenied, "principal sem afiliação de empresa"))
		return
	}

	empresa, err := h.ownership.GetEmpresa(c.Request.Context(), *p.EmpresaID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"empresa": empresa,
	})
}
