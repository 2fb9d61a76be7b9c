package platform

import (
	"github.com/gin-gonic/gin"

	"github.com/alexandreDinis/sistema-comi-platform/internal/apperr"
)

// respondError mapeia a taxonomia de erros para o status HTTP e devolve a
// mensagem do servidor sem modificação. Nenhum erro derruba o processo; a
// ação afetada apenas falha e o console segue interativo.
func respondError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	c.JSON(apperr.HTTPStatus(code), gin.H{
		"error": apperr.MessageOf(err),
		"code":  code,
	})
}
