package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/alexandreDinis/sistema-comi-platform/internal/apperr"
)

// respondError mapeia a taxonomia de erros para o status HTTP e devolve a
// mensagem do servidor sem modificação, com o código que os clientes usam
// para decidir a tela de erro.
func respondError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	c.JSON(apperr.HTTPStatus(code), gin.H{
		"error": apperr.MessageOf(err),
		"code":  code,
	})
}
