package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

type mapping struct {
	status  int
	message string
}

var businessCodes = map[string]mapping{
	"barber_not_found":      {http.StatusNotFound, "Barbeiro não encontrado."},
	"service_not_found":     {http.StatusNotFound, "Serviço não encontrado."},
	"barbershop_not_found":  {http.StatusNotFound, "Barbearia não encontrada."},
	"appointment_not_found": {http.StatusNotFound, "Agendamento não encontrado."},
	"invalid_date":          {http.StatusBadRequest, "Data inválida."},
	"invalid_date_or_time":  {http.StatusBadRequest, "Data ou hora inválida."},
	"too_soon":              {http.StatusBadRequest, "Horário inválido."},
	"outside_working_hours": {http.StatusBadRequest, "Fora do horário de atendimento."},
	"date_blocked":          {http.StatusBadRequest, "Data bloqueada para agendamentos."},
	"invalid_state":         {http.StatusBadRequest, "Operação inválida para o status atual."},
	"time_conflict":         {http.StatusConflict, "Conflito de horário."},
	"payments_disabled":     {http.StatusServiceUnavailable, "Pagamentos não configurados."},
	"checkout_failed":       {http.StatusBadGateway, "Erro ao gerar pagamento."},
}

// Status resolves the HTTP status of a business code. Unknown codes are
// client errors.
func Status(code string) int {
	if m, ok := businessCodes[code]; ok {
		return m.status
	}
	return http.StatusBadRequest
}

// FromError writes err as a response. Business errors use the code table,
// anything else is answered as an internal error with fallbackCode.
func FromError(c *gin.Context, err error, fallbackCode string) {
	if code, ok := BusinessCode(err); ok {
		m, known := businessCodes[code]
		if !known {
			m = mapping{http.StatusBadRequest, code}
		}
		Write(c, m.status, code, m.message)
		return
	}

	_ = c.Error(err)
	Internal(c, fallbackCode, "Erro interno.")
}
