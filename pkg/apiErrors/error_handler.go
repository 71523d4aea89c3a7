package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de gráficos (1000-1999)
	ErrChartNotFound       = "CHT_001" // Gráfico não encontrado
	ErrSnapshotUnsupported = "CHT_002" // Tipo de gráfico sem exportação estática
	ErrDashboardNotReady   = "CHT_003" // Painel ainda não montado

	// Erros de requisição (2000-2999)
	ErrRouteNotFound    = "REQ_001" // Rota inexistente
	ErrMethodNotAllowed = "REQ_002" // Método HTTP não suportado pela rota

	// Erros do servidor (5000-5999)
	ErrInternalServer = "SRV_001" // Erro interno do servidor
	ErrRenderFailure  = "SRV_002" // Erro ao renderizar a resposta
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrChartNotFound:       http.StatusNotFound,
	ErrSnapshotUnsupported: http.StatusNotImplemented,
	ErrDashboardNotReady:   http.StatusServiceUnavailable,
	ErrRouteNotFound:       http.StatusNotFound,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrRenderFailure:       http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	if err := json.NewEncoder(w).Encode(apiErr); err != nil {
		logrus.WithError(err).Warn("erro ao escrever resposta de erro")
	}
}
