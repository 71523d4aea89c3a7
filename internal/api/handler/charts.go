package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
	"github.com/vfg2006/ecommerce-dashboard/internal/usecases/charting"
	"github.com/vfg2006/ecommerce-dashboard/pkg/apiErrors"
	"github.com/vfg2006/ecommerce-dashboard/pkg/log"
	"github.com/vfg2006/ecommerce-dashboard/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ChartList é a resposta da listagem de gráficos
type ChartList struct {
	Title   string           `json:"title"`
	BuildID string           `json:"build_id"`
	Charts  []domain.Summary `json:"charts"`
}

// ListCharts lista os gráficos do painel na ordem de exibição
func ListCharts(service charting.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dashboard := service.Dashboard()
		if dashboard == nil {
			apiErrors.WriteError(w, apiErrors.ErrDashboardNotReady, "Painel ainda não foi montado", nil)
			return
		}

		writeJSON(w, r, ChartList{
			Title:   dashboard.Title,
			BuildID: dashboard.BuildID,
			Charts:  dashboard.Summaries(),
		}, false)
	})
}

// GetChart retorna a especificação completa de um gráfico. Em modo debug o JSON sai indentado.
func GetChart(service charting.Service, debug bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		figure, err := service.GetFigure(id)
		if err != nil {
			writeFigureError(w, r, id, err)
			return
		}

		writeJSON(w, r, figure, debug)
	})
}

func writeFigureError(w http.ResponseWriter, r *http.Request, id string, err error) {
	switch {
	case errors.Is(err, charting.ErrFigureNotFound):
		apiErrors.WriteError(w, apiErrors.ErrChartNotFound, "Gráfico não encontrado", map[string]string{"id": id})
	case errors.Is(err, charting.ErrDashboardNotBuilt):
		apiErrors.WriteError(w, apiErrors.ErrDashboardNotReady, "Painel ainda não foi montado", nil)
	default:
		log.ForContext(r.Context()).WithField("figure_id", id).WithError(err).Error("Erro ao buscar gráfico")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar gráfico", nil)
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any, indent bool) {
	var (
		body []byte
		err  error
	)
	if indent {
		body, err = utils.PrettyJson(v)
	} else {
		body, err = json.Marshal(v)
	}
	if err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
		apiErrors.WriteError(w, apiErrors.ErrRenderFailure, "Erro ao codificar resposta", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Erro ao enviar resposta")
	}
}
