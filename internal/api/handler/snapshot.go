package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ecommerce-dashboard/infrastructure/snapshot"
	"github.com/vfg2006/ecommerce-dashboard/internal/usecases/charting"
	"github.com/vfg2006/ecommerce-dashboard/pkg/apiErrors"
	"github.com/vfg2006/ecommerce-dashboard/pkg/log"
)

// GetChartSnapshot exporta um gráfico como PNG
func GetChartSnapshot(service charting.Service, renderer snapshot.Renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		figure, err := service.GetFigure(id)
		if err != nil {
			writeFigureError(w, r, id, err)
			return
		}

		// Renderiza em memória para não enviar uma imagem pela metade
		var buf bytes.Buffer
		if err := renderer.Render(&buf, figure); err != nil {
			if errors.Is(err, snapshot.ErrUnsupported) {
				apiErrors.WriteError(w, apiErrors.ErrSnapshotUnsupported, "Gráfico sem exportação estática", map[string]string{
					"id":   id,
					"kind": string(figure.Kind),
				})
				return
			}

			log.ForContext(r.Context()).WithField("figure_id", id).WithError(err).Error("Erro ao gerar snapshot")
			apiErrors.WriteError(w, apiErrors.ErrRenderFailure, "Erro ao gerar imagem do gráfico", nil)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		if _, err := buf.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Erro ao enviar snapshot")
		}
	})
}
