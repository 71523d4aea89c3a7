package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/ecommerce-dashboard/internal/config"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
	"github.com/vfg2006/ecommerce-dashboard/internal/usecases/charting"
	"github.com/vfg2006/ecommerce-dashboard/pkg/apiErrors"
	"github.com/vfg2006/ecommerce-dashboard/pkg/log"
	"github.com/vfg2006/ecommerce-dashboard/pkg/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type dashboardPage struct {
	Title     string
	PlotlyURL string
	Source    string
	Rows      int
	BuildID   string
	BuiltAt   string
	Debug     bool
	Figures   []pageFigure
}

type pageFigure struct {
	ID    string
	Kind  domain.ChartKind
	Title string
	Plot  template.JS
}

// DashboardPage renderiza o painel com as figuras empilhadas verticalmente
func DashboardPage(cfg *config.Config, service charting.Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dashboard := service.Dashboard()
		if dashboard == nil {
			apiErrors.WriteError(w, apiErrors.ErrDashboardNotReady, "Painel ainda não foi montado", nil)
			return
		}

		page, err := newDashboardPage(cfg, dashboard)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao preparar o painel")
			apiErrors.WriteError(w, apiErrors.ErrRenderFailure, "Erro ao preparar o painel", nil)
			return
		}

		var buf bytes.Buffer
		if err := dashboardTemplate.Execute(&buf, page); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao renderizar o painel")
			apiErrors.WriteError(w, apiErrors.ErrRenderFailure, "Erro ao renderizar o painel", nil)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := buf.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Erro ao enviar o painel")
		}
	})
}

func newDashboardPage(cfg *config.Config, dashboard *domain.Dashboard) (dashboardPage, error) {
	figures := make([]pageFigure, 0, len(dashboard.Figures))
	for _, f := range dashboard.Figures {
		// O JSON do jsoniter escapa <, > e &, então pode ir direto para dentro do <script>
		plot, err := json.Marshal(struct {
			Data   []domain.Trace `json:"data"`
			Layout domain.Layout  `json:"layout"`
		}{f.Data, f.Layout})
		if err != nil {
			return dashboardPage{}, pkgerrors.Wrapf(err, "erro ao serializar o gráfico %s", f.ID)
		}

		figures = append(figures, pageFigure{
			ID:    f.ID,
			Kind:  f.Kind,
			Title: f.Title,
			Plot:  template.JS(plot),
		})
	}

	return dashboardPage{
		Title:     dashboard.Title,
		PlotlyURL: cfg.Dashboard.PlotlyURL,
		Source:    dashboard.Source,
		Rows:      dashboard.Rows,
		BuildID:   dashboard.BuildID,
		BuiltAt:   utils.FormatDateTime(dashboard.BuiltAt),
		Debug:     dashboard.Debug,
		Figures:   figures,
	}, nil
}
