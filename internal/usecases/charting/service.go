package charting

import (
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ecommerce-dashboard/internal/config"
	"github.com/vfg2006/ecommerce-dashboard/internal/dataset"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
	"github.com/vfg2006/ecommerce-dashboard/pkg/utils"
)

// IDs das figuras, na ordem em que aparecem no painel
const (
	HistogramID = "histograma-notas"
	PieID       = "pizza-avaliacoes"
	BubbleID    = "bolhas-material"
	LineID      = "linha-temporada"
	Scatter3DID = "dispersao-3d"
	BarID       = "barras-temporada-genero"
)

var (
	ErrFigureNotFound    = errors.New("figure not found")
	ErrDashboardNotBuilt = errors.New("dashboard has not been built yet")
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// Service define as operações de montagem e consulta do painel
type Service interface {
	// Build monta as seis figuras a partir do dataset base; qualquer falha aborta a montagem
	Build() (*domain.Dashboard, error)

	// Dashboard retorna o painel já montado (nil antes de Build)
	Dashboard() *domain.Dashboard

	// GetFigure busca uma figura do painel pelo ID
	GetFigure(id string) (*domain.Figure, error)
}

type builder struct {
	id    string
	build func(*dataset.Dataset) (*domain.Figure, error)
}

// builders na ordem vertical do painel
var builders = []builder{
	{id: HistogramID, build: buildHistogram},
	{id: PieID, build: buildPie},
	{id: BubbleID, build: buildBubble},
	{id: LineID, build: buildLine},
	{id: Scatter3DID, build: buildScatter3D},
	{id: BarID, build: buildBar},
}

type ChartService struct {
	cfg       *config.Config
	base      *dataset.Dataset
	dashboard *domain.Dashboard
}

// NewService cria o serviço de gráficos sobre o dataset base, que nunca é alterado
func NewService(cfg *config.Config, base *dataset.Dataset) Service {
	return &ChartService{
		cfg:  cfg,
		base: base,
	}
}

func (s *ChartService) Build() (*domain.Dashboard, error) {
	figures := make([]*domain.Figure, 0, len(builders))

	for _, b := range builders {
		figure, err := b.build(s.base)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "erro ao construir o gráfico %s", b.id)
		}

		logrus.WithFields(logrus.Fields{
			"figure_id": figure.ID,
			"kind":      figure.Kind,
			"traces":    len(figure.Data),
		}).Debug("Gráfico construído")

		figures = append(figures, figure)
	}

	buildID, err := utils.GenerateID()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "erro ao gerar o ID do painel")
	}

	s.dashboard = &domain.Dashboard{
		Title:   s.cfg.Dashboard.Title,
		BuildID: buildID,
		BuiltAt: time.Now(),
		Source:  s.base.Source(),
		Rows:    s.base.Len(),
		Debug:   s.cfg.App.Debug,
		Figures: figures,
	}

	logrus.WithFields(logrus.Fields{
		"build_id": buildID,
		"figures":  len(figures),
		"rows":     s.base.Len(),
	}).Info("Painel montado com sucesso")

	return s.dashboard, nil
}

func (s *ChartService) Dashboard() *domain.Dashboard {
	return s.dashboard
}

func (s *ChartService) GetFigure(id string) (*domain.Figure, error) {
	if s.dashboard == nil {
		return nil, ErrDashboardNotBuilt
	}

	figure, ok := s.dashboard.Figure(id)
	if !ok {
		return nil, ErrFigureNotFound
	}
	return figure, nil
}
