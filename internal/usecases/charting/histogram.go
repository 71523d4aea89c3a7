package charting

import (
	"github.com/vfg2006/ecommerce-dashboard/internal/dataset"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
)

const histogramBins = 30

// buildHistogram monta a distribuição de notas, com uma série sobreposta por gênero
func buildHistogram(base *dataset.Dataset) (*domain.Figure, error) {
	view, err := buildView(base, viewRule{
		chartID:  HistogramID,
		required: []string{domain.ColumnRating, domain.ColumnGender},
		numeric:  []string{domain.ColumnRating},
		notNull:  []string{domain.ColumnRating, domain.ColumnGender},
	})
	if err != nil {
		return nil, err
	}

	ratings, err := view.Floats(domain.ColumnRating)
	if err != nil {
		return nil, err
	}
	genders, err := view.Strings(domain.ColumnGender)
	if err != nil {
		return nil, err
	}

	byGender := groupBy(genders, ratings)
	traces := make([]domain.Trace, 0, len(byGender.order))
	for i, gender := range byGender.order {
		traces = append(traces, domain.Trace{
			Type:        "histogram",
			Name:        gender,
			X:           domain.Numbers(byGender.values[gender]),
			NBinsX:      histogramBins,
			Opacity:     0.75,
			LegendGroup: gender,
			Marker:      &domain.Marker{Color: PlotlyPalette.At(i)},
		})
	}

	title := "Distribuição de Notas por Gênero"

	return &domain.Figure{
		ID:    HistogramID,
		Kind:  domain.ChartKindHistogram,
		Title: title,
		Data:  traces,
		Layout: domain.Layout{
			Title:   &domain.Title{Text: title},
			XAxis:   &domain.Axis{Title: &domain.Title{Text: domain.ColumnRating}},
			YAxis:   &domain.Axis{Title: &domain.Title{Text: "Contagem"}},
			Legend:  &domain.Legend{Title: &domain.Title{Text: domain.ColumnGender}},
			BarMode: "overlay",
		},
	}, nil
}
