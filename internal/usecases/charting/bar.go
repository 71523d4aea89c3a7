package charting

import (
	"github.com/vfg2006/ecommerce-dashboard/internal/dataset"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
)

// buildBar monta as barras agrupadas de quantidade vendida por temporada e gênero
func buildBar(base *dataset.Dataset) (*domain.Figure, error) {
	view, err := buildView(base, viewRule{
		chartID:  BarID,
		required: []string{domain.ColumnSeason, domain.ColumnQtySold, domain.ColumnGender},
		numeric:  []string{domain.ColumnQtySold},
		notNull:  []string{domain.ColumnSeason, domain.ColumnQtySold, domain.ColumnGender},
	})
	if err != nil {
		return nil, err
	}

	seasons, err := view.Strings(domain.ColumnSeason)
	if err != nil {
		return nil, err
	}
	genders, err := view.Strings(domain.ColumnGender)
	if err != nil {
		return nil, err
	}
	sold, err := view.Floats(domain.ColumnQtySold)
	if err != nil {
		return nil, err
	}

	table := crossTabulate(genders, seasons, sold)
	traces := make([]domain.Trace, 0, len(table.series))
	for i, gender := range table.series {
		x, y := table.row(gender, groups.sum)
		traces = append(traces, domain.Trace{
			Type:        "bar",
			Name:        gender,
			X:           domain.Labels(x),
			Y:           domain.Numbers(y),
			Opacity:     0.85,
			LegendGroup: gender,
			Marker:      &domain.Marker{Color: PastelPalette.At(i)},
		})
	}

	title := "Quantidade Vendida por Temporada e Gênero"
	font := &domain.Font{Family: "Arial", Size: 14, Color: "black"}

	return &domain.Figure{
		ID:    BarID,
		Kind:  domain.ChartKindBar,
		Title: title,
		Data:  traces,
		Layout: domain.Layout{
			Title: &domain.Title{
				Text: title,
				Font: &domain.Font{Family: "Arial", Size: 22, Color: "black"},
				X:    domain.Ptr(0.5),
			},
			XAxis: &domain.Axis{
				Title:         &domain.Title{Text: domain.ColumnSeason},
				TickAngle:     -45,
				CategoryOrder: "array",
				CategoryArray: table.categories,
			},
			YAxis:        &domain.Axis{Title: &domain.Title{Text: "Quantidade Vendida"}},
			Legend:       &domain.Legend{Title: &domain.Title{Text: domain.ColumnGender}},
			PlotBGColor:  "rgba(245, 250, 255, 1)",
			PaperBGColor: "rgba(230, 245, 250, 1)",
			Font:         font,
			BarMode:      "group",
			BarGap:       0.2,
		},
	}, nil
}
