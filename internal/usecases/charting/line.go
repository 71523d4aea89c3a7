package charting

import (
	"fmt"

	"github.com/vfg2006/ecommerce-dashboard/internal/dataset"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
)

const lineTopBrands = 10

// buildLine monta a evolução da nota média por temporada das 10 marcas mais frequentes
func buildLine(base *dataset.Dataset) (*domain.Figure, error) {
	view, err := buildView(base, viewRule{
		chartID:  LineID,
		required: []string{domain.ColumnSeason, domain.ColumnRating, domain.ColumnBrand},
		numeric:  []string{domain.ColumnRating},
		notNull:  []string{domain.ColumnSeason, domain.ColumnRating, domain.ColumnBrand},
		topBy:    domain.ColumnBrand,
		topN:     lineTopBrands,
	})
	if err != nil {
		return nil, err
	}

	seasons, err := view.Strings(domain.ColumnSeason)
	if err != nil {
		return nil, err
	}
	brands, err := view.Strings(domain.ColumnBrand)
	if err != nil {
		return nil, err
	}
	ratings, err := view.Floats(domain.ColumnRating)
	if err != nil {
		return nil, err
	}

	table := crossTabulate(brands, seasons, ratings)
	traces := make([]domain.Trace, 0, len(table.series))
	for i, brand := range table.series {
		x, y := table.row(brand, groups.mean)
		traces = append(traces, domain.Trace{
			Type:        "scatter",
			Mode:        "lines+markers",
			Name:        brand,
			X:           domain.Labels(x),
			Y:           domain.Numbers(y),
			LegendGroup: brand,
			Marker:      &domain.Marker{Color: PlotlyPalette.At(i)},
			Line:        &domain.MarkerLine{Color: PlotlyPalette.At(i)},
		})
	}

	title := fmt.Sprintf("Evolução das Notas das Top %d Marcas por Temporada", lineTopBrands)

	return &domain.Figure{
		ID:    LineID,
		Kind:  domain.ChartKindLine,
		Title: title,
		Data:  traces,
		Layout: domain.Layout{
			Title: &domain.Title{Text: title},
			XAxis: &domain.Axis{
				Title:         &domain.Title{Text: domain.ColumnSeason},
				CategoryOrder: "array",
				CategoryArray: table.categories,
			},
			YAxis:     &domain.Axis{Title: &domain.Title{Text: "Nota Média"}},
			Legend:    &domain.Legend{Title: &domain.Title{Text: domain.ColumnBrand}},
			HoverMode: "x unified",
		},
	}, nil
}
