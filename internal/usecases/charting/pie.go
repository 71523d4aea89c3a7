package charting

import (
	"fmt"
	"math"

	"github.com/vfg2006/ecommerce-dashboard/internal/dataset"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
	"github.com/vfg2006/ecommerce-dashboard/pkg/utils"
)

const pieTopBrands = 8

// buildPie monta a rosca de avaliações por marca. As marcas fora do top 8 e as
// linhas sem marca são renomeadas para "Outros" antes da soma. Contagens de
// avaliações ausentes não entram na soma, mas a linha conta na frequência da marca.
func buildPie(base *dataset.Dataset) (*domain.Figure, error) {
	if err := dataset.RequireColumns(base, domain.ColumnBrand, domain.ColumnReviewCount); err != nil {
		return nil, err
	}
	if base.Len() == 0 {
		return nil, emptyPieError(base)
	}

	view, err := dataset.FoldRareCategories(base, domain.ColumnBrand, pieTopBrands)
	if err != nil {
		return nil, err
	}
	view, err = dataset.CoerceNumeric(view, domain.ColumnReviewCount)
	if err != nil {
		return nil, err
	}

	brands, err := view.Strings(domain.ColumnBrand)
	if err != nil {
		return nil, err
	}
	reviews, err := view.Floats(domain.ColumnReviewCount)
	if err != nil {
		return nil, err
	}

	valid := 0
	for i, v := range reviews {
		if math.IsNaN(v) {
			reviews[i] = 0
			continue
		}
		valid++
	}
	if valid == 0 {
		return nil, emptyPieError(base)
	}

	byBrand := groupBy(brands, reviews)
	values := make([]float64, len(byBrand.order))
	for i, brand := range byBrand.order {
		values[i] = utils.RoundWithTwoDecimalPlace(byBrand.sum(brand))
	}

	title := fmt.Sprintf("Distribuição de Avaliações por Marca (Top %d + Outros)", pieTopBrands)

	return &domain.Figure{
		ID:    PieID,
		Kind:  domain.ChartKindPie,
		Title: title,
		Data: []domain.Trace{
			{
				Type:         "pie",
				Labels:       byBrand.order,
				Values:       values,
				Hole:         0.3,
				TextPosition: "inside",
				TextInfo:     "percent+label",
				TextTemplate: "%{label}<br>%{percent:.1%}",
				InsideText:   &domain.Font{Size: 10},
				Marker: &domain.Marker{
					Colors: PlotlyPalette.Take(len(byBrand.order)),
					Line:   &domain.MarkerLine{Color: "white", Width: 1},
				},
			},
		},
		Layout: domain.Layout{
			Title: &domain.Title{Text: title},
			Legend: &domain.Legend{
				Orientation: "h",
				YAnchor:     "bottom",
				Y:           domain.Ptr(-0.2),
			},
			Margin: &domain.Margin{L: 80, R: 80, T: 50, B: 50},
		},
	}, nil
}

func emptyPieError(base *dataset.Dataset) error {
	return &dataset.DatasetError{
		Err:     dataset.ErrDataQuality,
		Source:  base.Source(),
		Column:  domain.ColumnReviewCount,
		Details: fmt.Sprintf("gráfico %s ficou sem linhas válidas (%d linhas no dataset)", PieID, base.Len()),
	}
}
