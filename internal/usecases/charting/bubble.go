package charting

import (
	"github.com/vfg2006/ecommerce-dashboard/internal/dataset"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
)

const bubbleSizeMax = 50

// buildBubble monta o gráfico de bolhas de vendas por material
func buildBubble(base *dataset.Dataset) (*domain.Figure, error) {
	view, err := buildView(base, viewRule{
		chartID:  BubbleID,
		required: []string{domain.ColumnMaterial, domain.ColumnQtySold},
		numeric:  []string{domain.ColumnQtySold},
		notNull:  []string{domain.ColumnQtySold, domain.ColumnMaterial},
	})
	if err != nil {
		return nil, err
	}

	materials, err := view.Strings(domain.ColumnMaterial)
	if err != nil {
		return nil, err
	}
	sold, err := view.Floats(domain.ColumnQtySold)
	if err != nil {
		return nil, err
	}

	// A escala das bolhas é comum a todas as séries
	ref := sizeRef(maxOf(sold), bubbleSizeMax)

	byMaterial := groupBy(materials, sold)
	traces := make([]domain.Trace, 0, len(byMaterial.order))
	for i, material := range byMaterial.order {
		values := byMaterial.values[material]
		x := make([]string, len(values))
		for j := range x {
			x[j] = material
		}

		traces = append(traces, domain.Trace{
			Type:          "scatter",
			Mode:          "markers",
			Name:          material,
			X:             domain.Labels(x),
			Y:             domain.Numbers(values),
			LegendGroup:   material,
			HoverTemplate: "<b>%{x}</b><br>Qtd_Vendidos=%{y}<extra></extra>",
			Marker: &domain.Marker{
				Color:    PastelPalette.At(i),
				Size:     values,
				SizeMode: "area",
				SizeRef:  ref,
			},
		})
	}

	title := "Vendas por Material"

	return &domain.Figure{
		ID:    BubbleID,
		Kind:  domain.ChartKindBubble,
		Title: title,
		Data:  traces,
		Layout: domain.Layout{
			Title:        &domain.Title{Text: title, Font: &domain.Font{Size: 22}},
			XAxis:        &domain.Axis{Title: &domain.Title{Text: "Material"}},
			YAxis:        &domain.Axis{Title: &domain.Title{Text: "Quantidade Vendida (unidades)"}},
			Legend:       &domain.Legend{Title: &domain.Title{Text: domain.ColumnMaterial}},
			PlotBGColor:  "rgba(240,240,240,0.9)",
			PaperBGColor: "rgba(230,245,255,0.8)",
			Font:         &domain.Font{Family: "Arial", Size: 14},
		},
	}, nil
}
