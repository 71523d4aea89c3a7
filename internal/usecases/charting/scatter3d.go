package charting

import (
	"github.com/vfg2006/ecommerce-dashboard/internal/dataset"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
)

const (
	scatter3DTopBrands = 10
	scatter3DSizeMax   = 20
	scatter3DHeight    = 800
	sceneBackground    = "rgb(240, 240, 240)"

	scatter3DHover = "<b>%{z}</b><br>N_Avaliações=%{x}<br>Qtd_Vendidos=%{y}" +
		"<br>Marca=%{customdata[0]}<br>Nota=%{customdata[1]}<extra></extra>"
)

// buildScatter3D monta a relação entre avaliações, vendas e material das 10 marcas mais frequentes
func buildScatter3D(base *dataset.Dataset) (*domain.Figure, error) {
	view, err := buildView(base, viewRule{
		chartID: Scatter3DID,
		required: []string{
			domain.ColumnReviewCount, domain.ColumnQtySold, domain.ColumnMaterial,
			domain.ColumnBrand, domain.ColumnRating,
		},
		numeric: []string{domain.ColumnQtySold, domain.ColumnReviewCount},
		notNull: []string{domain.ColumnQtySold, domain.ColumnReviewCount, domain.ColumnMaterial},
		topBy:   domain.ColumnBrand,
		topN:    scatter3DTopBrands,
	})
	if err != nil {
		return nil, err
	}

	reviews, err := view.Floats(domain.ColumnReviewCount)
	if err != nil {
		return nil, err
	}
	sold, err := view.Floats(domain.ColumnQtySold)
	if err != nil {
		return nil, err
	}
	materials, err := view.Strings(domain.ColumnMaterial)
	if err != nil {
		return nil, err
	}
	brands, err := view.Strings(domain.ColumnBrand)
	if err != nil {
		return nil, err
	}
	// A nota só aparece no hover, então é mantida como texto
	ratings, err := view.Strings(domain.ColumnRating)
	if err != nil {
		return nil, err
	}

	ref := sizeRef(maxOf(sold), scatter3DSizeMax)

	order := make([]string, 0)
	rows := make(map[string][]int)
	for i, material := range materials {
		if _, ok := rows[material]; !ok {
			order = append(order, material)
		}
		rows[material] = append(rows[material], i)
	}

	traces := make([]domain.Trace, 0, len(order))
	for i, material := range order {
		indexes := rows[material]
		x := make([]float64, len(indexes))
		y := make([]float64, len(indexes))
		z := make([]string, len(indexes))
		custom := make([][]any, len(indexes))
		for j, row := range indexes {
			x[j] = reviews[row]
			y[j] = sold[row]
			z[j] = material
			custom[j] = []any{brands[row], ratings[row]}
		}

		traces = append(traces, domain.Trace{
			Type:          "scatter3d",
			Mode:          "markers",
			Name:          material,
			X:             domain.Numbers(x),
			Y:             domain.Numbers(y),
			Z:             domain.Labels(z),
			CustomData:    custom,
			LegendGroup:   material,
			HoverTemplate: scatter3DHover,
			Marker: &domain.Marker{
				Color:    VividPalette.At(i),
				Size:     y,
				SizeMode: "area",
				SizeRef:  ref,
				Opacity:  0.8,
			},
		})
	}

	title := "Relação 3D: Avaliações, Vendas e Material"

	return &domain.Figure{
		ID:    Scatter3DID,
		Kind:  domain.ChartKindScatter3D,
		Title: title,
		Data:  traces,
		Layout: domain.Layout{
			Title:  &domain.Title{Text: title},
			Height: scatter3DHeight,
			Scene: &domain.Scene{
				XAxis: sceneAxis("Número de Avaliações"),
				YAxis: sceneAxis("Quantidade Vendida"),
				ZAxis: sceneAxis("Material"),
				Camera: &domain.Camera{
					Up:     domain.Vector3{X: 0, Y: 0, Z: 1},
					Center: domain.Vector3{X: 0, Y: 0, Z: 0},
					Eye:    domain.Vector3{X: 1.5, Y: 1.5, Z: 0.5},
				},
			},
			Margin: &domain.Margin{L: 0, R: 0, B: 0, T: 40},
			Legend: &domain.Legend{
				Title:       &domain.Title{Text: domain.ColumnMaterial},
				Orientation: "h",
				YAnchor:     "bottom",
				Y:           domain.Ptr(-0.2),
				XAnchor:     "center",
				X:           domain.Ptr(0.5),
			},
		},
	}, nil
}

func sceneAxis(title string) *domain.Axis {
	return &domain.Axis{
		Title:           &domain.Title{Text: title},
		BackgroundColor: sceneBackground,
		ShowBackground:  true,
	}
}
