package charting

// Palette é uma sequência discreta de cores, usada de forma cíclica
type Palette []string

// Sequências qualitativas do Plotly
var (
	PlotlyPalette = Palette{
		"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
		"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
	}

	PastelPalette = Palette{
		"rgb(102, 197, 204)", "rgb(246, 207, 113)", "rgb(248, 156, 116)",
		"rgb(220, 176, 242)", "rgb(135, 197, 95)", "rgb(158, 185, 243)",
		"rgb(254, 136, 177)", "rgb(201, 219, 116)", "rgb(139, 224, 164)",
		"rgb(180, 151, 231)", "rgb(179, 179, 179)",
	}

	VividPalette = Palette{
		"rgb(229, 134, 6)", "rgb(93, 105, 177)", "rgb(82, 188, 163)",
		"rgb(153, 201, 69)", "rgb(204, 97, 176)", "rgb(36, 121, 108)",
		"rgb(218, 165, 27)", "rgb(47, 138, 196)", "rgb(118, 78, 159)",
		"rgb(237, 100, 90)", "rgb(165, 170, 153)",
	}
)

// At retorna a i-ésima cor, recomeçando do início quando a paleta acaba
func (p Palette) At(i int) string {
	return p[i%len(p)]
}

// Take retorna n cores consecutivas
func (p Palette) Take(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = p.At(i)
	}
	return colors
}
