// Package snapshot exporta figuras do painel como imagens PNG estáticas
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/vfg2006/ecommerce-dashboard/internal/config"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const defaultBins = 30

var (
	ErrUnsupported = errors.New("snapshot not supported for this chart kind")
	ErrEmptyFigure = errors.New("figure has no drawable values")
)

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// Renderer desenha uma figura num formato estático
type Renderer interface {
	Render(w io.Writer, figure *domain.Figure) error
}

type PNGRenderer struct {
	width  int
	height int
}

func NewRenderer(cfg *config.Config) *PNGRenderer {
	return &PNGRenderer{
		width:  cfg.Dashboard.SnapshotWidth,
		height: cfg.Dashboard.SnapshotHeight,
	}
}

// Render escreve a figura em PNG. Gráficos de bolhas e 3D não têm equivalente
// estático e retornam ErrUnsupported.
func (r *PNGRenderer) Render(w io.Writer, figure *domain.Figure) error {
	var (
		graph renderable
		err   error
	)

	switch figure.Kind {
	case domain.ChartKindHistogram:
		graph, err = r.histogram(figure)
	case domain.ChartKindPie:
		graph, err = r.pie(figure)
	case domain.ChartKindLine:
		graph, err = r.line(figure)
	case domain.ChartKindBar:
		graph, err = r.bar(figure)
	default:
		return pkgerrors.Wrapf(ErrUnsupported, "tipo %s", figure.Kind)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "erro ao preparar o gráfico %s", figure.ID)
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return pkgerrors.Wrapf(err, "erro ao renderizar o gráfico %s", figure.ID)
	}
	return nil
}

// histogram desenha uma barra por série em cada faixa, todas sobre as mesmas faixas
func (r *PNGRenderer) histogram(figure *domain.Figure) (*chart.BarChart, error) {
	perTrace := make([][]float64, len(figure.Data))
	all := make([]float64, 0)
	bins := defaultBins
	for i, trace := range figure.Data {
		x, err := floats(trace.X)
		if err != nil {
			return nil, err
		}
		perTrace[i] = x
		all = append(all, x...)
		if trace.NBinsX > 0 {
			bins = trace.NBinsX
		}
	}
	if len(all) == 0 {
		return nil, ErrEmptyFigure
	}

	layout := newBinLayout(all, bins)
	starts := layout.starts()
	counts := make([][]int, len(perTrace))
	for i, x := range perTrace {
		counts[i] = layout.count(x)
	}

	bars := make([]chart.Value, 0, len(starts)*len(perTrace))
	for bin := range starts {
		for i, trace := range figure.Data {
			label := ""
			// Um rótulo a cada cinco faixas para não sobrepor o texto
			if i == 0 && bin%5 == 0 {
				label = fmt.Sprintf("%.1f", starts[bin])
			}
			bars = append(bars, chart.Value{
				Value: float64(counts[i][bin]),
				Label: label,
				Style: chart.Style{FillColor: colorAt(trace.Marker, i), StrokeWidth: 0},
			})
		}
	}

	return &chart.BarChart{
		Title:      figure.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis:      chart.YAxis{Range: barRange(bars)},
		BarWidth:   max(1, (r.width-len(bars))/(len(bars)+2)),
		BarSpacing: 1,
		Bars:       bars,
	}, nil
}

func (r *PNGRenderer) pie(figure *domain.Figure) (*chart.PieChart, error) {
	if len(figure.Data) == 0 {
		return nil, ErrEmptyFigure
	}
	trace := figure.Data[0]

	values := make([]chart.Value, 0, len(trace.Values))
	for i, v := range trace.Values {
		// Fatias vazias não têm área e o go-chart não as aceita
		if v <= 0 || math.IsNaN(v) {
			continue
		}
		values = append(values, chart.Value{
			Value: v,
			Label: trace.Labels[i],
			Style: chart.Style{FillColor: colorAt(trace.Marker, i)},
		})
	}
	if len(values) == 0 {
		return nil, ErrEmptyFigure
	}

	return &chart.PieChart{
		Title:  figure.Title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}, nil
}

func (r *PNGRenderer) line(figure *domain.Figure) (renderable, error) {
	categories, err := categoriesOf(figure)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrEmptyFigure
	}
	// O go-chart precisa de ao menos dois valores no eixo X para uma linha
	if len(categories) == 1 {
		return r.singleCategory(figure, categories[0])
	}

	position := make(map[string]float64, len(categories))
	ticks := make([]chart.Tick, len(categories))
	for i, c := range categories {
		position[c] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: c}
	}

	series := make([]chart.Series, 0, len(figure.Data))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, trace := range figure.Data {
		labels, err := labels(trace.X)
		if err != nil {
			return nil, err
		}
		ys, err := floats(trace.Y)
		if err != nil {
			return nil, err
		}

		xs := make([]float64, len(labels))
		for j, l := range labels {
			xs[j] = position[l]
			lo, hi = math.Min(lo, ys[j]), math.Max(hi, ys[j])
		}

		color := colorAt(trace.Marker, i)
		series = append(series, chart.ContinuousSeries{
			Name:    trace.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3,
			},
		})
	}
	if len(series) == 0 {
		return nil, ErrEmptyFigure
	}

	// Faixas explícitas evitam eixos degenerados com um único ponto
	if lo == hi {
		lo, hi = lo-1, hi+1
	}

	c := &chart.Chart{
		Title:      figure.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  axisTitle(figure.Layout.XAxis),
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(categories)) - 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  axisTitle(figure.Layout.YAxis),
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}
	c.Elements = []chart.Renderable{chart.Legend(c)}

	return c, nil
}

// singleCategory desenha uma barra por série quando só existe uma categoria no eixo X
func (r *PNGRenderer) singleCategory(figure *domain.Figure, category string) (*chart.BarChart, error) {
	bars := make([]chart.Value, 0, len(figure.Data))
	for i, trace := range figure.Data {
		ys, err := floats(trace.Y)
		if err != nil {
			return nil, err
		}
		if len(ys) == 0 {
			continue
		}
		bars = append(bars, chart.Value{
			Value: ys[0],
			Label: trace.Name,
			Style: chart.Style{FillColor: colorAt(trace.Marker, i), StrokeWidth: 0},
		})
	}
	if len(bars) == 0 {
		return nil, ErrEmptyFigure
	}

	return &chart.BarChart{
		Title:      fmt.Sprintf("%s (%s)", figure.Title, category),
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Bottom: 40}},
		YAxis:      chart.YAxis{Range: barRange(bars)},
		BarWidth:   r.width / (len(bars) + 2),
		BarSpacing: 4,
		Bars:       bars,
	}, nil
}

func (r *PNGRenderer) bar(figure *domain.Figure) (*chart.BarChart, error) {
	bars := make([]chart.Value, 0)
	for i, trace := range figure.Data {
		labels, err := labels(trace.X)
		if err != nil {
			return nil, err
		}
		ys, err := floats(trace.Y)
		if err != nil {
			return nil, err
		}

		for j, l := range labels {
			bars = append(bars, chart.Value{
				Value: ys[j],
				Label: l + " / " + trace.Name,
				Style: chart.Style{FillColor: colorAt(trace.Marker, i), StrokeWidth: 0},
			})
		}
	}
	if len(bars) == 0 {
		return nil, ErrEmptyFigure
	}

	return &chart.BarChart{
		Title:      figure.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Bottom: 40}},
		YAxis:      chart.YAxis{Range: barRange(bars)},
		BarWidth:   r.width / (len(bars) + 2),
		BarSpacing: 4,
		Bars:       bars,
	}, nil
}

// barRange fixa o eixo Y a partir de zero; o go-chart recusa faixas de largura zero
func barRange(bars []chart.Value) *chart.ContinuousRange {
	top := 0.0
	for _, b := range bars {
		top = math.Max(top, b.Value)
	}
	if top <= 0 {
		top = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: top * 1.1}
}

// binLayout divide o intervalo entre o mínimo e o máximo em faixas de mesma largura
type binLayout struct {
	lo    float64
	width float64
	n     int
}

func newBinLayout(values []float64, n int) binLayout {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo == hi || n < 1 {
		return binLayout{lo: lo, n: 1}
	}
	return binLayout{lo: lo, width: (hi - lo) / float64(n), n: n}
}

func (b binLayout) starts() []float64 {
	starts := make([]float64, b.n)
	for i := range starts {
		starts[i] = b.lo + float64(i)*b.width
	}
	return starts
}

func (b binLayout) count(values []float64) []int {
	counts := make([]int, b.n)
	for _, v := range values {
		i := 0
		if b.width > 0 {
			i = int((v - b.lo) / b.width)
		}
		if i >= b.n {
			i = b.n - 1
		}
		if i < 0 {
			i = 0
		}
		counts[i]++
	}
	return counts
}

// binCounts distribui os valores em n faixas de mesma largura entre o mínimo e o máximo
func binCounts(values []float64, n int) ([]int, []float64) {
	layout := newBinLayout(values, n)
	return layout.count(values), layout.starts()
}

func categoriesOf(figure *domain.Figure) ([]string, error) {
	if figure.Layout.XAxis != nil && len(figure.Layout.XAxis.CategoryArray) > 0 {
		return figure.Layout.XAxis.CategoryArray, nil
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, trace := range figure.Data {
		ls, err := labels(trace.X)
		if err != nil {
			return nil, err
		}
		for _, l := range ls {
			if _, ok := seen[l]; !ok {
				seen[l] = struct{}{}
				categories = append(categories, l)
			}
		}
	}
	return categories, nil
}

func axisTitle(axis *domain.Axis) string {
	if axis == nil || axis.Title == nil {
		return ""
	}
	return axis.Title.Text
}

func floats(values []any) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "valor %v não é numérico", v)
		}
		out[i] = f
	}
	return out, nil
}

func labels(values []any) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// colorAt usa a cor do marcador quando ela é legível e a paleta padrão do go-chart caso contrário
func colorAt(marker *domain.Marker, i int) drawing.Color {
	if marker != nil {
		if i < len(marker.Colors) {
			if c, ok := parseColor(marker.Colors[i]); ok {
				return c
			}
		}
		if c, ok := parseColor(marker.Color); ok {
			return c
		}
	}
	return chart.GetDefaultColor(i)
}

// parseColor entende "#rrggbb" e "rgb(r, g, b)"
func parseColor(s string) (drawing.Color, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#") && len(s) == 7:
		return drawing.ColorFromHex(s[1:]), true
	case strings.HasPrefix(s, "rgb("):
		var r, g, b uint8
		if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "rgb(%d,%d,%d)", &r, &g, &b); err != nil {
			return drawing.Color{}, false
		}
		return drawing.Color{R: r, G: g, B: b, A: 255}, true
	}
	return drawing.Color{}, false
}
