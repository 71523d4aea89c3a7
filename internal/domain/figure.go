// Package domain contém as estruturas de dados do domínio da aplicação
package domain

// ChartKind identifica o tipo de gráfico
type ChartKind string

const (
	ChartKindHistogram ChartKind = "histogram"
	ChartKindPie       ChartKind = "pie"
	ChartKindBubble    ChartKind = "bubble"
	ChartKindLine      ChartKind = "line"
	ChartKindScatter3D ChartKind = "scatter3d"
	ChartKindBar       ChartKind = "bar"
)

// Figure é a especificação declarativa de um gráfico, no formato consumido pelo Plotly.js.
// É criada uma única vez e não deve ser alterada depois disso.
type Figure struct {
	ID     string    `json:"id"`
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	Data   []Trace   `json:"data"`
	Layout Layout    `json:"layout"`
}

// Trace representa uma série do gráfico
type Trace struct {
	Type          string      `json:"type"`
	Name          string      `json:"name,omitempty"`
	Mode          string      `json:"mode,omitempty"`
	X             []any       `json:"x,omitempty"`
	Y             []any       `json:"y,omitempty"`
	Z             []any       `json:"z,omitempty"`
	Labels        []string    `json:"labels,omitempty"`
	Values        []float64   `json:"values,omitempty"`
	CustomData    [][]any     `json:"customdata,omitempty"`
	Hole          float64     `json:"hole,omitempty"`
	NBinsX        int         `json:"nbinsx,omitempty"`
	Opacity       float64     `json:"opacity,omitempty"`
	Marker        *Marker     `json:"marker,omitempty"`
	TextPosition  string      `json:"textposition,omitempty"`
	TextInfo      string      `json:"textinfo,omitempty"`
	TextTemplate  string      `json:"texttemplate,omitempty"`
	HoverTemplate string      `json:"hovertemplate,omitempty"`
	InsideText    *Font       `json:"insidetextfont,omitempty"`
	LegendGroup   string      `json:"legendgroup,omitempty"`
	Line          *MarkerLine `json:"line,omitempty"`
}

// Marker configura cor, tamanho e borda dos pontos/barras/fatias
type Marker struct {
	Color    string      `json:"color,omitempty"`
	Colors   []string    `json:"colors,omitempty"`
	Size     []float64   `json:"size,omitempty"`
	SizeMode string      `json:"sizemode,omitempty"`
	SizeRef  float64     `json:"sizeref,omitempty"`
	Opacity  float64     `json:"opacity,omitempty"`
	Line     *MarkerLine `json:"line,omitempty"`
}

// MarkerLine é a borda de um marcador ou o traço de uma linha
type MarkerLine struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// Font configura a tipografia
type Font struct {
	Family string `json:"family,omitempty"`
	Size   int    `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Title é um título com fonte e posição opcionais
type Title struct {
	Text string   `json:"text"`
	Font *Font    `json:"font,omitempty"`
	X    *float64 `json:"x,omitempty"`
}

// Layout é a configuração visual do gráfico
type Layout struct {
	Title        *Title  `json:"title,omitempty"`
	XAxis        *Axis   `json:"xaxis,omitempty"`
	YAxis        *Axis   `json:"yaxis,omitempty"`
	Scene        *Scene  `json:"scene,omitempty"`
	Legend       *Legend `json:"legend,omitempty"`
	Margin       *Margin `json:"margin,omitempty"`
	Font         *Font   `json:"font,omitempty"`
	BarMode      string  `json:"barmode,omitempty"`
	BarGap       float64 `json:"bargap,omitempty"`
	HoverMode    string  `json:"hovermode,omitempty"`
	PlotBGColor  string  `json:"plot_bgcolor,omitempty"`
	PaperBGColor string  `json:"paper_bgcolor,omitempty"`
	Height       int     `json:"height,omitempty"`
}

// Axis configura um eixo 2D ou 3D
type Axis struct {
	Title           *Title   `json:"title,omitempty"`
	TickAngle       int      `json:"tickangle,omitempty"`
	BackgroundColor string   `json:"backgroundcolor,omitempty"`
	ShowBackground  bool     `json:"showbackground,omitempty"`
	CategoryOrder   string   `json:"categoryorder,omitempty"`
	CategoryArray   []string `json:"categoryarray,omitempty"`
}

// Legend configura a legenda
type Legend struct {
	Title       *Title   `json:"title,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
	XAnchor     string   `json:"xanchor,omitempty"`
	YAnchor     string   `json:"yanchor,omitempty"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
}

// Margin são as margens do gráfico em pixels
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Scene configura os eixos e a câmera de gráficos 3D
type Scene struct {
	XAxis  *Axis   `json:"xaxis,omitempty"`
	YAxis  *Axis   `json:"yaxis,omitempty"`
	ZAxis  *Axis   `json:"zaxis,omitempty"`
	Camera *Camera `json:"camera,omitempty"`
}

// Camera define o ângulo de visão de um gráfico 3D
type Camera struct {
	Up     Vector3 `json:"up"`
	Center Vector3 `json:"center"`
	Eye    Vector3 `json:"eye"`
}

// Vector3 é um ponto no espaço 3D
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Summary é a visão resumida de uma figura
type Summary struct {
	ID    string    `json:"id"`
	Kind  ChartKind `json:"kind"`
	Title string    `json:"title"`
}

// Summary retorna a visão resumida da figura
func (f *Figure) Summary() Summary {
	return Summary{ID: f.ID, Kind: f.Kind, Title: f.Title}
}

// Ptr retorna um ponteiro para o valor informado
func Ptr[T any](v T) *T {
	return &v
}

// Numbers converte valores numéricos para o formato genérico das séries
func Numbers(values []float64) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// Labels converte rótulos para o formato genérico das séries
func Labels(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
