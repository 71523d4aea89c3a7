package charting

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ecommerce-dashboard/internal/config"
	"github.com/vfg2006/ecommerce-dashboard/internal/dataset"
	"github.com/vfg2006/ecommerce-dashboard/internal/domain"
)

const header = "Nota,Gênero,Marca,N_Avaliações,Qtd_Vendidos,Material,Temporada"

type row struct {
	rating, gender, brand, reviews, sold, material, season string
}

func (r row) String() string {
	return strings.Join([]string{r.rating, r.gender, r.brand, r.reviews, r.sold, r.material, r.season}, ",")
}

func newDataset(t *testing.T, rows ...row) *dataset.Dataset {
	t.Helper()

	lines := []string{header}
	for _, r := range rows {
		lines = append(lines, r.String())
	}

	ds, err := dataset.Parse(strings.NewReader(strings.Join(lines, "\n")+"\n"), "teste.csv")
	require.NoError(t, err)
	return ds
}

func sampleRows() []row {
	return []row{
		{"4.5", "Feminino", "Nike", "100", "50", "Algodão", "primavera/verão"},
		{"3.5", "Masculino", "Nike", "20", "10", "Poliéster", "outono/inverno"},
		{"4.0", "Feminino", "Adidas", "40", "bad", "Algodão", "primavera/verão"},
		{"2.0", "Masculino", "Puma", "5", "30", "Couro", "outono/inverno"},
		{"5.0", "Unissex", "Puma", "15", "+1000", "Couro", "primavera/verão"},
		{"abc", "Feminino", "Fila", "7", "5", "Algodão", "outono/inverno"},
	}
}

func newTestConfig() *config.Config {
	return &config.Config{
		App:       config.App{Debug: true},
		Dashboard: config.Dashboard{Title: "Painel de teste"},
	}
}

func TestChartService_Build(t *testing.T) {
	ds := newDataset(t, sampleRows()...)
	service := NewService(newTestConfig(), ds)

	dashboard, err := service.Build()
	require.NoError(t, err)

	ids := make([]string, 0, len(dashboard.Figures))
	for _, f := range dashboard.Figures {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{HistogramID, PieID, BubbleID, LineID, Scatter3DID, BarID}, ids)
	assert.Equal(t, "Painel de teste", dashboard.Title)
	assert.Equal(t, len(sampleRows()), dashboard.Rows)
	assert.Equal(t, "teste.csv", dashboard.Source)
	assert.True(t, dashboard.Debug)
	assert.Len(t, dashboard.BuildID, 8)
	assert.Same(t, dashboard, service.Dashboard())

	figure, err := service.GetFigure(PieID)
	require.NoError(t, err)
	assert.Equal(t, domain.ChartKindPie, figure.Kind)

	_, err = service.GetFigure("nao-existe")
	assert.True(t, errors.Is(err, ErrFigureNotFound))

	// Todas as figuras precisam ser serializáveis (sem NaN)
	for _, f := range dashboard.Figures {
		_, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(f)
		assert.NoError(t, err, f.ID)
	}

	// O dataset base não é alterado pelos gráficos
	sold, err := ds.Strings(domain.ColumnQtySold)
	require.NoError(t, err)
	assert.Equal(t, "bad", sold[2])
}

func TestChartService_GetFigureBeforeBuild(t *testing.T) {
	service := NewService(newTestConfig(), newDataset(t, sampleRows()...))

	assert.Nil(t, service.Dashboard())
	_, err := service.GetFigure(HistogramID)
	assert.True(t, errors.Is(err, ErrDashboardNotBuilt))
}

func TestBuilders_HeaderOnlyDataset(t *testing.T) {
	ds := newDataset(t)

	for _, b := range builders {
		t.Run(b.id, func(t *testing.T) {
			figure, err := b.build(ds)

			require.Error(t, err)
			assert.Nil(t, figure)
			assert.True(t, errors.Is(err, dataset.ErrDataQuality))
		})
	}

	_, err := NewService(newTestConfig(), ds).Build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrDataQuality))
	assert.Contains(t, err.Error(), HistogramID)
}

func TestBuildPie_NoReviewCounts(t *testing.T) {
	ds := newDataset(t,
		row{"4", "F", "A", "", "1", "X", "T1"},
		row{"4", "F", "B", "n/d", "1", "X", "T1"},
	)

	figure, err := buildPie(ds)

	require.Error(t, err)
	assert.Nil(t, figure)
	assert.True(t, errors.Is(err, dataset.ErrDataQuality))
}

func TestBuilders_MissingColumn(t *testing.T) {
	ds, err := dataset.Parse(strings.NewReader("Nota,Marca\n4,Nike\n"), "teste.csv")
	require.NoError(t, err)

	for _, b := range builders {
		t.Run(b.id, func(t *testing.T) {
			_, err := b.build(ds)

			require.Error(t, err)
			assert.True(t, errors.Is(err, dataset.ErrMissingColumn))
		})
	}
}

func TestBuildHistogram(t *testing.T) {
	figure, err := buildHistogram(newDataset(t, sampleRows()...))
	require.NoError(t, err)

	require.Len(t, figure.Data, 3)
	assert.Equal(t, "Feminino", figure.Data[0].Name)
	assert.Equal(t, []any{4.5, 4.0}, figure.Data[0].X)
	assert.Equal(t, "Masculino", figure.Data[1].Name)
	assert.Equal(t, "Unissex", figure.Data[2].Name)
	for _, trace := range figure.Data {
		assert.Equal(t, "histogram", trace.Type)
		assert.Equal(t, 30, trace.NBinsX)
	}
	assert.Equal(t, "overlay", figure.Layout.BarMode)
	assert.Equal(t, "Distribuição de Notas por Gênero", figure.Title)
}

func TestBuildPie(t *testing.T) {
	tests := []struct {
		name       string
		rows       []row
		wantLabels []string
		wantValues []float64
	}{
		{
			name: "Até 8 marcas - não deve criar Outros",
			rows: []row{
				{"4", "F", "A", "10", "1", "X", "T1"},
				{"4", "F", "A", "20", "1", "X", "T1"},
				{"4", "F", "B", "5", "1", "X", "T1"},
				{"4", "F", "B", "", "1", "X", "T1"},
			},
			wantLabels: []string{"A", "B"},
			wantValues: []float64{30, 5},
		},
		{
			name: "Mais de 8 marcas - Outros deve somar as marcas excluídas",
			rows: func() []row {
				rows := make([]row, 0)
				// M1..M8 com 3 linhas cada e 10 avaliações por linha
				for i := 1; i <= 8; i++ {
					for j := 0; j < 3; j++ {
						rows = append(rows, row{"4", "F", fmt.Sprintf("M%d", i), "10", "1", "X", "T1"})
					}
				}
				// Marcas raras, uma linha cada
				rows = append(rows, row{"4", "F", "R1", "7", "1", "X", "T1"})
				rows = append(rows, row{"4", "F", "R2", "3", "1", "X", "T1"})
				return rows
			}(),
			wantLabels: []string{"M1", "M2", "M3", "M4", "M5", "M6", "M7", "M8", dataset.OtherCategory},
			wantValues: []float64{30, 30, 30, 30, 30, 30, 30, 30, 10},
		},
		{
			name: "Marca ausente vai para Outros e avaliações ausentes contam na frequência",
			rows: func() []row {
				rows := make([]row, 0)
				// A..H com 2 linhas cada e 10 avaliações por linha
				for _, brand := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
					rows = append(rows, row{"4", "F", brand, "10", "1", "X", "T1"})
					rows = append(rows, row{"4", "F", brand, "10", "1", "X", "T1"})
				}
				rows = append(rows, row{"4", "F", "I", "7", "1", "X", "T1"})
				// Linhas sem marca
				rows = append(rows, row{"4", "F", "", "100", "1", "X", "T1"})
				rows = append(rows, row{"4", "F", "", "100", "1", "X", "T1"})
				// Z é a marca mais frequente, mas sem nenhuma contagem de avaliações
				for j := 0; j < 3; j++ {
					rows = append(rows, row{"4", "F", "Z", "", "1", "X", "T1"})
				}
				return rows
			}(),
			wantLabels: []string{"A", "B", "C", "D", "E", "F", "G", dataset.OtherCategory, "Z"},
			// Outros = H (20) + I (7) + sem marca (200)
			wantValues: []float64{20, 20, 20, 20, 20, 20, 20, 227, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			figure, err := buildPie(newDataset(t, tt.rows...))
			require.NoError(t, err)

			require.Len(t, figure.Data, 1)
			trace := figure.Data[0]
			assert.Equal(t, "pie", trace.Type)
			assert.Equal(t, 0.3, trace.Hole)
			assert.Equal(t, tt.wantLabels, trace.Labels)
			assert.Equal(t, tt.wantValues, trace.Values)
			assert.Len(t, trace.Marker.Colors, len(tt.wantLabels))
			assert.Equal(t, "h", figure.Layout.Legend.Orientation)
		})
	}
}

func TestBuildBubble_DropsInvalidQuantities(t *testing.T) {
	figure, err := buildBubble(newDataset(t, sampleRows()...))
	require.NoError(t, err)

	names := make([]string, 0)
	total := 0
	for _, trace := range figure.Data {
		names = append(names, trace.Name)
		total += len(trace.Y)
		assert.Equal(t, "area", trace.Marker.SizeMode)
		assert.Equal(t, len(trace.Y), len(trace.Marker.Size))
	}

	assert.Equal(t, []string{"Algodão", "Poliéster", "Couro"}, names)
	// A linha com "bad" é removida
	assert.Equal(t, 5, total)
	assert.Equal(t, []any{50.0, 5.0}, figure.Data[0].Y)
	// sizeref = 2 * max / 50²
	assert.InDelta(t, 2.0*1000/(50*50), figure.Data[0].Marker.SizeRef, 1e-9)
	assert.Equal(t, "rgba(240,240,240,0.9)", figure.Layout.PlotBGColor)
}

func TestBuildLine(t *testing.T) {
	t.Run("Menos de 10 marcas - deve incluir todas", func(t *testing.T) {
		figure, err := buildLine(newDataset(t, sampleRows()...))
		require.NoError(t, err)

		names := make([]string, 0)
		for _, trace := range figure.Data {
			names = append(names, trace.Name)
		}
		// Fila fica de fora apenas porque a nota "abc" é inválida
		assert.Equal(t, []string{"Nike", "Adidas", "Puma"}, names)

		nike := figure.Data[0]
		assert.Equal(t, []any{"primavera/verão", "outono/inverno"}, nike.X)
		assert.Equal(t, []any{4.5, 3.5}, nike.Y)
		assert.Equal(t, "lines+markers", nike.Mode)
		assert.Equal(t, []string{"primavera/verão", "outono/inverno"}, figure.Layout.XAxis.CategoryArray)
		assert.Equal(t, "x unified", figure.Layout.HoverMode)
	})

	t.Run("Mais de 10 marcas - deve manter apenas as 10 mais frequentes", func(t *testing.T) {
		rows := make([]row, 0)
		for i := 0; i < 12; i++ {
			for j := 0; j <= i; j++ {
				rows = append(rows, row{"4", "F", fmt.Sprintf("B%02d", i), "1", "1", "X", "T1"})
			}
		}

		figure, err := buildLine(newDataset(t, rows...))
		require.NoError(t, err)

		require.Len(t, figure.Data, 10)
		for _, trace := range figure.Data {
			assert.NotEqual(t, "B00", trace.Name)
			assert.NotEqual(t, "B01", trace.Name)
		}
	})

	t.Run("Média por marca e temporada", func(t *testing.T) {
		figure, err := buildLine(newDataset(t,
			row{"4", "F", "Nike", "1", "1", "X", "T1"},
			row{"5", "F", "Nike", "1", "1", "X", "T1"},
			row{"3", "F", "Nike", "1", "1", "X", "T2"},
		))
		require.NoError(t, err)

		require.Len(t, figure.Data, 1)
		assert.Equal(t, []any{4.5, 3.0}, figure.Data[0].Y)
	})
}

func TestBuildScatter3D(t *testing.T) {
	figure, err := buildScatter3D(newDataset(t, sampleRows()...))
	require.NoError(t, err)

	require.Len(t, figure.Data, 3)
	algodao := figure.Data[0]
	assert.Equal(t, "scatter3d", algodao.Type)
	assert.Equal(t, "Algodão", algodao.Name)
	assert.Equal(t, []any{100.0, 7.0}, algodao.X)
	assert.Equal(t, []any{50.0, 5.0}, algodao.Y)
	assert.Equal(t, []any{"Algodão", "Algodão"}, algodao.Z)
	assert.Equal(t, []any{"Nike", "4.5"}, algodao.CustomData[0])
	assert.Equal(t, 0.8, algodao.Marker.Opacity)

	require.NotNil(t, figure.Layout.Scene)
	assert.Equal(t, domain.Vector3{X: 1.5, Y: 1.5, Z: 0.5}, figure.Layout.Scene.Camera.Eye)
	assert.Equal(t, domain.Vector3{X: 0, Y: 0, Z: 1}, figure.Layout.Scene.Camera.Up)
	assert.Equal(t, 800, figure.Layout.Height)
	assert.Equal(t, "rgb(240, 240, 240)", figure.Layout.Scene.ZAxis.BackgroundColor)
}

func TestBuildBar(t *testing.T) {
	figure, err := buildBar(newDataset(t,
		row{"4", "Feminino", "A", "1", "10", "X", "verão"},
		row{"4", "Feminino", "A", "1", "5", "X", "verão"},
		row{"4", "Masculino", "A", "1", "7", "X", "inverno"},
		row{"4", "Feminino", "A", "1", "2", "X", "inverno"},
		row{"4", "Masculino", "A", "1", "x", "X", "verão"},
	))
	require.NoError(t, err)

	require.Len(t, figure.Data, 2)
	feminino := figure.Data[0]
	assert.Equal(t, "Feminino", feminino.Name)
	assert.Equal(t, []any{"verão", "inverno"}, feminino.X)
	assert.Equal(t, []any{15.0, 2.0}, feminino.Y)

	masculino := figure.Data[1]
	assert.Equal(t, []any{"inverno"}, masculino.X)
	assert.Equal(t, []any{7.0}, masculino.Y)

	assert.Equal(t, "group", figure.Layout.BarMode)
	assert.Equal(t, -45, figure.Layout.XAxis.TickAngle)
	assert.Equal(t, 0.2, figure.Layout.BarGap)
	assert.Equal(t, 0.85, feminino.Opacity)
}
