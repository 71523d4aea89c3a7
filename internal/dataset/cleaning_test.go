package dataset

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, content string) *Dataset {
	t.Helper()

	ds, err := Parse(strings.NewReader(content), "teste")
	require.NoError(t, err)
	return ds
}

func sumBy(t *testing.T, ds *Dataset, category, value string) map[string]float64 {
	t.Helper()

	keys, err := ds.Strings(category)
	require.NoError(t, err)
	values, err := ds.Floats(value)
	require.NoError(t, err)

	totals := make(map[string]float64)
	for i, k := range keys {
		totals[k] += values[i]
	}
	return totals
}

func TestCoerceNumeric_ThenDropMissing(t *testing.T) {
	ds := mustParse(t, "Qtd_Vendidos\n5\nbad\n10\n")

	coerced, err := CoerceNumeric(ds, "Qtd_Vendidos")
	require.NoError(t, err)

	cleaned, err := DropMissing(coerced, "Qtd_Vendidos")
	require.NoError(t, err)

	values, err := cleaned.Floats("Qtd_Vendidos")
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 10}, values)

	// O dataset original não é alterado
	assert.Equal(t, 3, ds.Len())
	original, err := ds.Strings("Qtd_Vendidos")
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "bad", "10"}, original)
}

func TestCoerceNumeric_Idempotent(t *testing.T) {
	ds := mustParse(t, "ID,Qtd_Vendidos\n1,5\n2, 7.5 \n3,bad\n4,\n5,1e3\n6,Inf\n")

	once, err := CoerceNumeric(ds, "Qtd_Vendidos")
	require.NoError(t, err)
	twice, err := CoerceNumeric(once, "Qtd_Vendidos")
	require.NoError(t, err)

	a, err := once.Floats("Qtd_Vendidos")
	require.NoError(t, err)
	b, err := twice.Floats("Qtd_Vendidos")
	require.NoError(t, err)

	require.Len(t, a, 6)
	require.Len(t, b, 6)
	for i := range a {
		if math.IsNaN(a[i]) {
			assert.True(t, math.IsNaN(b[i]), "posição %d", i)
			continue
		}
		assert.Equal(t, a[i], b[i], "posição %d", i)
	}

	assert.Equal(t, 5.0, a[0])
	assert.Equal(t, 7.5, a[1])
	assert.True(t, math.IsNaN(a[2]))
	assert.True(t, math.IsNaN(a[3]))
	assert.Equal(t, 1000.0, a[4])
	assert.True(t, math.IsNaN(a[5]))
}

func TestDropMissing(t *testing.T) {
	ds := mustParse(t, "Marca,Material,Qtd_Vendidos\nNike,Algodão,5\n,Couro,3\nAdidas,,2\nPuma,Couro,x\nFila,Couro,1\n")
	ds, err := CoerceNumeric(ds, "Qtd_Vendidos")
	require.NoError(t, err)

	cleaned, err := DropMissing(ds, "Marca", "Material", "Qtd_Vendidos")
	require.NoError(t, err)

	assert.LessOrEqual(t, cleaned.Len(), ds.Len())
	brands, err := cleaned.Strings("Marca")
	require.NoError(t, err)
	assert.Equal(t, []string{"Nike", "Fila"}, brands)

	for _, column := range []string{"Marca", "Material"} {
		values, err := cleaned.Strings(column)
		require.NoError(t, err)
		for _, v := range values {
			assert.NotEmpty(t, v)
		}
	}
	values, err := cleaned.Floats("Qtd_Vendidos")
	require.NoError(t, err)
	for _, v := range values {
		assert.False(t, math.IsNaN(v))
	}
}

func TestDropMissing_AllRowsInvalid(t *testing.T) {
	ds := mustParse(t, "Qtd_Vendidos\nx\ny\n")
	ds, err := CoerceNumeric(ds, "Qtd_Vendidos")
	require.NoError(t, err)

	cleaned, err := DropMissing(ds, "Qtd_Vendidos")

	require.NoError(t, err)
	assert.Equal(t, 0, cleaned.Len())
	assert.Equal(t, []string{"Qtd_Vendidos"}, cleaned.Columns())
}

func TestDropMissing_UnknownColumn(t *testing.T) {
	ds := mustParse(t, "Marca\nNike\n")

	_, err := DropMissing(ds, "Material")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))

	var dsErr *DatasetError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, "Material", dsErr.Column)
}

func TestCollapseRareCategories_AggregatesOtherBucket(t *testing.T) {
	ds := mustParse(t, "Marca,N_Avaliações\nA,10\nA,20\nA,30\nB,5\nB,5\nC,1\n")

	collapsed, err := CollapseRareCategories(ds, "Marca", 2)
	require.NoError(t, err)

	totals := sumBy(t, collapsed, "Marca", "N_Avaliações")
	assert.Equal(t, map[string]float64{"A": 60, "B": 10, OtherCategory: 1}, totals)
}

func TestCollapseRareCategories_Cardinality(t *testing.T) {
	tests := []struct {
		name      string
		values    []string
		keepTopN  int
		wantOther bool
	}{
		{
			name:      "Mais categorias que N - deve criar Outros",
			values:    []string{"A", "B", "C", "D", "A", "B", "A"},
			keepTopN:  2,
			wantOther: true,
		},
		{
			name:      "Categorias iguais a N - não deve criar Outros",
			values:    []string{"A", "B", "A"},
			keepTopN:  2,
			wantOther: false,
		},
		{
			name:      "Menos categorias que N - não deve criar Outros",
			values:    []string{"A"},
			keepTopN:  8,
			wantOther: false,
		},
		{
			name:      "N igual a zero - tudo vira Outros",
			values:    []string{"A", "B"},
			keepTopN:  0,
			wantOther: true,
		},
		{
			name:      "Valores ausentes - continuam ausentes e não contam",
			values:    []string{"A", "", "B", "", "C"},
			keepTopN:  3,
			wantOther: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			b.WriteString("ID,Marca\n")
			for i, v := range tt.values {
				fmt.Fprintf(&b, "%d,%s\n", i, v)
			}
			ds := mustParse(t, b.String())

			collapsed, err := CollapseRareCategories(ds, "Marca", tt.keepTopN)
			require.NoError(t, err)

			distinct, err := collapsed.Distinct("Marca")
			require.NoError(t, err)
			assert.LessOrEqual(t, len(distinct), tt.keepTopN+1)
			assert.Equal(t, tt.wantOther, containsValue(distinct, OtherCategory))
			assert.Equal(t, ds.Len(), collapsed.Len())
		})
	}
}

func TestFoldRareCategories_MissingGoesToOther(t *testing.T) {
	ds := mustParse(t, "Marca,N_Avaliações\nA,10\nA,20\n,100\nB,5\nC,1\n,50\n")

	folded, err := FoldRareCategories(ds, "Marca", 2)
	require.NoError(t, err)

	brands, err := folded.Strings("Marca")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A", OtherCategory, "B", OtherCategory, OtherCategory}, brands)

	totals := sumBy(t, folded, "Marca", "N_Avaliações")
	assert.Equal(t, map[string]float64{"A": 30, "B": 5, OtherCategory: 151}, totals)
}

func TestFoldRareCategories_MissingDoesNotCountForRanking(t *testing.T) {
	// As linhas sem marca são maioria, mas não tiram B do top 2
	ds := mustParse(t, "ID,Marca\n1,A\n2,\n3,\n4,\n5,B\n")

	folded, err := FoldRareCategories(ds, "Marca", 2)
	require.NoError(t, err)

	distinct, err := folded.Distinct("Marca")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", OtherCategory, "B"}, distinct)
}

func TestCollapseRareCategories_LiteralOtherValue(t *testing.T) {
	tests := []struct {
		name       string
		values     []string
		keepTopN   int
		wantCounts []CategoryCount
	}{
		{
			name:     "Outros literal no top N - continua presente sem exclusões",
			values:   []string{OtherCategory, "A", OtherCategory},
			keepTopN: 2,
			wantCounts: []CategoryCount{
				{Value: OtherCategory, Count: 2},
				{Value: "A", Count: 1},
			},
		},
		{
			name:     "Outros literal fora do top N - soma com as excluídas",
			values:   []string{"A", "A", "B", "B", OtherCategory, "C"},
			keepTopN: 2,
			wantCounts: []CategoryCount{
				{Value: "A", Count: 2},
				{Value: "B", Count: 2},
				{Value: OtherCategory, Count: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := mustParse(t, "Marca\n"+strings.Join(tt.values, "\n")+"\n")

			collapsed, err := CollapseRareCategories(ds, "Marca", tt.keepTopN)
			require.NoError(t, err)

			counts, err := CountCategories(collapsed, "Marca")
			require.NoError(t, err)
			assert.Equal(t, tt.wantCounts, counts)
			assert.Equal(t, ds.Len(), collapsed.Len())
		})
	}
}

func TestCountCategories_TiesKeepFirstAppearance(t *testing.T) {
	ds := mustParse(t, "Marca\nC\nB\nA\nB\nC\nA\nD\n")

	counts, err := CountCategories(ds, "Marca")
	require.NoError(t, err)

	assert.Equal(t, []CategoryCount{
		{Value: "C", Count: 2},
		{Value: "B", Count: 2},
		{Value: "A", Count: 2},
		{Value: "D", Count: 1},
	}, counts)
}

func TestRestrictToTop(t *testing.T) {
	var b strings.Builder
	b.WriteString("Marca\n")
	for i := 0; i < 12; i++ {
		for j := 0; j <= i; j++ {
			fmt.Fprintf(&b, "M%02d\n", i)
		}
	}
	ds := mustParse(t, b.String())

	restricted, err := RestrictToTop(ds, "Marca", 10)
	require.NoError(t, err)

	distinct, err := restricted.Distinct("Marca")
	require.NoError(t, err)
	assert.Len(t, distinct, 10)
	assert.NotContains(t, distinct, "M00")
	assert.NotContains(t, distinct, "M01")

	few := mustParse(t, "Marca\nA\nB\nC\nA\n")
	unchanged, err := RestrictToTop(few, "Marca", 10)
	require.NoError(t, err)
	assert.Equal(t, few.Len(), unchanged.Len())
}

func TestRequireColumns(t *testing.T) {
	ds := mustParse(t, "Nota,Marca\n1,A\n")

	assert.NoError(t, RequireColumns(ds, "Nota", "Marca"))

	err := RequireColumns(ds, "Nota", "Temporada")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "Temporada")
}

func containsValue(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
