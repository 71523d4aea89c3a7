package dataset

import (
	"math"
	"sort"
	"strings"

	"github.com/go-gota/gota/series"
	"github.com/spf13/cast"
)

// OtherCategory é o rótulo que agrupa as categorias pouco frequentes
const OtherCategory = "Outros"

// CategoryCount é a frequência de um valor categórico
type CategoryCount struct {
	Value string
	Count int
}

// RequireColumns falha com ErrMissingColumn se alguma coluna não existir
func RequireColumns(ds *Dataset, columns ...string) error {
	for _, column := range columns {
		if !ds.HasColumn(column) {
			return NewColumnError(ErrMissingColumn, column, "coluna obrigatória ausente no dataset")
		}
	}
	return nil
}

// CoerceNumeric converte a coluna para numérica; valores não conversíveis viram NaN.
// Aplicar duas vezes produz o mesmo resultado que aplicar uma vez.
func CoerceNumeric(ds *Dataset, column string) (*Dataset, error) {
	s, err := ds.col(column)
	if err != nil {
		return nil, err
	}

	values := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		values[i] = toFloat(s.Elem(i))
	}

	return ds.with(ds.frame.Mutate(series.New(values, series.Float, column))), nil
}

// DropMissing remove as linhas com valor ausente em qualquer uma das colunas
func DropMissing(ds *Dataset, columns ...string) (*Dataset, error) {
	if err := RequireColumns(ds, columns...); err != nil {
		return nil, err
	}

	cols := make([]series.Series, len(columns))
	for i, column := range columns {
		cols[i] = ds.frame.Col(column)
	}

	keep := make([]int, 0, ds.Len())
	for row := 0; row < ds.Len(); row++ {
		missing := false
		for _, s := range cols {
			if isMissing(s.Elem(row)) {
				missing = true
				break
			}
		}
		if !missing {
			keep = append(keep, row)
		}
	}

	return ds.subset(keep), nil
}

// CountCategories conta as ocorrências de cada valor, do mais para o menos frequente.
// Empates mantêm a ordem da primeira aparição na coluna.
func CountCategories(ds *Dataset, column string) ([]CategoryCount, error) {
	values, err := ds.Strings(column)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	counts := make([]CategoryCount, 0)
	for _, v := range values {
		if v == "" {
			continue
		}
		i, ok := index[v]
		if !ok {
			i = len(counts)
			index[v] = i
			counts = append(counts, CategoryCount{Value: v})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	return counts, nil
}

// TopCategories retorna os n valores mais frequentes da coluna
func TopCategories(ds *Dataset, column string, n int) ([]string, error) {
	counts, err := CountCategories(ds, column)
	if err != nil {
		return nil, err
	}

	if n < 0 {
		n = 0
	}
	if n > len(counts) {
		n = len(counts)
	}

	top := make([]string, n)
	for i := 0; i < n; i++ {
		top[i] = counts[i].Value
	}
	return top, nil
}

// CollapseRareCategories mantém os keepTopN valores mais frequentes e substitui
// todos os demais por "Outros". Valores ausentes continuam ausentes.
func CollapseRareCategories(ds *Dataset, column string, keepTopN int) (*Dataset, error) {
	return collapse(ds, column, keepTopN, false)
}

// FoldRareCategories funciona como CollapseRareCategories, mas os valores
// ausentes também vão para "Outros". A contagem de frequência ignora os ausentes.
func FoldRareCategories(ds *Dataset, column string, keepTopN int) (*Dataset, error) {
	return collapse(ds, column, keepTopN, true)
}

func collapse(ds *Dataset, column string, keepTopN int, foldMissing bool) (*Dataset, error) {
	top, err := TopCategories(ds, column, keepTopN)
	if err != nil {
		return nil, err
	}

	keep := toSet(top)
	values, _ := ds.Strings(column)

	collapsed := make([]string, len(values))
	for i, v := range values {
		switch {
		case v == "" && !foldMissing:
			collapsed[i] = ""
		case v != "" && contains(keep, v):
			collapsed[i] = v
		default:
			collapsed[i] = OtherCategory
		}
	}

	return ds.with(ds.frame.Mutate(series.New(collapsed, series.String, column))), nil
}

// KeepCategories mantém apenas as linhas cujo valor da coluna está em values
func KeepCategories(ds *Dataset, column string, values []string) (*Dataset, error) {
	current, err := ds.Strings(column)
	if err != nil {
		return nil, err
	}

	allowed := toSet(values)
	keep := make([]int, 0, len(current))
	for i, v := range current {
		if contains(allowed, v) {
			keep = append(keep, i)
		}
	}

	return ds.subset(keep), nil
}

// RestrictToTop mantém apenas as linhas das n categorias mais frequentes.
// Não altera nada quando a cardinalidade da coluna é menor ou igual a n.
func RestrictToTop(ds *Dataset, column string, n int) (*Dataset, error) {
	top, err := TopCategories(ds, column, n)
	if err != nil {
		return nil, err
	}
	return KeepCategories(ds, column, top)
}

// toFloat converte um elemento do gota em número; inválidos e infinitos viram NaN
func toFloat(el series.Element) float64 {
	if el.IsNA() {
		return math.NaN()
	}
	if el.Type() == series.Float {
		return el.Float()
	}

	raw := strings.TrimSpace(el.String())
	if raw == "" {
		return math.NaN()
	}

	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func contains(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}
