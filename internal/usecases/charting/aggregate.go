package charting

import (
	"github.com/vfg2006/ecommerce-dashboard/pkg/utils"
)

// groups mantém valores agrupados por chave, na ordem da primeira aparição
type groups struct {
	order  []string
	values map[string][]float64
}

func groupBy(keys []string, values []float64) groups {
	g := groups{values: make(map[string][]float64)}
	for i, k := range keys {
		if _, ok := g.values[k]; !ok {
			g.order = append(g.order, k)
		}
		g.values[k] = append(g.values[k], values[i])
	}
	return g
}

func (g groups) sum(key string) float64 {
	total := 0.0
	for _, v := range g.values[key] {
		total += v
	}
	return total
}

func (g groups) mean(key string) float64 {
	values := g.values[key]
	if len(values) == 0 {
		return 0
	}
	return g.sum(key) / float64(len(values))
}

// crossTab agrupa valores por série (cor) e categoria (eixo X)
type crossTab struct {
	series     []string
	categories []string
	cells      map[string]groups
}

func crossTabulate(seriesKeys, categoryKeys []string, values []float64) crossTab {
	ct := crossTab{cells: make(map[string]groups)}
	seenCategory := make(map[string]struct{})

	for i, s := range seriesKeys {
		c := categoryKeys[i]
		if _, ok := seenCategory[c]; !ok {
			seenCategory[c] = struct{}{}
			ct.categories = append(ct.categories, c)
		}

		cell, ok := ct.cells[s]
		if !ok {
			ct.series = append(ct.series, s)
			cell = groups{values: make(map[string][]float64)}
		}
		if _, ok := cell.values[c]; !ok {
			cell.order = append(cell.order, c)
		}
		cell.values[c] = append(cell.values[c], values[i])
		ct.cells[s] = cell
	}

	return ct
}

// row retorna, para uma série, as categorias presentes (na ordem global) e o valor agregado
func (ct crossTab) row(series string, agg func(groups, string) float64) ([]string, []float64) {
	cell := ct.cells[series]
	categories := make([]string, 0, len(cell.order))
	values := make([]float64, 0, len(cell.order))

	for _, c := range ct.categories {
		if _, ok := cell.values[c]; !ok {
			continue
		}
		categories = append(categories, c)
		values = append(values, utils.RoundWithTwoDecimalPlace(agg(cell, c)))
	}
	return categories, values
}

func maxOf(values []float64) float64 {
	top := 0.0
	for i, v := range values {
		if i == 0 || v > top {
			top = v
		}
	}
	return top
}

// sizeRef calcula a referência de tamanho para bolhas em modo área,
// de forma que o maior valor tenha diâmetro sizeMax
func sizeRef(maxValue float64, sizeMax float64) float64 {
	if maxValue <= 0 {
		return 1
	}
	return 2.0 * maxValue / (sizeMax * sizeMax)
}
