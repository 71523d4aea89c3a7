package charting

import (
	"fmt"
	"strings"

	"github.com/vfg2006/ecommerce-dashboard/internal/dataset"
)

// viewRule descreve como derivar, a partir do dataset base, a visão usada por um gráfico
type viewRule struct {
	chartID  string
	required []string // Colunas que precisam existir
	numeric  []string // Colunas convertidas para número
	notNull  []string // Colunas sem valores ausentes após a limpeza
	topBy    string   // Coluna categórica usada no filtro de top N
	topN     int
}

// buildView aplica a limpeza do gráfico sem alterar o dataset base
func buildView(base *dataset.Dataset, rule viewRule) (*dataset.Dataset, error) {
	if err := dataset.RequireColumns(base, rule.required...); err != nil {
		return nil, err
	}

	view := base
	var err error

	for _, column := range rule.numeric {
		view, err = dataset.CoerceNumeric(view, column)
		if err != nil {
			return nil, err
		}
	}

	view, err = dataset.DropMissing(view, rule.notNull...)
	if err != nil {
		return nil, err
	}

	if rule.topN > 0 {
		view, err = dataset.RestrictToTop(view, rule.topBy, rule.topN)
		if err != nil {
			return nil, err
		}
	}

	if view.Len() == 0 {
		return nil, &dataset.DatasetError{
			Err:     dataset.ErrDataQuality,
			Source:  base.Source(),
			Column:  strings.Join(rule.notNull, ","),
			Details: fmt.Sprintf("gráfico %s ficou sem linhas válidas (%d linhas no dataset)", rule.chartID, base.Len()),
		}
	}

	return view, nil
}
