// Package dataset carrega o CSV de e-commerce e oferece as transformações de limpeza
// usadas pelos gráficos. Todas as operações retornam um novo Dataset; o original
// nunca é alterado.
package dataset

import (
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Dataset é uma tabela imutável (linhas x colunas nomeadas) apoiada em um DataFrame do gota
type Dataset struct {
	source string
	frame  dataframe.DataFrame
}

// FromRecords cria um Dataset a partir de um cabeçalho e das linhas já decodificadas.
// Todas as colunas são carregadas como texto.
func FromRecords(source string, header []string, rows [][]string) *Dataset {
	if len(rows) == 0 {
		columns := make([]series.Series, len(header))
		for i, name := range header {
			columns[i] = series.New([]string{}, series.String, name)
		}
		return &Dataset{source: source, frame: dataframe.New(columns...)}
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	records = append(records, rows...)

	frame := dataframe.LoadRecords(
		records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)

	return &Dataset{source: source, frame: frame}
}

// Source retorna a origem dos dados (caminho do arquivo)
func (d *Dataset) Source() string {
	return d.source
}

// Len retorna o número de linhas
func (d *Dataset) Len() int {
	return d.frame.Nrow()
}

// Columns retorna os nomes das colunas na ordem do arquivo
func (d *Dataset) Columns() []string {
	return d.frame.Names()
}

// HasColumn informa se a coluna existe
func (d *Dataset) HasColumn(column string) bool {
	for _, name := range d.frame.Names() {
		if name == column {
			return true
		}
	}
	return false
}

// Strings retorna os valores da coluna como texto; valores ausentes viram string vazia
func (d *Dataset) Strings(column string) ([]string, error) {
	s, err := d.col(column)
	if err != nil {
		return nil, err
	}

	values := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if isMissing(el) {
			continue
		}
		values[i] = strings.TrimSpace(el.String())
	}
	return values, nil
}

// Floats retorna os valores numéricos da coluna; valores não numéricos viram NaN
func (d *Dataset) Floats(column string) ([]float64, error) {
	s, err := d.col(column)
	if err != nil {
		return nil, err
	}

	values := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		values[i] = toFloat(s.Elem(i))
	}
	return values, nil
}

// Distinct retorna os valores distintos não ausentes, na ordem da primeira aparição
func (d *Dataset) Distinct(column string) ([]string, error) {
	values, err := d.Strings(column)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	distinct := make([]string, 0)
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		distinct = append(distinct, v)
	}
	return distinct, nil
}

func (d *Dataset) col(column string) (series.Series, error) {
	if !d.HasColumn(column) {
		return series.Series{}, NewColumnError(ErrMissingColumn, column, "")
	}
	return d.frame.Col(column), nil
}

func (d *Dataset) with(frame dataframe.DataFrame) *Dataset {
	return &Dataset{source: d.source, frame: frame}
}

// subset mantém apenas as linhas indicadas, preservando a ordem
func (d *Dataset) subset(indexes []int) *Dataset {
	if len(indexes) == d.Len() {
		return d
	}
	if len(indexes) == 0 {
		columns := make([]series.Series, 0, len(d.Columns()))
		for _, name := range d.Columns() {
			s := d.frame.Col(name)
			columns = append(columns, series.New([]string{}, s.Type(), name))
		}
		return d.with(dataframe.New(columns...))
	}
	return d.with(d.frame.Subset(indexes))
}

// isMissing trata NA, NaN e texto vazio como ausentes
func isMissing(el series.Element) bool {
	if el.IsNA() {
		return true
	}
	if el.Type() == series.Float {
		return math.IsNaN(el.Float())
	}
	return strings.TrimSpace(el.String()) == ""
}
