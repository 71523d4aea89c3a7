package dataset

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const utf8BOM = "\ufeff"

// Load lê um arquivo CSV delimitado por vírgula com cabeçalho obrigatório
func Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, NewFileError(path, err)
	}
	defer file.Close()

	ds, err := Parse(file, path)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"rows":    ds.Len(),
		"columns": len(ds.Columns()),
	}).Info("Dataset carregado com sucesso")

	return ds, nil
}

// Parse decodifica o CSV a partir de um reader; source identifica a origem nos erros
func Parse(r io.Reader, source string) (*Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, NewFileError(source, err)
	}

	if !utf8.Valid(raw) {
		return nil, NewParseError(source, 0, "arquivo não está codificado em UTF-8", nil)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err == io.EOF {
		return nil, NewParseError(source, 1, "cabeçalho ausente", nil)
	}
	if err != nil {
		return nil, parseErr(source, err)
	}

	header, err = normalizeHeader(source, header)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseErr(source, err)
		}

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		rows = append(rows, record)
	}

	return FromRecords(source, header, rows), nil
}

func normalizeHeader(source string, header []string) ([]string, error) {
	seen := make(map[string]struct{}, len(header))
	normalized := make([]string, len(header))

	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)

		if name == "" {
			return nil, NewParseError(source, 1, "nome de coluna vazio no cabeçalho", nil)
		}
		if _, ok := seen[name]; ok {
			return nil, NewParseError(source, 1, "coluna duplicada no cabeçalho: "+name, nil)
		}

		seen[name] = struct{}{}
		normalized[i] = name
	}

	return normalized, nil
}

func parseErr(source string, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return NewParseError(source, csvErr.Line, "", csvErr.Err)
	}
	return NewParseError(source, 0, "", err)
}
