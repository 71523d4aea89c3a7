package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Erros específicos para o carregamento e a limpeza do dataset
var (
	// Erros de leitura
	ErrFileAccess   = errors.New("dataset file is missing or unreadable")
	ErrMalformedCSV = errors.New("malformed CSV")

	// Erros de qualidade dos dados
	ErrMissingColumn = errors.New("required column is missing")
	ErrDataQuality   = errors.New("no valid rows left after cleaning")
)

// DatasetError é um erro com contexto adicional sobre o dataset
type DatasetError struct {
	Err     error  // Erro base (um dos sentinelas acima)
	Cause   error  // Erro de origem (os, csv), quando houver
	Source  string // Caminho ou nome da origem dos dados
	Column  string // Coluna envolvida (quando aplicável)
	Line    int    // Linha do arquivo (quando aplicável)
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *DatasetError) Error() string {
	parts := []string{e.Err.Error()}
	if e.Source != "" {
		parts = append(parts, fmt.Sprintf("source=%s", e.Source))
	}
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line=%d", e.Line))
	}
	if e.Details != "" {
		parts = append(parts, e.Details)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap retorna o sentinela e a causa, permitindo errors.Is e errors.As sobre ambos
func (e *DatasetError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewFileError cria um erro de acesso ao arquivo
func NewFileError(source string, cause error) *DatasetError {
	return &DatasetError{
		Err:    ErrFileAccess,
		Cause:  cause,
		Source: source,
	}
}

// NewParseError cria um erro de CSV malformado
func NewParseError(source string, line int, details string, cause error) *DatasetError {
	return &DatasetError{
		Err:     ErrMalformedCSV,
		Cause:   cause,
		Source:  source,
		Line:    line,
		Details: details,
	}
}

// NewColumnError cria um erro de qualidade associado a uma coluna
func NewColumnError(err error, column string, details string) *DatasetError {
	return &DatasetError{
		Err:     err,
		Column:  column,
		Details: details,
	}
}
