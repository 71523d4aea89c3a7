package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ecommerce_estatistica.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		validate func(t *testing.T, ds *Dataset, err error)
	}{
		{
			name:    "CSV válido - deve carregar linhas e colunas na ordem do arquivo",
			content: "Nota,Gênero,Marca\n4.5,Feminino,Nike\n3.0,Masculino,Adidas\n",
			validate: func(t *testing.T, ds *Dataset, err error) {
				require.NoError(t, err)
				assert.Equal(t, 2, ds.Len())
				assert.Equal(t, []string{"Nota", "Gênero", "Marca"}, ds.Columns())

				brands, err := ds.Strings("Marca")
				require.NoError(t, err)
				assert.Equal(t, []string{"Nike", "Adidas"}, brands)
			},
		},
		{
			name:    "Cabeçalho com BOM e espaços - deve normalizar os nomes",
			content: "\ufeff Nota , Marca\n4.5, Nike \n",
			validate: func(t *testing.T, ds *Dataset, err error) {
				require.NoError(t, err)
				assert.True(t, ds.HasColumn("Nota"))
				assert.True(t, ds.HasColumn("Marca"))

				brands, err := ds.Strings("Marca")
				require.NoError(t, err)
				assert.Equal(t, []string{"Nike"}, brands)
			},
		},
		{
			name:    "Somente cabeçalho - deve carregar dataset vazio",
			content: "Nota,Gênero,Marca\n",
			validate: func(t *testing.T, ds *Dataset, err error) {
				require.NoError(t, err)
				assert.Equal(t, 0, ds.Len())
				assert.Equal(t, []string{"Nota", "Gênero", "Marca"}, ds.Columns())
			},
		},
		{
			name:    "Linhas com número irregular de campos - deve retornar ParseError",
			content: "Nota,Marca\n4.5,Nike\n3.0\n",
			validate: func(t *testing.T, ds *Dataset, err error) {
				require.Error(t, err)
				assert.Nil(t, ds)
				assert.True(t, errors.Is(err, ErrMalformedCSV))

				var dsErr *DatasetError
				require.True(t, errors.As(err, &dsErr))
				assert.Equal(t, 3, dsErr.Line)
			},
		},
		{
			name:    "Arquivo vazio - deve retornar ParseError por falta de cabeçalho",
			content: "",
			validate: func(t *testing.T, ds *Dataset, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedCSV))
			},
		},
		{
			name:    "Coluna duplicada - deve retornar ParseError",
			content: "Nota,Nota\n1,2\n",
			validate: func(t *testing.T, ds *Dataset, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedCSV))
				assert.Contains(t, err.Error(), "duplicada")
			},
		},
		{
			name:    "Codificação inválida - deve retornar ParseError",
			content: "Nota,Marca\n4.5,\xff\xfe\n",
			validate: func(t *testing.T, ds *Dataset, err error) {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrMalformedCSV))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Load(writeCSV(t, tt.content))
			tt.validate(t, ds, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nao_existe.csv")

	ds, err := Load(path)

	require.Error(t, err)
	assert.Nil(t, ds)
	assert.True(t, errors.Is(err, ErrFileAccess))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), path)
}

func TestParse_KeepsSourceName(t *testing.T) {
	ds, err := Parse(strings.NewReader("Marca\nNike\n"), "memória")

	require.NoError(t, err)
	assert.Equal(t, "memória", ds.Source())
	assert.Equal(t, 1, ds.Len())
}
