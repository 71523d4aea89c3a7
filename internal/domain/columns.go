package domain

// Colunas do dataset de e-commerce usadas pelos gráficos
const (
	ColumnRating      = "Nota"
	ColumnGender      = "Gênero"
	ColumnBrand       = "Marca"
	ColumnReviewCount = "N_Avaliações"
	ColumnQtySold     = "Qtd_Vendidos"
	ColumnMaterial    = "Material"
	ColumnSeason      = "Temporada"
)
