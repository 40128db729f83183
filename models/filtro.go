package models

// Filtro is a saved combination of the seven taxonomy dimensions. Each
// combination appears at most once among non-deleted rows.
type Filtro struct {
	Base
	CategoriaID         uint `gorm:"not null;uniqueIndex:idx_filtro_combinacion,where:deleted_at IS NULL" json:"categoria_id"`
	TemaID              uint `gorm:"not null;uniqueIndex:idx_filtro_combinacion" json:"tema_id"`
	IndicadorID         uint `gorm:"not null;uniqueIndex:idx_filtro_combinacion" json:"indicador_id"`
	DesegregacionID     uint `gorm:"not null;uniqueIndex:idx_filtro_combinacion" json:"desegregacion_id"`
	YearID              uint `gorm:"not null;uniqueIndex:idx_filtro_combinacion" json:"year_id"`
	FuenteID            uint `gorm:"not null;uniqueIndex:idx_filtro_combinacion" json:"fuente_id"`
	FichaMetodologicaID uint `gorm:"not null;uniqueIndex:idx_filtro_combinacion" json:"ficha_metodologica_id"`

	// Relationships
	Categoria         *Categoria         `gorm:"foreignKey:CategoriaID" json:"categoria,omitempty"`
	Tema              *Tema              `gorm:"foreignKey:TemaID" json:"tema,omitempty"`
	Indicador         *Indicador         `gorm:"foreignKey:IndicadorID" json:"indicador,omitempty"`
	Desegregacion     *Desegregacion     `gorm:"foreignKey:DesegregacionID" json:"desegregacion,omitempty"`
	Year              *Year              `gorm:"foreignKey:YearID" json:"year,omitempty"`
	Fuente            *Fuente            `gorm:"foreignKey:FuenteID" json:"fuente,omitempty"`
	FichaMetodologica *FichaMetodologica `gorm:"foreignKey:FichaMetodologicaID" json:"ficha_metodologica,omitempty"`
}

// TableName specifies the table name for Filtro model
func (Filtro) TableName() string {
	return "filtro"
}

// FiltroKey is the identity-bearing part of a Filtro
type FiltroKey struct {
	CategoriaID         uint
	TemaID              uint
	IndicadorID         uint
	DesegregacionID     uint
	YearID              uint
	FuenteID            uint
	FichaMetodologicaID uint
}

// Key returns the combination the filtro represents
func (f *Filtro) Key() FiltroKey {
	return FiltroKey{
		CategoriaID:         f.CategoriaID,
		TemaID:              f.TemaID,
		IndicadorID:         f.IndicadorID,
		DesegregacionID:     f.DesegregacionID,
		YearID:              f.YearID,
		FuenteID:            f.FuenteID,
		FichaMetodologicaID: f.FichaMetodologicaID,
	}
}
