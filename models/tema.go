package models

// Tema is a theme inside a Categoria
type Tema struct {
	Base
	Tema        string `gorm:"size:100;not null" json:"tema"`
	CategoriaID uint   `gorm:"not null;index" json:"categoria_id"`

	// Relationships
	Categoria      *Categoria      `gorm:"foreignKey:CategoriaID" json:"categoria,omitempty"`
	IndicadorTemas []IndicadorTema `gorm:"foreignKey:TemaID" json:"indicador_temas,omitempty"`
}

// TableName specifies the table name for Tema model
func (Tema) TableName() string {
	return "tema"
}

// IndicadorTema links an Indicador to a Tema
type IndicadorTema struct {
	Base
	TemaID      uint `gorm:"not null;index" json:"tema_id"`
	IndicadorID uint `gorm:"not null;index" json:"indicador_id"`

	Tema      *Tema      `gorm:"foreignKey:TemaID" json:"tema,omitempty"`
	Indicador *Indicador `gorm:"foreignKey:IndicadorID" json:"indicador,omitempty"`
}

func (IndicadorTema) TableName() string {
	return "indicador_tema"
}
