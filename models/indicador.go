package models

// Indicador is a measurable indicator published for one or more temas
type Indicador struct {
	Base
	Indicador string `gorm:"size:50;not null" json:"indicador"`

	// Relationships
	IndicadorTemas               []IndicadorTema               `gorm:"foreignKey:IndicadorID" json:"indicador_temas,omitempty"`
	TipoDesegregacionIndicadores []TipoDesegregacionIndicador `gorm:"foreignKey:IndicadorID" json:"tipo_desegregacion_indicadores,omitempty"`
}

// TableName specifies the table name for Indicador model
func (Indicador) TableName() string {
	return "indicador"
}
