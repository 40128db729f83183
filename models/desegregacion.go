package models

// TipoDesegregacion groups desegregaciones (e.g. "sexo", "area")
type TipoDesegregacion struct {
	Base
	TipoDesegregacion string `gorm:"size:50;not null" json:"tipo_desegregacion"`

	// Relationships
	Desegregaciones              []Desegregacion              `gorm:"foreignKey:TipoDesegregacionID" json:"desegregaciones,omitempty"`
	TipoDesegregacionIndicadores []TipoDesegregacionIndicador `gorm:"foreignKey:TipoDesegregacionID" json:"tipo_desegregacion_indicadores,omitempty"`
}

func (TipoDesegregacion) TableName() string {
	return "tipo_desegregacion"
}

// Desegregacion is a single disaggregation value of a TipoDesegregacion
type Desegregacion struct {
	Base
	Desegregacion       string `gorm:"size:50;not null" json:"desegregacion"`
	TipoDesegregacionID uint   `gorm:"not null;index" json:"tipo_desegregacion_id"`

	// Relationships
	TipoDesegregacion   *TipoDesegregacion  `gorm:"foreignKey:TipoDesegregacionID" json:"tipo_desegregacion,omitempty"`
	YearDesegregaciones []YearDesegregacion `gorm:"foreignKey:DesegregacionID" json:"year_desegregaciones,omitempty"`
}

func (Desegregacion) TableName() string {
	return "desegregacion"
}

// TipoDesegregacionIndicador links an Indicador to the disaggregation types it supports
type TipoDesegregacionIndicador struct {
	Base
	IndicadorID         uint `gorm:"not null;index" json:"indicador_id"`
	TipoDesegregacionID uint `gorm:"not null;index" json:"tipo_desegregacion_id"`

	Indicador         *Indicador         `gorm:"foreignKey:IndicadorID" json:"indicador,omitempty"`
	TipoDesegregacion *TipoDesegregacion `gorm:"foreignKey:TipoDesegregacionID" json:"tipo_desegregacion,omitempty"`
}

func (TipoDesegregacionIndicador) TableName() string {
	return "tipo_desegregacion_indicador"
}

// YearDesegregacion records the years a Desegregacion has data for
type YearDesegregacion struct {
	Base
	YearID          uint `gorm:"not null;index" json:"year_id"`
	DesegregacionID uint `gorm:"not null;index" json:"desegregacion_id"`

	Year          *Year          `gorm:"foreignKey:YearID" json:"year,omitempty"`
	Desegregacion *Desegregacion `gorm:"foreignKey:DesegregacionID" json:"desegregacion,omitempty"`
}

func (YearDesegregacion) TableName() string {
	return "year_desegregacion"
}
