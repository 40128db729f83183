package models

// Fuente is a data source
type Fuente struct {
	Base
	Fuente string `gorm:"size:50;not null" json:"fuente"`

	// Relationships
	FuenteYears  []FuenteYear  `gorm:"foreignKey:FuenteID" json:"fuente_years,omitempty"`
	FichaFuentes []FichaFuente `gorm:"foreignKey:FuenteID" json:"ficha_fuentes,omitempty"`
}

func (Fuente) TableName() string {
	return "fuente"
}

// Year is a reference year
type Year struct {
	Base
	Year int `gorm:"not null" json:"year"`

	// Relationships
	FuenteYears []FuenteYear `gorm:"foreignKey:YearID" json:"fuente_years,omitempty"`
}

func (Year) TableName() string {
	return "year"
}

// FuenteYear records the years a Fuente covers
type FuenteYear struct {
	Base
	YearID   uint `gorm:"not null;index" json:"year_id"`
	FuenteID uint `gorm:"not null;index" json:"fuente_id"`

	Year   *Year   `gorm:"foreignKey:YearID" json:"year,omitempty"`
	Fuente *Fuente `gorm:"foreignKey:FuenteID" json:"fuente,omitempty"`
}

func (FuenteYear) TableName() string {
	return "fuente_year"
}

// FichaMetodologica is a numbered methodology sheet
type FichaMetodologica struct {
	Base
	Ficha int `gorm:"not null" json:"ficha"`

	// Relationships
	FichaFuentes []FichaFuente `gorm:"foreignKey:FichaMetodologicaID" json:"ficha_fuentes,omitempty"`
}

func (FichaMetodologica) TableName() string {
	return "ficha_metodologica"
}

// FichaFuente links a FichaMetodologica to the fuentes it documents
type FichaFuente struct {
	Base
	FuenteID            uint `gorm:"not null;index" json:"fuente_id"`
	FichaMetodologicaID uint `gorm:"not null;index" json:"ficha_metodologica_id"`

	Fuente            *Fuente            `gorm:"foreignKey:FuenteID" json:"fuente,omitempty"`
	FichaMetodologica *FichaMetodologica `gorm:"foreignKey:FichaMetodologicaID" json:"ficha_metodologica,omitempty"`
}

func (FichaFuente) TableName() string {
	return "ficha_fuente"
}
