package models

// Investigador is a researcher assigned to answer consultas
type Investigador struct {
	Base
	Nombre     string  `gorm:"size:50;not null" json:"nombre"`
	Apellido   string  `gorm:"size:50;not null" json:"apellido"`
	Correo     string  `gorm:"size:50;not null;uniqueIndex:idx_investigador_correo,where:deleted_at IS NULL" json:"correo"`
	TelegramID *string `gorm:"size:50" json:"telegram_id,omitempty"`

	// Relationships
	Areas []InvestigadorArea `gorm:"foreignKey:InvestigadorID" json:"areas,omitempty"`
}

func (Investigador) TableName() string {
	return "investigador"
}

// InvestigadorArea assigns an Investigador to a Categoria
type InvestigadorArea struct {
	Base
	CategoriaID    uint `gorm:"not null;index" json:"categoria_id"`
	InvestigadorID uint `gorm:"not null;index" json:"investigador_id"`

	Categoria    *Categoria    `gorm:"foreignKey:CategoriaID" json:"categoria,omitempty"`
	Investigador *Investigador `gorm:"foreignKey:InvestigadorID" json:"investigador,omitempty"`
}

func (InvestigadorArea) TableName() string {
	return "investigador_area"
}
