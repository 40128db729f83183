package models

// Categoria is the top level of the research taxonomy
type Categoria struct {
	Base
	Categoria string `gorm:"size:100;not null" json:"categoria"`

	// Relationships
	Temas []Tema `gorm:"foreignKey:CategoriaID" json:"temas,omitempty"`
}

// TableName specifies the table name for Categoria model
func (Categoria) TableName() string {
	return "categoria"
}
