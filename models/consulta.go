package models

import (
	"gorm.io/datatypes"
)

// ConsultaKind names the three consulta variants
type ConsultaKind string

const (
	KindRapida   ConsultaKind = "rapida"
	KindFiltro   ConsultaKind = "filtro"
	KindCompleja ConsultaKind = "compleja"
)

// ConsultaRapida is a request for the data behind a single Filtro
type ConsultaRapida struct {
	Base
	UsuarioID uint            `gorm:"not null;index" json:"usuario_id"`
	FiltroID  uint            `gorm:"not null;index" json:"filtro_id"`
	StartDate datatypes.Date  `gorm:"not null" json:"start_date"`
	EndDate   *datatypes.Date `json:"end_date,omitempty"`
	State     int             `gorm:"not null;default:1" json:"state"`

	// Relationships
	Usuario    *Usuario                  `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
	Filtro     *Filtro                   `gorm:"foreignKey:FiltroID" json:"filtro,omitempty"`
	Respuestas []RespuestaConsultaRapida `gorm:"foreignKey:ConsultaRapidaID" json:"respuestas,omitempty"`
}

func (ConsultaRapida) TableName() string {
	return "consulta_rapida"
}

// ConsultaFiltro is a Filtro request routed to a specific Investigador
type ConsultaFiltro struct {
	Base
	UsuarioID      uint            `gorm:"not null;index" json:"usuario_id"`
	FiltroID       uint            `gorm:"not null;index" json:"filtro_id"`
	InvestigadorID uint            `gorm:"not null;index" json:"investigador_id"`
	StartDate      datatypes.Date  `gorm:"not null" json:"start_date"`
	EndDate        *datatypes.Date `json:"end_date,omitempty"`
	State          int             `gorm:"not null;default:1" json:"state"`

	// Relationships
	Usuario      *Usuario                  `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
	Filtro       *Filtro                   `gorm:"foreignKey:FiltroID" json:"filtro,omitempty"`
	Investigador *Investigador             `gorm:"foreignKey:InvestigadorID" json:"investigador,omitempty"`
	Respuestas   []RespuestaConsultaFiltro `gorm:"foreignKey:ConsultaFiltroID" json:"respuestas,omitempty"`
}

func (ConsultaFiltro) TableName() string {
	return "consulta_filtro"
}

// ConsultaCompleja is a free-text request routed to an Investigador
type ConsultaCompleja struct {
	Base
	Consulta       string          `gorm:"size:1000;not null" json:"consulta"`
	UsuarioID      uint            `gorm:"not null;index" json:"usuario_id"`
	InvestigadorID uint            `gorm:"not null;index" json:"investigador_id"`
	StartDate      datatypes.Date  `gorm:"not null" json:"start_date"`
	EndDate        *datatypes.Date `json:"end_date,omitempty"`
	State          int             `gorm:"not null;default:1" json:"state"`

	// Relationships
	Usuario      *Usuario                    `gorm:"foreignKey:UsuarioID" json:"usuario,omitempty"`
	Investigador *Investigador               `gorm:"foreignKey:InvestigadorID" json:"investigador,omitempty"`
	Respuestas   []RespuestaConsultaCompleja `gorm:"foreignKey:ConsultaComplejaID" json:"respuestas,omitempty"`
}

func (ConsultaCompleja) TableName() string {
	return "consulta_compleja"
}
