package models

import (
	"github.com/shopspring/decimal"
)

// RespuestaConsultaRapida is a priced answer to a ConsultaRapida
type RespuestaConsultaRapida struct {
	Base
	Costo            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"costo"`
	Documento        *string         `gorm:"size:500" json:"documento,omitempty"` // storage key
	ConsultaRapidaID uint            `gorm:"not null;index" json:"consulta_rapida_id"`
}

func (RespuestaConsultaRapida) TableName() string {
	return "respuesta_consulta_rapida"
}

// RespuestaConsultaFiltro is a priced answer to a ConsultaFiltro
type RespuestaConsultaFiltro struct {
	Base
	Costo            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"costo"`
	Documento        *string         `gorm:"size:500" json:"documento,omitempty"`
	ConsultaFiltroID uint            `gorm:"not null;index" json:"consulta_filtro_id"`
}

func (RespuestaConsultaFiltro) TableName() string {
	return "respuesta_consulta_filtro"
}

// RespuestaConsultaCompleja is a priced answer to a ConsultaCompleja
type RespuestaConsultaCompleja struct {
	Base
	Costo              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"costo"`
	Documento          *string         `gorm:"size:500" json:"documento,omitempty"`
	ConsultaComplejaID uint            `gorm:"not null;index" json:"consulta_compleja_id"`
}

func (RespuestaConsultaCompleja) TableName() string {
	return "respuesta_consulta_compleja"
}
