package models

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&Categoria{},
		&Tema{},
		&Indicador{},
		&IndicadorTema{},
		&TipoDesegregacion{},
		&TipoDesegregacionIndicador{},
		&Desegregacion{},
		&Year{},
		&YearDesegregacion{},
		&Fuente{},
		&FuenteYear{},
		&FichaMetodologica{},
		&FichaFuente{},
		&Filtro{},
		&Investigador{},
		&InvestigadorArea{},
		&Usuario{},
		&ConsultaRapida{},
		&ConsultaFiltro{},
		&ConsultaCompleja{},
		&RespuestaConsultaRapida{},
		&RespuestaConsultaFiltro{},
		&RespuestaConsultaCompleja{},
		&AuditLog{},
	}
}
