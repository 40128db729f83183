package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	consultasCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jacha_consultas_created_total",
			Help: "Consultas created, by kind",
		},
		[]string{"kind"},
	)

	respuestasCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jacha_respuestas_created_total",
			Help: "Priced respuestas created, by consulta kind",
		},
		[]string{"kind"},
	)

	authEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jacha_auth_events_total",
			Help: "Authentication outcomes",
		},
		[]string{"event"},
	)
)
