package services

import (
	"testing"
	"time"

	"jacha_aru_api_go/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCreateConsultaRapida(t *testing.T) {
	db := setupTestDB(t)
	tx := createTaxonomy(t, db)
	usuario := createUsuario(t, db, "u@example.org")
	filtro, err := CreateFiltro(db, tx.filtroInput())
	require.NoError(t, err)

	consulta, err := CreateConsultaRapida(db, ConsultaRapidaInput{
		UsuarioID:     usuario.ID,
		FiltroID:      filtro.ID,
		ConsultaDates: ConsultaDates{StartDate: day("2024-03-01")},
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultConsultaState, consulta.State)
	assert.Nil(t, consulta.EndDate)
	require.NotNil(t, consulta.Usuario)
	assert.Equal(t, usuario.Mail, consulta.Usuario.Mail)
	require.NotNil(t, consulta.Filtro)

	_, err = CreateConsultaRapida(db, ConsultaRapidaInput{
		UsuarioID:     usuario.ID,
		FiltroID:      999,
		ConsultaDates: ConsultaDates{StartDate: day("2024-03-01")},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConsultaDateValidation(t *testing.T) {
	db := setupTestDB(t)
	usuario := createUsuario(t, db, "u@example.org")
	inv := createInvestigador(t, db, "i@example.org")

	_, err := CreateConsultaCompleja(db, ConsultaComplejaInput{
		Consulta:       "texto",
		UsuarioID:      usuario.ID,
		InvestigadorID: inv.ID,
		ConsultaDates:  ConsultaDates{StartDate: day("2024-03-10"), EndDate: ptr(day("2024-03-01"))},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CreateConsultaCompleja(db, ConsultaComplejaInput{
		Consulta:       "texto",
		UsuarioID:      usuario.ID,
		InvestigadorID: inv.ID,
		ConsultaDates:  ConsultaDates{StartDate: day("2024-03-10"), State: ptr(-1)},
	})
	assert.ErrorIs(t, err, ErrValidation)

	consulta, err := CreateConsultaCompleja(db, ConsultaComplejaInput{
		Consulta:       "texto",
		UsuarioID:      usuario.ID,
		InvestigadorID: inv.ID,
		ConsultaDates:  ConsultaDates{StartDate: day("2024-03-10"), EndDate: ptr(day("2024-03-20"))},
	})
	require.NoError(t, err)

	t.Run("update checks the merged range", func(t *testing.T) {
		_, err := UpdateConsultaCompleja(db, consulta.ID, ConsultaComplejaUpdate{
			ConsultaDatesUpdate: ConsultaDatesUpdate{StartDate: ptr(day("2024-04-01"))},
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("state update", func(t *testing.T) {
		updated, err := UpdateConsultaCompleja(db, consulta.ID, ConsultaComplejaUpdate{
			ConsultaDatesUpdate: ConsultaDatesUpdate{State: ptr(3)},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.State)
		assert.Equal(t, "2024-03-20", time.Time(*updated.EndDate).Format("2006-01-02"))
	})
}

func TestConsultaComplejaTextIsSanitized(t *testing.T) {
	db := setupTestDB(t)
	usuario := createUsuario(t, db, "u@example.org")
	inv := createInvestigador(t, db, "i@example.org")

	consulta, err := CreateConsultaCompleja(db, ConsultaComplejaInput{
		Consulta:       `<script>alert(1)</script><b>Datos</b> de pobreza &amp; empleo`,
		UsuarioID:      usuario.ID,
		InvestigadorID: inv.ID,
		ConsultaDates:  ConsultaDates{StartDate: time.Now()},
	})
	require.NoError(t, err)
	assert.Equal(t, "Datos de pobreza & empleo", consulta.Consulta)

	_, err = CreateConsultaCompleja(db, ConsultaComplejaInput{
		Consulta:       "<p>  </p>",
		UsuarioID:      usuario.ID,
		InvestigadorID: inv.ID,
		ConsultaDates:  ConsultaDates{StartDate: time.Now()},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConsultasFilteredByUsuarioNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	tx := createTaxonomy(t, db)
	ana := createUsuario(t, db, "ana@example.org")
	beto := createUsuario(t, db, "beto@example.org")
	filtro, err := CreateFiltro(db, tx.filtroInput())
	require.NoError(t, err)

	for _, in := range []ConsultaRapidaInput{
		{UsuarioID: ana.ID, FiltroID: filtro.ID, ConsultaDates: ConsultaDates{StartDate: day("2024-01-01")}},
		{UsuarioID: ana.ID, FiltroID: filtro.ID, ConsultaDates: ConsultaDates{StartDate: day("2024-02-01")}},
		{UsuarioID: beto.ID, FiltroID: filtro.ID, ConsultaDates: ConsultaDates{StartDate: day("2024-03-01")}},
	} {
		_, err := CreateConsultaRapida(db, in)
		require.NoError(t, err)
	}

	mine, err := GetConsultasRapidas(db, ConsultaFilters{UsuarioID: ana.ID})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "2024-02-01", time.Time(mine[0].StartDate).Format("2006-01-02"))

	all, err := GetConsultasRapidas(db, ConsultaFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteConsultaBlockedByRespuesta(t *testing.T) {
	db := setupTestDB(t)
	usuario := createUsuario(t, db, "u@example.org")
	inv := createInvestigador(t, db, "i@example.org")

	consulta, err := CreateConsultaCompleja(db, ConsultaComplejaInput{
		Consulta: "texto", UsuarioID: usuario.ID, InvestigadorID: inv.ID,
		ConsultaDates: ConsultaDates{StartDate: time.Now()},
	})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.RespuestaConsultaCompleja{
		Costo:              decimal.NewFromInt(50),
		ConsultaComplejaID: consulta.ID,
	}).Error)

	err = DeleteConsultaCompleja(db, consulta.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "respuestas")

	// and the usuario is blocked by the consulta
	err = DeleteUsuario(db, usuario.ID)
	assert.ErrorIs(t, err, ErrConflict)
}
