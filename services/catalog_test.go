package services

import (
	"testing"

	"jacha_aru_api_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteBlockedByChildren(t *testing.T) {
	db := setupTestDB(t)

	categoria, err := CreateCategoria(db, CategoriaInput{Categoria: "Educación"})
	require.NoError(t, err)
	_, err = CreateTema(db, TemaInput{Tema: "Matrícula", CategoriaID: categoria.ID})
	require.NoError(t, err)

	err = DeleteCategoria(db, categoria.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "Categoria with ID 1 has 1 related temas")

	still, err := GetCategoriaByID(db, categoria.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, still.Status)
	assert.Len(t, still.Temas, 1)
}

func TestDeletedChildrenDoNotBlock(t *testing.T) {
	db := setupTestDB(t)

	categoria, err := CreateCategoria(db, CategoriaInput{Categoria: "Educación"})
	require.NoError(t, err)
	tema, err := CreateTema(db, TemaInput{Tema: "Matrícula", CategoriaID: categoria.ID})
	require.NoError(t, err)

	require.NoError(t, DeleteTema(db, tema.ID))
	assert.NoError(t, DeleteCategoria(db, categoria.ID))
}

func TestCreateTemaRequiresCategoria(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateTema(db, TemaInput{Tema: "Huérfano", CategoriaID: 42})
	assert.ErrorIs(t, err, ErrNotFound)

	categoria, err := CreateCategoria(db, CategoriaInput{Categoria: "Salud"})
	require.NoError(t, err)
	require.NoError(t, DeleteCategoria(db, categoria.ID))

	_, err = CreateTema(db, TemaInput{Tema: "Vacunas", CategoriaID: categoria.ID})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTemasByCategoria(t *testing.T) {
	db := setupTestDB(t)

	a, err := CreateCategoria(db, CategoriaInput{Categoria: "A"})
	require.NoError(t, err)
	b, err := CreateCategoria(db, CategoriaInput{Categoria: "B"})
	require.NoError(t, err)
	_, err = CreateTema(db, TemaInput{Tema: "z", CategoriaID: a.ID})
	require.NoError(t, err)
	_, err = CreateTema(db, TemaInput{Tema: "y", CategoriaID: a.ID})
	require.NoError(t, err)
	_, err = CreateTema(db, TemaInput{Tema: "x", CategoriaID: b.ID})
	require.NoError(t, err)

	temas, err := GetTemasByCategoria(db, a.ID)
	require.NoError(t, err)
	require.Len(t, temas, 2)
	assert.Equal(t, "y", temas[0].Tema)

	_, err = GetTemasByCategoria(db, 77)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndicadorLinks(t *testing.T) {
	db := setupTestDB(t)
	tx := createTaxonomy(t, db)

	indicador, err := CreateIndicador(db, IndicadorInput{
		Indicador:            "Cobertura",
		TemaIDs:              []uint{tx.TemaID},
		TipoDesegregacionIDs: []uint{tx.TipoID},
	})
	require.NoError(t, err)
	assert.Len(t, indicador.IndicadorTemas, 1)
	assert.Len(t, indicador.TipoDesegregacionIndicadores, 1)

	byTema, err := GetIndicadoresByTema(db, tx.TemaID)
	require.NoError(t, err)
	require.Len(t, byTema, 1)
	assert.Equal(t, indicador.ID, byTema[0].ID)

	// links block deletion until they are cleared
	assert.ErrorIs(t, DeleteIndicador(db, indicador.ID), ErrConflict)

	_, err = UpdateIndicador(db, indicador.ID, IndicadorUpdate{TemaIDs: []uint{}, TipoDesegregacionIDs: []uint{}})
	require.NoError(t, err)
	assert.NoError(t, DeleteIndicador(db, indicador.ID))

	_, err = CreateIndicador(db, IndicadorInput{Indicador: "Roto", TemaIDs: []uint{999}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestYearBlockedByFuenteLink(t *testing.T) {
	db := setupTestDB(t)

	year, err := CreateYear(db, YearInput{Year: 2020})
	require.NoError(t, err)
	fuente, err := CreateFuente(db, FuenteInput{Fuente: "Censo", YearIDs: []uint{year.ID}})
	require.NoError(t, err)

	err = DeleteYear(db, year.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "fuente years")

	_, err = UpdateFuente(db, fuente.ID, FuenteUpdate{YearIDs: []uint{}})
	require.NoError(t, err)
	assert.NoError(t, DeleteYear(db, year.ID))
}

func TestYearsNewestFirst(t *testing.T) {
	db := setupTestDB(t)

	for _, y := range []int{2019, 2023, 2021} {
		_, err := CreateYear(db, YearInput{Year: y})
		require.NoError(t, err)
	}

	years, err := GetYears(db)
	require.NoError(t, err)
	require.Len(t, years, 3)
	assert.Equal(t, 2023, years[0].Year)
	assert.Equal(t, 2019, years[2].Year)
}

func TestDesegregacionesByTipo(t *testing.T) {
	db := setupTestDB(t)

	tipo, err := CreateTipoDesegregacion(db, TipoDesegregacionInput{TipoDesegregacion: "Área"})
	require.NoError(t, err)
	_, err = CreateDesegregacion(db, DesegregacionInput{Desegregacion: "Urbana", TipoDesegregacionID: tipo.ID})
	require.NoError(t, err)
	_, err = CreateDesegregacion(db, DesegregacionInput{Desegregacion: "Rural", TipoDesegregacionID: tipo.ID})
	require.NoError(t, err)

	list, err := GetDesegregacionesByTipo(db, tipo.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	assert.ErrorIs(t, DeleteTipoDesegregacion(db, tipo.ID), ErrConflict)
}

func TestUpdateRejectsDeletedStatus(t *testing.T) {
	db := setupTestDB(t)

	fuente, err := CreateFuente(db, FuenteInput{Fuente: "EH"})
	require.NoError(t, err)

	_, err = UpdateFuente(db, fuente.ID, FuenteUpdate{Status: ptr(models.StatusDeleted)})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := UpdateFuente(db, fuente.ID, FuenteUpdate{Status: ptr(models.StatusInactive)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, updated.Status)
}
