package services

import (
	"testing"

	"jacha_aru_api_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAllSkipsDeletedRows(t *testing.T) {
	db := setupTestDB(t)

	keep, err := CreateCategoria(db, CategoriaInput{Categoria: "Salud"})
	require.NoError(t, err)
	gone, err := CreateCategoria(db, CategoriaInput{Categoria: "Empleo"})
	require.NoError(t, err)

	require.NoError(t, DeleteCategoria(db, gone.ID))

	categorias, err := GetCategorias(db)
	require.NoError(t, err)
	require.Len(t, categorias, 1)
	assert.Equal(t, keep.ID, categorias[0].ID)

	_, err = GetCategoriaByID(db, gone.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// row is still there, marked deleted
	var raw models.Categoria
	require.NoError(t, db.Unscoped().First(&raw, gone.ID).Error)
	assert.Equal(t, models.StatusDeleted, raw.Status)
	assert.True(t, raw.DeletedAt.Valid)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	created, err := CreateCategoria(db, CategoriaInput{Categoria: "Vivienda"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.StatusActive, created.Status)

	loaded, err := GetCategoriaByID(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Categoria, loaded.Categoria)
	assert.Equal(t, created.Status, loaded.Status)
}

func TestEmptyUpdateLeavesRowUnchanged(t *testing.T) {
	db := setupTestDB(t)

	created, err := CreateCategoria(db, CategoriaInput{Categoria: "Transporte"})
	require.NoError(t, err)

	updated, err := UpdateCategoria(db, created.ID, CategoriaUpdate{})
	require.NoError(t, err)
	assert.Equal(t, created.Categoria, updated.Categoria)
	assert.Equal(t, created.Status, updated.Status)
	assert.True(t, created.UpdatedAt.Equal(updated.UpdatedAt))
}

func TestUpdateMissingRow(t *testing.T) {
	db := setupTestDB(t)

	_, err := UpdateCategoria(db, 99, CategoriaUpdate{Categoria: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Categoria with ID 99 not found")

	assert.ErrorIs(t, DeleteCategoria(db, 99), ErrNotFound)
}

func TestApplyStatus(t *testing.T) {
	updates := map[string]interface{}{}

	require.NoError(t, applyStatus(updates, nil))
	assert.Empty(t, updates)

	require.NoError(t, applyStatus(updates, ptr(models.StatusInactive)))
	assert.Equal(t, models.StatusInactive, updates["status"])

	err := applyStatus(updates, ptr(models.StatusDeleted))
	assert.ErrorIs(t, err, ErrValidation)

	for _, bad := range []models.RecordStatus{"archived", ""} {
		err := applyStatus(updates, &bad)
		assert.ErrorIs(t, err, ErrValidation, string(bad))
	}
	assert.Equal(t, models.StatusInactive, updates["status"])
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, uniqueIDs([]uint{3, 0, 1, 3, 2, 1}))
	assert.Empty(t, uniqueIDs(nil))
}
