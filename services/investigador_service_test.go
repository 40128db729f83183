package services

import (
	"sort"
	"testing"
	"time"

	"jacha_aru_api_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func areaIDs(t *testing.T, db *gorm.DB, investigadorID uint) []uint {
	t.Helper()
	var areas []models.InvestigadorArea
	require.NoError(t, db.Where("investigador_id = ?", investigadorID).Find(&areas).Error)
	ids := make([]uint, 0, len(areas))
	for _, a := range areas {
		ids = append(ids, a.CategoriaID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestInvestigadorCategoriasReplaceExactly(t *testing.T) {
	db := setupTestDB(t)

	var cats []uint
	for _, name := range []string{"Uno", "Dos", "Tres"} {
		c, err := CreateCategoria(db, CategoriaInput{Categoria: name})
		require.NoError(t, err)
		cats = append(cats, c.ID)
	}

	inv, err := CreateInvestigador(db, InvestigadorInput{
		Nombre:       "Rosa",
		Apellido:     "Condori",
		Correo:       "rosa@example.org",
		CategoriaIDs: []uint{cats[0], cats[1]},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{cats[0], cats[1]}, areaIDs(t, db, inv.ID))

	_, err = UpdateInvestigador(db, inv.ID, InvestigadorUpdate{CategoriaIDs: []uint{cats[1], cats[2]}})
	require.NoError(t, err)
	assert.Equal(t, []uint{cats[1], cats[2]}, areaIDs(t, db, inv.ID))

	t.Run("nil list leaves areas untouched", func(t *testing.T) {
		_, err := UpdateInvestigador(db, inv.ID, InvestigadorUpdate{Nombre: ptr("Rosa María")})
		require.NoError(t, err)
		assert.Equal(t, []uint{cats[1], cats[2]}, areaIDs(t, db, inv.ID))
	})

	t.Run("unknown categoria rolls back", func(t *testing.T) {
		_, err := UpdateInvestigador(db, inv.ID, InvestigadorUpdate{CategoriaIDs: []uint{cats[0], 999}})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, []uint{cats[1], cats[2]}, areaIDs(t, db, inv.ID))
	})

	t.Run("empty list clears", func(t *testing.T) {
		_, err := UpdateInvestigador(db, inv.ID, InvestigadorUpdate{CategoriaIDs: []uint{}})
		require.NoError(t, err)
		assert.Empty(t, areaIDs(t, db, inv.ID))
	})
}

func TestInvestigadorCorreoUnique(t *testing.T) {
	db := setupTestDB(t)

	createInvestigador(t, db, "luis@example.org")

	_, err := CreateInvestigador(db, InvestigadorInput{Nombre: "Otro", Apellido: "X", Correo: " LUIS@example.org "})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeleteInvestigador(t *testing.T) {
	db := setupTestDB(t)

	categoria, err := CreateCategoria(db, CategoriaInput{Categoria: "Salud"})
	require.NoError(t, err)
	inv, err := CreateInvestigador(db, InvestigadorInput{
		Nombre: "Eva", Apellido: "Choque", Correo: "eva@example.org", CategoriaIDs: []uint{categoria.ID},
	})
	require.NoError(t, err)
	usuario := createUsuario(t, db, "u@example.org")

	consulta, err := CreateConsultaCompleja(db, ConsultaComplejaInput{
		Consulta:       "¿Cuántos hospitales hay?",
		UsuarioID:      usuario.ID,
		InvestigadorID: inv.ID,
		ConsultaDates:  ConsultaDates{StartDate: time.Now()},
	})
	require.NoError(t, err)

	err = DeleteInvestigador(db, inv.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "consultas complejas")

	require.NoError(t, DeleteConsultaCompleja(db, consulta.ID))
	require.NoError(t, DeleteInvestigador(db, inv.ID))
	assert.Empty(t, areaIDs(t, db, inv.ID))

	// the areas are gone so the categoria can go too
	assert.NoError(t, DeleteCategoria(db, categoria.ID))
}

func TestGetInvestigadorConsultas(t *testing.T) {
	db := setupTestDB(t)
	tx := createTaxonomy(t, db)

	inv := createInvestigador(t, db, "ana@example.org")
	otro := createInvestigador(t, db, "otro@example.org")
	usuario := createUsuario(t, db, "u@example.org")
	filtro, err := CreateFiltro(db, tx.filtroInput())
	require.NoError(t, err)

	dates := ConsultaDates{StartDate: time.Now()}
	_, err = CreateConsultaCompleja(db, ConsultaComplejaInput{Consulta: "a", UsuarioID: usuario.ID, InvestigadorID: inv.ID, ConsultaDates: dates})
	require.NoError(t, err)
	_, err = CreateConsultaCompleja(db, ConsultaComplejaInput{Consulta: "b", UsuarioID: usuario.ID, InvestigadorID: otro.ID, ConsultaDates: dates})
	require.NoError(t, err)
	_, err = CreateConsultaFiltro(db, ConsultaFiltroInput{UsuarioID: usuario.ID, FiltroID: filtro.ID, InvestigadorID: inv.ID, ConsultaDates: dates})
	require.NoError(t, err)

	result, err := GetInvestigadorConsultas(db, inv.ID)
	require.NoError(t, err)
	assert.Len(t, result.Complejas, 1)
	assert.Len(t, result.Filtros, 1)

	_, err = GetInvestigadorConsultas(db, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
