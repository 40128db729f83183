package services

import (
	"fmt"
	"testing"

	"jacha_aru_api_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory database with the full schema.
// A single connection keeps background writers on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// taxonomy is one complete set of catalog rows a filtro can point at
type taxonomy struct {
	CategoriaID     uint
	TemaID          uint
	IndicadorID     uint
	TipoID          uint
	DesegregacionID uint
	YearID          uint
	FuenteID        uint
	FichaID         uint
}

func (tx taxonomy) filtroInput() FiltroInput {
	return FiltroInput{
		CategoriaID:         tx.CategoriaID,
		TemaID:              tx.TemaID,
		IndicadorID:         tx.IndicadorID,
		DesegregacionID:     tx.DesegregacionID,
		YearID:              tx.YearID,
		FuenteID:            tx.FuenteID,
		FichaMetodologicaID: tx.FichaID,
	}
}

func createTaxonomy(t *testing.T, db *gorm.DB) taxonomy {
	t.Helper()

	categoria, err := CreateCategoria(db, CategoriaInput{Categoria: "Educación"})
	require.NoError(t, err)
	tema, err := CreateTema(db, TemaInput{Tema: "Matrícula", CategoriaID: categoria.ID})
	require.NoError(t, err)
	indicador, err := CreateIndicador(db, IndicadorInput{Indicador: "Tasa neta"})
	require.NoError(t, err)
	tipo, err := CreateTipoDesegregacion(db, TipoDesegregacionInput{TipoDesegregacion: "Sexo"})
	require.NoError(t, err)
	deseg, err := CreateDesegregacion(db, DesegregacionInput{Desegregacion: "Mujer", TipoDesegregacionID: tipo.ID})
	require.NoError(t, err)
	year, err := CreateYear(db, YearInput{Year: 2022})
	require.NoError(t, err)
	fuente, err := CreateFuente(db, FuenteInput{Fuente: "INE"})
	require.NoError(t, err)
	ficha, err := CreateFicha(db, FichaInput{Ficha: 1})
	require.NoError(t, err)

	return taxonomy{
		CategoriaID:     categoria.ID,
		TemaID:          tema.ID,
		IndicadorID:     indicador.ID,
		TipoID:          tipo.ID,
		DesegregacionID: deseg.ID,
		YearID:          year.ID,
		FuenteID:        fuente.ID,
		FichaID:         ficha.ID,
	}
}

func createUsuario(t *testing.T, db *gorm.DB, mail string) *models.Usuario {
	t.Helper()
	hash, err := HashPassword("secreto1")
	require.NoError(t, err)
	u := &models.Usuario{Nombres: "Ana", Apellidos: "Quispe", Mail: mail, Pass: hash}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createInvestigador(t *testing.T, db *gorm.DB, correo string) *models.Investigador {
	t.Helper()
	inv, err := CreateInvestigador(db, InvestigadorInput{Nombre: "Luis", Apellido: "Mamani", Correo: correo})
	require.NoError(t, err)
	return inv
}

func ptr[T any](v T) *T {
	return &v
}
