package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"jacha_aru_api_go/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func createConsultaCompleja(t *testing.T, db *gorm.DB) (*models.Usuario, *models.ConsultaCompleja) {
	t.Helper()
	usuario := createUsuario(t, db, "ana@example.org")
	inv := createInvestigador(t, db, "inv@example.org")
	consulta, err := CreateConsultaCompleja(db, ConsultaComplejaInput{
		Consulta: "Datos de empleo", UsuarioID: usuario.ID, InvestigadorID: inv.ID,
		ConsultaDates: ConsultaDates{StartDate: time.Now()},
	})
	require.NoError(t, err)
	return usuario, consulta
}

func TestCreateRespuestaWithDocument(t *testing.T) {
	db := setupTestDB(t)
	store := NewLocalStorage(t.TempDir())
	usuario, consulta := createConsultaCompleja(t, db)

	ctrl := gomock.NewController(t)
	notifier := NewMockNotifier(ctrl)
	sent := make(chan *Email, 1)
	notifier.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, email *Email) error {
		sent <- email
		return nil
	})

	body := "%PDF-1.4 informe"
	r, err := CreateRespuesta(context.Background(), db, store, notifier, models.KindCompleja, consulta.ID, RespuestaInput{
		Costo: decimal.RequireFromString("150.505"),
		Document: &DocumentUpload{
			Reader:      strings.NewReader(body),
			Filename:    "informe.PDF",
			ContentType: "application/pdf",
			Size:        int64(len(body)),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.KindCompleja, r.Kind)
	assert.Equal(t, consulta.ID, r.ConsultaID)
	assert.Equal(t, "150.51", r.Costo.StringFixed(2))
	require.NotNil(t, r.Documento)
	assert.True(t, strings.HasPrefix(*r.Documento, "respuestas/compleja/"))
	assert.True(t, strings.HasSuffix(*r.Documento, ".pdf"))

	select {
	case email := <-sent:
		assert.Equal(t, []string{usuario.Mail}, email.To)
		assert.Contains(t, email.TextBody, "150.51")
		assert.Contains(t, email.HTMLBody, "documento adjunto")
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not sent")
	}

	reader, contentType, filename, err := OpenRespuestaDocument(context.Background(), db, store, models.KindCompleja, r.ID)
	require.NoError(t, err)
	defer reader.Close()
	got, _ := io.ReadAll(reader)
	assert.Equal(t, body, string(got))
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasSuffix(filename, ".pdf"))

	list, err := GetRespuestas(db, models.KindCompleja, consulta.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateRespuestaValidation(t *testing.T) {
	db := setupTestDB(t)
	_, consulta := createConsultaCompleja(t, db)

	_, err := CreateRespuesta(context.Background(), db, nil, nil, models.KindCompleja, consulta.ID, RespuestaInput{
		Costo: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CreateRespuesta(context.Background(), db, nil, nil, models.KindCompleja, consulta.ID, RespuestaInput{
		Costo: decimal.RequireFromString("100000000"),
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = CreateRespuesta(context.Background(), db, nil, nil, models.KindRapida, 999, RespuestaInput{
		Costo: decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRespuestaWithoutDocument(t *testing.T) {
	db := setupTestDB(t)
	_, consulta := createConsultaCompleja(t, db)

	// nil notifier: nothing is sent
	r, err := CreateRespuesta(context.Background(), db, nil, nil, models.KindCompleja, consulta.ID, RespuestaInput{
		Costo: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.Nil(t, r.Documento)

	_, _, _, err = OpenRespuestaDocument(context.Background(), db, nil, models.KindCompleja, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRespuestaKeepsDocument(t *testing.T) {
	db := setupTestDB(t)
	store := NewLocalStorage(t.TempDir())
	_, consulta := createConsultaCompleja(t, db)

	r, err := CreateRespuesta(context.Background(), db, store, nil, models.KindCompleja, consulta.ID, RespuestaInput{
		Costo:    decimal.NewFromInt(10),
		Document: &DocumentUpload{Reader: strings.NewReader("x"), Filename: "a.txt", ContentType: "text/plain", Size: 1},
	})
	require.NoError(t, err)

	require.NoError(t, DeleteRespuesta(db, models.KindCompleja, r.ID))
	_, err = GetRespuestaByID(db, models.KindCompleja, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	obj, _, err := store.Get(context.Background(), *r.Documento)
	require.NoError(t, err)
	obj.Close()

	// consulta is free to go once its only respuesta is deleted
	assert.NoError(t, DeleteConsultaCompleja(db, consulta.ID))
}

func TestParseConsultaKind(t *testing.T) {
	for in, want := range map[string]models.ConsultaKind{
		"rapidas":   models.KindRapida,
		"filtro":    models.KindFiltro,
		"Complejas": models.KindCompleja,
	} {
		got, err := ParseConsultaKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseConsultaKind("lentas")
	assert.ErrorIs(t, err, ErrValidation)
}
