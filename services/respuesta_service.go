package services

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"jacha_aru_api_go/logger"
	"jacha_aru_api_go/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const labelRespuesta = "Respuesta"

// maxCosto is the largest value a decimal(10,2) column holds
var maxCosto = decimal.RequireFromString("99999999.99")

// Respuesta is the kind independent view of a priced answer
type Respuesta struct {
	ID         uint                `json:"id"`
	Kind       models.ConsultaKind `json:"kind"`
	ConsultaID uint                `json:"consulta_id"`
	Costo      decimal.Decimal     `json:"costo"`
	Documento  *string             `json:"documento,omitempty"`
	Status     models.RecordStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// DocumentUpload is an optional file attached to a respuesta
type DocumentUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

type RespuestaInput struct {
	Costo    decimal.Decimal
	Document *DocumentUpload
}

// ParseConsultaKind accepts the singular or plural route form ("rapida", "rapidas")
func ParseConsultaKind(s string) (models.ConsultaKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rapida", "rapidas":
		return models.KindRapida, nil
	case "filtro", "filtros":
		return models.KindFiltro, nil
	case "compleja", "complejas":
		return models.KindCompleja, nil
	}
	return "", validationf("unknown consulta kind %q", s)
}

func respuestaView(kind models.ConsultaKind, base models.Base, consultaID uint, costo decimal.Decimal, doc *string) Respuesta {
	return Respuesta{
		ID:         base.ID,
		Kind:       kind,
		ConsultaID: consultaID,
		Costo:      costo,
		Documento:  doc,
		Status:     base.Status,
		CreatedAt:  base.CreatedAt,
		UpdatedAt:  base.UpdatedAt,
	}
}

// consultaOwner loads the usuario behind a consulta, failing with
// ErrNotFound when the consulta does not exist.
func consultaOwner(db *gorm.DB, kind models.ConsultaKind, consultaID uint) (*models.Usuario, error) {
	switch kind {
	case models.KindRapida:
		c, err := findOne[models.ConsultaRapida](db, labelConsultaRapida, consultaID, "Usuario")
		if err != nil {
			return nil, err
		}
		return c.Usuario, nil
	case models.KindFiltro:
		c, err := findOne[models.ConsultaFiltro](db, labelConsultaFiltro, consultaID, "Usuario")
		if err != nil {
			return nil, err
		}
		return c.Usuario, nil
	case models.KindCompleja:
		c, err := findOne[models.ConsultaCompleja](db, labelConsultaCompleja, consultaID, "Usuario")
		if err != nil {
			return nil, err
		}
		return c.Usuario, nil
	}
	return nil, validationf("unknown consulta kind %q", kind)
}

// GetRespuestas lists the respuestas of one consulta, oldest first
func GetRespuestas(db *gorm.DB, kind models.ConsultaKind, consultaID uint) ([]Respuesta, error) {
	if _, err := consultaOwner(db, kind, consultaID); err != nil {
		return nil, err
	}

	out := []Respuesta{}
	switch kind {
	case models.KindRapida:
		rows, err := findAll[models.RespuestaConsultaRapida](db.Where("consulta_rapida_id = ?", consultaID), "created_at ASC, id ASC")
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out = append(out, respuestaView(kind, r.Base, r.ConsultaRapidaID, r.Costo, r.Documento))
		}
	case models.KindFiltro:
		rows, err := findAll[models.RespuestaConsultaFiltro](db.Where("consulta_filtro_id = ?", consultaID), "created_at ASC, id ASC")
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out = append(out, respuestaView(kind, r.Base, r.ConsultaFiltroID, r.Costo, r.Documento))
		}
	case models.KindCompleja:
		rows, err := findAll[models.RespuestaConsultaCompleja](db.Where("consulta_compleja_id = ?", consultaID), "created_at ASC, id ASC")
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out = append(out, respuestaView(kind, r.Base, r.ConsultaComplejaID, r.Costo, r.Documento))
		}
	}
	return out, nil
}

// GetRespuestaByID loads a single respuesta of the given kind
func GetRespuestaByID(db *gorm.DB, kind models.ConsultaKind, id uint) (*Respuesta, error) {
	var view Respuesta
	switch kind {
	case models.KindRapida:
		r, err := findOne[models.RespuestaConsultaRapida](db, labelRespuesta, id)
		if err != nil {
			return nil, err
		}
		view = respuestaView(kind, r.Base, r.ConsultaRapidaID, r.Costo, r.Documento)
	case models.KindFiltro:
		r, err := findOne[models.RespuestaConsultaFiltro](db, labelRespuesta, id)
		if err != nil {
			return nil, err
		}
		view = respuestaView(kind, r.Base, r.ConsultaFiltroID, r.Costo, r.Documento)
	case models.KindCompleja:
		r, err := findOne[models.RespuestaConsultaCompleja](db, labelRespuesta, id)
		if err != nil {
			return nil, err
		}
		view = respuestaView(kind, r.Base, r.ConsultaComplejaID, r.Costo, r.Documento)
	default:
		return nil, validationf("unknown consulta kind %q", kind)
	}
	return &view, nil
}

// CreateRespuesta prices a consulta, storing the optional document first and
// notifying the consulta owner once the row is saved.
func CreateRespuesta(ctx context.Context, db *gorm.DB, store StorageProvider, notifier Notifier, kind models.ConsultaKind, consultaID uint, input RespuestaInput) (*Respuesta, error) {
	if input.Costo.IsNegative() {
		return nil, validationf("costo must be zero or positive")
	}
	if input.Costo.GreaterThan(maxCosto) {
		return nil, validationf("costo must not exceed %s", maxCosto.StringFixed(2))
	}
	costo := input.Costo.Round(2)

	owner, err := consultaOwner(db, kind, consultaID)
	if err != nil {
		return nil, err
	}

	var documento *string
	if input.Document != nil {
		if store == nil {
			return nil, validationf("document storage is not available")
		}
		key := RespuestaDocumentKey(string(kind), consultaID, input.Document.Filename)
		obj, err := store.Put(ctx, input.Document.Reader, key, input.Document.ContentType, input.Document.Size)
		if err != nil {
			return nil, err
		}
		documento = &obj.Key
	}

	var row interface{}
	switch kind {
	case models.KindRapida:
		row = &models.RespuestaConsultaRapida{Costo: costo, Documento: documento, ConsultaRapidaID: consultaID}
	case models.KindFiltro:
		row = &models.RespuestaConsultaFiltro{Costo: costo, Documento: documento, ConsultaFiltroID: consultaID}
	default:
		row = &models.RespuestaConsultaCompleja{Costo: costo, Documento: documento, ConsultaComplejaID: consultaID}
	}

	if err := db.Create(row).Error; err != nil {
		if documento != nil {
			if delErr := store.Delete(ctx, *documento); delErr != nil {
				logger.L().Warn("failed to remove orphaned document", zap.String("key", *documento), zap.Error(delErr))
			}
		}
		return nil, translateStoreError(err, "create respuesta", "respuesta already exists")
	}

	var view Respuesta
	switch r := row.(type) {
	case *models.RespuestaConsultaRapida:
		view = respuestaView(kind, r.Base, consultaID, r.Costo, r.Documento)
	case *models.RespuestaConsultaFiltro:
		view = respuestaView(kind, r.Base, consultaID, r.Costo, r.Documento)
	case *models.RespuestaConsultaCompleja:
		view = respuestaView(kind, r.Base, consultaID, r.Costo, r.Documento)
	}
	respuestasCreatedTotal.WithLabelValues(string(kind)).Inc()

	if owner != nil {
		email, err := BuildRespuestaEmail(owner, RespuestaEmailData{
			Kind:        kind,
			ConsultaID:  consultaID,
			Costo:       costo,
			HasDocument: documento != nil,
		})
		if err != nil {
			logger.L().Error("failed to build respuesta email", zap.Error(err))
		} else {
			SendEmailAsync(notifier, email)
		}
	}

	return &view, nil
}

// DeleteRespuesta soft-deletes a respuesta. Its document stays in storage.
func DeleteRespuesta(db *gorm.DB, kind models.ConsultaKind, id uint) error {
	switch kind {
	case models.KindRapida:
		return removeRecord[models.RespuestaConsultaRapida](db, labelRespuesta, id, nil)
	case models.KindFiltro:
		return removeRecord[models.RespuestaConsultaFiltro](db, labelRespuesta, id, nil)
	case models.KindCompleja:
		return removeRecord[models.RespuestaConsultaCompleja](db, labelRespuesta, id, nil)
	}
	return validationf("unknown consulta kind %q", kind)
}

// OpenRespuestaDocument streams the document attached to a respuesta. The
// caller closes the reader.
func OpenRespuestaDocument(ctx context.Context, db *gorm.DB, store StorageProvider, kind models.ConsultaKind, id uint) (io.ReadCloser, string, string, error) {
	r, err := GetRespuestaByID(db, kind, id)
	if err != nil {
		return nil, "", "", err
	}
	if r.Documento == nil || *r.Documento == "" {
		return nil, "", "", &DomainError{Kind: ErrNotFound, Message: "respuesta has no document"}
	}
	if store == nil {
		return nil, "", "", validationf("document storage is not available")
	}

	body, contentType, err := store.Get(ctx, *r.Documento)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, "", "", &DomainError{Kind: ErrNotFound, Message: "document not found in storage"}
		}
		return nil, "", "", err
	}
	return body, contentType, path.Base(*r.Documento), nil
}
