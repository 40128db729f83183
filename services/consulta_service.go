package services

import (
	"time"

	"jacha_aru_api_go/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	labelConsultaRapida   = "ConsultaRapida"
	labelConsultaFiltro   = "ConsultaFiltro"
	labelConsultaCompleja = "ConsultaCompleja"

	// DefaultConsultaState is the state of a freshly submitted consulta
	DefaultConsultaState = 1
)

// ConsultaFilters narrows consulta listings; zero values are ignored
type ConsultaFilters struct {
	UsuarioID      uint
	InvestigadorID uint
}

// ConsultaDates is the date range and state shared by every consulta kind
type ConsultaDates struct {
	StartDate time.Time
	EndDate   *time.Time
	State     *int
}

// ConsultaDatesUpdate is the partial form of ConsultaDates
type ConsultaDatesUpdate struct {
	StartDate *time.Time
	EndDate   *time.Time
	State     *int
	Status    *models.RecordStatus
}

type ConsultaRapidaInput struct {
	UsuarioID uint
	FiltroID  uint
	ConsultaDates
}

type ConsultaRapidaUpdate struct {
	UsuarioID *uint
	FiltroID  *uint
	ConsultaDatesUpdate
}

type ConsultaFiltroInput struct {
	UsuarioID      uint
	FiltroID       uint
	InvestigadorID uint
	ConsultaDates
}

type ConsultaFiltroUpdate struct {
	UsuarioID      *uint
	FiltroID       *uint
	InvestigadorID *uint
	ConsultaDatesUpdate
}

type ConsultaComplejaInput struct {
	Consulta       string
	UsuarioID      uint
	InvestigadorID uint
	ConsultaDates
}

type ConsultaComplejaUpdate struct {
	Consulta       *string
	UsuarioID      *uint
	InvestigadorID *uint
	ConsultaDatesUpdate
}

func consultaScope(db *gorm.DB, filters ConsultaFilters) *gorm.DB {
	if filters.UsuarioID != 0 {
		db = db.Where("usuario_id = ?", filters.UsuarioID)
	}
	if filters.InvestigadorID != 0 {
		db = db.Where("investigador_id = ?", filters.InvestigadorID)
	}
	return db
}

func (d ConsultaDates) validate() error {
	if d.StartDate.IsZero() {
		return validationf("start_date is required")
	}
	if d.EndDate != nil && d.EndDate.Before(d.StartDate) {
		return validationf("end_date must not be before start_date")
	}
	if d.State != nil && *d.State < 0 {
		return validationf("state must be zero or positive")
	}
	return nil
}

func (d ConsultaDates) state() int {
	if d.State == nil {
		return DefaultConsultaState
	}
	return *d.State
}

func toDate(t time.Time) datatypes.Date {
	return datatypes.Date(t)
}

func toDatePtr(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}

// mergeDates validates the range that results from applying u over the
// current values and records the changed columns.
func mergeDates(updates map[string]interface{}, u ConsultaDatesUpdate, start datatypes.Date, end *datatypes.Date) error {
	merged := ConsultaDates{StartDate: time.Time(start), State: u.State}
	if end != nil {
		e := time.Time(*end)
		merged.EndDate = &e
	}
	if u.StartDate != nil {
		merged.StartDate = *u.StartDate
		updates["start_date"] = toDate(*u.StartDate)
	}
	if u.EndDate != nil {
		merged.EndDate = u.EndDate
		updates["end_date"] = toDatePtr(u.EndDate)
	}
	if err := merged.validate(); err != nil {
		return err
	}
	setIfPresent(updates, "state", u.State)
	return applyStatus(updates, u.Status)
}

// ---- ConsultaRapida ----

// GetConsultasRapidas lists consultas rapidas, newest first
func GetConsultasRapidas(db *gorm.DB, filters ConsultaFilters) ([]models.ConsultaRapida, error) {
	scoped := consultaScope(db, ConsultaFilters{UsuarioID: filters.UsuarioID})
	return findAll[models.ConsultaRapida](scoped, "start_date DESC", "Usuario", "Filtro", "Respuestas")
}

func GetConsultaRapidaByID(db *gorm.DB, id uint) (*models.ConsultaRapida, error) {
	return findOne[models.ConsultaRapida](db, labelConsultaRapida, id, "Usuario", "Filtro", "Respuestas")
}

func CreateConsultaRapida(db *gorm.DB, input ConsultaRapidaInput) (*models.ConsultaRapida, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := requireRefs(db,
		ref{labelUsuario, &models.Usuario{}, input.UsuarioID},
		ref{labelFiltro, &models.Filtro{}, input.FiltroID},
	); err != nil {
		return nil, err
	}

	consulta := &models.ConsultaRapida{
		UsuarioID: input.UsuarioID,
		FiltroID:  input.FiltroID,
		StartDate: toDate(input.StartDate),
		EndDate:   toDatePtr(input.EndDate),
		State:     input.state(),
	}
	if err := createRecord(db, labelConsultaRapida, consulta, "consulta already exists"); err != nil {
		return nil, err
	}
	consultasCreatedTotal.WithLabelValues(string(models.KindRapida)).Inc()
	return GetConsultaRapidaByID(db, consulta.ID)
}

func UpdateConsultaRapida(db *gorm.DB, id uint, input ConsultaRapidaUpdate) (*models.ConsultaRapida, error) {
	current, err := GetConsultaRapidaByID(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.UsuarioID != nil {
		if err := requireRefs(db, ref{labelUsuario, &models.Usuario{}, *input.UsuarioID}); err != nil {
			return nil, err
		}
		updates["usuario_id"] = *input.UsuarioID
	}
	if input.FiltroID != nil {
		if err := requireRefs(db, ref{labelFiltro, &models.Filtro{}, *input.FiltroID}); err != nil {
			return nil, err
		}
		updates["filtro_id"] = *input.FiltroID
	}
	if err := mergeDates(updates, input.ConsultaDatesUpdate, current.StartDate, current.EndDate); err != nil {
		return nil, err
	}
	if err := applyUpdates[models.ConsultaRapida](db, labelConsultaRapida, id, updates, "consulta already exists"); err != nil {
		return nil, err
	}
	return GetConsultaRapidaByID(db, id)
}

func DeleteConsultaRapida(db *gorm.DB, id uint) error {
	return removeRecord[models.ConsultaRapida](db, labelConsultaRapida, id, nil,
		blocker{"respuestas", &models.RespuestaConsultaRapida{}, "consulta_rapida_id"},
	)
}

// ---- ConsultaFiltro ----

func GetConsultasFiltros(db *gorm.DB, filters ConsultaFilters) ([]models.ConsultaFiltro, error) {
	return findAll[models.ConsultaFiltro](consultaScope(db, filters), "start_date DESC", "Usuario", "Filtro", "Investigador", "Respuestas")
}

func GetConsultaFiltroByID(db *gorm.DB, id uint) (*models.ConsultaFiltro, error) {
	return findOne[models.ConsultaFiltro](db, labelConsultaFiltro, id, "Usuario", "Filtro", "Investigador", "Respuestas")
}

func CreateConsultaFiltro(db *gorm.DB, input ConsultaFiltroInput) (*models.ConsultaFiltro, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := requireRefs(db,
		ref{labelUsuario, &models.Usuario{}, input.UsuarioID},
		ref{labelFiltro, &models.Filtro{}, input.FiltroID},
		ref{labelInvestigador, &models.Investigador{}, input.InvestigadorID},
	); err != nil {
		return nil, err
	}

	consulta := &models.ConsultaFiltro{
		UsuarioID:      input.UsuarioID,
		FiltroID:       input.FiltroID,
		InvestigadorID: input.InvestigadorID,
		StartDate:      toDate(input.StartDate),
		EndDate:        toDatePtr(input.EndDate),
		State:          input.state(),
	}
	if err := createRecord(db, labelConsultaFiltro, consulta, "consulta already exists"); err != nil {
		return nil, err
	}
	consultasCreatedTotal.WithLabelValues(string(models.KindFiltro)).Inc()
	return GetConsultaFiltroByID(db, consulta.ID)
}

func UpdateConsultaFiltro(db *gorm.DB, id uint, input ConsultaFiltroUpdate) (*models.ConsultaFiltro, error) {
	current, err := GetConsultaFiltroByID(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.UsuarioID != nil {
		if err := requireRefs(db, ref{labelUsuario, &models.Usuario{}, *input.UsuarioID}); err != nil {
			return nil, err
		}
		updates["usuario_id"] = *input.UsuarioID
	}
	if input.FiltroID != nil {
		if err := requireRefs(db, ref{labelFiltro, &models.Filtro{}, *input.FiltroID}); err != nil {
			return nil, err
		}
		updates["filtro_id"] = *input.FiltroID
	}
	if input.InvestigadorID != nil {
		if err := requireRefs(db, ref{labelInvestigador, &models.Investigador{}, *input.InvestigadorID}); err != nil {
			return nil, err
		}
		updates["investigador_id"] = *input.InvestigadorID
	}
	if err := mergeDates(updates, input.ConsultaDatesUpdate, current.StartDate, current.EndDate); err != nil {
		return nil, err
	}
	if err := applyUpdates[models.ConsultaFiltro](db, labelConsultaFiltro, id, updates, "consulta already exists"); err != nil {
		return nil, err
	}
	return GetConsultaFiltroByID(db, id)
}

func DeleteConsultaFiltro(db *gorm.DB, id uint) error {
	return removeRecord[models.ConsultaFiltro](db, labelConsultaFiltro, id, nil,
		blocker{"respuestas", &models.RespuestaConsultaFiltro{}, "consulta_filtro_id"},
	)
}

// ---- ConsultaCompleja ----

func GetConsultasComplejas(db *gorm.DB, filters ConsultaFilters) ([]models.ConsultaCompleja, error) {
	return findAll[models.ConsultaCompleja](consultaScope(db, filters), "start_date DESC", "Usuario", "Investigador", "Respuestas")
}

func GetConsultaComplejaByID(db *gorm.DB, id uint) (*models.ConsultaCompleja, error) {
	return findOne[models.ConsultaCompleja](db, labelConsultaCompleja, id, "Usuario", "Investigador", "Respuestas")
}

// CreateConsultaCompleja stores a free-text consulta with markup stripped
func CreateConsultaCompleja(db *gorm.DB, input ConsultaComplejaInput) (*models.ConsultaCompleja, error) {
	text := SanitizeText(input.Consulta)
	if text == "" {
		return nil, validationf("consulta text is required")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := requireRefs(db,
		ref{labelUsuario, &models.Usuario{}, input.UsuarioID},
		ref{labelInvestigador, &models.Investigador{}, input.InvestigadorID},
	); err != nil {
		return nil, err
	}

	consulta := &models.ConsultaCompleja{
		Consulta:       text,
		UsuarioID:      input.UsuarioID,
		InvestigadorID: input.InvestigadorID,
		StartDate:      toDate(input.StartDate),
		EndDate:        toDatePtr(input.EndDate),
		State:          input.state(),
	}
	if err := createRecord(db, labelConsultaCompleja, consulta, "consulta already exists"); err != nil {
		return nil, err
	}
	consultasCreatedTotal.WithLabelValues(string(models.KindCompleja)).Inc()
	return GetConsultaComplejaByID(db, consulta.ID)
}

func UpdateConsultaCompleja(db *gorm.DB, id uint, input ConsultaComplejaUpdate) (*models.ConsultaCompleja, error) {
	current, err := GetConsultaComplejaByID(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Consulta != nil {
		text := SanitizeText(*input.Consulta)
		if text == "" {
			return nil, validationf("consulta text is required")
		}
		updates["consulta"] = text
	}
	if input.UsuarioID != nil {
		if err := requireRefs(db, ref{labelUsuario, &models.Usuario{}, *input.UsuarioID}); err != nil {
			return nil, err
		}
		updates["usuario_id"] = *input.UsuarioID
	}
	if input.InvestigadorID != nil {
		if err := requireRefs(db, ref{labelInvestigador, &models.Investigador{}, *input.InvestigadorID}); err != nil {
			return nil, err
		}
		updates["investigador_id"] = *input.InvestigadorID
	}
	if err := mergeDates(updates, input.ConsultaDatesUpdate, current.StartDate, current.EndDate); err != nil {
		return nil, err
	}
	if err := applyUpdates[models.ConsultaCompleja](db, labelConsultaCompleja, id, updates, "consulta already exists"); err != nil {
		return nil, err
	}
	return GetConsultaComplejaByID(db, id)
}

func DeleteConsultaCompleja(db *gorm.DB, id uint) error {
	return removeRecord[models.ConsultaCompleja](db, labelConsultaCompleja, id, nil,
		blocker{"respuestas", &models.RespuestaConsultaCompleja{}, "consulta_compleja_id"},
	)
}
