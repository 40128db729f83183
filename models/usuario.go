package models

// Usuario is an account that submits consultas. Mail is unique across all
// rows, soft-deleted ones included, so re-registration can restore them.
type Usuario struct {
	Base
	Nombres    string  `gorm:"size:50;not null" json:"nombres"`
	Apellidos  string  `gorm:"size:50;not null" json:"apellidos"`
	Mail       string  `gorm:"size:50;not null;uniqueIndex" json:"mail"`
	Pass       string  `gorm:"size:500;not null" json:"-"`
	GoogleID   *string `gorm:"size:100" json:"google_id,omitempty"`
	TelegramID *string `gorm:"size:100" json:"telegram_id,omitempty"`
}

// TableName specifies the table name for Usuario model
func (Usuario) TableName() string {
	return "usuario"
}

// FullName returns "nombres apellidos"
func (u *Usuario) FullName() string {
	if u.Apellidos == "" {
		return u.Nombres
	}
	return u.Nombres + " " + u.Apellidos
}
