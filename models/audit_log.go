package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditAction is the kind of write recorded
type AuditAction string

const (
	AuditActionCreate  AuditAction = "CREATE"
	AuditActionUpdate  AuditAction = "UPDATE"
	AuditActionDelete  AuditAction = "DELETE"
	AuditActionRestore AuditAction = "RESTORE" // soft-deleted usuario re-registered
)

var errAuditImmutable = errors.New("audit logs cannot be modified")

// AuditLog is an immutable record of a catalog write
type AuditLog struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_audit_created_at" json:"created_at"`

	// Actor, denormalized for historical accuracy
	UsuarioID   *uint  `gorm:"index:idx_audit_usuario" json:"usuario_id,omitempty"`
	UsuarioMail string `json:"usuario_mail,omitempty"`

	// Target resource
	ResourceType string `gorm:"not null;index:idx_audit_resource" json:"resource_type"` // e.g. "categoria", "filtro"
	ResourceID   uint   `gorm:"not null;index:idx_audit_resource" json:"resource_id"`

	Action      AuditAction `gorm:"not null;index:idx_audit_action" json:"action"`
	Description string      `gorm:"type:text" json:"description,omitempty"`

	OldValues datatypes.JSON `json:"old_values,omitempty"`
	NewValues datatypes.JSON `json:"new_values,omitempty"`

	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// AuditChange is one field that differs between old and new values
type AuditChange struct {
	Field string      `json:"field"`
	Old   interface{} `json:"old"`
	New   interface{} `json:"new"`
}

// Changes diffs OldValues against NewValues, sorted by field name
func (a *AuditLog) Changes() []AuditChange {
	before, after := decodeValues(a.OldValues), decodeValues(a.NewValues)

	var changes []AuditChange
	seen := make(map[string]bool, len(before)+len(after))
	for _, values := range []map[string]interface{}{before, after} {
		for field := range values {
			if seen[field] {
				continue
			}
			seen[field] = true
			if !reflect.DeepEqual(before[field], after[field]) {
				changes = append(changes, AuditChange{Field: field, Old: before[field], New: after[field]})
			}
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// Audit rows are append-only: updates and deletes through gorm fail.
func (a *AuditLog) BeforeUpdate(*gorm.DB) error { return errAuditImmutable }

func (a *AuditLog) BeforeDelete(*gorm.DB) error { return errAuditImmutable }

func (AuditLog) TableName() string {
	return "audit_logs"
}

func decodeValues(raw datatypes.JSON) map[string]interface{} {
	values := map[string]interface{}{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &values)
	}
	return values
}
