package services

import (
	"errors"
	"fmt"
	"time"

	"jacha_aru_api_go/logger"
	"jacha_aru_api_go/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// blocker is a child relation that prevents its parent from being deleted
// while it has non-deleted rows.
type blocker struct {
	relation string      // plural name used in the conflict message
	model    interface{} // child model
	column   string      // foreign key column on the child
}

// ref is a referenced row that must exist (and not be soft-deleted)
type ref struct {
	label string
	model interface{}
	id    uint
}

func preload(db *gorm.DB, relations []string) *gorm.DB {
	for _, r := range relations {
		db = db.Preload(r)
	}
	return db
}

// findAll returns every non-deleted row of T with the given relations attached
func findAll[T any](db *gorm.DB, order string, relations ...string) ([]T, error) {
	var rows []T
	query := preload(db, relations)
	if order != "" {
		query = query.Order(order)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return rows, nil
}

// findOne loads a non-deleted row by id
func findOne[T any](db *gorm.DB, label string, id uint, relations ...string) (*T, error) {
	var row T
	if err := preload(db, relations).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(label, id)
		}
		return nil, fmt.Errorf("failed to load %s: %w", label, err)
	}
	return &row, nil
}

// createRecord inserts row, translating constraint violations
func createRecord[T any](db *gorm.DB, label string, row *T, duplicateMsg string) error {
	if err := db.Create(row).Error; err != nil {
		return translateStoreError(err, "create "+label, duplicateMsg)
	}
	return nil
}

// applyUpdates writes the supplied columns. An empty set is a no-op.
func applyUpdates[T any](db *gorm.DB, label string, id uint, updates map[string]interface{}, duplicateMsg string) error {
	if len(updates) == 0 {
		return nil
	}

	result := db.Model(new(T)).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return translateStoreError(result.Error, "update "+label, duplicateMsg)
	}
	if result.RowsAffected == 0 {
		return notFound(label, id)
	}

	logger.L().Debug("record updated", zap.String("resource", label), zap.Uint("id", id), zap.Int("fields", len(updates)))
	return nil
}

// ensureNoBlockingChildren fails with ErrConflict naming the first relation
// that still has non-deleted rows pointing at id.
func ensureNoBlockingChildren(db *gorm.DB, label string, id uint, blockers ...blocker) error {
	for _, b := range blockers {
		var count int64
		if err := db.Model(b.model).Where(b.column+" = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count %s: %w", b.relation, err)
		}
		if count > 0 {
			return conflictf("%s with ID %d has %d related %s", label, id, count, b.relation)
		}
	}
	return nil
}

// softDelete marks the row deleted. Zero affected rows means it vanished.
func softDelete[T any](db *gorm.DB, label string, id uint) error {
	result := db.Model(new(T)).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     models.StatusDeleted,
		"deleted_at": time.Now(),
	})
	if result.Error != nil {
		return translateStoreError(result.Error, "delete "+label, label+" is still referenced")
	}
	if result.RowsAffected == 0 {
		return notFound(label, id)
	}
	return nil
}

// removeRecord loads the row, rejects the delete while blockers have rows,
// then soft-deletes it. afterDelete runs inside the same transaction.
func removeRecord[T any](db *gorm.DB, label string, id uint, afterDelete func(tx *gorm.DB) error, blockers ...blocker) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOne[T](tx, label, id); err != nil {
			return err
		}
		if err := ensureNoBlockingChildren(tx, label, id, blockers...); err != nil {
			return err
		}
		if err := softDelete[T](tx, label, id); err != nil {
			return err
		}
		if afterDelete != nil {
			return afterDelete(tx)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.L().Info("record soft deleted", zap.String("resource", label), zap.Uint("id", id))
	return nil
}

// requireRefs fails with ErrNotFound for the first reference that does not resolve
func requireRefs(db *gorm.DB, refs ...ref) error {
	for _, r := range refs {
		var count int64
		if err := db.Model(r.model).Where("id = ?", r.id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check %s: %w", r.label, err)
		}
		if count == 0 {
			return notFound(r.label, r.id)
		}
	}
	return nil
}

// requireIDs checks that every id in ids resolves to a non-deleted row of model
func requireIDs(db *gorm.DB, label string, model interface{}, ids []uint) error {
	for _, id := range ids {
		if err := requireRefs(db, ref{label: label, model: model, id: id}); err != nil {
			return err
		}
	}
	return nil
}

// uniqueIDs drops duplicates and zero ids, keeping first-seen order
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// replaceLinks replaces every join row owned by ownerID with one row per id.
// Join rows carry no history, so the old ones are removed for good.
func replaceLinks[T any](tx *gorm.DB, ownerColumn string, ownerID uint, ids []uint, build func(id uint) T) error {
	if err := tx.Unscoped().Where(ownerColumn+" = ?", ownerID).Delete(new(T)).Error; err != nil {
		return fmt.Errorf("failed to clear links: %w", err)
	}

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, build(id))
	}
	if err := tx.Create(&rows).Error; err != nil {
		return translateStoreError(err, "create links", "duplicate link")
	}
	return nil
}

func setIfPresent[V any](updates map[string]interface{}, column string, value *V) {
	if value != nil {
		updates[column] = *value
	}
}

// applyStatus adds a status change. Deleting goes through the Delete operations only.
func applyStatus(updates map[string]interface{}, status *models.RecordStatus) error {
	if status == nil {
		return nil
	}
	if !status.Valid() || *status == models.StatusDeleted {
		return validationf("status must be %q or %q", models.StatusActive, models.StatusInactive)
	}
	updates["status"] = *status
	return nil
}
