package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"praxis/internal/domain"
	"praxis/internal/ports"
)

// SessionStore implements ports.SessionRepository using GORM
type SessionStore struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.SessionRepository = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore over the shared database handle
func NewSessionStore(d *DB) *SessionStore {
	return &SessionStore{db: d.db}
}

// Get implements SessionReader.Get, loading checklists and action items
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	var session SessionModel
	var checklistRows []ChecklistItemModel
	var actionRows []ActionItemModel

	err := withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", id).First(&session).Error; err != nil {
				return err
			}
			if err := tx.Where("session_id = ?", id).
				Order("checklist_name, position").
				Find(&checklistRows).Error; err != nil {
				return err
			}
			return tx.Where("session_id = ?", id).Order("seq").Find(&actionRows).Error
		})
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	result := sessionModelToDomain(session)
	result.Checklists = checklistItemsToDomain(checklistRows)
	result.ActionItems = make([]domain.ActionItem, len(actionRows))
	for i, row := range actionRows {
		result.ActionItems[i] = actionItemModelToDomain(row)
	}
	return &result, nil
}

// List implements SessionReader.List, ordered by creation time
func (s *SessionStore) List(ctx context.Context, includeArchived bool) ([]domain.Session, error) {
	return s.list(ctx, "", includeArchived)
}

// ListByClient implements SessionReader.ListByClient
func (s *SessionStore) ListByClient(ctx context.Context, clientID string, includeArchived bool) ([]domain.Session, error) {
	return s.list(ctx, clientID, includeArchived)
}

func (s *SessionStore) list(ctx context.Context, clientID string, includeArchived bool) ([]domain.Session, error) {
	var sessions []SessionModel
	var checklistRows []ChecklistItemModel
	var actionRows []ActionItemModel

	err := withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			query := tx.Order("created_at, id")
			if clientID != "" {
				query = query.Where("client_id = ?", clientID)
			}
			if !includeArchived {
				query = query.Where("is_archived = ?", false)
			}
			if err := query.Find(&sessions).Error; err != nil {
				return err
			}
			if err := tx.Order("checklist_name, position").Find(&checklistRows).Error; err != nil {
				return err
			}
			return tx.Order("seq").Find(&actionRows).Error
		})
	}, 3)

	if err != nil {
		return nil, err
	}

	checklistsBySession := make(map[string][]ChecklistItemModel)
	for _, row := range checklistRows {
		checklistsBySession[row.SessionID] = append(checklistsBySession[row.SessionID], row)
	}
	actionsBySession := make(map[string][]ActionItemModel)
	for _, row := range actionRows {
		actionsBySession[row.SessionID] = append(actionsBySession[row.SessionID], row)
	}

	result := make([]domain.Session, len(sessions))
	for i, sess := range sessions {
		result[i] = sessionModelToDomain(sess)
		result[i].Checklists = checklistItemsToDomain(checklistsBySession[sess.ID])
		for _, row := range actionsBySession[sess.ID] {
			result[i].ActionItems = append(result[i].ActionItems, actionItemModelToDomain(row))
		}
	}
	return result, nil
}

// Add implements SessionWriter.Add. New sessions start at version 1.
func (s *SessionStore) Add(ctx context.Context, session domain.Session) error {
	return withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			model := domainToSessionModel(session)
			if model.Version == 0 {
				model.Version = 1
			}
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}
			for _, result := range session.Checklists {
				if err := saveChecklistRows(tx, session.ID, result); err != nil {
					return err
				}
			}
			return nil
		})
	}, 3)
}

// Update implements SessionWriter.Update with optimistic versioning: the
// update only applies if the stored row still carries session.Version, and
// the stored version is bumped atomically. A stale version fails with
// domain.ConcurrentModificationError.
func (s *SessionStore) Update(ctx context.Context, session domain.Session) (*domain.Session, error) {
	err := withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			model := domainToSessionModel(session)
			res := tx.Model(&SessionModel{}).
				Where("id = ? AND version = ?", session.ID, session.Version).
				Updates(map[string]any{
					"client_id":            model.ClientID,
					"ended_at":             model.EndedAt,
					"follow_up_session_id": model.FollowUpSessionID,
					"notes":                model.Notes,
					"scheduled_at":         model.ScheduledAt,
					"started_at":           model.StartedAt,
					"state":                model.State,
					"type":                 model.Type,
					"version":              session.Version + 1,
				})
			if res.Error != nil {
				return fmt.Errorf("failed to update session: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				var current SessionModel
				if err := tx.Where("id = ?", session.ID).First(&current).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return domain.ErrSessionNotFound
					}
					return err
				}
				return &domain.ConcurrentModificationError{
					CurrentVersion:  current.Version,
					ExpectedVersion: session.Version,
					SessionID:       session.ID,
				}
			}
			return nil
		})
	}, 3)

	if err != nil {
		return nil, err
	}
	return s.Get(ctx, session.ID)
}

// Archive implements SessionWriter.Archive. Archiving is idempotent.
func (s *SessionStore) Archive(ctx context.Context, id string) error {
	return withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&SessionModel{}).
				Where("id = ?", id).
				Updates(map[string]any{
					"is_archived": true,
					"archived_at": tx.NowFunc(),
				})
			if res.Error != nil {
				return fmt.Errorf("failed to archive session: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrSessionNotFound
			}
			return nil
		})
	}, 3)
}

// SaveChecklist implements ChecklistStore.SaveChecklist, replacing the named
// checklist's rows wholesale so item order always matches the template.
func (s *SessionStore) SaveChecklist(ctx context.Context, sessionID string, result domain.ChecklistResult) error {
	return withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&SessionModel{}).Where("id = ?", sessionID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrSessionNotFound
			}

			if err := tx.Where("session_id = ? AND checklist_name = ?", sessionID, result.Name).
				Delete(&ChecklistItemModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear checklist %q: %w", result.Name, err)
			}
			return saveChecklistRows(tx, sessionID, result)
		})
	}, 3)
}

func saveChecklistRows(tx *gorm.DB, sessionID string, result domain.ChecklistResult) error {
	for i, item := range result.Items {
		row := ChecklistItemModel{
			ChecklistName: result.Name,
			Done:          item.Done,
			Label:         item.Label,
			Note:          item.Note,
			Position:      i,
			Required:      item.Required,
			SessionID:     sessionID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save checklist item %q: %w", item.Label, err)
		}
	}
	return nil
}
