package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"praxis/internal/domain"
	"praxis/internal/ports"
)

// ActionItemStore implements ports.ActionItemRepository using GORM
type ActionItemStore struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.ActionItemRepository = (*ActionItemStore)(nil)

// NewActionItemStore creates an ActionItemStore over the shared database handle
func NewActionItemStore(d *DB) *ActionItemStore {
	return &ActionItemStore{db: d.db}
}

// Get implements ActionItemReader.Get
func (s *ActionItemStore) Get(ctx context.Context, id string) (*domain.ActionItem, error) {
	var model ActionItemModel

	err := withRetry(func() error {
		return s.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrActionItemNotFound
		}
		return nil, err
	}

	result := actionItemModelToDomain(model)
	return &result, nil
}

// ListBySession implements ActionItemReader.ListBySession, ordered by seq
func (s *ActionItemStore) ListBySession(ctx context.Context, sessionID string) ([]domain.ActionItem, error) {
	var rows []ActionItemModel

	err := withRetry(func() error {
		return s.db.WithContext(ctx).
			Where("session_id = ?", sessionID).
			Order("seq").
			Find(&rows).Error
	}, 3)

	if err != nil {
		return nil, err
	}

	result := make([]domain.ActionItem, len(rows))
	for i, row := range rows {
		result[i] = actionItemModelToDomain(row)
	}
	return result, nil
}

// ListByClient implements ActionItemReader.ListByClient. Items arrive joined
// through their owning sessions, ordered by session creation then seq; the
// service layer applies priority ordering on top.
func (s *ActionItemStore) ListByClient(ctx context.Context, clientID string) ([]domain.ActionItem, error) {
	var rows []ActionItemModel

	err := withRetry(func() error {
		return s.db.WithContext(ctx).
			Joins("JOIN sessions ON sessions.id = action_items.session_id").
			Where("sessions.client_id = ?", clientID).
			Order("sessions.created_at, sessions.id, action_items.seq").
			Find(&rows).Error
	}, 3)

	if err != nil {
		return nil, err
	}

	result := make([]domain.ActionItem, len(rows))
	for i, row := range rows {
		result[i] = actionItemModelToDomain(row)
	}
	return result, nil
}

// Add implements ActionItemWriter.Add, assigning the next per-session seq
// inside the insert transaction.
func (s *ActionItemStore) Add(ctx context.Context, item domain.ActionItem) (*domain.ActionItem, error) {
	var stored ActionItemModel

	err := withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&SessionModel{}).Where("id = ?", item.SessionID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrSessionNotFound
			}

			var maxSeq int
			if err := tx.Model(&ActionItemModel{}).
				Where("session_id = ?", item.SessionID).
				Select("COALESCE(MAX(seq), 0)").
				Scan(&maxSeq).Error; err != nil {
				return err
			}

			stored = domainToActionItemModel(item)
			stored.Seq = maxSeq + 1
			if err := tx.Create(&stored).Error; err != nil {
				return fmt.Errorf("failed to create action item: %w", err)
			}
			return nil
		})
	}, 3)

	if err != nil {
		return nil, err
	}
	return s.Get(ctx, stored.ID)
}

// Update implements ActionItemWriter.Update
func (s *ActionItemStore) Update(ctx context.Context, item domain.ActionItem) error {
	return withRetry(func() error {
		model := domainToActionItemModel(item)
		res := s.db.WithContext(ctx).Model(&ActionItemModel{}).
			Where("id = ?", item.ID).
			Updates(map[string]any{
				"description": model.Description,
				"done":        model.Done,
				"due_date":    model.DueDate,
				"priority":    model.Priority,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update action item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrActionItemNotFound
		}
		return nil
	}, 3)
}
