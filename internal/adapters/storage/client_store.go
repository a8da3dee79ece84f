package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"praxis/internal/domain"
	"praxis/internal/ports"
)

// ClientStore implements ports.ClientRepository using GORM
type ClientStore struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.ClientRepository = (*ClientStore)(nil)

// NewClientStore creates a ClientStore over the shared database handle
func NewClientStore(d *DB) *ClientStore {
	return &ClientStore{db: d.db}
}

// Get implements ClientReader.Get
func (s *ClientStore) Get(ctx context.Context, id string) (*domain.Client, error) {
	var client ClientModel
	var answers []IntakeAnswerModel

	err := withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", id).First(&client).Error; err != nil {
				return err
			}
			return tx.Where("client_id = ?", id).Order("question_key").Find(&answers).Error
		})
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}

	result := clientModelToDomain(client, answers)
	return &result, nil
}

// FindByEmail implements ClientReader.FindByEmail with a case-insensitive match
func (s *ClientStore) FindByEmail(ctx context.Context, email string) (*domain.Client, error) {
	var client ClientModel

	err := withRetry(func() error {
		return s.db.WithContext(ctx).
			Where("LOWER(email) = LOWER(?)", email).
			First(&client).Error
	}, 3)

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}

	return s.Get(ctx, client.ID)
}

// List implements ClientReader.List, ordered by creation time
func (s *ClientStore) List(ctx context.Context) ([]domain.Client, error) {
	var clients []ClientModel
	var answers []IntakeAnswerModel

	err := withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Order("created_at, id").Find(&clients).Error; err != nil {
				return err
			}
			return tx.Order("question_key").Find(&answers).Error
		})
	}, 3)

	if err != nil {
		return nil, err
	}

	answersByClient := make(map[string][]IntakeAnswerModel)
	for _, a := range answers {
		answersByClient[a.ClientID] = append(answersByClient[a.ClientID], a)
	}

	result := make([]domain.Client, len(clients))
	for i, c := range clients {
		result[i] = clientModelToDomain(c, answersByClient[c.ID])
	}
	return result, nil
}

// Add implements ClientWriter.Add
func (s *ClientStore) Add(ctx context.Context, client domain.Client) error {
	return withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			model := domainToClientModel(client)
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			return saveIntakeAnswers(tx, client.ID, client.IntakeAnswers)
		})
	}, 3)
}

// Update implements ClientWriter.Update, replacing intake answers wholesale
func (s *ClientStore) Update(ctx context.Context, client domain.Client) error {
	return withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			model := domainToClientModel(client)
			res := tx.Model(&ClientModel{}).Where("id = ?", client.ID).Updates(map[string]any{
				"email":            model.Email,
				"experience_level": model.ExperienceLevel,
				"name":             model.Name,
				"research_area":    model.ResearchArea,
			})
			if res.Error != nil {
				return fmt.Errorf("failed to update client: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrClientNotFound
			}

			if err := tx.Where("client_id = ?", client.ID).Delete(&IntakeAnswerModel{}).Error; err != nil {
				return fmt.Errorf("failed to clear intake answers: %w", err)
			}
			return saveIntakeAnswers(tx, client.ID, client.IntakeAnswers)
		})
	}, 3)
}

func saveIntakeAnswers(tx *gorm.DB, clientID string, answers map[string]string) error {
	for key, value := range answers {
		row := IntakeAnswerModel{
			Answer:      value,
			ClientID:    clientID,
			QuestionKey: key,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to save intake answer %q: %w", key, err)
		}
	}
	return nil
}
