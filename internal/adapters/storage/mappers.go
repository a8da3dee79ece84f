package storage

import "praxis/internal/domain"

// clientModelToDomain converts a ClientModel (GORM) plus intake answers to domain.Client
func clientModelToDomain(m ClientModel, answers []IntakeAnswerModel) domain.Client {
	intake := make(map[string]string, len(answers))
	for _, a := range answers {
		intake[a.QuestionKey] = a.Answer
	}
	return domain.Client{
		CreatedAt:       m.CreatedAt,
		Email:           m.Email,
		ExperienceLevel: domain.ExperienceLevel(m.ExperienceLevel),
		ID:              m.ID,
		IntakeAnswers:   intake,
		Name:            m.Name,
		ResearchArea:    m.ResearchArea,
		UpdatedAt:       m.UpdatedAt,
	}
}

// domainToClientModel converts a domain.Client to ClientModel (GORM)
func domainToClientModel(c domain.Client) ClientModel {
	return ClientModel{
		Email:           c.Email,
		ExperienceLevel: string(c.ExperienceLevel),
		ID:              c.ID,
		Name:            c.Name,
		ResearchArea:    c.ResearchArea,
	}
}

// sessionModelToDomain converts a SessionModel (GORM) to domain.Session.
// Checklists and action items are attached separately.
func sessionModelToDomain(m SessionModel) domain.Session {
	return domain.Session{
		Archived:          m.IsArchived,
		Checklists:        make(map[string]domain.ChecklistResult),
		ClientID:          m.ClientID,
		CreatedAt:         m.CreatedAt,
		EndedAt:           m.EndedAt,
		FollowUpSessionID: m.FollowUpSessionID,
		ID:                m.ID,
		Notes:             m.Notes,
		ScheduledAt:       m.ScheduledAt,
		StartedAt:         m.StartedAt,
		State:             domain.SessionState(m.State),
		Type:              domain.SessionType(m.Type),
		UpdatedAt:         m.UpdatedAt,
		Version:           m.Version,
	}
}

// domainToSessionModel converts a domain.Session to SessionModel (GORM)
func domainToSessionModel(s domain.Session) SessionModel {
	return SessionModel{
		ClientID:          s.ClientID,
		EndedAt:           s.EndedAt,
		FollowUpSessionID: s.FollowUpSessionID,
		ID:                s.ID,
		IsArchived:        s.Archived,
		Notes:             s.Notes,
		ScheduledAt:       s.ScheduledAt,
		StartedAt:         s.StartedAt,
		State:             string(s.State),
		Type:              string(s.Type),
		Version:           s.Version,
	}
}

// checklistItemsToDomain groups checklist item rows into results keyed by
// checklist name. Rows must arrive ordered by position.
func checklistItemsToDomain(rows []ChecklistItemModel) map[string]domain.ChecklistResult {
	results := make(map[string]domain.ChecklistResult)
	for _, row := range rows {
		result := results[row.ChecklistName]
		result.Name = row.ChecklistName
		result.Items = append(result.Items, domain.ChecklistItem{
			Done:     row.Done,
			Label:    row.Label,
			Note:     row.Note,
			Required: row.Required,
		})
		results[row.ChecklistName] = result
	}
	return results
}

// actionItemModelToDomain converts an ActionItemModel (GORM) to domain.ActionItem
func actionItemModelToDomain(m ActionItemModel) domain.ActionItem {
	return domain.ActionItem{
		CreatedAt:   m.CreatedAt,
		Description: m.Description,
		Done:        m.Done,
		DueDate:     m.DueDate,
		ID:          m.ID,
		Priority:    domain.Priority(m.Priority),
		Seq:         m.Seq,
		SessionID:   m.SessionID,
		UpdatedAt:   m.UpdatedAt,
	}
}

// domainToActionItemModel converts a domain.ActionItem to ActionItemModel (GORM)
func domainToActionItemModel(a domain.ActionItem) ActionItemModel {
	return ActionItemModel{
		Description: a.Description,
		Done:        a.Done,
		DueDate:     a.DueDate,
		ID:          a.ID,
		Priority:    string(a.Priority),
		Seq:         a.Seq,
		SessionID:   a.SessionID,
	}
}
