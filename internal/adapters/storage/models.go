package storage

import "time"

// ClientModel is the GORM model for the clients table
type ClientModel struct {
	CreatedAt       time.Time
	Email           string `gorm:"not null;uniqueIndex:idx_clients_email"`
	ExperienceLevel string `gorm:"not null;default:'';check:experience_level IN ('','beginner','intermediate','advanced')"`
	ID              string `gorm:"primaryKey"`
	Name            string `gorm:"not null"`
	ResearchArea    string `gorm:"not null;default:''"`
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (ClientModel) TableName() string { return "clients" }

// IntakeAnswerModel is the GORM model for intake form answers
type IntakeAnswerModel struct {
	Answer      string `gorm:"not null;default:''"`
	ClientID    string `gorm:"primaryKey"`
	CreatedAt   time.Time
	QuestionKey string `gorm:"primaryKey"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (IntakeAnswerModel) TableName() string { return "intake_answers" }

// SessionModel is the GORM model for the sessions table
type SessionModel struct {
	ArchivedAt        *time.Time `gorm:"default:null"`
	ClientID          string     `gorm:"not null;index:idx_sessions_client"`
	CreatedAt         time.Time
	EndedAt           *time.Time `gorm:"default:null"`
	FollowUpSessionID *string    `gorm:"default:null"`
	ID                string     `gorm:"primaryKey"`
	IsArchived        bool       `gorm:"not null;default:false"`
	Notes             string     `gorm:"not null;default:''"`
	ScheduledAt       *time.Time `gorm:"default:null"`
	StartedAt         *time.Time `gorm:"default:null"`
	State             string     `gorm:"not null;default:'scheduled';check:state IN ('scheduled','in_progress','completed','followed_up','cancelled')"`
	Type              string     `gorm:"not null;check:type IN ('discovery','code_review','architecture','training','debugging','follow_up')"`
	UpdatedAt         time.Time
	Version           int `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string { return "sessions" }

// ChecklistItemModel is the GORM model for checklist result items.
// Position preserves the template's declaration order.
type ChecklistItemModel struct {
	ChecklistName string `gorm:"primaryKey"`
	CreatedAt     time.Time
	Done          bool   `gorm:"not null;default:false"`
	Label         string `gorm:"not null"`
	Note          string `gorm:"not null;default:''"`
	Position      int    `gorm:"primaryKey;autoIncrement:false"`
	Required      bool   `gorm:"not null;default:false"`
	SessionID     string `gorm:"primaryKey"`
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (ChecklistItemModel) TableName() string { return "checklist_items" }

// ActionItemModel is the GORM model for the action_items table
type ActionItemModel struct {
	CreatedAt   time.Time
	Description string     `gorm:"not null"`
	Done        bool       `gorm:"not null;default:false"`
	DueDate     *time.Time `gorm:"default:null"`
	ID          string     `gorm:"primaryKey"`
	Priority    string     `gorm:"not null;check:priority IN ('immediate','short-term','long-term')"`
	Seq         int        `gorm:"not null;uniqueIndex:idx_action_items_session_seq"`
	SessionID   string     `gorm:"not null;uniqueIndex:idx_action_items_session_seq"`
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (ActionItemModel) TableName() string { return "action_items" }
