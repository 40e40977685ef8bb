package models

import "time"

type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelled"
)

func (s MaintenanceStatus) IsValid() bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusInProgress, MaintenanceStatusCompleted, MaintenanceStatusCancelled:
		return true
	}
	return false
}

type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
	PriorityUrgent MaintenancePriority = "urgent"
)

func (p MaintenancePriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type MaintenanceRequest struct {
	ID              uint                `json:"id" gorm:"primaryKey"`
	PropertyID      uint                `json:"property_id" gorm:"index;not null"`
	TenantID        *uint               `json:"tenant_id" gorm:"index"`
	RequesterID     uint                `json:"requester_id" gorm:"not null"`
	Title           string              `json:"title" gorm:"not null"`
	Description     string              `json:"description" gorm:"not null"`
	Status          MaintenanceStatus   `json:"status" gorm:"type:varchar(16);index;not null;default:pending"`
	Priority        MaintenancePriority `json:"priority" gorm:"type:varchar(16);not null;default:medium"`
	EstimatedCost   *float64            `json:"estimated_cost"`
	ActualCost      *float64            `json:"actual_cost"`
	CompletionNotes *string             `json:"completion_notes"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func (m *MaintenanceRequest) Validate() error {
	if err := requireText("title", m.Title); err != nil {
		return err
	}
	if err := requireText("description", m.Description); err != nil {
		return err
	}
	if !m.Status.IsValid() {
		return NewValidationError("status", "must be one of pending, in_progress, completed, cancelled")
	}
	if !m.Priority.IsValid() {
		return NewValidationError("priority", "must be one of low, medium, high, urgent")
	}
	if err := optionalNonNegative("estimated_cost", m.EstimatedCost); err != nil {
		return err
	}
	return optionalNonNegative("actual_cost", m.ActualCost)
}

type MaintenanceRequestCreate struct {
	PropertyID    uint                `json:"property_id" binding:"required"`
	TenantID      *uint               `json:"tenant_id"`
	Title         string              `json:"title" binding:"required"`
	Description   string              `json:"description" binding:"required"`
	Priority      MaintenancePriority `json:"priority"`
	EstimatedCost *float64            `json:"estimated_cost"`
}

// Build turns a create request into an unsaved row raised by requesterID.
func (in *MaintenanceRequestCreate) Build(requesterID uint) *MaintenanceRequest {
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	return &MaintenanceRequest{
		PropertyID:    in.PropertyID,
		TenantID:      in.TenantID,
		RequesterID:   requesterID,
		Title:         in.Title,
		Description:   in.Description,
		Status:        MaintenanceStatusPending,
		Priority:      priority,
		EstimatedCost: in.EstimatedCost,
	}
}

type MaintenanceRequestUpdate struct {
	Title           *string              `json:"title"`
	Description     *string              `json:"description"`
	Status          *MaintenanceStatus   `json:"status"`
	Priority        *MaintenancePriority `json:"priority"`
	EstimatedCost   Nullable[float64]    `json:"estimated_cost"`
	ActualCost      Nullable[float64]    `json:"actual_cost"`
	CompletionNotes Nullable[string]     `json:"completion_notes"`
}

func (u *MaintenanceRequestUpdate) Apply(m *MaintenanceRequest) {
	set(u.Title, &m.Title)
	set(u.Description, &m.Description)
	set(u.Status, &m.Status)
	set(u.Priority, &m.Priority)
	u.EstimatedCost.apply(&m.EstimatedCost)
	u.ActualCost.apply(&m.ActualCost)
	u.CompletionNotes.apply(&m.CompletionNotes)
}

// MaintenanceSnapshot is the history entry handed to the AI adapter.
type MaintenanceSnapshot struct {
	ID            uint                `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Status        MaintenanceStatus   `json:"status"`
	Priority      MaintenancePriority `json:"priority"`
	EstimatedCost *float64            `json:"estimated_cost"`
	ActualCost    *float64            `json:"actual_cost"`
	CreatedAt     time.Time           `json:"created_at"`
}

func (m *MaintenanceRequest) Snapshot() MaintenanceSnapshot {
	return MaintenanceSnapshot{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Status:        m.Status,
		Priority:      m.Priority,
		EstimatedCost: m.EstimatedCost,
		ActualCost:    m.ActualCost,
		CreatedAt:     m.CreatedAt,
	}
}
