package models

import "time"

type ProjectState string

const (
	ProjectStateDraft      ProjectState = "DRAFT"
	ProjectStateActive     ProjectState = "ACTIVE"
	ProjectStateInProgress ProjectState = "IN_PROGRESS"
	ProjectStateCompleted  ProjectState = "COMPLETED"
	ProjectStateCancelled  ProjectState = "CANCELLED"
)

// Valid reports whether s is one of the known project states.
func (s ProjectState) Valid() bool {
	switch s {
	case ProjectStateDraft, ProjectStateActive, ProjectStateInProgress, ProjectStateCompleted, ProjectStateCancelled:
		return true
	}
	return false
}

type Project struct {
	ID                  uint64       `gorm:"primarykey" json:"id"`
	Title               string       `gorm:"type:varchar(200);not null" json:"title"`
	Description         string       `gorm:"type:text;not null" json:"description"`
	Objective           string       `gorm:"type:text;not null" json:"objective"`
	ImageURL            string       `gorm:"type:varchar(500)" json:"image_url"`
	CreatorID           uint64       `gorm:"not null;index" json:"creator_id"`
	State               ProjectState `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"state"`
	TargetCollaborators uint         `gorm:"not null;default:1" json:"target_collaborators"`
	StartDate           *time.Time   `json:"start_date"`
	EndDate             *time.Time   `json:"end_date"`
	CreatedAt           time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`

	// Relations
	Creator             User         `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"creator,omitempty"`
	RequiredSkills      []Skill      `gorm:"many2many:project_required_skills" json:"required_skills,omitempty"`
	RequiredDisciplines []Discipline `gorm:"many2many:project_required_disciplines" json:"required_disciplines,omitempty"`
}

// HasVacancy reports whether accepted collaborators are still below the target.
func (p Project) HasVacancy(accepted int64) bool {
	return accepted < int64(p.TargetCollaborators)
}
