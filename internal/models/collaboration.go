package models

import "time"

type CollaborationState string

const (
	CollaborationPending   CollaborationState = "PENDING"
	CollaborationAccepted  CollaborationState = "ACCEPTED"
	CollaborationRejected  CollaborationState = "REJECTED"
	CollaborationCancelled CollaborationState = "CANCELLED"
)

// Valid reports whether s is one of the known collaboration states.
func (s CollaborationState) Valid() bool {
	switch s {
	case CollaborationPending, CollaborationAccepted, CollaborationRejected, CollaborationCancelled:
		return true
	}
	return false
}

type CollaborationRole string

const (
	RoleCollaborator CollaborationRole = "COLLABORATOR"
	RoleLeader       CollaborationRole = "LEADER"
)

// Collaboration is a request by a user to join a project, and its resolution.
// At most one row exists per (project, user) pair.
type Collaboration struct {
	ID        uint64             `gorm:"primarykey" json:"id"`
	ProjectID uint64             `gorm:"not null;uniqueIndex:idx_collaboration_project_user" json:"project_id"`
	UserID    uint64             `gorm:"not null;uniqueIndex:idx_collaboration_project_user;index" json:"user_id"`
	State     CollaborationState `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"state"`
	Role      CollaborationRole  `gorm:"type:varchar(20);not null;default:'COLLABORATOR'" json:"role"`
	Message   string             `gorm:"type:text" json:"message"`
	Response  string             `gorm:"type:text" json:"response"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
