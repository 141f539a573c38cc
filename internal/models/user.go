package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string         `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string         `gorm:"type:varchar(100);not null" json:"last_name"`
	Phone        string         `gorm:"type:varchar(20)" json:"phone"`
	AvatarURL    string         `gorm:"type:varchar(500)" json:"avatar_url"`
	Bio          string         `gorm:"type:text" json:"bio"`
	Program      string         `gorm:"type:varchar(200)" json:"program"`
	Semester     uint           `gorm:"not null;default:1" json:"semester"`
	DisciplineID *uint64        `json:"discipline_id"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Discipline *Discipline `gorm:"foreignKey:DisciplineID;constraint:OnDelete:SET NULL" json:"discipline,omitempty"`
	Skills     []Skill     `gorm:"many2many:user_skills" json:"skills,omitempty"`
}

// FullName returns first and last name joined by a space.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
