package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Exam struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UUID            uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null" json:"uuid"`
	Slug            string         `json:"slug" gorm:"uniqueIndex;not null"`
	Title           string         `json:"title" gorm:"size:100;not null"`
	Description     string         `json:"description,omitempty" gorm:"type:text"`
	Date            time.Time      `json:"date" gorm:"not null;index"`
	StartTime       *string        `json:"start_time,omitempty" gorm:"size:8"` // "HH:MM:SS"
	EndTime         *string        `json:"end_time,omitempty" gorm:"size:8"`
	DurationMinutes int            `json:"duration_minutes" gorm:"not null"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	IsExpired       bool           `json:"is_expired" gorm:"default:false"`
	AccessCode      string         `json:"-" gorm:"size:10"`
	MaxAttempts     int            `json:"max_attempts" gorm:"not null;default:1"`
	MaxApplicants   int            `json:"max_applicants" gorm:"not null"`
	Questions       []Question     `json:"questions,omitempty" gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// AcceptsAttempts reports whether the exam can take new applications on
// the given day: active, not expired, and not past its scheduled date.
func (e *Exam) AcceptsAttempts(today time.Time) bool {
	return e.IsActive && !e.IsExpired && !e.Date.Before(StartOfDay(today))
}

// StartOfDay returns midnight of t's calendar day in t's location.
// Truncate would cut relative to UTC and shift the boundary by the
// local offset.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (e *Exam) BeforeCreate(tx *gorm.DB) error {
	if e.UUID == uuid.Nil {
		e.UUID = uuid.New()
	}
	if e.Slug == "" {
		e.Slug = SlugifyTitle(e.Title)
	}
	return nil
}

// SlugifyTitle builds a URL-safe slug from a title, suffixed with a
// short random hex so retitled copies of an exam never collide.
func SlugifyTitle(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
