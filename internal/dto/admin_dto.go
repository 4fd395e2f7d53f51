package dto

// ChoiceCreateDTO is one lettered option inside a question being authored.
type ChoiceCreateDTO struct {
	Label     string `json:"label" binding:"required,len=1"`
	Text      string `json:"text" binding:"required,max=255"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionCreateDTO is used within ExamCreateDTO and on its own when
// adding a question to an existing exam.
type QuestionCreateDTO struct {
	Text         string            `json:"text" binding:"required"`
	QuestionType string            `json:"question_type" binding:"required,oneof=mcq essay true_false"`
	Choices      []ChoiceCreateDTO `json:"choices" binding:"omitempty,dive"`
}

// ExamCreateDTO is for admins to create an exam with all its questions.
type ExamCreateDTO struct {
	Title           string              `json:"title" binding:"required,max=100"`
	Description     string              `json:"description,omitempty"`
	Date            string              `json:"date" binding:"required"` // "2006-01-02"
	StartTime       *string             `json:"start_time,omitempty"`
	EndTime         *string             `json:"end_time,omitempty"`
	DurationMinutes int                 `json:"duration_minutes" binding:"required,gt=0"`
	AccessCode      string              `json:"access_code,omitempty" binding:"omitempty,max=10"`
	MaxAttempts     int                 `json:"max_attempts" binding:"required,min=1"`
	MaxApplicants   int                 `json:"max_applicants" binding:"required,min=1"`
	Questions       []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

// ExamUpdateDTO updates exam metadata; questions are managed separately.
type ExamUpdateDTO struct {
	Title           *string `json:"title,omitempty" binding:"omitempty,max=100"`
	Description     *string `json:"description,omitempty"`
	Date            *string `json:"date,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" binding:"omitempty,gt=0"`
	IsActive        *bool   `json:"is_active,omitempty"`
	MaxAttempts     *int    `json:"max_attempts,omitempty" binding:"omitempty,min=1"`
	MaxApplicants   *int    `json:"max_applicants,omitempty" binding:"omitempty,min=1"`
}

type CourseCreateDTO struct {
	Code     string  `json:"code" binding:"required,max=10"`
	Name     string  `json:"name" binding:"required,max=100"`
	MinScore float64 `json:"min_score" binding:"min=0,max=100"`
}

type CourseUpdateDTO struct {
	Name     *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	MinScore *float64 `json:"min_score,omitempty" binding:"omitempty,min=0,max=100"`
}

type AdminUserCreateDTO struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name,omitempty" binding:"omitempty,max=200"`
}

type AdminUserUpdateDTO struct {
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	FullName *string `json:"full_name,omitempty" binding:"omitempty,max=200"`
	IsActive *bool   `json:"is_active,omitempty"`
}
