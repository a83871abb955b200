package models

import "time"

// FacultyPerformance represents the faculty_performances table.
//
// faculty_id is the human-facing sequential code (F0001, F0002, ...),
// generated by the lifecycle tracker when not supplied on create. The
// migration adds a unique index on it so a concurrent duplicate fails the
// insert instead of persisting silently.
type FacultyPerformance struct {
	PerformanceID     string     `gorm:"primaryKey;column:performance_id" json:"performance_id"`
	FacultyID         string     `gorm:"column:faculty_id;uniqueIndex" json:"faculty_id"`
	Department        string     `gorm:"column:department" json:"department"`
	PerformanceRating float64    `gorm:"column:performance_rating" json:"performance_rating"`
	ResearchPapers    int        `gorm:"column:research_papers" json:"research_papers"`
	ResearchOutput    int        `gorm:"column:research_output" json:"research_output"`
	TeachingHours     float64    `gorm:"column:teaching_hours" json:"teaching_hours"`
	Publications      int        `gorm:"column:publications" json:"publications"`
	Projects          int        `gorm:"column:projects" json:"projects"`
	CreateAt          time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt          time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt          *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (FacultyPerformance) TableName() string {
	return "faculty_performances"
}

// FacultyPerformanceCreateRequest is the payload for administrative entry
type FacultyPerformanceCreateRequest struct {
	FacultyID         string  `json:"faculty_id"` // generated when empty
	Department        string  `json:"department" binding:"required"`
	PerformanceRating float64 `json:"performance_rating"`
	ResearchPapers    int     `json:"research_papers"`
	ResearchOutput    int     `json:"research_output"`
	TeachingHours     float64 `json:"teaching_hours"`
	Publications      int     `json:"publications"`
	Projects          int     `json:"projects"`
}

// FacultyPerformanceUpdateRequest is the payload for updating a record.
// Pointer fields are only applied when supplied.
type FacultyPerformanceUpdateRequest struct {
	Department        *string  `json:"department"`
	PerformanceRating *float64 `json:"performance_rating"`
	ResearchPapers    *int     `json:"research_papers"`
	ResearchOutput    *int     `json:"research_output"`
	TeachingHours     *float64 `json:"teaching_hours"`
	Publications      *int     `json:"publications"`
	Projects          *int     `json:"projects"`
}
