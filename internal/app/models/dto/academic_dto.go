package dto

// CreateAcademicYearRequest is the request body for creating an academic year.
// Dates use the 2006-01-02 layout.
type CreateAcademicYearRequest struct {
	Year      int    `json:"year" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	IsActive  bool   `json:"isActive"`
}

// CreateGradeRequest is the request body for creating a grade
type CreateGradeRequest struct {
	Name  string `json:"name" binding:"required"`
	Level string `json:"level" binding:"required"`
}

// CreateSectionRequest is the request body for creating a section.
// Capacity defaults to 30 when omitted.
type CreateSectionRequest struct {
	Name     string `json:"name" binding:"required"`
	GradeID  int64  `json:"gradeId" binding:"required"`
	Capacity int    `json:"capacity"`
}
