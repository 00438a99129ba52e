package dto

// CreateEnrollmentRequest is the request body for creating an enrollment
type CreateEnrollmentRequest struct {
	StudentID      int64 `json:"studentId" binding:"required"`
	AcademicYearID int64 `json:"academicYearId" binding:"required"`
	GradeID        int64 `json:"gradeId" binding:"required"`
	SectionID      int64 `json:"sectionId" binding:"required"`
}

// UpdateEnrollmentStatusRequest is the request body for an enrollment status change
type UpdateEnrollmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
