package dto

// UploadDocumentRequest is the multipart form for uploading a document.
// The file itself is read separately from the form.
type UploadDocumentRequest struct {
	EnrollmentID int64  `form:"enrollmentId" binding:"required"`
	Type         string `form:"type" binding:"required"`
}

// UpdateDocumentStatusRequest is the request body for a document status change
type UpdateDocumentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
