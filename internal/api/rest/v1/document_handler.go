package v1

import (
	"net/http"

	"github.com/eskiturk2021/api-gateway/internal/domain/documents"

	"github.com/gin-gonic/gin"
)

// DocumentHandler defines the interface for handling document-related operations
type DocumentHandler interface {
	Upload(ctx *gin.Context)
	Get(ctx *gin.Context)
	Delete(ctx *gin.Context)
	Search(ctx *gin.Context)
	Versions(ctx *gin.Context)
	Sync(ctx *gin.Context)
}

type documentHandler struct {
	documentService documents.DocumentService
	syncService     documents.SyncService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService documents.DocumentService, syncService documents.SyncService) DocumentHandler {
	return &documentHandler{
		documentService: documentService,
		syncService:     syncService,
	}
}

// Upload handles POST /documents/upload
// @Summary Upload a document to a submission
// @Tags Document
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document"
// @Param submission_id formData string true "Submission ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param customer_id formData string false "Customer ID"
// @Param category formData string false "Category, defaults to files"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Router /documents/upload [post]
func (handler *documentHandler) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, "No file provided")
		return
	}

	request := &documents.UploadRequest{
		SubmissionID: ctx.PostForm("submission_id"),
		Title:        ctx.PostForm("title"),
		Description:  ctx.PostForm("description"),
		CustomerID:   ctx.PostForm("customer_id"),
		Category:     ctx.PostForm("category"),
	}

	result, err := handler.documentService.Upload(ctx.Request.Context(), request, fileHeader)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	message := "File uploaded successfully"
	if result.Replaced {
		message = "File replaced successfully, previous version kept"
	}

	ctx.JSON(http.StatusCreated, UploadResponse{
		Status:  "success",
		Message: message,
		FileInfo: FileInfoResponse{
			Filename:     result.Filename,
			S3Key:        result.S3Key,
			SubmissionID: result.SubmissionID,
			Category:     result.Category,
		},
	})
}

// Get handles GET /documents/:submission_id/:filename
// @Summary Document metadata with a presigned download link
// @Tags Document
// @Produce json
// @Param submission_id path string true "Submission ID"
// @Param filename path string true "Original file name"
// @Param category query string false "Category, defaults to files"
// @Success 200 {object} DocumentInfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /documents/{submission_id}/{filename} [get]
func (handler *documentHandler) Get(ctx *gin.Context) {
	info, err := handler.documentService.Get(ctx.Request.Context(), ctx.Param("submission_id"), ctx.Param("filename"), ctx.DefaultQuery("category", documents.DefaultCategory))
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, DocumentInfoResponse{
		Filename:      info.Filename,
		S3Key:         info.S3Key,
		ContentType:   info.ContentType,
		ContentLength: info.ContentLength,
		DownloadURL:   info.DownloadURL,
		LastModified:  info.LastModified,
	})
}

// Delete handles DELETE /documents/:submission_id/:filename
func (handler *documentHandler) Delete(ctx *gin.Context) {
	err := handler.documentService.Delete(ctx.Request.Context(), ctx.Param("submission_id"), ctx.Param("filename"), ctx.DefaultQuery("category", documents.DefaultCategory))
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, StatusResponse{Status: "success", Message: "Document deleted successfully"})
}

// Search handles GET /documents/search?query&customer_id
func (handler *documentHandler) Search(ctx *gin.Context) {
	query := ctx.Query("query")

	results, err := handler.documentService.Search(ctx.Request.Context(), query, ctx.Query("customer_id"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	response := SearchResponse{Query: query, Results: make([]SearchResultResponse, 0, len(results))}
	for _, result := range results {
		response.Results = append(response.Results, SearchResultResponse{
			SubmissionID: result.SubmissionID,
			CompanyName:  result.CompanyName,
			Category:     result.Category,
			Filename:     result.Filename,
			S3Key:        result.S3Key,
			UploadedAt:   result.UploadedAt,
		})
	}
	response.Total = len(response.Results)

	ctx.JSON(http.StatusOK, response)
}

// Versions handles GET /documents/:submission_id/:filename/versions
func (handler *documentHandler) Versions(ctx *gin.Context) {
	versions, err := handler.documentService.Versions(ctx.Request.Context(), ctx.Param("submission_id"), ctx.Param("filename"), ctx.DefaultQuery("category", documents.DefaultCategory))
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	history := versions.Versions
	if history == nil {
		history = []documents.FileRecord{}
	}

	ctx.JSON(http.StatusOK, VersionsResponse{
		Status:         "success",
		Filename:       versions.Filename,
		CurrentVersion: versions.Current.CurrentVersion,
		Versions:       history,
		VersionCount:   len(history),
	})
}

// Sync handles POST /documents/sync/:submission_id
// @Summary Rebuild the file records of a submission from storage
// @Tags Document
// @Produce json
// @Param submission_id path string true "Submission ID"
// @Success 200 {object} SyncResponse
// @Failure 404 {object} ErrorResponse
// @Router /documents/sync/{submission_id} [post]
func (handler *documentHandler) Sync(ctx *gin.Context) {
	result, err := handler.syncService.SyncSubmission(ctx.Request.Context(), ctx.Param("submission_id"))
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SyncResponse{
		Status:     "success",
		Message:    "Submission synchronised with storage",
		FileCount:  result.FileCount,
		Categories: result.Categories,
	})
}
