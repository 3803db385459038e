package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mediaUC "github.com/quangdng/starlog/internal/application/usecase/media"
	"github.com/quangdng/starlog/internal/domain/media"
	"github.com/quangdng/starlog/pkg/apperror"
)

type MediaHandler struct {
	createMediaUseCase *mediaUC.CreateMediaUseCase
	updateMediaUseCase *mediaUC.UpdateMediaUseCase
	deleteMediaUseCase *mediaUC.DeleteMediaUseCase
	getMediaUseCase    *mediaUC.GetMediaUseCase
	uploadCoverUseCase *mediaUC.UploadCoverUseCase
}

func NewMediaHandler(
	createUC *mediaUC.CreateMediaUseCase,
	updateUC *mediaUC.UpdateMediaUseCase,
	deleteUC *mediaUC.DeleteMediaUseCase,
	getUC *mediaUC.GetMediaUseCase,
	uploadCoverUC *mediaUC.UploadCoverUseCase,
) *MediaHandler {
	return &MediaHandler{
		createMediaUseCase: createUC,
		updateMediaUseCase: updateUC,
		deleteMediaUseCase: deleteUC,
		getMediaUseCase:    getUC,
		uploadCoverUseCase: uploadCoverUC,
	}
}

func (h *MediaHandler) CreateMedia(c *gin.Context) {

	var req CreateOrUpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	input := mediaUC.CreateMediaInput{
		Title:       req.Title,
		Type:        media.MediaType(req.Type),
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Country:     req.Country,
	}

	output, err := h.createMediaUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.JSON(apperror.ToHTTPStatus(err), gin.H{"error": "create media failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ToMediaDTO(output.Media))
}

func (h *MediaHandler) UpdateMedia(c *gin.Context) {

	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media ID"})
		return
	}

	var req CreateOrUpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	input := mediaUC.UpdateMediaInput{
		MediaID:     mediaID,
		Title:       req.Title,
		Type:        media.MediaType(req.Type),
		Genre:       req.Genre,
		ReleaseYear: req.ReleaseYear,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Country:     req.Country,
	}

	output, err := h.updateMediaUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, media.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
			return
		}
		c.JSON(apperror.ToHTTPStatus(err), gin.H{"error": "update media failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ToMediaDTO(output.Media))
}

func (h *MediaHandler) DeleteMedia(c *gin.Context) {

	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media ID"})
		return
	}

	input := mediaUC.DeleteMediaInput{MediaID: mediaID}

	if err := h.deleteMediaUseCase.Execute(c.Request.Context(), input); err != nil {
		if errors.Is(err, media.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
			return
		}
		c.JSON(apperror.ToHTTPStatus(err), gin.H{"error": "delete media failed", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *MediaHandler) GetMedia(c *gin.Context) {

	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media ID"})
		return
	}

	m, err := h.getMediaUseCase.Execute(c.Request.Context(), mediaID)
	if err != nil {
		if errors.Is(err, media.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get media failed"})
		return
	}

	c.JSON(http.StatusOK, ToMediaDTO(m))
}

// ListGenres returns the genre vocabulary for one media type. The authoring
// forms reload this when the type selection changes, since a genre picked for
// the previous type may not exist for the new one.
func (h *MediaHandler) ListGenres(c *gin.Context) {

	mediaType := media.MediaType(c.Query("type"))
	genres := media.GenresFor(mediaType)
	if genres == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'type' must be one of movie, tv, book"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"type": mediaType, "genres": genres})
}

func (h *MediaHandler) UploadCover(c *gin.Context) {

	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media ID"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'file' is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "file cannot open"})
		return
	}
	defer file.Close()

	input := mediaUC.UploadCoverInput{
		MediaID: mediaID,
		File:    file,
	}

	output, err := h.uploadCoverUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, media.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
			return
		}
		c.JSON(apperror.ToHTTPStatus(err), gin.H{"error": "upload cover failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cover_image": output.CoverImage})
}
