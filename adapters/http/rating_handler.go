package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ratingUC "github.com/quangdng/starlog/internal/application/usecase/rating"
	"github.com/quangdng/starlog/internal/domain/media"
	"github.com/quangdng/starlog/pkg/apperror"
)

type RatingHandler struct {
	submitRatingUseCase *ratingUC.SubmitRatingUseCase
	listRatingsUseCase  *ratingUC.ListRatingsUseCase
}

func NewRatingHandler(submitUC *ratingUC.SubmitRatingUseCase, listUC *ratingUC.ListRatingsUseCase) *RatingHandler {
	return &RatingHandler{
		submitRatingUseCase: submitUC,
		listRatingsUseCase:  listUC,
	}
}

func (h *RatingHandler) SubmitRating(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user information not found"})
		return
	}

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data", "details": err.Error()})
		return
	}

	mediaID, err := uuid.Parse(req.MediaID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media ID"})
		return
	}

	input := ratingUC.SubmitRatingInput{
		UserID:  userID,
		MediaID: mediaID,
		Value:   req.Rating,
		Review:  req.Review,
	}

	output, err := h.submitRatingUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, media.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
			return
		}
		c.JSON(apperror.ToHTTPStatus(err), gin.H{"error": "submit rating failed", "details": err.Error()})
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	c.JSON(status, ToRatingDTO(output.Rating))
}

func (h *RatingHandler) ListMyRatings(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user information not found"})
		return
	}

	ratings, err := h.listRatingsUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get ratings failed"})
		return
	}

	dtos := make([]RatingDTO, len(ratings))
	for i, r := range ratings {
		dtos[i] = ToRatingDTO(r)
	}
	c.JSON(http.StatusOK, dtos)
}
