package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogUC "github.com/quangdng/starlog/internal/application/usecase/catalog"
)

type CatalogHandler struct {
	browseUseCase *catalogUC.BrowseCatalogUseCase
}

func NewCatalogHandler(browseUC *catalogUC.BrowseCatalogUseCase) *CatalogHandler {
	return &CatalogHandler{browseUseCase: browseUC}
}

func (h *CatalogHandler) Browse(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user information not found"})
		return
	}

	input := catalogUC.BrowseCatalogInput{
		UserID: userID,
		Filter: c.Query("q"),
	}

	output, err := h.browseUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]CatalogItemDTO, len(output.Items))
	for i, m := range output.Items {
		dtos[i] = ToCatalogItemDTO(m, output.RatingsByMedia[m.ID])
	}
	c.JSON(http.StatusOK, dtos)
}
