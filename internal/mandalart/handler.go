package mandalart

import (
	"net/http"

	"mandalart/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for mandalart documents
type Handler struct {
	service Service
}

// NewHandler creates a new mandalart handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterValidators installs the grid validator on gin's binding engine
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("gridcells", func(fl validator.FieldLevel) bool {
			cells, ok := fl.Field().Interface().([]Cell)
			if !ok {
				return false
			}
			return ValidateCells(cells) == nil
		})
	}
}

// SaveRequest is the save payload; ID is optional for first-time saves
type SaveRequest struct {
	ID         string `json:"id"`
	Year       string `json:"year" binding:"required"`
	Title      string `json:"title"`
	Keyword    string `json:"keyword"`
	Commitment string `json:"commitment"`
	Cells      []Cell `json:"cells" binding:"required,gridcells"`
}

// List returns the user's documents, optionally filtered by ?year=
func (h *Handler) List(c *gin.Context) {
	userID, _ := c.Get("user_id")

	documents, err := h.service.ListDocuments(c.Request.Context(), userID.(string), c.Query("year"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, documents)
}

// Save upserts a document and returns the id of the saved row
func (h *Handler) Save(c *gin.Context) {
	var form SaveRequest
	if err := c.ShouldBindJSON(&form); err != nil {
		c.Error(errors.ErrInvalidInput(err))
		return
	}

	userID, _ := c.Get("user_id")

	id, err := h.service.SaveDocument(c.Request.Context(), userID.(string), SaveInput{
		ID:         form.ID,
		Year:       form.Year,
		Title:      form.Title,
		Keyword:    form.Keyword,
		Commitment: form.Commitment,
		Cells:      form.Cells,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// Delete removes an owned document; absent or foreign ids are a silent no-op
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := c.Get("user_id")

	if err := h.service.DeleteDocument(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
