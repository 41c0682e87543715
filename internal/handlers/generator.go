package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"regexp"

	"slideforge/internal/deck"
	"slideforge/internal/llm"
	"slideforge/internal/models"
	"slideforge/internal/outline"

	"github.com/gin-gonic/gin"
)

// User-visible messages per pipeline failure class.
const (
	errServiceMsg = "The language model service did not respond. Please try again later."
	errParseMsg   = "The model reply could not be read as a slide outline. Please try again."
	errRenderMsg  = "The chosen template is not available."
	errGenericMsg = "Deck generation failed. Please try again."
)

type generatorForm struct {
	NumberOfSlide     int    `form:"number_of_slide" binding:"required,min=1,max=20"`
	UserText          string `form:"user_text" binding:"required"`
	TemplateChoice    string `form:"template_choice" binding:"required"`
	PresentationTitle string `form:"presentation_title" binding:"required"`
	PresenterName     string `form:"presenter_name"`
	InsertImage       bool   `form:"insert_image"`
}

func (h *Handler) generatorPage(c *gin.Context) {
	h.render(c, http.StatusOK, "generator.html", gin.H{
		"title":     "Generate",
		"templates": deck.TemplateNames(),
	})
}

// generate runs the full pipeline for one form submission and re-renders
// the generator page with either a download link or a failure message.
func (h *Handler) generate(c *gin.Context) {
	var form generatorForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "generator.html", gin.H{
			"title":     "Generate",
			"templates": deck.TemplateNames(),
			"error":     formErrorMessage(err),
		})
		return
	}

	req := models.GenerationRequest{
		SlideCount:        form.NumberOfSlide,
		SourceText:        form.UserText,
		TemplateChoice:    form.TemplateChoice,
		PresentationTitle: form.PresentationTitle,
		PresenterName:     form.PresenterName,
		InsertImage:       form.InsertImage,
	}

	filename, err := h.services.Generate(c.Request.Context(), req)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("generation_failed", "template", form.TemplateChoice, "err", err)
		}
		h.render(c, http.StatusOK, "generator.html", gin.H{
			"title":     "Generate",
			"templates": deck.TemplateNames(),
			"error":     generationErrorMessage(err),
		})
		return
	}

	h.render(c, http.StatusOK, "generator.html", gin.H{
		"title":     "Generate",
		"templates": deck.TemplateNames(),
		"message":   "Your presentation is ready.",
		"download":  "/download/" + filename,
	})
}

func generationErrorMessage(err error) string {
	switch {
	case errors.Is(err, llm.ErrService):
		return errServiceMsg
	case errors.Is(err, outline.ErrNoSlides):
		return errParseMsg
	case errors.Is(err, deck.ErrUnknownTemplate):
		return errRenderMsg
	default:
		return errGenericMsg
	}
}

// Deck names are uuid-derived, so anything outside this shape is hostile.
var deckFilenameRe = regexp.MustCompile(`^[A-Za-z0-9-]+\.pptx$`)

// download streams a generated deck as an attachment. The file name is
// validated before any filesystem access; traversal attempts get a 400.
func (h *Handler) download(c *gin.Context) {
	filename := c.Param("filename")
	if !deckFilenameRe.MatchString(filename) {
		c.String(http.StatusBadRequest, "invalid file name")
		return
	}

	path := filepath.Join(h.cfg.OutputDir, filename)
	if _, err := os.Stat(path); err != nil {
		c.String(http.StatusNotFound, "file not found")
		return
	}
	c.FileAttachment(path, filename)
}
