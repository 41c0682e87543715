package service

import (
	"context"
	"errors"
	"fmt"

	"slideforge/internal/llm"
	"slideforge/internal/models"
	"slideforge/internal/outline"
)

// MaxSlideCount caps one generation request; the form enforces the same
// bound client-side.
const MaxSlideCount = 20

var errBadSlideCount = fmt.Errorf("number of slides must be between 1 and %d", MaxSlideCount)

// GeneratorService runs the linear pipeline: prompt the model, parse the
// reply into an outline, render the outline into a deck file.
type GeneratorService struct {
	completer llm.Completer
	renderer  DeckRenderer
}

func NewGeneratorService(completer llm.Completer, renderer DeckRenderer) *GeneratorService {
	return &GeneratorService{completer: completer, renderer: renderer}
}

var _ Generator = (*GeneratorService)(nil)

// Generate produces a deck file from one request and returns its file name.
// Failures keep their class: llm.ErrService, outline.ErrNoSlides, and
// deck.ErrUnknownTemplate survive wrapping so the web layer can report each
// distinctly.
func (s *GeneratorService) Generate(ctx context.Context, req models.GenerationRequest) (string, error) {
	if req.SlideCount < 1 || req.SlideCount > MaxSlideCount {
		return "", errBadSlideCount
	}
	if req.SourceText == "" {
		return "", errors.New("source text is empty")
	}

	raw, err := s.completer.Complete(ctx, buildPrompt(req))
	if err != nil {
		return "", fmt.Errorf("generate outline: %w", err)
	}

	slides, err := outline.Parse(raw, req.SlideCount)
	if err != nil {
		return "", fmt.Errorf("parse outline: %w", err)
	}

	filename, err := s.renderer.Render(slides, req.TemplateChoice, req.PresentationTitle, req.PresenterName, req.InsertImage)
	if err != nil {
		return "", fmt.Errorf("render deck: %w", err)
	}
	return filename, nil
}

// buildPrompt embeds the slide count and source text into the model prompt.
func buildPrompt(req models.GenerationRequest) string {
	return fmt.Sprintf(
		"I want you to come up with the idea for the PowerPoint. The number of slides is %d. "+
			"The content is: %s. The title of content for each slide must be unique, "+
			"and extract the most important keyword within two words for each slide. "+
			"Summarize the content for each slide.",
		req.SlideCount, req.SourceText)
}
