package service

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"slideforge/internal/deck"
	"slideforge/internal/llm"
	"slideforge/internal/models"
	"slideforge/internal/outline"
)

const stubReply = `Slide 1:
Title: Intro to Bees
Keyword: bees
Content: What bees are and why they are interesting.

Slide 2:
Title: Life in the Hive
Keyword: hive
Content: Roles of queen, workers, and drones.

Slide 3:
Title: Bees and Us
Keyword: pollination
Content: What we owe to pollinators.`

// stubCompleter satisfies llm.Completer with a canned reply or error.
type stubCompleter struct {
	reply      string
	err        error
	lastPrompt string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.reply, s.err
}

func validRequest() models.GenerationRequest {
	return models.GenerationRequest{
		SlideCount:        3,
		SourceText:        "Intro to bees",
		TemplateChoice:    "default",
		PresentationTitle: "Bees",
		PresenterName:     "Avery",
	}
}

func TestGeneratorService_Generate_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	stub := &stubCompleter{reply: stubReply}
	svc := NewGeneratorService(stub, deck.NewRenderer(dir, ""))

	filename, err := svc.Generate(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !strings.HasSuffix(filename, ".pptx") {
		t.Fatalf("filename %q missing .pptx suffix", filename)
	}

	// Prompt embeds the slide count and the source text.
	if !strings.Contains(stub.lastPrompt, "The number of slides is 3") {
		t.Errorf("prompt missing slide count: %q", stub.lastPrompt)
	}
	if !strings.Contains(stub.lastPrompt, "Intro to bees") {
		t.Errorf("prompt missing source text: %q", stub.lastPrompt)
	}

	// Deck holds a cover plus exactly the stub's three slides.
	zr, err := zip.OpenReader(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("open pptx: %v", err)
	}
	defer zr.Close()
	slideParts := 0
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") &&
			!strings.Contains(f.Name, "_rels") {
			slideParts++
		}
	}
	if slideParts != 4 {
		t.Fatalf("slide parts = %d, want 4 (cover + 3)", slideParts)
	}
}

func TestGeneratorService_Generate_ErrorClassesSurvive(t *testing.T) {
	cases := []struct {
		name    string
		stub    *stubCompleter
		req     models.GenerationRequest
		wantErr error
	}{
		{
			name:    "service failure",
			stub:    &stubCompleter{err: fmt.Errorf("%w: status 503", llm.ErrService)},
			req:     validRequest(),
			wantErr: llm.ErrService,
		},
		{
			name:    "unparseable reply",
			stub:    &stubCompleter{reply: "Sorry, I can't do slides today."},
			req:     validRequest(),
			wantErr: outline.ErrNoSlides,
		},
		{
			name: "unknown template",
			stub: &stubCompleter{reply: stubReply},
			req: func() models.GenerationRequest {
				r := validRequest()
				r.TemplateChoice = "glitter"
				return r
			}(),
			wantErr: deck.ErrUnknownTemplate,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewGeneratorService(tc.stub, deck.NewRenderer(t.TempDir(), ""))
			_, err := svc.Generate(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestGeneratorService_Generate_RejectsBadInput(t *testing.T) {
	svc := NewGeneratorService(&stubCompleter{reply: stubReply}, deck.NewRenderer(t.TempDir(), ""))

	req := validRequest()
	req.SlideCount = 0
	if _, err := svc.Generate(context.Background(), req); err == nil {
		t.Fatal("expected error for zero slide count")
	}

	req = validRequest()
	req.SlideCount = MaxSlideCount + 1
	if _, err := svc.Generate(context.Background(), req); err == nil {
		t.Fatal("expected error for oversized slide count")
	}

	req = validRequest()
	req.SourceText = ""
	if _, err := svc.Generate(context.Background(), req); err == nil {
		t.Fatal("expected error for empty source text")
	}
}

// The parser cap keeps the outline within the requested slide count even
// when the model over-delivers.
func TestGeneratorService_Generate_CapsSlides(t *testing.T) {
	dir := t.TempDir()
	svc := NewGeneratorService(&stubCompleter{reply: stubReply}, deck.NewRenderer(dir, ""))

	req := validRequest()
	req.SlideCount = 2
	filename, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	zr, err := zip.OpenReader(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("open pptx: %v", err)
	}
	defer zr.Close()
	slideParts := 0
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") &&
			!strings.Contains(f.Name, "_rels") {
			slideParts++
		}
	}
	if slideParts != 3 {
		t.Fatalf("slide parts = %d, want 3 (cover + 2)", slideParts)
	}
}
