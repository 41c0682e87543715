// Package deck turns a parsed outline into a .pptx file on disk. The OOXML
// package is assembled by hand through archive/zip; there is one visual
// template per template choice, applied uniformly across the deck.
package deck

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"slideforge/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrUnknownTemplate signals a template_choice with no registered template.
	ErrUnknownTemplate = errors.New("unknown deck template")
	// ErrEmptyOutline signals a render call with no slides to write.
	ErrEmptyOutline = errors.New("empty outline")
)

// Template is a named visual variant: colors are RRGGBB hex without '#'.
type Template struct {
	Background string
	TitleColor string
	BodyColor  string
	Accent     string
	TitleFont  string
	BodyFont   string
}

var templates = map[string]Template{
	"default": {
		Background: "FFFFFF",
		TitleColor: "1F3864",
		BodyColor:  "333333",
		Accent:     "2E74B5",
		TitleFont:  "Calibri Light",
		BodyFont:   "Calibri",
	},
	"dark": {
		Background: "1E1E2E",
		TitleColor: "F5F5F5",
		BodyColor:  "C9C9D1",
		Accent:     "F2A541",
		TitleFont:  "Segoe UI Semibold",
		BodyFont:   "Segoe UI",
	},
	"bright": {
		Background: "FDF6E3",
		TitleColor: "B3451E",
		BodyColor:  "3C3836",
		Accent:     "268BD2",
		TitleFont:  "Georgia",
		BodyFont:   "Verdana",
	},
}

// TemplateNames lists the available template choices, sorted for stable
// form rendering.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Renderer writes decks into outputDir. assetsDir optionally holds one
// <template>.png illustration per template.
type Renderer struct {
	outputDir string
	assetsDir string
}

func NewRenderer(outputDir, assetsDir string) *Renderer {
	return &Renderer{outputDir: outputDir, assetsDir: assetsDir}
}

// Render writes a cover slide plus one slide per record and returns the
// generated file name. Names are uuid-derived, so concurrent renders of
// identical input never collide. Nothing is written when the template
// choice is unknown or the outline is empty.
func (r *Renderer) Render(slides []models.SlideRecord, templateChoice, title, presenter string, insertImage bool) (string, error) {
	tpl, ok := templates[templateChoice]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, templateChoice)
	}
	if len(slides) == 0 {
		return "", ErrEmptyOutline
	}

	// Image insertion degrades silently when no asset is shipped for the
	// chosen template.
	var image []byte
	if insertImage && r.assetsDir != "" {
		if b, err := os.ReadFile(filepath.Join(r.assetsDir, templateChoice+".png")); err == nil {
			image = b
		}
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := uuid.NewString() + ".pptx"
	path := filepath.Join(r.outputDir, filename)
	if err := r.writePackage(path, tpl, slides, title, presenter, image); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return filename, nil
}

func (r *Renderer) writePackage(path string, tpl Template, slides []models.SlideRecord, title, presenter string, image []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create deck file: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	withImage := len(image) > 0
	slideCount := len(slides) + 1 // cover slide included

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML(slideCount, withImage)},
		{"_rels/.rels", rootRelsXML},
		{"docProps/core.xml", corePropsXML(title, presenter)},
		{"docProps/app.xml", appPropsXML(slideCount)},
		{"ppt/presentation.xml", presentationXML(slideCount)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(slideCount)},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML},
		{"ppt/theme/theme1.xml", themeXML(tpl)},
	}

	parts = append(parts, struct {
		name string
		body string
	}{"ppt/slides/slide1.xml", titleSlideXML(tpl, title, presenter)})
	parts = append(parts, struct {
		name string
		body string
	}{"ppt/slides/_rels/slide1.xml.rels", slideRelsXML(false)})

	for i, s := range slides {
		n := i + 2
		parts = append(parts, struct {
			name string
			body string
		}{fmt.Sprintf("ppt/slides/slide%d.xml", n), contentSlideXML(tpl, s, withImage)})
		parts = append(parts, struct {
			name string
			body string
		}{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRelsXML(withImage)})
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("create part %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.body)); err != nil {
			_ = zw.Close()
			return fmt.Errorf("write part %s: %w", part.name, err)
		}
	}

	if withImage {
		w, err := zw.Create("ppt/media/image1.png")
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("create media part: %w", err)
		}
		if _, err := w.Write(image); err != nil {
			_ = zw.Close()
			return fmt.Errorf("write media part: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize deck package: %w", err)
	}
	return nil
}
