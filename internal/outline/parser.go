// Package outline converts the raw model reply into an ordered slide
// outline. The expected shape is one block per slide:
//
//	Slide 1:
//	Title: ...
//	Keyword: ...
//	Content: ...
//
// Parsing is a single forward pass. Every completed well-formed block is
// kept; the pass stops at the first structurally invalid block, so a
// malformed tail never truncates or corrupts the blocks before it.
package outline

import (
	"errors"
	"regexp"
	"strings"

	"slideforge/internal/models"
)

// ErrNoSlides is returned when the reply contains no valid slide block.
var ErrNoSlides = errors.New("no valid slide blocks in model reply")

var slideHeaderRe = regexp.MustCompile(`(?i)^slide\s+\d+\s*:?\s*$`)

type block struct {
	title   string
	keyword string
	summary string
	started bool
}

// A block is usable when it has a title and a summary; the keyword is
// treated as optional decoration.
func (b block) valid() bool {
	return b.started && b.title != "" && b.summary != ""
}

func (b block) record() models.SlideRecord {
	return models.SlideRecord{Title: b.title, Keyword: b.keyword, Summary: b.summary}
}

// Parse extracts at most maxSlides slide records from raw. maxSlides <= 0
// means no limit. The first structurally invalid block ends the pass; if no
// valid block was seen by then, ErrNoSlides is returned.
func Parse(raw string, maxSlides int) ([]models.SlideRecord, error) {
	var (
		slides []models.SlideRecord
		cur    block
	)

	full := maxSlides > 0
	lines := strings.Split(raw, "\n")

scan:
	for _, line := range lines {
		line = cleanLine(line)
		if line == "" {
			continue
		}

		switch {
		case slideHeaderRe.MatchString(line):
			if cur.started {
				if !cur.valid() {
					break scan
				}
				slides = append(slides, cur.record())
				if full && len(slides) >= maxSlides {
					cur = block{}
					break scan
				}
			}
			cur = block{started: true}
		case hasField(line, "title"):
			cur.started = true
			cur.title = fieldValue(line, "title")
		case hasField(line, "keyword"):
			cur.started = true
			cur.keyword = fieldValue(line, "keyword")
		case hasField(line, "content"):
			cur.started = true
			cur.summary = fieldValue(line, "content")
		}
	}

	if cur.started && cur.valid() && (!full || len(slides) < maxSlides) {
		slides = append(slides, cur.record())
	}

	if len(slides) == 0 {
		return nil, ErrNoSlides
	}
	return slides, nil
}

// cleanLine trims whitespace plus the markdown dressing models like to add
// around field labels ("**Title:** ...", "- Keyword: ...").
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "- ")
	line = strings.ReplaceAll(line, "**", "")
	return strings.TrimSpace(line)
}

func hasField(line, name string) bool {
	if len(line) <= len(name) {
		return false
	}
	return strings.EqualFold(line[:len(name)], name) && strings.HasPrefix(line[len(name):], ":")
}

func fieldValue(line, name string) string {
	return strings.TrimSpace(line[len(name)+1:])
}
