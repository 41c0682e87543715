package models

// SlideRecord is one slide of the outline parsed from the model's reply.
type SlideRecord struct {
	Title   string `json:"title"`
	Keyword string `json:"keyword"`
	Summary string `json:"summary"`
}

// GenerationRequest carries one generator form submission through the
// pipeline. It is built at the HTTP boundary and discarded once the deck
// file is on disk.
type GenerationRequest struct {
	SlideCount        int
	SourceText        string
	TemplateChoice    string
	PresentationTitle string
	PresenterName     string
	InsertImage       bool
}
