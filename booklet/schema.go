// Package booklet ties the pipeline together: it parses and validates
// the course JSON, walks the area/chapter/topic/module/template
// hierarchy, and drives the layout, image and quiz packages to emit
// the paginated document.
package booklet

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ID is a template identifier. The exports are inconsistent about the
// type, so both "12" and 12 unmarshal to the same value.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n.String())
		return nil
	}
	return fmt.Errorf("booklet: id %s is neither string nor number", data)
}

// QuizEntry is one true/false statement of a template. The truth
// comes from is_true when present, otherwise from the trailing V/F
// marker of ans.
type QuizEntry struct {
	Que    string `json:"que"`
	Ans    string `json:"ans"`
	IsTrue *bool  `json:"is_true"`
}

// Template is the leaf content unit.
type Template struct {
	ID        ID          `json:"id"`
	Text      []string    `json:"text"`
	TextMD    []string    `json:"text_md"`
	Images    []string    `json:"images"`
	Roadsigns []string    `json:"roadsigns"`
	Videos    []string    `json:"videos"`
	Quiz      []QuizEntry `json:"quiz"`
}

// Markdown reports whether the template text uses the markdown
// variant.
func (t Template) Markdown() bool { return len(t.TextMD) > 0 }

// Paragraphs returns the text variant that is present.
func (t Template) Paragraphs() []string {
	if t.Markdown() {
		return t.TextMD
	}
	return t.Text
}

// Module groups templates under a topic.
type Module struct {
	Name      string     `json:"name"`
	Desc      string     `json:"desc"`
	Templates []Template `json:"templates"`
}

// Topic carries the banner and either modules or direct templates.
type Topic struct {
	Name        string     `json:"name"`
	Desc        string     `json:"desc"`
	BannerColor string     `json:"banner_color"`
	Modules     []Module   `json:"modules"`
	Templates   []Template `json:"templates"`
}

type Chapter struct {
	Name   string  `json:"name"`
	Desc   string  `json:"desc"`
	Topics []Topic `json:"topics"`
}

type Area struct {
	Name     string    `json:"name"`
	Desc     string    `json:"desc"`
	Chapters []Chapter `json:"chapters"`
}

// Document is the root of the course content.
type Document struct {
	Areas []Area `json:"areas"`
}

// Parse validates and decodes a course document.
func Parse(data []byte) (*Document, error) {
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}
	var doc Document
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("booklet: decode: %w", err)
	}
	if len(doc.Areas) == 0 {
		return nil, ErrNoAreas
	}
	return &doc, nil
}

// ParseFile reads and parses a course document from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("booklet: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("booklet: %s: %w", path, err)
	}
	return doc, nil
}
