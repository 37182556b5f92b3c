package archive

import (
	"archive/zip"
	"fmt"
	"io"
)

type Filetype string

const FiletypeJSON Filetype = "json"

type Language string

const LanguageEN Language = "en"

// Category describes one known shape of a data-export package.
type Category struct {
	ID         string   `json:"id"`
	Filetype   Filetype `json:"filetype"`
	Language   Language `json:"language"`
	KnownFiles []string `json:"known_files"`
}

// ChatGPTCategories are the export shapes accepted for ChatGPT archives.
var ChatGPTCategories = []Category{
	{
		ID:       "json",
		Filetype: FiletypeJSON,
		Language: LanguageEN,
		KnownFiles: []string{
			"chat.html",
			"conversations.json",
			"message_feedback.json",
			"model_comparisons.json",
			"user.json",
		},
	},
}

type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// Validation is the outcome of matching an archive against categories.
type Validation struct {
	Status   Status    `json:"status"`
	Category *Category `json:"category,omitempty"`
	Matched  []string  `json:"matched"`
	Score    float64   `json:"score"`
}

func (v Validation) Valid() bool { return v.Status == StatusValid }

// Validate matches the archive's entries against each category and keeps
// the category with the highest share of its known files present. Any
// match at all makes the archive valid.
func Validate(r io.ReaderAt, size int64, categories []Category) (Validation, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Validation{Status: StatusInvalid}, fmt.Errorf("open zip: %w", err)
	}
	return validateNames(entryNames(zr), categories), nil
}

// ValidateFile is Validate for a zip on disk.
func ValidateFile(zipPath string, categories []Category) (Validation, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return Validation{Status: StatusInvalid}, fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()
	return validateNames(entryNames(&zr.Reader), categories), nil
}

func validateNames(names []string, categories []Category) Validation {
	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	best := Validation{Status: StatusInvalid}
	for i := range categories {
		c := &categories[i]
		if len(c.KnownFiles) == 0 {
			continue
		}
		var matched []string
		for _, f := range c.KnownFiles {
			if present[f] {
				matched = append(matched, f)
			}
		}
		score := float64(len(matched)) / float64(len(c.KnownFiles))
		if score > best.Score {
			best = Validation{Status: StatusValid, Category: c, Matched: matched, Score: score}
		}
	}
	return best
}
