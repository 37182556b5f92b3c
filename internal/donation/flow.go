// Package donation drives one donation session: validate the export,
// extract the table, and turn the donated records into questionnaire
// prompts.
package donation

import (
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/donor/internal/archive"
	"github.com/MikeSquared-Agency/donor/internal/chatgpt"
	"github.com/MikeSquared-Agency/donor/internal/questionnaire"
	"github.com/MikeSquared-Agency/donor/internal/sample"
)

// Extraction is the outcome of processing one uploaded export.
type Extraction struct {
	SessionID  uuid.UUID          `json:"session_id"`
	Validation archive.Validation `json:"validation"`
	Tables     []TableViz         `json:"tables"`
}

// Sampling is the outcome of selecting questionnaire material.
type Sampling struct {
	SessionID      uuid.UUID              `json:"session_id"`
	Pairs          [][]string             `json:"pairs"`
	Questionnaires []questionnaire.Prompt `json:"questionnaires"`
}

type Flow struct {
	sessionID uuid.UUID
	extractor *chatgpt.Extractor
	selector  *sample.Selector
	schema    questionnaire.Schema
	logger    *slog.Logger
}

// NewFlow starts a session with a fresh id.
func NewFlow(ext *chatgpt.Extractor, sel *sample.Selector, schema questionnaire.Schema, logger *slog.Logger) *Flow {
	id := uuid.New()
	return &Flow{
		sessionID: id,
		extractor: ext,
		selector:  sel,
		schema:    schema,
		logger:    logger.With("session_id", id.String()),
	}
}

func (f *Flow) SessionID() uuid.UUID { return f.sessionID }

// Extract validates the archive held by r and, when it is a known export,
// extracts the donation tables.
func (f *Flow) Extract(r io.ReaderAt, size int64) Extraction {
	out := Extraction{SessionID: f.sessionID}

	v, err := archive.Validate(r, size, archive.ChatGPTCategories)
	out.Validation = v
	if err != nil {
		f.logger.Warn("archive validation failed", "error", err)
		return out
	}
	if !v.Valid() {
		f.logger.Info("archive is not a known export")
		return out
	}

	out.Tables = Tables(f.extractor.ExtractArchive(r, size))
	f.logger.Info("extraction finished", "tables", len(out.Tables), "score", v.Score)
	return out
}

// Questionnaires selects sample pairs from the donated records and builds
// one prompt per pair. No sample means no prompts.
func (f *Flow) Questionnaires(donated []map[string]any) Sampling {
	out := Sampling{SessionID: f.sessionID}

	for _, opening := range f.selector.Select(donated) {
		q, a, ok := sample.Pair(opening)
		if !ok {
			continue
		}
		out.Pairs = append(out.Pairs, []string{q, a})
		out.Questionnaires = append(out.Questionnaires, f.schema.Build(len(out.Questionnaires), q, a))
	}

	f.logger.Info("questionnaires prepared",
		"schema", f.schema.Version,
		"rounds", len(out.Questionnaires),
	)
	return out
}
