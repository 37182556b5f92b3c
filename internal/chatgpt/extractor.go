package chatgpt

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/MikeSquared-Agency/donor/internal/archive"
)

// DefaultConversationsFile is the export entry holding the conversations.
const DefaultConversationsFile = "conversations.json"

// openingSize is how many leading retained messages make up the opening
// exchange (question and answer).
const openingSize = 2

// Extractor turns a ChatGPT export into flattened message records. It never
// returns an error: anomalies are logged and the affected conversation, or
// at worst the whole archive, contributes no records.
type Extractor struct {
	logger *slog.Logger
	file   string
}

// New creates an extractor reading the given entry from export archives.
// An empty file name selects conversations.json.
func New(logger *slog.Logger, conversationsFile string) *Extractor {
	if conversationsFile == "" {
		conversationsFile = DefaultConversationsFile
	}
	return &Extractor{logger: logger, file: conversationsFile}
}

// ExtractFile extracts records from a zip archive on disk.
func (e *Extractor) ExtractFile(zipPath string) []Record {
	data, err := archive.ReadFile(zipPath, e.file)
	if err != nil {
		e.logger.Error("failed to read conversations from archive", "path", zipPath, "file", e.file, "error", err)
		return nil
	}
	return e.ExtractJSON(data)
}

// ExtractArchive extracts records from a zip archive held by r.
func (e *Extractor) ExtractArchive(r io.ReaderAt, size int64) []Record {
	data, err := archive.ReadFileFromReader(r, size, e.file)
	if err != nil {
		e.logger.Error("failed to read conversations from archive", "file", e.file, "error", err)
		return nil
	}
	return e.ExtractJSON(data)
}

// ExtractConversations extracts records from an already opened
// conversations file.
func (e *Extractor) ExtractConversations(r io.Reader) []Record {
	data, err := io.ReadAll(r)
	if err != nil {
		e.logger.Error("failed to read conversations", "error", err)
		return nil
	}
	return e.ExtractJSON(data)
}

// ExtractJSON extracts records from the raw conversations.json content.
func (e *Extractor) ExtractJSON(data []byte) []Record {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		e.logger.Error("conversations file is not a JSON array", "error", err)
		return nil
	}

	var records []Record
	skipped := 0
	for i, raw := range raws {
		c, err := parseConversation(raw)
		if err != nil {
			skipped++
			e.logger.Warn("skipping conversation",
				"index", i,
				"conversation_id", c.ID,
				"error", err,
			)
			continue
		}
		records = append(records, e.Flatten(c)...)
	}

	e.logger.Info("conversations extracted",
		"conversations", len(raws),
		"skipped", skipped,
		"records", len(records),
	)
	return records
}

// Flatten returns the retained messages of one conversation in main-branch
// order. The opening exchange is marked only when it is well formed: the
// first retained message is a user root, and the second, if marked, is the
// assistant reply directly below it. A conversation opening any other way
// gets no marks and so never reaches sampling.
func (e *Extractor) Flatten(c Conversation) []Record {
	var retained []Node
	for _, n := range MainBranch(c.Nodes) {
		if n.Retained() {
			retained = append(retained, n)
		}
	}
	if len(retained) == 0 {
		return nil
	}

	opening := 0
	switch {
	case !anchorsOpening(retained[0], retained):
		e.logger.Debug("conversation does not open with a user root message",
			"conversation_id", c.ID,
			"role", retained[0].Role,
		)
	case len(retained) > 1 && answeredBy(retained[0], retained[1], c.Nodes):
		opening = openingSize
	default:
		opening = 1
	}

	records := make([]Record, len(retained))
	for i, n := range retained {
		records[i] = Record{
			ConversationTitle: c.Title,
			Role:              n.Role,
			Message:           n.Text,
			Model:             n.Model,
			Time:              isoTime(n.CreatedAt),
			ConversationID:    c.ID,
			IsFirst:           i < opening,
		}
	}
	return records
}
