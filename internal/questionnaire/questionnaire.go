// Package questionnaire holds the versioned follow-up questionnaire shown
// next to each sampled conversation opening.
package questionnaire

import "fmt"

// Translatable maps a language code to text.
type Translatable map[string]string

// Text returns the text for lang, falling back to English.
func (t Translatable) Text(lang string) string {
	if s, ok := t[lang]; ok {
		return s
	}
	return t["en"]
}

const KindMultipleChoice = "multiple_choice"

type Question struct {
	ID      int            `json:"id"`
	Kind    string         `json:"kind"`
	Prompt  Translatable   `json:"question"`
	Choices []Translatable `json:"choices"`
}

// Schema is one version of the questionnaire: the same ordered questions
// are asked for every sampled conversation.
type Schema struct {
	Version   string
	Questions []Question
}

// Prompt is what the questionnaire collaborator renders for one round.
type Prompt struct {
	Round             int          `json:"round"`
	Description       Translatable `json:"description"`
	Questions         []Question   `json:"questions"`
	QuestionToChatGPT string       `json:"questionToChatgpt"`
	AnswerFromChatGPT string       `json:"answerFromChatgpt"`
}

// Build returns the prompt for the given zero-based round. Question ids
// are offset by round so answers from different rounds stay distinct.
func (s Schema) Build(round int, question, answer string) Prompt {
	qs := make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		q.ID = round*len(s.Questions) + q.ID
		qs[i] = q
	}
	return Prompt{
		Round:             round,
		Description:       roundDescription(round),
		Questions:         qs,
		QuestionToChatGPT: question,
		AnswerFromChatGPT: answer,
	}
}

var ordinals = []Translatable{
	{"en": "the start of a conversation", "nl": "het begin van een gesprek"},
	{"en": "the start of a second conversation", "nl": "het begin van een tweede gesprek"},
	{"en": "the start of a third conversation", "nl": "het begin van een derde gesprek"},
}

func roundDescription(round int) Translatable {
	which := Translatable{"en": "the start of another conversation", "nl": "het begin van een ander gesprek"}
	if round >= 0 && round < len(ordinals) {
		which = ordinals[round]
	}
	return Translatable{
		"en": fmt.Sprintf("Below you can find %s you had with ChatGPT. We would like to ask you some questions about it.", which["en"]),
		"nl": fmt.Sprintf("Hieronder vindt u %s dat u heeft gehad met ChatGPT. We willen u daar enkele vragen over stellen.", which["nl"]),
	}
}

// Lookup returns the schema registered under version.
func Lookup(version string) (Schema, bool) {
	for _, s := range schemas {
		if s.Version == version {
			return s, true
		}
	}
	return Schema{}, false
}

// Versions lists the known schema versions, oldest first.
func Versions() []string {
	out := make([]string, len(schemas))
	for i, s := range schemas {
		out[i] = s.Version
	}
	return out
}
