package donation

import (
	"github.com/MikeSquared-Agency/donor/internal/chatgpt"
	"github.com/MikeSquared-Agency/donor/internal/questionnaire"
)

type Visualization struct {
	Title      questionnaire.Translatable `json:"title"`
	Type       string                     `json:"type"`
	TextColumn string                     `json:"textColumn"`
	Tokenize   bool                       `json:"tokenize"`
}

// TableViz is a consent-form table plus how to visualise it.
type TableViz struct {
	ID             string                     `json:"id"`
	Title          questionnaire.Translatable `json:"title"`
	Description    questionnaire.Translatable `json:"description"`
	Columns        []string                   `json:"columns"`
	Records        []chatgpt.Record           `json:"records"`
	Visualizations []Visualization            `json:"visualizations"`
}

const ConversationsTableID = "chatgpt_conversations"

// Tables returns the tables to render for the extracted records. Tables
// without rows are left out.
func Tables(records []chatgpt.Record) []TableViz {
	tables := []TableViz{conversationsTable(records)}

	out := tables[:0]
	for _, t := range tables {
		if len(t.Records) > 0 {
			out = append(out, t)
		}
	}
	return out
}

func conversationsTable(records []chatgpt.Record) TableViz {
	return TableViz{
		ID: ConversationsTableID,
		Title: questionnaire.Translatable{
			"en": "Your conversations with ChatGPT",
			"nl": "Uw gesprekken met ChatGPT",
		},
		Description: questionnaire.Translatable{
			"en": "In this table you find your conversations with ChatGPT. Below, you find a wordcloud, where the size of the words represents how frequent these words have been used in the conversations.",
			"nl": "In deze tabel vindt u uw gesprekken met ChatGPT. Hieronder vindt u een woordwolk, waarin de grootte van de woorden aangeeft hoe vaak deze woorden in de gesprekken zijn gebruikt.",
		},
		Columns: chatgpt.Columns,
		Records: records,
		Visualizations: []Visualization{
			{
				Title:      questionnaire.Translatable{"en": "Your messages in a wordcloud", "nl": "Uw berichten in een woordwolk"},
				Type:       "wordcloud",
				TextColumn: chatgpt.ColMessage,
				Tokenize:   true,
			},
		},
	}
}
