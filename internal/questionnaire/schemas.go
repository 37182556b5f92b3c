package questionnaire

var trustQuestion = Question{
	ID:     1,
	Kind:   KindMultipleChoice,
	Prompt: Translatable{"en": "To what extent do you trust the answer provided by ChatGPT?", "nl": "In hoeverre vertrouwt u het antwoord van ChatGPT?"},
	Choices: scale(
		Translatable{"en": "1. I do not trust it at all", "nl": "1. Ik vertrouw het helemaal niet"},
		Translatable{"en": "5. I trust it completely", "nl": "5. Ik vertrouw het volledig"},
	),
}

var sensitivityQuestion = Question{
	ID:     2,
	Kind:   KindMultipleChoice,
	Prompt: Translatable{"en": "How private or sensitive is the information you shared in this conversation?", "nl": "Hoe privé of gevoelig is de informatie die u in dit gesprek heeft gedeeld?"},
	Choices: scale(
		Translatable{"en": "1. Not sensitive at all", "nl": "1. Helemaal niet gevoelig"},
		Translatable{"en": "5. Very sensitive", "nl": "5. Zeer gevoelig"},
	),
}

var useTypeQuestion = Question{
	ID:     3,
	Kind:   KindMultipleChoice,
	Prompt: Translatable{"en": "What did you use ChatGPT for in this conversation?", "nl": "Waarvoor gebruikte u ChatGPT in dit gesprek?"},
	Choices: []Translatable{
		{"en": "Work or study", "nl": "Werk of studie"},
		{"en": "Looking up information", "nl": "Informatie opzoeken"},
		{"en": "Writing or editing text", "nl": "Tekst schrijven of bewerken"},
		{"en": "Personal advice", "nl": "Persoonlijk advies"},
		{"en": "Entertainment", "nl": "Vermaak"},
		{"en": "Other", "nl": "Anders"},
	},
}

// scale builds a five-point scale with labelled ends.
func scale(low, high Translatable) []Translatable {
	return []Translatable{
		low,
		{"en": "2", "nl": "2"},
		{"en": "3", "nl": "3"},
		{"en": "4", "nl": "4"},
		high,
	}
}

var schemas = []Schema{
	{Version: "v1", Questions: []Question{trustQuestion}},
	{Version: "v2", Questions: []Question{trustQuestion, sensitivityQuestion, useTypeQuestion}},
}
