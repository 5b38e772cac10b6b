package models

import "fmt"

const ExpandSystemPrompt = `Generate five different versions of the question
to retrieve relevant documents from a vector database.

HARD OUTPUT FORMAT:
- Output ONLY the five alternative questions.
- Exactly one question per line. No numbering, no text before, between, or after them.`

func ExpandMessages(question string) []Message {
	return []Message{
		{Role: "system", Content: ExpandSystemPrompt},
		{Role: "user", Content: "Original question: " + question},
	}
}

func AnswerMessages(question, context string) []Message {
	return []Message{
		{
			Role: "user",
			Content: fmt.Sprintf(
				"Answer the question using ONLY the following context:\n%s\nQuestion: %s",
				context, question),
		},
	}
}
