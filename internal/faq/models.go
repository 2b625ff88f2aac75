package faq

// FAQ is one question/answer pair in the knowledge base.
type FAQ struct {
	ID       int64
	Question string
	Answer   string
}

// FallbackAnswer is returned when no FAQ question matches the query. The
// wording is part of the downstream contract.
const FallbackAnswer = "I'm sorry, I couldn't find an answer to that specific question. Please try rephrasing."
