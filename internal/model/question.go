package model

import "time"

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeChoice QuestionType = "CHOICE" // Single choice, can gate other questions
	QuestionTypeMulti  QuestionType = "MULTI"  // Multiple choice
	QuestionTypeText   QuestionType = "TEXT"   // Free text, never gates
	QuestionTypeScale  QuestionType = "SCALE"  // Rating/slider, never gates
)

// Question is an authored question within a paper
type Question struct {
	ID       string       `json:"id" bson:"_id,omitempty"`
	PaperID  string       `json:"paperId" bson:"paperId"`
	Title    string       `json:"title" bson:"title"`
	Type     QuestionType `json:"type" bson:"type"`
	Options  []string     `json:"options,omitempty" bson:"options,omitempty"`
	Position int          `json:"position" bson:"position"` // Order within the paper

	// Condition gates visibility on prior answers; nil means always visible.
	// Persisted verbatim once validated, never canonicalized.
	Condition *Condition `json:"condition,omitempty" bson:"condition,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
