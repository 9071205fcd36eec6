package model

import "time"

// PaperSettings configures paper behavior
type PaperSettings struct {
	ShuffleQuestions bool `json:"shuffleQuestions" bson:"shuffleQuestions"`
	AllowBacktrack   bool `json:"allowBacktrack" bson:"allowBacktrack"`
	TimeLimitMinutes int  `json:"timeLimitMinutes,omitempty" bson:"timeLimitMinutes,omitempty"`
}

// Paper is a survey/exam template created by an author
type Paper struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	AuthorID    string        `json:"authorId" bson:"authorId"`
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	Settings    PaperSettings `json:"settings" bson:"settings"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}
