package models

import "time"

// Answer sources.
const (
	SourceLocal = "local"
	SourceCache = "cache"
	SourceModel = "model"
)

// AnswerRecord is one served question/answer pair.
type AnswerRecord struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	FileName  string    `json:"file_name"`
	Source    string    `json:"source"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}
