package models

import "github.com/google/uuid"

// NewStory creates a story with no votes, no comments, and voting open
func NewStory(title, description string) *Story {
	return &Story{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Votes:       make([]Vote, 0),
		IsRevealed:  false,
		Comments:    make([]Comment, 0),
	}
}
