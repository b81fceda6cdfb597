package models

import "errors"

// Common errors
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is at maximum capacity")
	ErrInvalidRoomName     = errors.New("room name must not be empty")
	ErrInvalidCardType     = errors.New("unknown card type")
	ErrParticipantNotFound = errors.New("participant not found in room")
	ErrParticipantExists   = errors.New("participant already exists in room")
	ErrNotCreator          = errors.New("only the room creator can perform this action")
	ErrInvalidStoryTitle   = errors.New("story title must not be empty")
	ErrInvalidStoryIndex   = errors.New("story index out of range")
	ErrInvalidCardValue    = errors.New("vote value is not in the room's card set")
	ErrNotVoting           = errors.New("votes can only be cast while voting is open")
	ErrNotRevealed         = errors.New("votes have not been revealed")
	ErrAlreadyRevealed     = errors.New("votes are already revealed")
	ErrLastStory           = errors.New("no further stories to advance to")
	ErrSessionEnded        = errors.New("session has ended")
	ErrSessionNotFound     = errors.New("session context not found")
)
