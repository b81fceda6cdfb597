package models

import (
	"time"

	"github.com/google/uuid"
)

// NewRoom creates a new planning poker room with the given creator as its
// first participant. The session state machine only becomes meaningful once
// the first story is added.
func NewRoom(name string, cardType CardType, maxParticipants int, creator *User) (*Room, error) {
	if name == "" {
		return nil, ErrInvalidRoomName
	}
	if !cardType.Valid() {
		return nil, ErrInvalidCardType
	}

	room := &Room{
		ID:                uuid.New().String(),
		Name:              name,
		Code:              GenerateRoomCode(),
		CardType:          cardType,
		MaxParticipants:   maxParticipants,
		Participants:      []*User{creator},
		Stories:           make([]*Story, 0),
		CurrentStoryIndex: 0,
		IsVoting:          false,
		IsRevealed:        false,
		CreatedAt:         time.Now(),
		CreatedBy:         creator.ID,
	}

	return room, nil
}

// participant looks up a participant by ID. Caller must hold the mutex.
func (r *Room) participant(userID string) *User {
	for _, p := range r.Participants {
		if p.ID == userID {
			return p
		}
	}
	return nil
}

// activeStory returns the story at CurrentStoryIndex, enforcing the index
// invariant. Caller must hold the mutex.
func (r *Room) activeStory() (*Story, error) {
	if r.CurrentStoryIndex < 0 || r.CurrentStoryIndex >= len(r.Stories) {
		return nil, ErrInvalidStoryIndex
	}
	return r.Stories[r.CurrentStoryIndex], nil
}

// AddParticipant adds a new participant to the room
func (r *Room) AddParticipant(user *User) error {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()

	if r.IsEnded {
		return ErrSessionEnded
	}
	if r.participant(user.ID) != nil {
		return ErrParticipantExists
	}
	for _, p := range r.Participants {
		if p.Name == user.Name {
			return ErrParticipantExists
		}
	}
	if r.MaxParticipants > 0 && len(r.Participants) >= r.MaxParticipants {
		return ErrRoomFull
	}

	r.Participants = append(r.Participants, user)

	return nil
}

// RemoveParticipant removes a participant from the room. Votes the
// participant already cast are retained.
func (r *Room) RemoveParticipant(userID string) error {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()

	for i, p := range r.Participants {
		if p.ID == userID {
			r.Participants = append(r.Participants[:i], r.Participants[i+1:]...)
			return nil
		}
	}

	return ErrParticipantNotFound
}

// Participant returns the participant with the given ID, if present
func (r *Room) Participant(userID string) (*User, bool) {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()

	p := r.participant(userID)
	return p, p != nil
}

// AddStory appends a new story to the room. The first story added opens
// voting on it.
func (r *Room) AddStory(title, description string) (*Story, error) {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()

	if r.IsEnded {
		return nil, ErrSessionEnded
	}
	if title == "" {
		return nil, ErrInvalidStoryTitle
	}

	story := NewStory(title, description)
	r.Stories = append(r.Stories, story)

	if len(r.Stories) == 1 {
		r.IsVoting = true
		r.IsRevealed = false
	}

	return story, nil
}

// UpdateStory replaces a story's title, description and reference atomically
// as one object. Votes, comments and reveal state are untouched.
func (r *Room) UpdateStory(index int, title, description, reference string) error {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()

	if r.IsEnded {
		return ErrSessionEnded
	}
	if index < 0 || index >= len(r.Stories) {
		return ErrInvalidStoryIndex
	}
	if title == "" {
		return ErrInvalidStoryTitle
	}

	story := r.Stories[index]
	story.Title = title
	story.Description = description
	story.Reference = reference

	return nil
}

// AddComment appends a comment by a participant to a story
func (r *Room) AddComment(index int, userID, text string) (*Comment, error) {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()

	if r.IsEnded {
		return nil, ErrSessionEnded
	}
	if index < 0 || index >= len(r.Stories) {
		return nil, ErrInvalidStoryIndex
	}

	author := r.participant(userID)
	if author == nil {
		return nil, ErrParticipantNotFound
	}

	comment := Comment{
		ID:        uuid.New().String(),
		UserID:    author.ID,
		UserName:  author.Name,
		Text:      text,
		Timestamp: time.Now(),
	}
	r.Stories[index].Comments = append(r.Stories[index].Comments, comment)

	return &comment, nil
}

// CastVote records a participant's vote on the active story. A second vote
// from the same participant replaces the first; no history is kept. Casting
// outside the voting window or with a value not in the room's card set is
// rejected without mutating state.
func (r *Room) CastVote(userID string, value CardValue) error {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()

	if r.IsEnded {
		return ErrSessionEnded
	}
	if r.participant(userID) == nil {
		return ErrParticipantNotFound
	}

	story, err := r.activeStory()
	if err != nil {
		return err
	}
	if story.IsRevealed {
		return ErrNotVoting
	}

	cfg, ok := r.CardType.Config()
	if !ok || !cfg.Contains(value) {
		return ErrInvalidCardValue
	}

	vote := Vote{UserID: userID, Value: value, Timestamp: time.Now()}
	for i := range story.Votes {
		if story.Votes[i].UserID == userID {
			story.Votes[i] = vote
			return nil
		}
	}
	story.Votes = append(story.Votes, vote)

	return nil
}

// RevealVotes flips the active story to revealed and attaches the aggregate
// statistics to it. Votes are retained verbatim. Creator only.
func (r *Room) RevealVotes(actingUserID string) error {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()

	if r.IsEnded {
		return ErrSessionEnded
	}
	if actingUserID != r.CreatedBy {
		return ErrNotCreator
	}

	story, err := r.activeStory()
	if err != nil {
		return err
	}
	if story.IsRevealed {
		return ErrAlreadyRevealed
	}

	story.IsRevealed = true
	stats := ComputeStats(story.Votes)
	story.Average = stats.Average
	story.Variance = stats.Variance

	r.IsVoting = false
	r.IsRevealed = true

	return nil
}

// ResetVotes clears the active story's votes and reopens voting on it;
// every participant must vote again. Creator only, from revealed.
func (r *Room) ResetVotes(actingUserID string) error {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()

	if r.IsEnded {
		return ErrSessionEnded
	}
	if actingUserID != r.CreatedBy {
		return ErrNotCreator
	}

	story, err := r.activeStory()
	if err != nil {
		return err
	}
	if !story.IsRevealed {
		return ErrNotRevealed
	}

	story.Votes = make([]Vote, 0)
	story.IsRevealed = false
	story.Average = nil
	story.Variance = nil

	r.IsVoting = true
	r.IsRevealed = false

	return nil
}

// NextStory advances to the next story and opens voting on it. The previous
// story's votes and reveal state stay as they are for the lifetime of the
// room. Creator only.
func (r *Room) NextStory(actingUserID string) error {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()

	if r.IsEnded {
		return ErrSessionEnded
	}
	if actingUserID != r.CreatedBy {
		return ErrNotCreator
	}
	if _, err := r.activeStory(); err != nil {
		return err
	}
	if r.CurrentStoryIndex+1 >= len(r.Stories) {
		return ErrLastStory
	}

	r.CurrentStoryIndex++
	r.IsVoting = true
	r.IsRevealed = false

	return nil
}

// EndSession terminates the room's active-voting lifecycle. Only permitted by
// the creator while the active story is revealed. After ending, all mutating
// operations are rejected; reads remain available for the session summary.
func (r *Room) EndSession(actingUserID string) error {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()

	if r.IsEnded {
		return ErrSessionEnded
	}
	if actingUserID != r.CreatedBy {
		return ErrNotCreator
	}

	story, err := r.activeStory()
	if err != nil {
		return err
	}
	if !story.IsRevealed {
		return ErrNotRevealed
	}

	r.IsEnded = true
	r.IsVoting = false

	return nil
}

// ActiveStory returns the story currently being voted on
func (r *Room) ActiveStory() (*Story, error) {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()

	return r.activeStory()
}

// Story returns the story at the given index
func (r *Room) Story(index int) (*Story, error) {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()

	if index < 0 || index >= len(r.Stories) {
		return nil, ErrInvalidStoryIndex
	}
	return r.Stories[index], nil
}
