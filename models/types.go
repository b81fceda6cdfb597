package models

import (
	"sync"
	"time"
)

// User represents a participant in a planning poker session
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	WalletAddress string `json:"walletAddress,omitempty"`
	IsGuest       bool   `json:"isGuest"`
	IsAnonymous   bool   `json:"isAnonymous,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
}

// Vote is one participant's estimate for a story. A user holds at most one
// vote per story; casting again replaces the previous vote.
type Vote struct {
	UserID    string    `json:"userId"`
	Value     CardValue `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// Comment is a participant's remark attached to a story
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Story is a single item being estimated. Each story owns its own vote
// collection, independent of every other story in the room.
type Story struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Reference   string    `json:"reference,omitempty"`
	Votes       []Vote    `json:"votes"`
	IsRevealed  bool      `json:"isRevealed"`
	Average     *float64  `json:"average,omitempty"`
	Variance    *float64  `json:"variance,omitempty"`
	Comments    []Comment `json:"comments"`
}

// Room represents a planning poker session
type Room struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Code              string       `json:"code"`
	CardType          CardType     `json:"cardType"`
	MaxParticipants   int          `json:"maxParticipants"`
	Participants      []*User      `json:"participants"`
	Stories           []*Story     `json:"stories"`
	CurrentStoryIndex int          `json:"currentStoryIndex"`
	IsVoting          bool         `json:"isVoting"`
	IsRevealed        bool         `json:"isRevealed"`
	IsEnded           bool         `json:"isEnded"`
	CreatedAt         time.Time    `json:"createdAt"`
	CreatedBy         string       `json:"createdBy"`
	Mutex             sync.RWMutex `json:"-"`
}

// SessionContext holds the client-side resumption state (display name, wallet,
// current room) that a browser client previously kept in local storage. The
// domain core never reads it; it exists for the presentation layer.
type SessionContext struct {
	Token           string    `json:"token"`
	DisplayName     string    `json:"displayName,omitempty"`
	WalletAddress   string    `json:"walletAddress,omitempty"`
	CurrentRoomCode string    `json:"currentRoomCode,omitempty"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
