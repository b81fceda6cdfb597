package models

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// AnonymousLabel is the display name given to users who explicitly join as
// "Anonymous" rather than leaving their name blank.
const AnonymousLabel = "Anonymous User"

var nameAdjectives = []string{
	"Swift", "Bright", "Clever", "Bold", "Wise", "Quick",
	"Smart", "Sharp", "Agile", "Nimble", "Dynamic", "Vibrant",
}

var nameAnimals = []string{
	"Fox", "Wolf", "Eagle", "Lion", "Bear", "Tiger",
	"Hawk", "Owl", "Koala", "Panda", "Dragon", "Phoenix",
}

// RandomDisplayName composes a guest name from a random adjective, animal and
// number in [0, 100), e.g. "SwiftFox42". Names are not unique; callers
// tolerate collisions.
func RandomDisplayName() string {
	adjective := nameAdjectives[rand.IntN(len(nameAdjectives))]
	animal := nameAnimals[rand.IntN(len(nameAnimals))]
	return adjective + animal + strconv.Itoa(rand.IntN(100))
}

// FormatAddress shortens a wallet address to its first 6 and last 4 characters
func FormatAddress(address string) string {
	if len(address) < 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

// NewUser creates a user from a display name and optional wallet address.
// Naming falls back in order: the anonymous label, a truncated wallet address,
// a generated guest name.
func NewUser(name, walletAddress string) *User {
	name = strings.TrimSpace(name)

	displayName := name
	isAnonymous := false

	switch {
	case name == "Anonymous":
		displayName = AnonymousLabel
		isAnonymous = true
	case name == "" && walletAddress != "":
		displayName = FormatAddress(walletAddress)
	case name == "":
		displayName = RandomDisplayName()
	}

	user := &User{
		ID:            uuid.New().String(),
		Name:          displayName,
		WalletAddress: walletAddress,
		IsGuest:       walletAddress == "",
		IsAnonymous:   isAnonymous,
	}

	if walletAddress != "" {
		user.Avatar = "https://api.dicebear.com/7.x/identicon/svg?seed=" + walletAddress
	}

	return user
}
