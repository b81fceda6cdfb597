package models

import (
	"regexp"
	"strings"
	"testing"
)

var generatedNamePattern = regexp.MustCompile(
	`^(Swift|Bright|Clever|Bold|Wise|Quick|Smart|Sharp|Agile|Nimble|Dynamic|Vibrant)` +
		`(Fox|Wolf|Eagle|Lion|Bear|Tiger|Hawk|Owl|Koala|Panda|Dragon|Phoenix)` +
		`([0-9]|[1-9][0-9])$`)

func TestNewUserNameFallbacks(t *testing.T) {
	tests := []struct {
		name          string
		inputName     string
		walletAddress string
		wantName      string
		wantGuest     bool
		wantAnonymous bool
	}{
		{
			name:          "explicit name used verbatim",
			inputName:     "Alice",
			wantName:      "Alice",
			wantGuest:     true,
			wantAnonymous: false,
		},
		{
			name:          "name is trimmed",
			inputName:     "  Bob  ",
			wantName:      "Bob",
			wantGuest:     true,
			wantAnonymous: false,
		},
		{
			name:          "anonymous gets fixed label",
			inputName:     "Anonymous",
			walletAddress: "0x1234567890abcdef1234567890abcdef12345678",
			wantName:      "Anonymous User",
			wantGuest:     false,
			wantAnonymous: true,
		},
		{
			name:          "empty name with wallet truncates address",
			inputName:     "",
			walletAddress: "0x1234567890abcdef1234567890abcdef12345678",
			wantName:      "0x1234...5678",
			wantGuest:     false,
			wantAnonymous: false,
		},
		{
			name:          "named wallet user keeps name",
			inputName:     "Carol",
			walletAddress: "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
			wantName:      "Carol",
			wantGuest:     false,
			wantAnonymous: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := NewUser(tt.inputName, tt.walletAddress)

			if user.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", user.Name, tt.wantName)
			}
			if user.IsGuest != tt.wantGuest {
				t.Errorf("IsGuest = %v, want %v", user.IsGuest, tt.wantGuest)
			}
			if user.IsAnonymous != tt.wantAnonymous {
				t.Errorf("IsAnonymous = %v, want %v", user.IsAnonymous, tt.wantAnonymous)
			}
			if user.ID == "" {
				t.Error("expected non-empty ID")
			}
		})
	}
}

func TestNewUserGeneratedName(t *testing.T) {
	// The generator is random and collisions are allowed; every output must
	// still match the Adjective+Animal+Number grammar.
	for i := 0; i < 50; i++ {
		user := NewUser("", "")
		if !generatedNamePattern.MatchString(user.Name) {
			t.Fatalf("generated name %q does not match grammar", user.Name)
		}
		if !user.IsGuest {
			t.Fatal("user without wallet should be a guest")
		}
	}
}

func TestNewUserAvatar(t *testing.T) {
	wallet := NewUser("Dave", "0x1234567890abcdef1234567890abcdef12345678")
	if !strings.Contains(wallet.Avatar, wallet.WalletAddress) {
		t.Errorf("wallet avatar %q should be seeded with the address", wallet.Avatar)
	}

	guest := NewUser("Eve", "")
	if guest.Avatar != "" {
		t.Errorf("guest avatar = %q, want empty", guest.Avatar)
	}
}

func TestFormatAddress(t *testing.T) {
	got := FormatAddress("0x1234567890abcdef1234567890abcdef12345678")
	if got != "0x1234...5678" {
		t.Errorf("FormatAddress = %q, want %q", got, "0x1234...5678")
	}

	// Too short to truncate
	if got := FormatAddress("0x1234"); got != "0x1234" {
		t.Errorf("FormatAddress on short input = %q, want unchanged", got)
	}
}
