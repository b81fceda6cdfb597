package models

import (
	"encoding/json"
	"testing"
)

func TestCardValueJSONUnion(t *testing.T) {
	// Numeric values travel as bare JSON numbers, symbolic ones as strings
	data, err := json.Marshal(Numeric(13))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "13" {
		t.Errorf("numeric marshal = %s, want 13", data)
	}

	data, err = json.Marshal(Symbolic("?"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"?"` {
		t.Errorf(`symbolic marshal = %s, want "?"`, data)
	}

	var v CardValue
	if err := json.Unmarshal([]byte("8"), &v); err != nil {
		t.Fatal(err)
	}
	if v != Numeric(8) {
		t.Errorf("unmarshal 8 = %v", v)
	}

	if err := json.Unmarshal([]byte(`"XL"`), &v); err != nil {
		t.Fatal(err)
	}
	if v != Symbolic("XL") {
		t.Errorf(`unmarshal "XL" = %v`, v)
	}

	if err := json.Unmarshal([]byte("true"), &v); err == nil {
		t.Error("expected error unmarshalling a boolean")
	}
}

func TestCardTypeCatalogue(t *testing.T) {
	for _, cardType := range []CardType{
		CardTypeFibonacci, CardTypeTShirt, CardTypePowers,
		CardTypeSequential, CardTypeEmoji, CardTypeCustom,
	} {
		cfg, ok := cardType.Config()
		if !ok {
			t.Fatalf("missing config for %s", cardType)
		}
		if len(cfg.Values) == 0 {
			t.Errorf("%s has no values", cardType)
		}
		if cfg.Name == "" || cfg.Description == "" {
			t.Errorf("%s is missing display metadata", cardType)
		}
	}

	if CardType("tarot").Valid() {
		t.Error("unknown card type should not be valid")
	}
}

func TestCardTypeContains(t *testing.T) {
	fib := CardTypes[CardTypeFibonacci]

	if !fib.Contains(Numeric(13)) {
		t.Error("fibonacci should contain 13")
	}
	if !fib.Contains(Symbolic("?")) {
		t.Error("fibonacci should contain ?")
	}
	if fib.Contains(Numeric(7)) {
		t.Error("fibonacci should not contain 7")
	}
	// A symbolic "13" is not the numeric 13
	if fib.Contains(Symbolic("13")) {
		t.Error("symbolic token must not match a numeric value")
	}
}
