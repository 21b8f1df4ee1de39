package altname

import (
	"regexp"
	"testing"
)

var namePattern = regexp.MustCompile(`^e[a-z2-7]{52}$`)

func TestDeriveMatchesPattern(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	name, err := Derive(key)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if !namePattern.MatchString(name) {
		t.Errorf("name %q does not match /^e[a-z2-7]{52}$/", name)
	}
}

func TestDeriveDeterministic(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 7)
	}
	a, err := Derive(key)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	b, err := Derive(key)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if a != b {
		t.Errorf("Derive is not deterministic: %q vs %q", a, b)
	}
}

func TestDeriveDistinctKeysDiffer(t *testing.T) {
	key1 := make([]byte, 32)
	key2 := make([]byte, 32)
	key2[31] = 1
	n1, _ := Derive(key1)
	n2, _ := Derive(key2)
	if n1 == n2 {
		t.Error("distinct keys derived the same name")
	}
}

func TestDeriveRejectsWrongLength(t *testing.T) {
	if _, err := Derive(make([]byte, 31)); err == nil {
		t.Fatal("expected error for short key")
	}
}
