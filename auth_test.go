package main

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMintAndParseToken(t *testing.T) {
	token, err := mintToken("secret", "alice", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	name, err := parseToken("secret", token)
	if err != nil {
		t.Fatal(err)
	}
	if name != "alice" {
		t.Errorf("subject = %q", name)
	}

	if _, err := parseToken("other", token); !errors.Is(err, errUnauthorized) {
		t.Errorf("wrong secret: err = %v", err)
	}
	if _, err := parseToken("secret", "garbage"); !errors.Is(err, errUnauthorized) {
		t.Errorf("garbage token: err = %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	token, err := mintToken("secret", "alice", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parseToken("secret", token); !errors.Is(err, errUnauthorized) {
		t.Errorf("expired token: err = %v", err)
	}
}

func TestMintWithoutSecret(t *testing.T) {
	if _, err := mintToken("", "alice", time.Hour); err == nil {
		t.Error("expected error without secret")
	}
}

func TestRequestToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/ws?token=query", nil)
	if got := requestToken(r); got != "query" {
		t.Errorf("query token = %q", got)
	}

	r.Header.Set("Authorization", "Bearer header")
	if got := requestToken(r); got != "header" {
		t.Errorf("header token = %q", got)
	}
}
