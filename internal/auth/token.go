package auth

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Token is an OAuth2 credential pair for the Spotify account.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type,omitempty"`
	Scope        string    `json:"scope,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// FromOAuth2 converts an [oauth2.Token] returned by an exchange or refresh grant.
func FromOAuth2(t *oauth2.Token) *Token {
	if t == nil {
		return nil
	}
	tok := &Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		ExpiresAt:    t.Expiry,
	}
	if scope, ok := t.Extra("scope").(string); ok {
		tok.Scope = scope
	}
	return tok
}

// OAuth2 converts the token back for use with [oauth2.Config].
func (t *Token) OAuth2() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.ExpiresAt,
	}
}

// TokenCache persists the current token between process runs.
//
// Load returns (nil, nil) when no token has ever been stored.
type TokenCache interface {
	Load(ctx context.Context) (*Token, error)
	Save(ctx context.Context, token *Token) error
	Clear(ctx context.Context) error
}

// Authenticator is the auth collaborator consumed by [Guard].
//
// It owns the token cache; the guard only reads and triggers refreshes.
type Authenticator interface {
	// CachedToken returns the stored token, or nil if none was ever issued.
	CachedToken(ctx context.Context) (*Token, error)
	// IsExpired is the single source of truth for token validity.
	IsExpired(token *Token) bool
	// Refresh performs a non-interactive refresh grant and persists the result.
	Refresh(ctx context.Context, refreshToken string) (*Token, error)
}
