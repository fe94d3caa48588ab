package token_manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

var ErrTokenExpired = errors.New("stored token has expired")

type tokenServiceImpl struct {
	TokenFilePath string
}

// TokenService reads an OAuth token saved by another tool. It never refreshes
// or writes tokens.
type TokenService interface {
	LoadToken() (*oauth2.Token, error)
	Path() string
}

func NewTokenService(tokenFilePath string) TokenService {
	if tokenFilePath == "" {
		tokenFilePath = "token.json"
	}

	return &tokenServiceImpl{
		TokenFilePath: tokenFilePath,
	}
}

func (t *tokenServiceImpl) Path() string {
	return t.TokenFilePath
}

func (t *tokenServiceImpl) LoadToken() (*oauth2.Token, error) {
	file, err := os.Open(t.TokenFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open token file %s: %w", t.TokenFilePath, err)
	}

	defer file.Close()
	token := &oauth2.Token{}

	err = json.NewDecoder(file).Decode(token)
	if err != nil {
		return nil, fmt.Errorf("failed to decode token file %s: %w", t.TokenFilePath, err)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("invalid token: no AccessToken in %s", t.TokenFilePath)
	}

	if !token.Valid() {
		return nil, fmt.Errorf("%s: %w", t.TokenFilePath, ErrTokenExpired)
	}

	return token, nil
}
