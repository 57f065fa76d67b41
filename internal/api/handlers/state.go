package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// loginState travels through Google inside the OAuth state parameter.
type loginState struct {
	ReturnTo string `json:"returnTo"`
}

// encodeState returns "<nonce>.<base64 json>". The nonce makes each state
// unique; the same value is pinned in the oauth_state cookie.
func encodeState(s loginState) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state data: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(nonce) + "." + base64.RawURLEncoding.EncodeToString(payload), nil
}

func decodeState(state string) (loginState, error) {
	nonce, payload, ok := strings.Cut(state, ".")
	if !ok || nonce == "" || strings.Contains(payload, ".") {
		return loginState{}, errors.New("invalid state format")
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return loginState{}, fmt.Errorf("failed to decode state payload: %w", err)
	}
	var s loginState
	if err := json.Unmarshal(raw, &s); err != nil {
		return loginState{}, fmt.Errorf("failed to unmarshal state JSON: %w", err)
	}
	s.ReturnTo = safeReturnTo(s.ReturnTo)
	return s, nil
}

// safeReturnTo only allows same-site absolute paths.
func safeReturnTo(path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return "/"
	}
	return path
}
