// Package rtc allocates real-time channel credentials for live sessions.
// The conferencing provider is external; this adapter only mints the opaque
// join credential and the meeting reference handed to clients.
package rtc

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenProvider issues short-lived, HMAC-signed join tokens for channels.
type TokenProvider struct {
	secret         []byte
	tokenTTL       time.Duration
	meetingBaseURL string
}

// NewTokenProvider creates a provider signing with the given secret.
func NewTokenProvider(secret string, tokenTTL time.Duration, meetingBaseURL string) *TokenProvider {
	return &TokenProvider{
		secret:         []byte(secret),
		tokenTTL:       tokenTTL,
		meetingBaseURL: strings.TrimSuffix(meetingBaseURL, "/"),
	}
}

// NewChannelID allocates a new unique channel id.
func NewChannelID() string {
	return "ch_" + uuid.New().String()[:8]
}

// IssueToken mints a join token binding the user to the channel. Tokens
// expire after the configured TTL and are never refreshed by the core.
func (p *TokenProvider) IssueToken(channelID, userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"chan": channelID,
		"iat":  now.Unix(),
		"exp":  now.Add(p.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign join token: %w", err)
	}
	return signed, nil
}

// MeetingReference builds the client-facing reference for a channel.
func (p *TokenProvider) MeetingReference(channelID string) string {
	return p.meetingBaseURL + "/" + channelID
}
