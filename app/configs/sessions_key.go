package configs

import (
	"encoding/base64"
	"fmt"

	"github.com/gorilla/securecookie"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

func DecodeSessionKeys(env ENV) (*SessionKeys, error) {
	if env.SessionAuthKey == "" {
		return nil, fmt.Errorf("APP_AUTH_KEY environment variable not set")
	}
	if env.SessionEncKey == "" {
		return nil, fmt.Errorf("APP_ENC_KEY environment variable not set")
	}

	authKey, err := base64.URLEncoding.DecodeString(env.SessionAuthKey)
	if err != nil {
		return nil, fmt.Errorf("decode APP_AUTH_KEY: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.SessionEncKey)
	if err != nil {
		return nil, fmt.Errorf("decode APP_ENC_KEY: %w", err)
	}
	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY must decode to 16, 24 or 32 bytes, got %d", len(encKey))
	}

	return &SessionKeys{AuthKey: authKey, EncKey: encKey}, nil
}

// GenerateAndPrintSessionKeys emits fresh cookie keys for the .env file.
// Regenerating invalidates existing sessions.
func GenerateAndPrintSessionKeys() error {
	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return fmt.Errorf("could not generate authentication key")
	}
	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return fmt.Errorf("could not generate encryption key")
	}
	csrfKey := securecookie.GenerateRandomKey(32)
	if csrfKey == nil {
		return fmt.Errorf("could not generate CSRF key")
	}

	fmt.Printf("APP_AUTH_KEY=%s\n", base64.URLEncoding.EncodeToString(authKey))
	fmt.Printf("APP_ENC_KEY=%s\n", base64.URLEncoding.EncodeToString(encKey))
	fmt.Printf("APP_CSRF_KEY=%s\n", base64.URLEncoding.EncodeToString(csrfKey))
	return nil
}
