package configs

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gorilla/securecookie"
)

var ErrSessionKeysMissing = errors.New("APP_AUTH_KEY and APP_ENC_KEY are not set, run `petshop generate-keys`")

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	authKeyBase64 := env.AppAuthKey
	encKeyBase64 := env.AppEncKey

	if authKeyBase64 == "" || encKeyBase64 == "" {
		return nil, ErrSessionKeysMissing
	}

	authKey, err := base64.URLEncoding.DecodeString(authKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(encKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}

	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}

	return &SessionKeys{
		AuthKey: authKey,
		EncKey:  encKey,
	}, nil
}

func GenerateSessionKeys() (*SessionKeys, error) {
	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return nil, fmt.Errorf("error: could not generate authentication key")
	}

	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return nil, fmt.Errorf("error: could not generate encryption key")
	}

	return &SessionKeys{AuthKey: authKey, EncKey: encKey}, nil
}

func GenerateAndPrintSessionKeys(envFilePath string) error {
	fmt.Println("Generating new session keys...")

	keys, err := GenerateSessionKeys()
	if err != nil {
		return err
	}

	authKeyBase64 := base64.URLEncoding.EncodeToString(keys.AuthKey)
	encKeyBase64 := base64.URLEncoding.EncodeToString(keys.EncKey)

	fmt.Println("\n================================================")
	fmt.Println("Generated keys:")
	fmt.Printf("APP_AUTH_KEY=%s\n", authKeyBase64)
	fmt.Printf("APP_ENC_KEY=%s\n", encKeyBase64)
	fmt.Println("================================================")

	fullPath, err := filepath.Abs(envFilePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for %s: %w", envFilePath, err)
	}

	file, err := os.Create(envFilePath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", envFilePath, err)
	}
	defer file.Close()

	_, err = fmt.Fprintf(file, "APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\n", authKeyBase64, encKeyBase64)
	if err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", envFilePath, err)
	}

	log.Printf("✅ Keys have been written to '%s'.", fullPath)
	fmt.Println("Copy these lines into your .env file. Regenerating them logs out the device.")

	return nil
}
