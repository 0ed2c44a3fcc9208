// Package secrets keeps the optional job-board API token in the OS
// keychain instead of the config file.
package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service groups the engine's secrets in the OS keychain.
	keyringService = "hhscout"
	keyringAccount = "hhscout:api-token"
)

func GetAPIToken() (string, error) {
	token, err := keyring.Get(keyringService, keyringAccount)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(token) == "" {
		return "", errors.New("API token not found in keychain")
	}
	return token, nil
}

func SetAPIToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(keyringService, keyringAccount, token)
}

func DeleteAPIToken() error {
	return keyring.Delete(keyringService, keyringAccount)
}
