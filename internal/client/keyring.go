package client

import (
	"github.com/99designs/keyring"
)

const (
	appName     = "Mingle"
	serviceName = appName + " Auth"
	tokenKey    = appName + " Access Token"
)

// keyringManager wraps the os-native credential store, the auth token never
// touches the sqlite cache or the config dir.
type keyringManager struct {
	kr keyring.Keyring
}

func newKeyringManager() (*keyringManager, error) {
	kr, err := keyring.Open(keyring.Config{
		ServiceName:             serviceName,
		KeyCtlScope:             "user",
		LibSecretCollectionName: appName,
		WinCredPrefix:           appName,
	})
	if err != nil {
		return nil, err
	}
	return &keyringManager{kr: kr}, nil
}

func (k *keyringManager) setAuthTokenInKeyring(label, data string) error {
	return k.kr.Set(keyring.Item{
		Key:         tokenKey,
		Label:       "user=" + label,
		Data:        []byte(data),
		Description: "bearer token issued after a password login",
	})
}

func (k *keyringManager) removeAuthTokenFromKeyring() error {
	return k.kr.Remove(tokenKey)
}

func (k *keyringManager) getAuthTokenFromKeyring() string {
	item, err := k.kr.Get(tokenKey)
	if err != nil {
		return ""
	}
	return string(item.Data)
}
