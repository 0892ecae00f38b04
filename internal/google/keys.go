package google

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// CallbackPort is the fixed local port for the OAuth redirect listener.
	CallbackPort = 3000

	// CallbackPath is the redirect path registered with the OAuth client.
	CallbackPath = "/oauth2callback"

	// KeysFileName is the OAuth client keys bundle looked up in the working
	// directory and the config directory.
	KeysFileName = "gcp-oauth.keys.json"

	// CredentialsFileName holds the persisted provider token set.
	CredentialsFileName = "credentials.json"

	configDirName = ".gmail-mcp"
)

// Scopes are the Gmail OAuth scopes requested during authorization, plus the
// basic profile scopes used to compose the email signature.
var Scopes = []string{
	"https://www.googleapis.com/auth/gmail.modify",
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.metadata",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.compose",
	"https://www.googleapis.com/auth/gmail.labels",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/userinfo.email",
}

// ConfigDir returns the directory holding the OAuth keys file and the
// persisted credentials, creating nothing.
func ConfigDir() string {
	return filepath.Join(homeDir(), configDirName)
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

// RedirectURL is the local callback URL the consent flow redirects to.
func RedirectURL() string {
	return fmt.Sprintf("http://localhost:%d%s", CallbackPort, CallbackPath)
}

// resolveKeysPath locates the OAuth keys file. The GMAIL_OAUTH_PATH
// environment variable wins; otherwise a keys file in the working directory
// is copied into the config directory so later runs find it there; otherwise
// the config directory copy is used directly.
func resolveKeysPath() (string, error) {
	if p := os.Getenv("GMAIL_OAUTH_PATH"); p != "" {
		return p, nil
	}

	configPath := filepath.Join(ConfigDir(), KeysFileName)

	localPath := filepath.Join(".", KeysFileName)
	if data, err := os.ReadFile(localPath); err == nil {
		if err := os.MkdirAll(ConfigDir(), 0700); err != nil {
			return "", fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := os.WriteFile(configPath, data, 0600); err != nil {
			return "", fmt.Errorf("failed to copy OAuth keys to config directory: %w", err)
		}
		return configPath, nil
	}

	return configPath, nil
}

// LoadKeys reads the OAuth client keys bundle and builds the OAuth2
// configuration for the authorization-code flow. The bundle must be in the
// "installed" or "web" application shape; anything else is a fatal
// configuration error for the caller.
func LoadKeys() (*oauth2.Config, error) {
	path, err := resolveKeysPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read OAuth keys file %s: %w", path, err)
	}

	config, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid OAuth keys file %s (expected an 'installed' or 'web' client bundle): %w", path, err)
	}

	config.RedirectURL = RedirectURL()
	return config, nil
}
