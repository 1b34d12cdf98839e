package config

import (
	"os"
	"path/filepath"
)

// DatabasePath returns the content database path from SITESMITH_DB,
// falling back to the XDG data directory.
func DatabasePath() string {
	if env := os.Getenv("SITESMITH_DB"); env != "" {
		return env
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "sitesmith", "content.db")
}

// APIKey returns the OpenAI API key, empty when unset.
func APIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// Model returns the completion model override from SITESMITH_MODEL,
// empty for the adapter default.
func Model() string {
	return os.Getenv("SITESMITH_MODEL")
}

// BaseURL returns an OpenAI-compatible endpoint override from
// OPENAI_BASE_URL, empty for the adapter default.
func BaseURL() string {
	return os.Getenv("OPENAI_BASE_URL")
}
