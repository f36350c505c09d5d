package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syatt-io/syatt-fulfillment/internal/domain"
)

func TestLoadKeywordsDefaults(t *testing.T) {
	keywords, err := LoadKeywords("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultKeywords(), keywords)
}

func TestLoadKeywordsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	content := []byte("classifier:\n  pickup: [\"abholung\", \"filiale\"]\n  shipping: [\"versand\"]\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	keywords, err := LoadKeywords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"abholung", "filiale"}, keywords.Pickup)
	assert.Equal(t, []string{"versand"}, keywords.Shipping)
}

func TestLoadKeywordsPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	content := []byte("classifier:\n  pickup: [\"abholung\"]\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	keywords, err := LoadKeywords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"abholung"}, keywords.Pickup)
	assert.Equal(t, domain.DefaultKeywords().Shipping, keywords.Shipping)
}

func TestLoadKeywordsMissingFile(t *testing.T) {
	keywords, err := LoadKeywords(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
	// Defaults still returned so the caller can choose to continue
	assert.Equal(t, domain.DefaultKeywords(), keywords)
}

func TestLoadKeywordsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("classifier: [not a map"), 0o600))

	_, err := LoadKeywords(path)
	assert.Error(t, err)
}
