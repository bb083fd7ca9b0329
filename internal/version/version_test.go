package version

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_DefaultsWithoutLdflags(t *testing.T) {
	info := Get()

	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "none", info.Commit)
	assert.Equal(t, "unknown", info.Date)
	assert.True(t, strings.HasPrefix(info.GoVersion, "go"), "go version should come from the runtime")
}

func TestGet_JSONShape(t *testing.T) {
	data, err := json.Marshal(Get())
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "version")
	assert.Contains(t, decoded, "commit")
	assert.Contains(t, decoded, "date")
	assert.Contains(t, decoded, "go_version")
}
