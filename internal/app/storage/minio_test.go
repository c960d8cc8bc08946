package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"pkg-1.0.tar.gz": "application/gzip",
		"PKG.TGZ":        "application/gzip",
		"pkg.zip":        "application/zip",
		"pkg.tar":        "application/x-tar",
		"manifest.json":  "application/json",
		"pkg.bin":        "application/octet-stream",
		"noext":          "application/octet-stream",
	}
	for name, want := range tests {
		assert.Equal(t, want, ContentType(name), name)
	}
}

func TestObjectName(t *testing.T) {
	a := ObjectName("baseA", "Build.ZIP")
	b := ObjectName("baseA", "Build.ZIP")

	assert.True(t, strings.HasPrefix(a, "baseA/"))
	assert.True(t, strings.HasSuffix(a, ".zip"))
	assert.NotEqual(t, a, b)
}
