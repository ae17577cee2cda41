package client

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateImageKey(t *testing.T) {
	c := &S3Client{bucket: "test-bucket", region: "ap-northeast-2"}

	tests := []struct {
		name       string
		category   string
		ext        string
		wantErr    bool
		wantPrefix string
	}{
		{
			name:       "jpg under category",
			category:   "Environment",
			ext:        ".jpg",
			wantPrefix: "images/environment/",
		},
		{
			name:       "uppercase extension accepted",
			category:   "food drive",
			ext:        ".PNG",
			wantPrefix: "images/food-drive/",
		},
		{
			name:       "empty category falls back",
			category:   "",
			ext:        ".webp",
			wantPrefix: "images/general/",
		},
		{
			name:     "executable extension rejected",
			category: "environment",
			ext:      ".exe",
			wantErr:  true,
		},
		{
			name:     "missing extension rejected",
			category: "environment",
			ext:      "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := c.GenerateImageKey(tt.category, tt.ext)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(key, tt.wantPrefix), "key %q should start with %q", key, tt.wantPrefix)
			assert.True(t, strings.HasSuffix(key, strings.ToLower(tt.ext)))
		})
	}
}

func TestGenerateImageKeyUnique(t *testing.T) {
	c := &S3Client{bucket: "test-bucket", region: "ap-northeast-2"}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		key, err := c.GenerateImageKey("environment", ".jpg")
		require.NoError(t, err)
		assert.False(t, seen[key], "duplicate key %q", key)
		seen[key] = true
	}
}

func TestImageURL(t *testing.T) {
	t.Run("aws", func(t *testing.T) {
		c := &S3Client{bucket: "events", region: "ap-northeast-2"}
		assert.Equal(t,
			"https://events.s3.ap-northeast-2.amazonaws.com/images/general/a.jpg",
			c.ImageURL("images/general/a.jpg"))
	})

	t.Run("minio endpoint", func(t *testing.T) {
		c := &S3Client{bucket: "events", endpoint: "http://localhost:9000/"}
		assert.Equal(t,
			"http://localhost:9000/events/images/general/a.jpg",
			c.ImageURL("images/general/a.jpg"))
	})
}

func TestSanitizeCategory(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Environment", "environment"},
		{"Food Drive", "food-drive"},
		{"  beach_cleanup ", "beach-cleanup"},
		{"!!!", "general"},
		{"", "general"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sanitizeCategory(tt.in))
	}
}
