// util/resource_util_test.go
package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dev-Muhammad-Junaid/links-maker/util"
)

func TestExtractResourceID(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		want   string
		ok     bool
	}{
		{"document", "https://docs.google.com/document/d/abc123/edit", "document:abc123", true},
		{"spreadsheet", "https://docs.google.com/spreadsheets/d/sheet9/edit#gid=0", "spreadsheets:sheet9", true},
		{"presentation", "https://docs.google.com/presentation/d/deck7/present", "presentation:deck7", true},
		{"drive file", "https://drive.google.com/file/d/xyz/view", "driveFile:xyz", true},
		{"drive open by id", "https://drive.google.com/open?id=xyz", "driveFile:xyz", true},
		{"docs viewer by id", "https://docs.google.com/viewer?id=qrs", "driveFile:qrs", true},
		{"meet code", "https://meet.google.com/abc-defg-hij", "meet:abc-defg-hij", true},
		{"non google id param", "https://example.com/open?id=xyz", "", false},
		{"plain site", "https://example.com/page", "", false},
		{"docs without document", "https://docs.google.com/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := util.ExtractResourceID(tt.rawURL)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// The identity must not depend on which account the URL is addressed to.
func TestExtractResourceIDRewriteInvariant(t *testing.T) {
	base := "https://docs.google.com/document/d/abc123/edit"
	baseID, ok := util.ExtractResourceID(base)
	assert.True(t, ok)

	for _, idx := range []int{0, 1, 5} {
		rewritten, ok := util.RewriteForAccount(base, idx)
		assert.True(t, ok)

		id, ok := util.ExtractResourceID(rewritten)
		assert.True(t, ok)
		assert.Equal(t, baseID, id)
	}

	meetID, ok := util.ExtractResourceID("https://meet.google.com/abc-defg-hij")
	assert.True(t, ok)
	prefixedID, ok := util.ExtractResourceID("https://meet.google.com/u/2/abc-defg-hij")
	assert.True(t, ok)
	assert.Equal(t, meetID, prefixedID)
}
