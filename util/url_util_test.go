// util/url_util_test.go
package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dev-Muhammad-Junaid/links-maker/util"
)

func TestRewriteForAccount(t *testing.T) {
	tests := []struct {
		name      string
		rawURL    string
		authIndex int
		want      string
		ok        bool
	}{
		{
			name:      "docs document gets u-index and authuser",
			rawURL:    "https://docs.google.com/document/d/abc123/edit",
			authIndex: 1,
			want:      "https://docs.google.com/document/u/1/d/abc123/edit?authuser=1",
			ok:        true,
		},
		{
			name:      "spreadsheet gets u-index and authuser",
			rawURL:    "https://docs.google.com/spreadsheets/d/sheet9/edit",
			authIndex: 2,
			want:      "https://docs.google.com/spreadsheets/u/2/d/sheet9/edit?authuser=2",
			ok:        true,
		},
		{
			name:      "drive file only gets authuser",
			rawURL:    "https://drive.google.com/file/d/xyz/view",
			authIndex: 2,
			want:      "https://drive.google.com/file/d/xyz/view?authuser=2",
			ok:        true,
		},
		{
			name:      "existing path u-index is replaced",
			rawURL:    "https://drive.google.com/drive/u/0/my-drive",
			authIndex: 3,
			want:      "https://drive.google.com/drive/u/3/my-drive?authuser=3",
			ok:        true,
		},
		{
			name:      "meet code gets u prefix",
			rawURL:    "https://meet.google.com/abc-defg-hij",
			authIndex: 1,
			want:      "https://meet.google.com/u/1/abc-defg-hij?authuser=1",
			ok:        true,
		},
		{
			name:      "meet root is left unprefixed",
			rawURL:    "https://meet.google.com/",
			authIndex: 0,
			want:      "https://meet.google.com/?authuser=0",
			ok:        true,
		},
		{
			name:      "non google host only gets authuser",
			rawURL:    "https://example.com/page?x=1",
			authIndex: 1,
			want:      "https://example.com/page?authuser=1&x=1",
			ok:        true,
		},
		{
			name:      "negative index is rejected",
			rawURL:    "https://docs.google.com/document/d/abc123/edit",
			authIndex: -1,
			ok:        false,
		},
		{
			name:      "relative url is rejected",
			rawURL:    "/document/d/abc123/edit",
			authIndex: 0,
			ok:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := util.RewriteForAccount(tt.rawURL, tt.authIndex)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRewriteForAccountIdempotent(t *testing.T) {
	first, ok := util.RewriteForAccount("https://docs.google.com/document/d/abc123/edit", 1)
	assert.True(t, ok)

	second, ok := util.RewriteForAccount(first, 1)
	assert.True(t, ok)
	assert.Equal(t, first, second)
}

func TestRewriteForAccountReaddress(t *testing.T) {
	first, ok := util.RewriteForAccount("https://docs.google.com/document/d/abc123/edit", 1)
	assert.True(t, ok)

	second, ok := util.RewriteForAccount(first, 2)
	assert.True(t, ok)
	assert.Equal(t, "https://docs.google.com/document/u/2/d/abc123/edit?authuser=2", second)
}

func TestParseAuthIndex(t *testing.T) {
	tests := []struct {
		name   string
		rawURL string
		want   int
		ok     bool
	}{
		{"authuser param", "https://docs.google.com/document/d/abc?authuser=2", 2, true},
		{"path u segment", "https://drive.google.com/drive/u/3/my-drive", 3, true},
		{"param wins over path", "https://drive.google.com/drive/u/3/my-drive?authuser=1", 1, true},
		{"no index", "https://docs.google.com/document/d/abc", 0, false},
		{"malformed param", "https://docs.google.com/?authuser=abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := util.ParseAuthIndex(tt.rawURL)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestIsMeetURL(t *testing.T) {
	assert.True(t, util.IsMeetURL("https://meet.google.com/abc-defg-hij"))
	assert.True(t, util.IsMeetURL("https://meet.google.com/lookup/xyz"))
	assert.True(t, util.IsMeetURL("https://meet.google.com/v2/123"))
	assert.False(t, util.IsMeetURL("https://meet.google.com/"))
	assert.False(t, util.IsMeetURL("https://meet.google.com/landing"))
	assert.False(t, util.IsMeetURL("https://docs.google.com/abc-defg-hij"))
}

func TestStripMeetUIndex(t *testing.T) {
	assert.Equal(t, "/abc-defg-hij", util.StripMeetUIndex("/u/2/abc-defg-hij"))
	assert.Equal(t, "/abc-defg-hij", util.StripMeetUIndex("/abc-defg-hij"))
	assert.Equal(t, "/", util.StripMeetUIndex(""))
	assert.Equal(t, "/landing", util.StripMeetUIndex("/landing"))
}
