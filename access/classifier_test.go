// access/classifier_test.go
package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dev-Muhammad-Junaid/links-maker/model"
)

func TestClassify(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name string
		in   model.ProbeResponse
		want model.AccessStatus
		rule string
	}{
		{
			name: "401 is denied",
			in:   model.ProbeResponse{Status: 401, FinalURL: "https://docs.google.com/document/d/abc/edit"},
			want: model.StatusNoAccess,
			rule: RuleLoginOrDenied,
		},
		{
			name: "403 is denied",
			in:   model.ProbeResponse{Status: 403, FinalURL: "https://drive.google.com/file/d/xyz/view"},
			want: model.StatusNoAccess,
			rule: RuleLoginOrDenied,
		},
		{
			name: "login redirect is denied even with 200",
			in:   model.ProbeResponse{Status: 200, FinalURL: "https://accounts.google.com/ServiceLogin?continue=x"},
			want: model.StatusNoAccess,
			rule: RuleLoginOrDenied,
		},
		{
			name: "meet lookup redirect is denied",
			in:   model.ProbeResponse{Status: 200, FinalURL: "https://meet.google.com/lookup/abc123"},
			want: model.StatusNoAccess,
			rule: RuleMeetLookup,
		},
		{
			name: "meet body join now is access",
			in: model.ProbeResponse{
				Status:      200,
				FinalURL:    "https://meet.google.com/landing",
				BodySnippet: "<div>Join now</div>",
			},
			want: model.StatusAccess,
			rule: RuleMeetBody,
		},
		{
			name: "meet body ask to join is denied",
			in: model.ProbeResponse{
				Status:      200,
				FinalURL:    "https://meet.google.com/abc-defg-hij",
				BodySnippet: "<div>Ask to join</div>",
			},
			want: model.StatusNoAccess,
			rule: RuleMeetBody,
		},
		{
			name: "meet body room missing is denied",
			in: model.ProbeResponse{
				Status:      200,
				FinalURL:    "https://meet.google.com/abc-defg-hij",
				BodySnippet: "this meeting doesn't exist",
			},
			want: model.StatusNoAccess,
			rule: RuleMeetBody,
		},
		{
			name: "meet code without body markers is access",
			in:   model.ProbeResponse{Status: 200, FinalURL: "https://meet.google.com/abc-defg-hij"},
			want: model.StatusAccess,
			rule: RuleMeetCodeOrV2,
		},
		{
			name: "meet code under u prefix is access",
			in:   model.ProbeResponse{Status: 200, FinalURL: "https://meet.google.com/u/3/abc-defg-hij"},
			want: model.StatusAccess,
			rule: RuleMeetCodeOrV2,
		},
		{
			name: "meet v2 path is access",
			in:   model.ProbeResponse{Status: 200, FinalURL: "https://meet.google.com/v2/123"},
			want: model.StatusAccess,
			rule: RuleMeetCodeOrV2,
		},
		{
			name: "meet landing without markers is unknown",
			in:   model.ProbeResponse{Status: 200, FinalURL: "https://meet.google.com/landing"},
			want: model.StatusUnknown,
			rule: RuleMeetLandingUnknown,
		},
		{
			name: "docs 200 is access",
			in:   model.ProbeResponse{Status: 200, FinalURL: "https://docs.google.com/document/d/abc/edit"},
			want: model.StatusAccess,
			rule: RuleFallbackStatus,
		},
		{
			name: "204 is access",
			in:   model.ProbeResponse{Status: 204, FinalURL: "https://drive.google.com/file/d/xyz/view"},
			want: model.StatusAccess,
			rule: RuleFallbackStatus,
		},
		{
			name: "404 is unknown",
			in:   model.ProbeResponse{Status: 404, FinalURL: "https://drive.google.com/file/d/xyz/view"},
			want: model.StatusUnknown,
			rule: RuleFallbackStatus,
		},
		{
			name: "500 is unknown",
			in:   model.ProbeResponse{Status: 500, FinalURL: "https://docs.google.com/document/d/abc/edit"},
			want: model.StatusUnknown,
			rule: RuleFallbackStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.in)
			assert.Equal(t, tt.want, got.Status)
			assert.Equal(t, tt.rule, got.Rule)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	classifier := NewClassifier()
	in := model.ProbeResponse{Status: 200, FinalURL: "https://meet.google.com/abc-defg-hij"}

	first := classifier.Classify(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, classifier.Classify(in))
	}
}
