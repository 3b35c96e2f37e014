package httpx

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lifewood/adminhub/internal/domain/model"
)

func TestParseContactFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  model.ContactFilter
	}{
		{
			name:  "empty query",
			query: "",
			want:  model.ContactFilter{},
		},
		{
			name:  "explicit All is no constraint",
			query: "status=All&category=All",
			want:  model.ContactFilter{},
		},
		{
			name:  "specific status",
			query: "status=Replied",
			want:  model.ContactFilter{Status: model.ContactStatusReplied},
		},
		{
			name:  "status is case-insensitive",
			query: "status=replied",
			want:  model.ContactFilter{Status: model.ContactStatusReplied},
		},
		{
			name:  "unknown status ignored",
			query: "status=Archived",
			want:  model.ContactFilter{},
		},
		{
			name:  "ignored override without status",
			query: "ignored=true",
			want:  model.ContactFilter{OnlyIgnored: true},
		},
		{
			name:  "specific status wins over ignored override",
			query: "status=New&ignored=true",
			want:  model.ContactFilter{Status: model.ContactStatusNew},
		},
		{
			name:  "category and search",
			query: "category=Business&q=+pricing+",
			want:  model.ContactFilter{Category: "Business", Search: "pricing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ParseContactFilter(q))
		})
	}
}

func TestParseApplicantFilter(t *testing.T) {
	q := url.Values{}
	q.Set("status", "pending")
	q.Set("department", "AI Services")
	q.Set("q", "hopper")

	got := ParseApplicantFilter(q)
	assert.Equal(t, model.ApplicantFilter{
		Status:     model.ApplicantStatusPending,
		Department: "AI Services",
		Search:     "hopper",
	}, got)

	assert.Equal(t, model.ApplicantFilter{}, ParseApplicantFilter(url.Values{"status": {"All"}}))
}
