package httpx

import (
	"net/url"
	"strings"

	"github.com/lifewood/adminhub/internal/domain/model"
)

// filterAll is the query value meaning "no constraint" on a dropdown filter.
// The admin UI sends it explicitly, so it is normalized away here.
const filterAll = "All"

// ParseContactFilter builds a contact filter from list query parameters.
//
//	?status=New|Replied|Ignored  exact status (ignored when "All" or absent)
//	?ignored=true                with no specific status, show only Ignored
//	?category=<name>             case-insensitive category match
//	?q=<text>                    free-text search
func ParseContactFilter(q url.Values) model.ContactFilter {
	filter := model.ContactFilter{
		Category: dropdownValue(q.Get("category")),
		Search:   strings.TrimSpace(q.Get("q")),
	}

	status := dropdownValue(q.Get("status"))
	if parsed, ok := model.ParseContactStatus(status); ok {
		filter.Status = parsed
	}
	// The override only means something without a specific status; a status
	// pick always wins.
	if filter.Status == "" && strings.EqualFold(q.Get("ignored"), "true") {
		filter.OnlyIgnored = true
	}
	return filter
}

// ParseApplicantFilter builds an applicant filter from list query parameters.
//
//	?status=Pending|Accepted|Rejected  exact status (ignored when "All" or absent)
//	?department=<name>                 case-insensitive department match
//	?q=<text>                          free-text search
func ParseApplicantFilter(q url.Values) model.ApplicantFilter {
	filter := model.ApplicantFilter{
		Department: dropdownValue(q.Get("department")),
		Search:     strings.TrimSpace(q.Get("q")),
	}
	if parsed, ok := model.ParseApplicantStatus(dropdownValue(q.Get("status"))); ok {
		filter.Status = parsed
	}
	return filter
}

func dropdownValue(raw string) string {
	v := strings.TrimSpace(raw)
	if strings.EqualFold(v, filterAll) {
		return ""
	}
	return v
}
