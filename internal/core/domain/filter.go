package domain

import (
	"regexp"
	"strings"
)

var hashtagRE = regexp.MustCompile(`#\S+`)

// FilterSpec holds the optional channel-uploads filters, already lowercased.
type FilterSpec struct {
	Keyword  string
	Hashtags []string
}

// NewFilterSpec normalizes a raw keyword and a comma separated hashtag list.
func NewFilterSpec(keyword, hashtagList string) FilterSpec {
	spec := FilterSpec{Keyword: strings.ToLower(strings.TrimSpace(keyword))}
	for _, tag := range strings.Split(hashtagList, ",") {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			spec.Hashtags = append(spec.Hashtags, tag)
		}
	}
	return spec
}

func (f FilterSpec) IsEmpty() bool {
	return f.Keyword == "" && len(f.Hashtags) == 0
}

// ExtractHashtags returns every whitespace delimited token starting with '#',
// in its original case.
func ExtractHashtags(text string) []string {
	return hashtagRE.FindAllString(text, -1)
}

// HashtagSummary joins the hashtags of text with ", ".
func HashtagSummary(text string) string {
	return strings.Join(ExtractHashtags(text), ", ")
}

// MatchesKeyword is a case-insensitive substring test on title or description.
func (f FilterSpec) MatchesKeyword(title, description string) bool {
	if f.Keyword == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), f.Keyword) ||
		strings.Contains(strings.ToLower(description), f.Keyword)
}

// MatchesHashtags passes when no hashtags are configured or when at least one
// hashtag of the description is in the configured set.
func (f FilterSpec) MatchesHashtags(description string) bool {
	if len(f.Hashtags) == 0 {
		return true
	}
	for _, tag := range ExtractHashtags(description) {
		tag = strings.ToLower(tag)
		for _, want := range f.Hashtags {
			if tag == want {
				return true
			}
		}
	}
	return false
}

// Matches applies both predicates.
func (f FilterSpec) Matches(title, description string) bool {
	return f.MatchesKeyword(title, description) && f.MatchesHashtags(description)
}
