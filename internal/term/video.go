package term

import (
	"regexp"
	"strings"
)

var (
	videoHostPrefixes = []string{
		"https://www.youtube.com/",
		"https://youtube.com/",
		"https://m.youtube.com/",
		"https://youtu.be/",
	}
	clipTimePattern = regexp.MustCompile(`^(\d{1,2}:)?\d{1,2}:\d{2}$`)
)

// IsValid reports whether the clip points at a known video host and has
// start and end times in MM:SS or HH:MM:SS form.
func (v Video) IsValid() bool {
	return isVideoHostURL(v.URL) &&
		clipTimePattern.MatchString(v.Start) &&
		clipTimePattern.MatchString(v.End)
}

func isVideoHostURL(url string) bool {
	for _, prefix := range videoHostPrefixes {
		if strings.HasPrefix(url, prefix) {
			return true
		}
	}
	return false
}

// AcceptedVideos drops invalid clips and numbers the rest from zero.
func AcceptedVideos(videos []Video) []Video {
	accepted := make([]Video, 0, len(videos))
	for _, v := range videos {
		if !v.IsValid() {
			continue
		}
		v.Order = len(accepted)
		accepted = append(accepted, v)
	}
	return accepted
}

// NormalizeTags trims tags, drops empty ones, and collapses duplicates, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}
