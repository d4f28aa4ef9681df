package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideo_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		video Video
		want  bool
	}{
		{"youtube watch url", Video{URL: "https://www.youtube.com/watch?v=abc", Start: "00:01", End: "00:10"}, true},
		{"youtube without www", Video{URL: "https://youtube.com/watch?v=abc", Start: "0:01", End: "0:10"}, true},
		{"mobile youtube", Video{URL: "https://m.youtube.com/watch?v=abc", Start: "1:00:01", End: "1:00:10"}, true},
		{"short link", Video{URL: "https://youtu.be/abc", Start: "12:34:56", End: "12:35:00"}, true},
		{"other host", Video{URL: "https://example.com/watch?v=abc", Start: "00:01", End: "00:10"}, false},
		{"http scheme", Video{URL: "http://www.youtube.com/watch?v=abc", Start: "00:01", End: "00:10"}, false},
		{"lookalike host", Video{URL: "https://youtube.com.example.com/", Start: "00:01", End: "00:10"}, false},
		{"seconds without padding", Video{URL: "https://youtu.be/abc", Start: "00:1", End: "00:10"}, false},
		{"too many fields", Video{URL: "https://youtu.be/abc", Start: "1:00:00:00", End: "00:10"}, false},
		{"empty end", Video{URL: "https://youtu.be/abc", Start: "00:01", End: ""}, false},
		{"plain seconds", Video{URL: "https://youtu.be/abc", Start: "15", End: "00:10"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.video.IsValid())
		})
	}
}

func TestAcceptedVideos(t *testing.T) {
	got := AcceptedVideos([]Video{
		{URL: "https://example.com/a", Start: "00:01", End: "00:02", Order: 0},
		{URL: "https://youtu.be/b", Start: "00:01", End: "00:02", Order: 1},
		{URL: "https://youtu.be/c", Start: "bad", End: "00:02", Order: 2},
		{URL: "https://www.youtube.com/d", Start: "00:03", End: "00:04", Order: 3},
	})

	assert.Equal(t, []Video{
		{URL: "https://youtu.be/b", Start: "00:01", End: "00:02", Order: 0},
		{URL: "https://www.youtube.com/d", Start: "00:03", End: "00:04", Order: 1},
	}, got)

	assert.Empty(t, AcceptedVideos(nil))
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"trims and drops empty", []string{" toeic ", "", "   "}, []string{"toeic"}},
		{"collapses duplicates in first-seen order", []string{"verb", "toeic", "verb ", "toeic"}, []string{"verb", "toeic"}},
		{"case sensitive", []string{"Verb", "verb"}, []string{"Verb", "verb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.tags))
		})
	}
}
