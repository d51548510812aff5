package model

import "testing"

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		in   string
		want MediaType
	}{
		{"audio", MediaAudio},
		{"video", MediaVideo},
		{"", MediaVideo},
		{"Audio", MediaVideo},
		{"mp3", MediaVideo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseMediaType(tt.in); got != tt.want {
				t.Errorf("ParseMediaType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVideoHeight(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"1080p", 1080},
		{"720p", 720},
		{"480p", 480},
		{"360p", 360},
		{"", 720},
		{"4k", 720},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := VideoHeight(tt.label); got != tt.want {
				t.Errorf("VideoHeight(%q) = %d, want %d", tt.label, got, tt.want)
			}
		})
	}
}

func TestAudioQualityLevel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"320", "0"},
		{"192", "2"},
		{"128", "5"},
		{"", "2"},
		{"64", "2"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := AudioQualityLevel(tt.label); got != tt.want {
				t.Errorf("AudioQualityLevel(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}
