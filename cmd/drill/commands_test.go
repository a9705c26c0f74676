package main

import "testing"

func TestSourceKind(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"https://github.com/alice/exercises.git", "git"},
		{"http://git.example.com/exercises", "git"},
		{"git@github.com:alice/exercises.git", "git"},
		{"/home/alice/exercises.git", "git"},
		{"/home/alice/exercises", "local"},
		{"exercises", "local"},
	}
	for _, tc := range tests {
		if got := sourceKind(tc.path); got != tc.want {
			t.Errorf("sourceKind(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"what is a closure?", "what is a closure?"},
		{"first line\nsecond line", "first line"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := firstLine(tc.in); got != tc.want {
			t.Errorf("firstLine(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
