package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "scraped contact page",
			in:   "Contact me at a@b.com! Price: $100. Visit now...",
			want: "Contact me at Price Visit now",
		},
		{
			name: "plain words untouched",
			in:   "audience segmentation works",
			want: "audience segmentation works",
		},
		{
			name: "non ascii removed",
			in:   "café menü résumé",
			want: "caf men rsum",
		},
		{
			name: "email tokens removed whole",
			in:   "write support@example.com today",
			want: "write today",
		},
		{
			name: "digit runs removed",
			in:   "version 2 build 1234 shipped",
			want: "version build shipped",
		},
		{
			name: "whitespace collapsed and trimmed",
			in:   "  spaced \t out \n lines  ",
			want: "spaced out lines",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "only noise",
			in:   "$$$ 123 ☃ ...",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"Contact me at a@b.com! Price: $100. Visit now...",
		"plain text stays plain",
		"  mixed   UP° input 42 a@b.c  ",
		"",
		"!?.,",
	}

	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "Clean must be idempotent for %q", in)
	}
}
