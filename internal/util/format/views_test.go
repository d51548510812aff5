package format

import "testing"

func TestViews(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{n: 0, want: "0"},
		{n: 999, want: "999"},
		{n: 1000, want: "1.0K"},
		{n: 1500, want: "1.5K"},
		{n: 12345, want: "12.3K"},
		{n: 999999, want: "1000.0K"},
		{n: 1000000, want: "1.0M"},
		{n: 2760000, want: "2.8M"},
		{n: 1234567890, want: "1234.6M"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Views(tt.n); got != tt.want {
				t.Errorf("Views(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}
