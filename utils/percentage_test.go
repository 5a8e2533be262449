package utils

import "testing"

func TestPercentage_Golden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		received int64
		total    int64
		want     float64
	}{
		{name: "half of 50MB", received: 25_000_000, total: 50_000_000, want: 50},
		{name: "ten percent", received: 5_000_000, total: 50_000_000, want: 10},
		{name: "complete", received: 10, total: 10, want: 100},
		{name: "server under-reported size clamps", received: 120, total: 100, want: 100},
		{name: "unknown total", received: 120, total: -1, want: 0},
		{name: "nothing yet", received: 0, total: 100, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Percentage(tt.received, tt.total); got != tt.want {
				t.Fatalf("got=%v want %v", got, tt.want)
			}
		})
	}
}
