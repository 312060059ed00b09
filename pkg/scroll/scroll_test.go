package scroll

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want int
	}{
		{
			name: "content fits viewport",
			in:   Input{Dy: 40, Edges: Edges{Top: 0, Bottom: 100, First: 0, Last: 5}, ItemCount: 6, ViewportHeight: 150},
			want: 0,
		},
		{
			name: "up inside body",
			in:   Input{Dy: -30, Edges: Edges{Top: -10, Bottom: 200, First: 3, Last: 9}, ItemCount: 12, ViewportHeight: 150},
			want: -30,
		},
		{
			name: "up at start already aligned",
			in:   Input{Dy: -50, Edges: Edges{Top: 0, Bottom: 200, First: 0, Last: 5}, ItemCount: 12, ViewportHeight: 150},
			want: 0,
		},
		{
			name: "up at start pulls back overscroll",
			in:   Input{Dy: -50, Edges: Edges{Top: 20, Bottom: 220, First: 0, Last: 5}, ItemCount: 12, ViewportHeight: 150},
			want: 20,
		},
		{
			name: "up near start stops at the first item",
			in:   Input{Dy: -50, Edges: Edges{Top: -20, Bottom: 180, First: 0, Last: 5}, ItemCount: 12, ViewportHeight: 150},
			want: -20,
		},
		{
			name: "up before start not realized",
			in:   Input{Dy: -50, Edges: Edges{Top: 0, Bottom: 200, First: 3, Last: 8}, ItemCount: 12, ViewportHeight: 150},
			want: 0,
		},
		{
			name: "down inside body",
			in:   Input{Dy: 30, Edges: Edges{Top: 0, Bottom: 200, First: 0, Last: 5}, ItemCount: 12, ViewportHeight: 150},
			want: 30,
		},
		{
			name: "down near end stops at the last item",
			in:   Input{Dy: 30, Edges: Edges{Top: -250, Bottom: 160, First: 4, Last: 11}, ItemCount: 12, ViewportHeight: 150},
			want: 10,
		},
		{
			name: "down before last item moves full delta",
			in:   Input{Dy: 30, Edges: Edges{Top: -250, Bottom: 160, First: 4, Last: 10}, ItemCount: 12, ViewportHeight: 150},
			want: 30,
		},
		{
			name: "down at end already aligned",
			in:   Input{Dy: 30, Edges: Edges{Top: -250, Bottom: 150, First: 4, Last: 11}, ItemCount: 12, ViewportHeight: 150},
			want: 0,
		},
		{
			name: "down at end pulls back overscroll",
			in:   Input{Dy: 30, Edges: Edges{Top: -270, Bottom: 130, First: 4, Last: 11}, ItemCount: 12, ViewportHeight: 150},
			want: -20,
		},
		{
			name: "down before end not realized",
			in:   Input{Dy: 30, Edges: Edges{Top: 0, Bottom: 150, First: 0, Last: 5}, ItemCount: 12, ViewportHeight: 150},
			want: 0,
		},
		{
			name: "zero delta",
			in:   Input{Dy: 0, Edges: Edges{Top: -10, Bottom: 200, First: 0, Last: 5}, ItemCount: 12, ViewportHeight: 150},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.in); got != tt.want {
				t.Errorf("Clamp() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBound(t *testing.T) {
	tests := []struct {
		name               string
		dt, top, bottom, h int
		want               int
	}{
		{name: "inside content", dt: 40, top: -100, bottom: 400, h: 150, want: 40},
		{name: "jump past end", dt: 1000, top: -100, bottom: 400, h: 150, want: 250},
		{name: "jump past start", dt: -1000, top: -100, bottom: 400, h: 150, want: -100},
		{name: "pull back overscroll", dt: -20, top: -300, bottom: 130, h: 150, want: -20},
		{name: "already at end", dt: 30, top: -250, bottom: 150, h: 150, want: 0},
		{name: "zero", dt: 0, top: -10, bottom: 400, h: 150, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bound(tt.dt, tt.top, tt.bottom, tt.h); got != tt.want {
				t.Errorf("Bound(%d) = %d, want %d", tt.dt, got, tt.want)
			}
		})
	}
}
