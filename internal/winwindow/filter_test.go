package winwindow

import "testing"

func TestShouldInclude(t *testing.T) {
	cases := []struct {
		name string
		c    Candidate
		want bool
	}{
		{
			name: "normal window included",
			c:    Candidate{Visible: true, ClassName: "Notepad", Title: "Untitled - Notepad", Width: 500, Height: 400},
			want: true,
		},
		{
			name: "invisible excluded",
			c:    Candidate{Visible: false, ClassName: "Notepad", Title: "x", Width: 500, Height: 400},
			want: false,
		},
		{
			name: "owned window excluded",
			c:    Candidate{Visible: true, HasOwner: true, ClassName: "Notepad", Title: "x", Width: 500, Height: 400},
			want: false,
		},
		{
			name: "skip-set class excluded",
			c:    Candidate{Visible: true, ClassName: "Shell_TrayWnd", Title: "x", Width: 500, Height: 400},
			want: false,
		},
		{
			name: "whitespace title excluded",
			c:    Candidate{Visible: true, ClassName: "Notepad", Title: "   ", Width: 500, Height: 400},
			want: false,
		},
		{
			name: "too small excluded",
			c:    Candidate{Visible: true, ClassName: "Notepad", Title: "x", Width: 50, Height: 50},
			want: false,
		},
		{
			name: "exactly at threshold included",
			c:    Candidate{Visible: true, ClassName: "Notepad", Title: "x", Width: 100, Height: 100},
			want: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldInclude(tc.c); got != tc.want {
				t.Fatalf("ShouldInclude(%+v) = %v, want %v", tc.c, got, tc.want)
			}
		})
	}
}
