package main

import "testing"

func TestParseResidentChoice(t *testing.T) {
	cases := []struct {
		name   string
		choice string
		want   []string
	}{
		{"single", "1", []string{"기쁨"}},
		{"multiple", "1, 5, 7", []string{"기쁨", "분노", "슬픔"}},
		{"duplicates collapsed", "2,2,2", []string{"사랑"}},
		{"out of range", "8", nil},
		{"zero", "0", nil},
		{"garbage", "uno,dos", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseResidentChoice(tc.choice)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}
