package textinput

import "testing"

func TestWordBoundaries(t *testing.T) {
	cases := []struct {
		line string
		want []int
	}{
		{"", []int{0, 0}},
		{"ab", []int{0, 2}},
		{"ab cd", []int{0, 3, 5}},
		{"a_b", []int{0, 3}},
		{"hello world", []int{0, 6, 11}},
		{"  lead", []int{0, 2, 6}},
		{"a-b-c", []int{0, 2, 4, 5}},
		{"päron äpple", []int{0, 6, 11}},
	}
	for _, tc := range cases {
		got := wordBoundaries([]rune(tc.line))
		if len(got) != len(tc.want) {
			t.Fatalf("%q: expected %v, got %v", tc.line, tc.want, got)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%q: expected %v, got %v", tc.line, tc.want, got)
			}
		}
	}
}

func TestPrevNextBoundary(t *testing.T) {
	line := []rune("hello world")

	if got := prevBoundary(line, 5); got != 0 {
		t.Fatalf("expected prev boundary 0 from offset 5, got %d", got)
	}
	if got := prevBoundary(line, 8); got != 6 {
		t.Fatalf("expected prev boundary 6 from offset 8, got %d", got)
	}
	if got := prevBoundary(line, 0); got != 0 {
		t.Fatalf("expected prev boundary 0 from offset 0, got %d", got)
	}
	if got := nextBoundary(line, 0); got != 6 {
		t.Fatalf("expected next boundary 6 from offset 0, got %d", got)
	}
	if got := nextBoundary(line, 6); got != 11 {
		t.Fatalf("expected next boundary 11 from offset 6, got %d", got)
	}
	if got := nextBoundary(line, 11); got != 11 {
		t.Fatalf("expected next boundary to stay at end, got %d", got)
	}
}

func TestUnderscoreCountsAsWordRune(t *testing.T) {
	line := []rune("a_b c")
	if got := nextBoundary(line, 0); got != 4 {
		t.Fatalf("expected underscore to keep the word together, got boundary %d", got)
	}
}
