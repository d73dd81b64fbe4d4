package locale

import "testing"

func TestWeekdayMapping(t *testing.T) {
	cases := map[int]string{1: "Ne", 2: "Po", 3: "Út", 4: "St", 5: "Čt", 6: "Pá", 7: "So"}
	for day, want := range cases {
		got, ok := Weekday(day)
		if !ok || got != want {
			t.Fatalf("Weekday(%d) = %q,%v; want %q", day, got, ok, want)
		}
	}
}

func TestMonthMapping(t *testing.T) {
	if got, _ := Month(2); got != "úno" {
		t.Fatalf("expected úno for February, got %q", got)
	}
	if got, _ := Month(9); got != "zář" {
		t.Fatalf("expected zář for September, got %q", got)
	}
	if got, _ := Month(12); got != "pro" {
		t.Fatalf("expected pro for December, got %q", got)
	}
}

func TestOutOfRangeUsesPlaceholder(t *testing.T) {
	for _, day := range []int{-1, 0, 8} {
		if _, ok := Weekday(day); ok {
			t.Fatalf("expected weekday %d to be rejected", day)
		}
		if got := WeekdayOrPlaceholder(day); got != Placeholder {
			t.Fatalf("expected placeholder for weekday %d, got %q", day, got)
		}
	}
	for _, month := range []int{0, 13} {
		if got := MonthOrPlaceholder(month); got != Placeholder {
			t.Fatalf("expected placeholder for month %d, got %q", month, got)
		}
	}
}
