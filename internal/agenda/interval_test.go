package agenda

import "testing"

func TestParseClock(t *testing.T) {
	t.Run("parses zero padded values", func(t *testing.T) {
		cases := map[string]int{
			"00:00": 0,
			"06:00": 360,
			"09:30": 570,
			"23:59": 1439,
		}
		for value, want := range cases {
			got, err := ParseClock(value)
			if err != nil {
				t.Fatalf("ParseClock(%q) returned error: %v", value, err)
			}
			if got != want {
				t.Fatalf("ParseClock(%q) = %d, want %d", value, got, want)
			}
		}
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		for _, value := range []string{"", "9:00", "09:0", "09-00", "24:00", "09:60", "ab:cd", "09:00:00"} {
			if _, err := ParseClock(value); err == nil {
				t.Fatalf("ParseClock(%q) accepted malformed input", value)
			}
		}
	})
}

func TestIntervalOverlaps(t *testing.T) {
	mustInterval := func(start, end string) Interval {
		t.Helper()
		interval, err := NewInterval(start, end)
		if err != nil {
			t.Fatalf("NewInterval(%q, %q) returned error: %v", start, end, err)
		}
		return interval
	}

	t.Run("touching endpoints do not overlap", func(t *testing.T) {
		a := mustInterval("09:00", "10:00")
		b := mustInterval("10:00", "11:00")
		if a.Overlaps(b) || b.Overlaps(a) {
			t.Fatal("expected touching intervals not to overlap")
		}
	})

	t.Run("partial hour overlap detected", func(t *testing.T) {
		a := mustInterval("09:00", "10:30")
		b := mustInterval("10:00", "11:00")
		if !a.Overlaps(b) || !b.Overlaps(a) {
			t.Fatal("expected overlapping intervals to be detected")
		}
	})

	t.Run("overlap is symmetric", func(t *testing.T) {
		pairs := [][2]Interval{
			{mustInterval("09:00", "12:00"), mustInterval("10:00", "11:00")},
			{mustInterval("09:00", "09:30"), mustInterval("09:15", "10:00")},
			{mustInterval("06:00", "07:00"), mustInterval("08:00", "09:00")},
		}
		for _, pair := range pairs {
			if pair[0].Overlaps(pair[1]) != pair[1].Overlaps(pair[0]) {
				t.Fatalf("overlap not symmetric for %+v", pair)
			}
		}
	})
}

func TestIntervalSpan(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"09:00", "09:45", 1},
		{"09:00", "10:00", 1},
		{"09:00", "10:30", 2},
		{"09:00", "11:15", 3},
		{"06:00", "22:00", 16},
	}
	for _, tc := range cases {
		interval, err := NewInterval(tc.start, tc.end)
		if err != nil {
			t.Fatalf("NewInterval(%q, %q) returned error: %v", tc.start, tc.end, err)
		}
		if got := interval.Span(); got != tc.want {
			t.Fatalf("span of %s-%s = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestIntervalOccupies(t *testing.T) {
	t.Run("exact hour end excludes final slot", func(t *testing.T) {
		interval, _ := NewInterval("09:00", "10:00")
		if !interval.Occupies(9) {
			t.Fatal("expected 09:00 slot to be occupied")
		}
		if interval.Occupies(10) {
			t.Fatal("expected 10:00 slot to be free")
		}
	})

	t.Run("trailing minutes include final slot", func(t *testing.T) {
		interval, _ := NewInterval("09:00", "10:01")
		if !interval.Occupies(9) || !interval.Occupies(10) {
			t.Fatal("expected 09:00 and 10:00 slots to be occupied")
		}
		if interval.Occupies(11) {
			t.Fatal("expected 11:00 slot to be free")
		}
	})

	t.Run("mid hour start belongs to its hour slot", func(t *testing.T) {
		interval, _ := NewInterval("09:15", "10:00")
		if !interval.Occupies(9) {
			t.Fatal("expected 09:00 slot to be occupied")
		}
		if interval.Occupies(8) {
			t.Fatal("expected 08:00 slot to be free")
		}
		if !interval.StartsIn(9) || interval.StartsIn(8) {
			t.Fatal("expected interval to start in the 09:00 slot only")
		}
	})
}
