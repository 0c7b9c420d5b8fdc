package schedule

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"9:00", 540, true},
		{"09:30", 570, true},
		{"7:00 PM", 1140, true},
		{"19:00 PM", 1140, true}, // already 24-hour; suffix ignored
		{"19:00", 1140, true},
		{"12:00 AM", 0, true},
		{"12:00 PM", 720, true},
		{"12:30 AM", 30, true},
		{"1:05AM", 65, true},
		{"  10:15 pm ", 1335, true},
		{"8", 480, true},
		{"8 PM", 1200, true},
		// lenient failures resolve to zero minutes
		{"", 0, false},
		{"noon", 0, false},
		{"25:00", 0, false},
		{"10:75", 0, false},
		{"-1:00", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseClock(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseClock(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"touching boundary excluded", 540, 600, 600, 660, false},
		{"partial overlap", 540, 630, 600, 660, true},
		{"containment", 540, 720, 600, 660, true},
		{"disjoint", 540, 600, 720, 780, false},
		{"identical", 540, 600, 540, 600, true},
		{"reverse touching", 600, 660, 540, 600, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("Overlaps(%d,%d,%d,%d) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}
