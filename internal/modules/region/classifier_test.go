package region

import (
	"reflect"
	"testing"
)

func TestClassify_DefaultTable(t *testing.T) {
	c := NewClassifier(DefaultRules())

	tests := []struct {
		name    string
		address string
		lat     float64
		lng     float64
		want    []string
	}{
		{
			name:    "inside kerrytown only",
			address: "407 N Fifth Ave",
			lat:     42.284, lng: -83.744,
			want: []string{"kerrytown"},
		},
		{
			name:    "inside central only",
			address: "500 S State St",
			lat:     42.275, lng: -83.740,
			want: []string{"central"},
		},
		{
			name:    "central and hill overlap band",
			address: "1100 Geddes Ave",
			lat:     42.278, lng: -83.7334,
			want: []string{"central", "hill"},
		},
		{
			name:    "upper burns park only",
			address: "1500 Granger Ave",
			lat:     42.270, lng: -83.730,
			want: []string{"upper_bp"},
		},
		{
			name:    "pierpont keyword regardless of coordinates",
			address: "Pierpont Commons, 2101 Bonisteel Blvd",
			lat:     0, lng: 0,
			want: []string{"pierpont"},
		},
		{
			name:    "keyword is case-insensitive",
			address: "2101 bonisteel blvd near PIERPONT",
			lat:     0, lng: 0,
			want: []string{"pierpont"},
		},
		{
			name:    "outside every box and no keyword",
			address: "1600 Pennsylvania Ave NW",
			lat:     38.8977, lng: -77.0365,
			want: []string{Unknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.address, tt.lat, tt.lng)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassify_BoxBoundariesAreClosed(t *testing.T) {
	c := NewClassifier([]Rule{Box("zone", 1, 2, 10, 20)})

	inside := c.Classify("", 1, 10)
	if !reflect.DeepEqual(inside, []string{"zone"}) {
		t.Errorf("corner point should be inside a closed box, got %v", inside)
	}
	outside := c.Classify("", 0.9999, 10)
	if !reflect.DeepEqual(outside, []string{Unknown}) {
		t.Errorf("point below latMin should be Unknown, got %v", outside)
	}
}

func TestContainsUnknown(t *testing.T) {
	if !ContainsUnknown([]string{Unknown}) {
		t.Error("ContainsUnknown([Unknown]) = false")
	}
	if !ContainsUnknown(nil) {
		t.Error("ContainsUnknown(nil) = false; empty sets are not matchable")
	}
	if ContainsUnknown([]string{"central", "hill"}) {
		t.Error("ContainsUnknown(known regions) = true")
	}
}
