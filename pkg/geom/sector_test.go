package geom

import "testing"

func TestSectorContains(t *testing.T) {
	quadrant := Sector{Center: Point{}, Radius: 5, StartDeg: 0, EndDeg: 90}
	wrapping := Sector{Center: Point{}, Radius: 5, StartDeg: 315, EndDeg: 45}

	tests := []struct {
		name string
		s    Sector
		p    Point
		want bool
	}{
		{"InsideArc", quadrant, Point{X: 3, Y: 3}, true},
		{"OnStartBearing", quadrant, Point{X: 2, Y: 0}, true},
		{"OnEndBearing", quadrant, Point{X: 0, Y: 2}, true},
		{"OutsideArc", quadrant, Point{X: -3, Y: 3}, false},
		{"BeyondRadius", quadrant, Point{X: 4, Y: 4}, false},
		{"ExactCenter", quadrant, Point{}, true},
		{"WrapInsideBefore", wrapping, Point{X: 3, Y: -2}, true},
		{"WrapInsideAfter", wrapping, Point{X: 3, Y: 2}, true},
		{"WrapOutside", wrapping, Point{X: 0, Y: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestSectorFullCircleContains(t *testing.T) {
	disc := Sector{Center: Point{}, Radius: 4, StartDeg: 0, EndDeg: 360}
	turned := Sector{Center: Point{}, Radius: 4, StartDeg: 90, EndDeg: 450}
	zeroWidth := Sector{Center: Point{}, Radius: 4, StartDeg: 45, EndDeg: 45}

	tests := []struct {
		name string
		s    Sector
		p    Point
		want bool
	}{
		{"DiscFirstQuadrant", disc, Point{X: 1, Y: 1}, true},
		{"DiscNorth", disc, Point{X: 0, Y: 2}, true},
		{"DiscWest", disc, Point{X: -3, Y: 0}, true},
		{"DiscBeyondRadius", disc, Point{X: 5, Y: 0}, false},
		{"TurnedStartEverywhere", turned, Point{X: 2, Y: -2}, true},
		{"ZeroWidthOffBearing", zeroWidth, Point{X: 2, Y: 0}, false},
		{"ZeroWidthOnBearing", zeroWidth, Point{X: 1, Y: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestSectorFullCircle(t *testing.T) {
	tests := []struct {
		name string
		s    Sector
		want bool
	}{
		{"ZeroTo360", Sector{Radius: 4, StartDeg: 0, EndDeg: 360}, true},
		{"NinetyTo450", Sector{Radius: 4, StartDeg: 90, EndDeg: 450}, true},
		{"ZeroWidth", Sector{Radius: 4, StartDeg: 45, EndDeg: 45}, false},
		{"Quadrant", Sector{Radius: 4, StartDeg: 0, EndDeg: 90}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.FullCircle(); got != tt.want {
				t.Errorf("FullCircle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSectorRadialDir(t *testing.T) {
	s := Sector{Center: Point{X: 1, Y: 1}, Radius: 4, StartDeg: 0, EndDeg: 360}

	dx, dy, ok := s.RadialDir(Point{X: 4, Y: 1})
	if !ok {
		t.Fatal("RadialDir: ok = false for off-center point")
	}
	if !almostEqual(dx, 1) || !almostEqual(dy, 0) {
		t.Errorf("RadialDir = (%v, %v), want (1, 0)", dx, dy)
	}

	if _, _, ok := s.RadialDir(Point{X: 1, Y: 1}); ok {
		t.Error("RadialDir: ok = true at the exact center")
	}
}

func TestBearing(t *testing.T) {
	origin := Point{}

	tests := []struct {
		name string
		to   Point
		want float64
	}{
		{"East", Point{X: 1, Y: 0}, 0},
		{"North", Point{X: 0, Y: 1}, 90},
		{"West", Point{X: -1, Y: 0}, 180},
		{"South", Point{X: 0, Y: -1}, 270},
		{"NorthEast", Point{X: 1, Y: 1}, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bearing(origin, tt.to); !almostEqual(got, tt.want) {
				t.Errorf("Bearing = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormDeg(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{450, 90},
		{-720, 0},
	}
	for _, tt := range tests {
		if got := NormDeg(tt.in); !almostEqual(got, tt.want) {
			t.Errorf("NormDeg(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBoxIntersectsSector(t *testing.T) {
	s := Sector{Center: Point{}, Radius: 5, StartDeg: 0, EndDeg: 90}

	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"CornerInside", NewBox(2, 2, 6, 6), true},
		{"CenterInside", NewBox(1, 1, 3, 3), true},
		{"FullyOutside", NewBox(-6, -6, -4, -4), false},
		{"WrongQuadrant", NewBox(-3, 1, -1, 3), false},
		// Known approximation: this box truly intersects the sector near the
		// arc boundary (e.g. at (0.3, 4.95)), but the center and all four
		// corners sample outside, so the conservative test reports false.
		{"EdgeCrossingMissed", NewBox(-1, 4.9, 1, 5.2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoxIntersectsSector(tt.b, s); got != tt.want {
				t.Errorf("BoxIntersectsSector = %v, want %v", got, tt.want)
			}
		})
	}
}
