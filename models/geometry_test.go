package models

import "testing"

// TestFenceDistance checks the foul-line and dead-center fence distances.
func TestFenceDistance(t *testing.T) {
	tests := []struct {
		name string
		dir  float64
		want float64
	}{
		{"left field line", 0, 100.0},
		{"dead center", 45, 122.0},
		{"right field line", 90, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FenceDistance(tt.dir)
			if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("FenceDistance(%v) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

// TestCarryFactor verifies the trajectory-class lookup table, including
// out-of-range clamping.
func TestCarryFactor(t *testing.T) {
	tests := []struct {
		class int
		want  float64
	}{
		{1, 1.02},
		{2, 1.12},
		{3, 1.17},
		{4, 1.22},
		{0, 1.02},
		{5, 1.22},
	}

	for _, tt := range tests {
		got := CarryFactor(tt.class)
		if got != tt.want {
			t.Errorf("CarryFactor(%d) = %v, want %v", tt.class, got, tt.want)
		}
	}
}

func TestBasePosition(t *testing.T) {
	tests := []struct {
		base Base
		want Vec2
	}{
		{BaseHome, Vec2{0, 0}},
		{BaseFirst, Vec2{19.4, 19.4}},
		{BaseSecond, Vec2{0, 38.8}},
		{BaseThird, Vec2{-19.4, 19.4}},
	}

	for _, tt := range tests {
		got := BasePosition(tt.base)
		if got != tt.want {
			t.Errorf("BasePosition(%v) = %v, want %v", tt.base, got, tt.want)
		}
	}
}

func TestFieldPositionString(t *testing.T) {
	if PositionShortstop.String() != "SS" {
		t.Errorf("expected SS, got %s", PositionShortstop.String())
	}
	if FieldPosition(0).String() != "?" {
		t.Errorf("expected ? for out-of-range position, got %s", FieldPosition(0).String())
	}
}

func TestIsInfieldIsOutfield(t *testing.T) {
	if !PositionShortstop.IsInfield() {
		t.Error("shortstop should be infield")
	}
	if PositionShortstop.IsOutfield() {
		t.Error("shortstop should not be outfield")
	}
	if !PositionCenterField.IsOutfield() {
		t.Error("center field should be outfield")
	}
	if PositionPitcher.IsInfield() {
		t.Error("pitcher should not count as infield for chase-to-stop eligibility")
	}
}
