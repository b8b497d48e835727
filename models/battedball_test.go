package models

import "testing"

func TestClassifyBattedBallType(t *testing.T) {
	tests := []struct {
		name   string
		angle  float64
		ev     float64
		expect BattedBallType
	}{
		{"steep grounder", 5, 95, GroundBall},
		{"weak low liner is ground ball", 11, 70, GroundBall},
		{"borderline line drive", 10, 95, LineDrive},
		{"mid line drive", 15, 90, LineDrive},
		{"fly ball", 30, 100, FlyBall},
		{"high fly", 49, 100, FlyBall},
		{"popup", 55, 100, Popup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyBattedBallType(tt.angle, tt.ev)
			if got != tt.expect {
				t.Errorf("ClassifyBattedBallType(%v,%v) = %v, want %v", tt.angle, tt.ev, got, tt.expect)
			}
		})
	}
}

// TestClassificationMonotonic exercises the §8 invariant that increasing
// launch angle alone never regresses the classified ball type.
func TestClassificationMonotonic(t *testing.T) {
	order := map[BattedBallType]int{GroundBall: 0, LineDrive: 1, FlyBall: 2, Popup: 3}
	const ev = 100.0
	prev := GroundBall
	for angle := -15.0; angle <= 70.0; angle += 0.5 {
		cur := ClassifyBattedBallType(angle, ev)
		if order[cur] < order[prev] {
			t.Fatalf("classification regressed at angle %v: %v after %v", angle, cur, prev)
		}
		prev = cur
	}
}

func TestBattedBallClamp(t *testing.T) {
	b := BattedBall{Direction: 200, LaunchAngle: 100, ExitVelocity: 500}.Clamp()
	if b.Direction != MaxDirection {
		t.Errorf("Direction = %v, want %v", b.Direction, MaxDirection)
	}
	if b.LaunchAngle != MaxLaunchAngle {
		t.Errorf("LaunchAngle = %v, want %v", b.LaunchAngle, MaxLaunchAngle)
	}
	if b.ExitVelocity != MaxExitVelocity {
		t.Errorf("ExitVelocity = %v, want %v", b.ExitVelocity, MaxExitVelocity)
	}
	if b.Type != Popup {
		t.Errorf("expected clamped 70deg angle to classify as popup, got %v", b.Type)
	}
}

func TestIsFoul(t *testing.T) {
	if !(BattedBall{Direction: -10}).IsFoul() {
		t.Error("negative direction should be foul")
	}
	if !(BattedBall{Direction: 95}).IsFoul() {
		t.Error("direction beyond 90 should be foul")
	}
	if (BattedBall{Direction: 45}).IsFoul() {
		t.Error("dead center should be fair")
	}
}
