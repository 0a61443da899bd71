package scoring

import "testing"

func TestDefaultScore(t *testing.T) {
	w := Default()

	cases := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{
			name: "typical line",
			// 25 + 10 + 8*1.5 + 2*2 + 1*2 - 3*2 + 3 + 2*0.5 = 51
			stats: Stats{Points: 25, Rebounds: 10, Assists: 8, Steals: 2, Blocks: 1, Turnovers: 3, ThreesMade: 3, OffensiveRebounds: 2},
			want:  51.0,
		},
		{
			name:  "zero line",
			stats: Stats{},
			want:  0.0,
		},
		{
			name: "turnover heavy goes negative",
			stats: Stats{Points: 2, Turnovers: 5},
			want:  -8.0,
		},
		{
			name: "rounds to one decimal",
			stats: Stats{Assists: 1, OffensiveRebounds: 1}, // 1.5 + 0.5
			want:  2.0,
		},
	}

	for _, tc := range cases {
		if got := w.Score(tc.stats); got != tc.want {
			t.Errorf("%s: Score() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMissedShotPenalties(t *testing.T) {
	w := Default()
	w.FieldGoalsMissed = -0.5
	w.FreeThrowsMissed = -0.5

	// 10 pts, 4/10 FG (6 misses), 2/4 FT (2 misses): 10 - 3 - 1 = 6
	stats := Stats{Points: 10, FieldGoalsMade: 4, FieldGoalsAttempted: 10, FreeThrowsMade: 2, FreeThrowsAttempted: 4}
	if got := w.Score(stats); got != 6.0 {
		t.Errorf("Score() = %v, want 6.0", got)
	}
}

func TestDoubleDoubleBonuses(t *testing.T) {
	w := Default()
	w.DoubleDouble = 1.5
	w.TripleDouble = 3.0

	dd := Stats{Points: 20, Rebounds: 12}          // two categories in double digits
	td := Stats{Points: 20, Rebounds: 12, Assists: 10} // three

	base := Default()
	if got, want := w.Score(dd), base.Score(dd)+1.5; got != want {
		t.Errorf("double-double Score() = %v, want %v", got, want)
	}
	if got, want := w.Score(td), base.Score(td)+3.0; got != want {
		t.Errorf("triple-double Score() = %v, want %v (bonuses must not stack)", got, want)
	}
}

func TestSettingsUpdateAndReset(t *testing.T) {
	s := NewSettings()
	if s.Name() != "standard" {
		t.Fatalf("initial name = %q", s.Name())
	}

	custom := Default()
	custom.Assists = 2.0
	s.Update("punt-ft", custom)

	if s.Name() != "punt-ft" {
		t.Errorf("name after update = %q", s.Name())
	}
	if got := s.Weights().Assists; got != 2.0 {
		t.Errorf("assists weight = %v, want 2.0", got)
	}

	s.Reset()
	if s.Name() != "standard" || s.Weights().Assists != 1.5 {
		t.Error("Reset did not restore standard weights")
	}
}
