package program

import "testing"

// TestExtractSetsReps covers the combined, separate and pyramid rep schemes
// and the defaults.
func TestExtractSetsReps(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantSets string
		wantReps string
	}{
		{name: "combined", input: "Bench Press 4x8", wantSets: "4", wantReps: "8"},
		{name: "combined range", input: "Overhead Press 3x8-10", wantSets: "3", wantReps: "8-10"},
		{name: "combined list strips spaces", input: "Lunges 3 X 12, 10, 8", wantSets: "3", wantReps: "12,10,8"},
		{name: "multiplication sign", input: "Curl 5×5", wantSets: "5", wantReps: "5"},
		{name: "combined wins over words", input: "Deadlift 5x5, then 2 sets of 10 reps", wantSets: "5", wantReps: "5"},
		{name: "separate sets and reps", input: "Goblet Squat 4 sets of 12 reps", wantSets: "4", wantReps: "12"},
		{name: "reps only", input: "Face Pull 15 reps", wantSets: "3", wantReps: "15"},
		{name: "pyramid without reps keyword", input: "Squat 15, 12, 10", wantSets: "3", wantReps: "15, 12, 10"},
		{name: "pyramid overrides reps", input: "Leg Press 4 sets 15,12,10 reps", wantSets: "4", wantReps: "15, 12, 10"},
		{name: "defaults", input: "Plank", wantSets: "3", wantReps: "10-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets, reps := ExtractSetsReps(tt.input)
			if sets != tt.wantSets {
				t.Errorf("sets = %q, want %q", sets, tt.wantSets)
			}
			if reps != tt.wantReps {
				t.Errorf("reps = %q, want %q", reps, tt.wantReps)
			}
		})
	}
}

// TestExtractWeight verifies number/range plus unit extraction.
func TestExtractWeight(t *testing.T) {
	tests := []struct {
		input string
		want  string // empty means nil
	}{
		{"Bench Press 3x10 @ 135 lbs", "135 lbs"},
		{"Dumbbell Row 45-55 lbs", "45-55 lbs"},
		{"KB Swing 24kg", "24 kg"},
		{"Farmer Carry 2 x 32 KILOS", "32 KILOS"},
		{"Sled Push 90 pounds", "90 pounds"},
		{"Plank 60 seconds", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ExtractWeight(tt.input)
			if tt.want == "" {
				if got != nil {
					t.Errorf("ExtractWeight = %q, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ExtractWeight = nil, want %q", tt.want)
			}
			if *got != tt.want {
				t.Errorf("ExtractWeight = %q, want %q", *got, tt.want)
			}
		})
	}
}

// TestExtractRounds verifies the rounds count and its default.
func TestExtractRounds(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"Circuit 1 - 4 rounds", 4},
		{"Superset A (5 Rounds)", 5},
		{"1 round for time", 1},
		{"Circuit 2", 3},
		{"0 rounds", 3},
	}
	for _, tt := range tests {
		if got := ExtractRounds(tt.input); got != tt.want {
			t.Errorf("ExtractRounds(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

// TestRepsCell verifies AMRAP/ALAP tokens are preserved and other values kept
// verbatim.
func TestRepsCell(t *testing.T) {
	tests := map[string]string{
		"amrap":  "AMRAP",
		"ALAP":   "ALAP",
		" 8-10 ": "8-10",
		"":       "10-12",
		"30 sec": "30 sec",
	}
	for in, want := range tests {
		if got := repsCell(in); got != want {
			t.Errorf("repsCell(%q) = %q, want %q", in, got, want)
		}
	}
}
