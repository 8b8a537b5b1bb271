package program

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseVocabularyOverlay(t *testing.T) {
	data := []byte(`
exercise_keywords: [" Sled Push ", Carry]
skip_patterns: ['^\d+\s*min']
`)
	v, err := ParseVocabulary(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !v.HasExerciseKeyword("farmer carry") {
		t.Error("overlay keyword not matched")
	}
	if v.HasExerciseKeyword("bench press") {
		t.Error("default keywords should be replaced by the overlay")
	}
	if !v.IsSkipped("10 min amrap") {
		t.Error("overlay skip pattern not applied")
	}
	if v.IsSkipped("rest 60 seconds") {
		t.Error("default skip patterns should be replaced by the overlay")
	}
	if len(v.MuscleGroups) != len(defaultMuscleGroups) {
		t.Errorf("muscle groups = %d, want defaults", len(v.MuscleGroups))
	}
}

func TestParseVocabularyErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "exercise_keywords: [unterminated"},
		{"bad regexp", "skip_patterns: ['(']"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseVocabulary([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.yaml")
	if err := os.WriteFile(path, []byte("column_headers: [Movement, Load]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := LoadVocabulary(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.IsColumnHeader("movement load tempo") {
		t.Error("overlay column header not matched")
	}
	if v.IsColumnHeader("exercise sets reps") {
		t.Error("default column headers should be replaced")
	}

	if _, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultVocabularyLookups(t *testing.T) {
	v := DefaultVocabulary()

	if !v.IsColumnHeader("exercise sets reps notes") {
		t.Error("header row not detected")
	}
	if v.IsColumnHeader("reset the bar") {
		t.Error("column header matched inside a word")
	}
	if !v.HasDayHeaderKeyword("upper day") {
		t.Error("day header keyword not detected")
	}

	got := v.FindMuscleGroups("Full Body & Core")
	if len(got) != 2 || got[0] != "Core" || got[1] != "Full Body" {
		t.Errorf("FindMuscleGroups = %v, want [Core Full Body]", got)
	}
}
