package program

import "testing"

func row(cells ...string) []*string {
	out := make([]*string, len(cells))
	for i, c := range cells {
		if c == "<nil>" {
			continue
		}
		c := c
		out[i] = &c
	}
	return out
}

// TestClassifyLines verifies the decision order for text lines.
func TestClassifyLines(t *testing.T) {
	c := NewClassifier(nil)
	tests := []struct {
		line string
		want Kind
	}{
		{"Week 1, Day 2: Push", KindDayHeader},
		{"Leg Day", KindDayHeader},
		{"Circuit 2 - 3 rounds", KindCircuitHeader},
		{"Superset", KindCircuitHeader},
		{"* Bench Press 3x10", KindSkip},
		{"Rest 90 seconds between sets", KindSkip},
		{"Note: keep your core tight", KindSkip},
		{"Warm up with light cardio", KindSkip},
		{"3-RM x 3 sets", KindSkip},
		{"Bench Press 3x10", KindExercise},
		{"Push-ups 3x20 to finish today", KindExercise},
		{"Lat Pulldown 3x12 (Tuesday)", KindExercise},
		{"Cable Fly", KindExercise},
		{"Stay hydrated and sleep well", KindNoise},
		{"3x10", KindNoise},
		{"", KindNoise},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := c.Classify(LineFragment(tt.line))
			if got.Kind != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.line, got.Kind, tt.want)
			}
			if (got.Exercise != nil) != (tt.want == KindExercise) {
				t.Errorf("Classify(%q) exercise = %v", tt.line, got.Exercise)
			}
		})
	}
}

// TestClassifyRows verifies column header detection and cell mapping for
// table rows.
func TestClassifyRows(t *testing.T) {
	c := NewClassifier(nil)

	if got := c.Classify(RowFragment(row("Exercise", "Sets", "Reps", "Notes"))); got.Kind != KindColumnHeader {
		t.Errorf("header row = %s, want column_header", got.Kind)
	}

	got := c.Classify(RowFragment(row("Bench Press", "4", "8-10", "Pause at the bottom")))
	if got.Kind != KindExercise {
		t.Fatalf("kind = %s, want exercise", got.Kind)
	}
	ex := got.Exercise
	if ex.Name != "Bench Press" || ex.Sets != "4" || ex.Reps != "8-10" {
		t.Errorf("exercise = %+v", ex)
	}
	if ex.Notes == nil || *ex.Notes != "Pause at the bottom" {
		t.Errorf("notes = %v, want %q", ex.Notes, "Pause at the bottom")
	}

	got = c.Classify(RowFragment(row("pull-ups", "3 sets", "amrap", "")))
	// "sets" is a column header word, so this row reads as a header.
	if got.Kind != KindColumnHeader {
		t.Errorf("kind = %s, want column_header", got.Kind)
	}

	got = c.Classify(RowFragment(row("pull-ups", "3", "amrap", "ok")))
	if got.Kind != KindExercise {
		t.Fatalf("kind = %s, want exercise", got.Kind)
	}
	if got.Exercise.Name != "Pull-ups" || got.Exercise.Reps != "AMRAP" {
		t.Errorf("exercise = %+v", got.Exercise)
	}
	if got.Exercise.Notes != nil {
		t.Errorf("short notes kept: %q", *got.Exercise.Notes)
	}

	got = c.Classify(RowFragment(row("Goblet Squat", "<nil>", "<nil>")))
	if got.Kind != KindExercise {
		t.Fatalf("kind = %s, want exercise", got.Kind)
	}
	if got.Exercise.Sets != "3" || got.Exercise.Reps != "10-12" || got.Exercise.WeightRecommendation != nil {
		t.Errorf("defaults = %+v", got.Exercise)
	}

	got = c.Classify(RowFragment(row("Dumbbell Row", "3", "12", "Use 45-55 lbs")))
	if got.Exercise == nil || got.Exercise.WeightRecommendation == nil || *got.Exercise.WeightRecommendation != "45-55 lbs" {
		t.Errorf("weight not extracted: %+v", got.Exercise)
	}

	for _, cells := range [][]*string{
		row("(optional) finisher", "1"),
		row("12", "3"),
		row("Plank"),
		row("*Superset tip", "2"),
		row("a1", "3", "10"),
	} {
		got := c.Classify(RowFragment(cells))
		if got.Kind == KindExercise {
			t.Errorf("row %v classified as exercise %+v", RowFragment(cells).Text(), got.Exercise)
		}
	}
}

// TestClassifyLenientDayHeader documents that "day" plus a body-part keyword
// is enough for a day header, even inside an exercise row.
func TestClassifyLenientDayHeader(t *testing.T) {
	c := NewClassifier(nil)
	got := c.Classify(RowFragment(row("Leg Press", "4", "12", "Heavy leg day finisher")))
	if got.Kind != KindDayHeader {
		t.Errorf("kind = %s, want day_header", got.Kind)
	}
}

// TestClassifyRowWeight verifies weights are read from single cells only.
func TestClassifyRowWeight(t *testing.T) {
	c := NewClassifier(nil)
	tests := []struct {
		cells []*string
		want  string // empty means nil
	}{
		{row("Bench Press", "3", "10", "lbs as heavy as you can"), ""},
		{row("Goblet Squat", "3", "12", "24kg"), "24 kg"},
		{row("Deadlift", "5", "5", "<nil>"), ""},
	}
	for _, tt := range tests {
		got := c.Classify(RowFragment(tt.cells))
		if got.Kind != KindExercise {
			t.Fatalf("row %q kind = %s, want exercise", RowFragment(tt.cells).Text(), got.Kind)
		}
		w := got.Exercise.WeightRecommendation
		switch {
		case tt.want == "" && w != nil:
			t.Errorf("row %q weight = %q, want nil", RowFragment(tt.cells).Text(), *w)
		case tt.want != "" && (w == nil || *w != tt.want):
			t.Errorf("row %q weight = %v, want %q", RowFragment(tt.cells).Text(), w, tt.want)
		}
	}
}

// TestWeekdayIsNotDayHeader verifies "day" inside words like "today" or
// "Monday" does not open a day, even next to a body-part keyword.
func TestWeekdayIsNotDayHeader(t *testing.T) {
	c := NewClassifier(nil)
	for _, f := range []Fragment{
		LineFragment("Lat Pulldown 3x12 (Tuesday)"),
		LineFragment("Push-ups 3x20 to finish today"),
		RowFragment(row("Leg Curl", "3", "12", "Heavy on Monday")),
	} {
		if c.IsDayHeader(f) {
			t.Errorf("IsDayHeader(%q) = true", f.Text())
		}
	}
	for _, f := range []Fragment{
		LineFragment("Push Day"),
		LineFragment("Leg Day1"),
		RowFragment(row("Upper Body Day", "<nil>")),
	} {
		if !c.IsDayHeader(f) {
			t.Errorf("IsDayHeader(%q) = false", f.Text())
		}
	}
}

// TestDayName verifies structured and raw day header names.
func TestDayName(t *testing.T) {
	c := NewClassifier(nil)
	tests := []struct {
		f    Fragment
		want string
	}{
		{RowFragment(row("Week 1, Day 2: Push", "<nil>")), "Week 1, Day 2: PUSH"},
		{LineFragment("Week 3 Day 1"), "Week 3, Day 1"},
		{LineFragment("Upper Body Day"), "Upper Body Day"},
		{LineFragment("Push Day: a long description that goes well past the fifty character limit"), "Push Day: a long description that goes well past t"},
	}
	for _, tt := range tests {
		if got := c.DayName(tt.f); got != tt.want {
			t.Errorf("DayName(%q) = %q, want %q", tt.f.Text(), got, tt.want)
		}
	}
}

// TestMuscleGroups verifies muscle group tagging in vocabulary order.
func TestMuscleGroups(t *testing.T) {
	c := NewClassifier(nil)
	got := c.MuscleGroups("Back & Biceps - Pull Day")
	if got == nil || *got != "Back, Biceps, Pull" {
		t.Errorf("MuscleGroups = %v, want %q", got, "Back, Biceps, Pull")
	}
	if got := c.MuscleGroups("Conditioning"); got != nil {
		t.Errorf("MuscleGroups = %q, want nil", *got)
	}
}
