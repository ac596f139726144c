package schedule

import "testing"

func TestClassify_Tapering(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"freq duration then", "Use 4 times daily for 1 week, then 2 times daily for 1 week"},
		{"x shorthand", "4x daily for 2 weeks, then 2x daily for 1 week"},
		{"drops form", "1 drop 4 times daily for 1 week, then 3 times daily for 1 week"},
		{"apply x form", "Apply 4x daily x 1 week, then 3x daily x 1 week"},
		{"per day days", "Use 4 times per day for 7 days, then 3 times per day for 7 days"},
		{"taper vocabulary", "Taper off over the next month"},
		{"reduce vocabulary", "Reduce to one tablet at bedtime"},
		{"wean vocabulary", "Wean slowly as tolerated"},
		{"start high", "Start with 4 tablets, then 2 tablets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.text)
			if c.Type != RegimenTapering {
				t.Errorf("expected tapering, got %s (rule %q)", c.Type, c.Rule)
			}
			if !c.HasTimeline || !c.ShowProgress {
				t.Error("tapering classification must carry timeline and progress")
			}
		})
	}
}

func TestClassify_AmbiguousEnd(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"until resolves", "Continue until symptoms resolve"},
		{"until improves", "Take daily until the swelling improves"},
		{"until is normal", "Use until your pressure is normal"},
		{"until no more", "Apply until no more redness"},
		{"until stops", "Continue until the discharge stops"},
		{"until you feel better", "Take until you feel better"},
		{"until further notice", "Continue until further notice"},
		{"or until", "Take for a while or until your doctor advises"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.text)
			if c.Type != RegimenChronic {
				t.Errorf("expected chronic, got %s (rule %q)", c.Type, c.Rule)
			}
			if c.HasTimeline || c.ShowProgress {
				t.Error("ambiguous end condition must not carry a timeline")
			}
		})
	}
}

func TestClassify_SpecificDuration(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"numeric days", "Apply twice daily for 10 days"},
		{"numeric weeks", "Take for 2 weeks"},
		{"next weeks", "Use for the next 3 weeks"},
		{"more months", "Continue for 2 more months"},
		{"spelled out", "Take for seven days"},
		{"complete course", "Complete the full course"},
		{"finish pills", "Finish all the pills"},
		{"until month", "Continue until January"},
		{"until calendar date", "Take until 12/15"},
		{"post procedure", "Use for 5 days after surgery"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.text)
			if c.Type != RegimenShortTerm {
				t.Errorf("expected short-term, got %s (rule %q)", c.Type, c.Rule)
			}
		})
	}
}

func TestClassify_DefaultChronic(t *testing.T) {
	for _, text := range []string{"", "   ", "Take with food", "1 tablet daily"} {
		c := Classify(text)
		if c.Type != RegimenChronic {
			t.Errorf("Classify(%q) = %s, want chronic", text, c.Type)
		}
		if c.HasTimeline {
			t.Errorf("Classify(%q) must not carry a timeline", text)
		}
	}
}

// Tapering outranks an ambiguous end condition no matter where the
// tokens sit in the string.
func TestClassify_TaperingBeatsAmbiguous(t *testing.T) {
	tests := []string{
		"4 times daily for 1 week, then 2 times daily until redness resolves",
		"Until symptoms resolve, taper from 4x daily for 2 weeks, then 2x daily for 2 weeks",
	}
	for _, text := range tests {
		c := Classify(text)
		if c.Type != RegimenTapering {
			t.Errorf("Classify(%q) = %s, want tapering", text, c.Type)
		}
	}
}

func TestClassify_AmbiguousBeatsDuration(t *testing.T) {
	c := Classify("Take 1 tablet daily until symptoms resolve, usually 7 days")
	if c.Type != RegimenChronic {
		t.Errorf("expected chronic for ambiguous end, got %s", c.Type)
	}
}

func TestClassify_NamesMatchedRule(t *testing.T) {
	c := Classify("Gradually taper the dose")
	if c.Rule != "taper-vocabulary" {
		t.Errorf("expected taper-vocabulary rule, got %q", c.Rule)
	}
	if Classify("no indicators here at all").Rule != "" {
		t.Error("default classification must not name a rule")
	}
}
