package tagset

import "testing"

func TestNumeralAgreementGrammemes(t *testing.T) {
	cases := []struct {
		n    int
		want map[string]struct{}
	}{
		{1, GrammemeSetFromLabels(GrammemeSingular, GrammemeNominative)},
		{21, GrammemeSetFromLabels(GrammemeSingular, GrammemeNominative)},
		{2, GrammemeSetFromLabels(GrammemeSingular, GrammemeGenitive)},
		{3, GrammemeSetFromLabels(GrammemeSingular, GrammemeGenitive)},
		{4, GrammemeSetFromLabels(GrammemeSingular, GrammemeGenitive)},
		{11, GrammemeSetFromLabels(GrammemePlural, GrammemeGenitive)},
		{12, GrammemeSetFromLabels(GrammemePlural, GrammemeGenitive)},
		{14, GrammemeSetFromLabels(GrammemePlural, GrammemeGenitive)},
		{5, GrammemeSetFromLabels(GrammemePlural, GrammemeGenitive)},
		{0, GrammemeSetFromLabels(GrammemePlural, GrammemeGenitive)},
		{-2, GrammemeSetFromLabels(GrammemeSingular, GrammemeGenitive)},
		{111, GrammemeSetFromLabels(GrammemePlural, GrammemeGenitive)},
	}
	for _, c := range cases {
		got := NumeralAgreementGrammemes(c.n)
		if len(got) != len(c.want) {
			t.Errorf("NumeralAgreementGrammemes(%d) = %v, want %v", c.n, got, c.want)
			continue
		}
		for g := range c.want {
			if _, ok := got[g]; !ok {
				t.Errorf("NumeralAgreementGrammemes(%d) = %v, missing %q", c.n, got, g)
			}
		}
	}
}

func TestFixRareCases(t *testing.T) {
	required := GrammemeSetFromLabels("Партитивный", "Мужской")
	fixed := FixRareCases(required)
	if _, ok := fixed[GrammemeGenitive]; !ok {
		t.Error("FixRareCases did not normalize Партитивный to genitive")
	}
	if _, ok := fixed["Мужской"]; !ok {
		t.Error("FixRareCases dropped a grammeme with no mapping")
	}
	if _, ok := fixed["Партитивный"]; ok {
		t.Error("FixRareCases left the rare case grammeme in place")
	}
}
