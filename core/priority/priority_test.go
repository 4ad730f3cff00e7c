package priority

import "testing"

func TestCategorize(t *testing.T) {
	cases := map[string]Category{
		"hôpital":           CategoryHospital,
		"hopital":           CategoryHospital,
		"Hôpital Central":   CategoryHospital,
		"HOSPITAL":          CategoryHospital,
		"école":             CategorySchool,
		"Ecole primaire":    CategorySchool,
		"school":            CategorySchool,
		"habitation":        CategoryResidential,
		"Résidence Les Pins": CategoryResidential,
		"maison":            CategoryResidential,
		"warehouse":         CategoryUnknown,
		"Boathouse Quai 3":  CategoryUnknown,
		"":                  CategoryUnknown,
	}
	for label, want := range cases {
		if got := Categorize(label); got != want {
			t.Errorf("%q: expected %v, got %v", label, want, got)
		}
	}
}

func TestScoreOrdering(t *testing.T) {
	e := NewEngine()
	hospital := e.Score("hôpital", 5)
	school := e.Score("école", 5)
	residential := e.Score("habitation", 5)
	unknown := e.Score("warehouse", 5)

	if !(hospital > school && school > residential && residential > unknown) {
		t.Fatalf("expected hospital > school > residential > unknown, got %v %v %v %v",
			hospital, school, residential, unknown)
	}
}

func TestScoreMonotonicInHouseCount(t *testing.T) {
	e := NewEngine()
	prev := 0.0
	for houses := 1; houses <= 10; houses++ {
		s := e.Score("école", houses)
		if s <= prev {
			t.Fatalf("score must strictly increase with house count: %v then %v", prev, s)
		}
		prev = s
	}
}

func TestScoreValues(t *testing.T) {
	e := NewEngine()
	if s := e.Score("hôpital", 10); s != 1000 {
		t.Fatalf("expected 1000, got %v", s)
	}
	if s := e.Score("habitation", 5); s != 50 {
		t.Fatalf("expected 50, got %v", s)
	}
	if s := e.Score("warehouse", 7); s != 7 {
		t.Fatalf("unknown weight should be 1, got %v", s)
	}
}

func TestIsCritical(t *testing.T) {
	if !IsCritical("Hôpital Nord") {
		t.Fatalf("hospital labels are critical")
	}
	if IsCritical("école") {
		t.Fatalf("schools are not critical facilities")
	}
}
