package amenity

import "testing"

func TestLookup_Synonyms(t *testing.T) {
	tests := []struct {
		keyword string
		want    Category
	}{
		{"parques", Parks},
		{"colegios", Schools},
		{"clinicas", Clinics},
		{"hospitales", Clinics},
		{"centros comerciales", Malls},
		{"malls", Malls},
	}
	for _, tc := range tests {
		got, ok := Lookup(tc.keyword)
		if !ok {
			t.Errorf("Lookup(%q) not found", tc.keyword)
			continue
		}
		if got != tc.want {
			t.Errorf("Lookup(%q) = %v, want %v", tc.keyword, got, tc.want)
		}
	}
}

func TestLookup_CaseSensitive(t *testing.T) {
	for _, kw := range []string{"Parques", "MALLS", "gimnasios", ""} {
		if _, ok := Lookup(kw); ok {
			t.Errorf("Lookup(%q) should not resolve", kw)
		}
	}
}

func TestColumns(t *testing.T) {
	want := map[Category]string{
		Parks:   "dist_parques_km",
		Schools: "dist_colegios_km",
		Clinics: "dist_clinicas_km",
		Malls:   "dist_centroscom_km",
	}
	for c, col := range want {
		if c.Column() != col {
			t.Errorf("%v.Column() = %q, want %q", c, c.Column(), col)
		}
	}
	if Clinics.PreferenceKey() != "pref_clinicas" {
		t.Errorf("PreferenceKey() = %q", Clinics.PreferenceKey())
	}
}

func TestAll_Order(t *testing.T) {
	got := All()
	if len(got) != Count {
		t.Fatalf("expected %d categories, got %d", Count, len(got))
	}
	for i, c := range got {
		if int(c) != i {
			t.Errorf("All()[%d] = %v", i, c)
		}
		if !c.IsValid() {
			t.Errorf("%v should be valid", c)
		}
	}
	if Category(Count).IsValid() {
		t.Error("out-of-range category should be invalid")
	}
}

func TestKeywords_Sorted(t *testing.T) {
	kws := Keywords()
	if len(kws) != 6 {
		t.Fatalf("expected 6 keywords, got %d", len(kws))
	}
	for i := 1; i < len(kws); i++ {
		if kws[i-1] > kws[i] {
			t.Errorf("keywords not sorted: %q > %q", kws[i-1], kws[i])
		}
	}
}
