package resources

import "testing"

func TestFilter(t *testing.T) {
	tests := []struct {
		name      string
		country   string
		kind      string
		anonymity string
		want      int
	}{
		{"all unconstrained", FilterAll, FilterAll, FilterAll, 6},
		{"empty means all", "", "", "", 6},
		{"by country", "UK", FilterAll, FilterAll, 2},
		{"by type", FilterAll, "Crisis", FilterAll, 3},
		{"combined", "UK", "Crisis", "Anonymous", 1},
		{"no match", "Canada", "Crisis", FilterAll, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.country, tt.kind, tt.anonymity)
			if len(got) != tt.want {
				t.Errorf("Filter(%q, %q, %q) returned %d entries, want %d",
					tt.country, tt.kind, tt.anonymity, len(got), tt.want)
			}
		})
	}
}

func TestFilterCombinedMatch(t *testing.T) {
	got := Filter("UK", "Crisis", "Anonymous")
	if len(got) != 1 || got[0].Name != "Shout" {
		t.Fatalf("got %+v, want Shout", got)
	}
	if got[0].Contact.Text == "" {
		t.Error("Shout should have a text contact")
	}
}

func TestHelplinesReturnsCopy(t *testing.T) {
	first := Helplines()
	first[0].Name = "mutated"
	if Helplines()[0].Name == "mutated" {
		t.Error("Helplines should not expose the backing array")
	}
}

func TestDistinctDimensions(t *testing.T) {
	countries := Countries()
	if len(countries) != 3 {
		t.Errorf("Countries() = %v", countries)
	}
	types := Types()
	if len(types) != 4 {
		t.Errorf("Types() = %v", types)
	}
}

func TestAudioLibrary(t *testing.T) {
	tracks := AudioLibrary()
	if len(tracks) != 6 {
		t.Fatalf("len = %d", len(tracks))
	}
	for _, tr := range tracks {
		if tr.Title == "" || tr.File == "" {
			t.Errorf("incomplete track: %+v", tr)
		}
	}
}
