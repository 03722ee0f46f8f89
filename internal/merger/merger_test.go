package merger_test

import (
	"testing"

	"github.com/XavierBriggs/vantage/internal/merger"
)

type record struct {
	ID     string
	Name   string
	Team   string
	Status string
}

func identities(r record) []string {
	return merger.IdentityKeys(r.ID, r.Name, r.Team)
}

func TestFirstSourceWins(t *testing.T) {
	// Source A reports the player with a provider id and status "out";
	// source B reports the same player by display name only, "doubtful".
	injuryFeed := merger.Source[record]{
		Name:    "injuries",
		Records: []record{{ID: "123", Name: "LeBron James", Team: "LAL", Status: "out"}},
	}
	scoreboard := merger.Source[record]{
		Name:    "scoreboard",
		Records: []record{{Name: "LeBron James", Team: "LAL", Status: "doubtful"}},
	}

	merged := merger.Merge(identities, injuryFeed, scoreboard)

	if len(merged) != 1 {
		t.Fatalf("merged %d records, want 1", len(merged))
	}
	if merged[0].ID != "123" {
		t.Errorf("merged ID = %q, want \"123\"", merged[0].ID)
	}
	if merged[0].Status != "out" {
		t.Errorf("merged status = %q, want \"out\" (trust order)", merged[0].Status)
	}
}

func TestNameOnlySightingAbsorbedByLaterID(t *testing.T) {
	// Reverse trust order: the name-only feed is read first, so the later
	// id-carrying record must still collide via the name alias.
	roster := merger.Source[record]{
		Name:    "roster",
		Records: []record{{Name: "LeBron James", Team: "LAL", Status: "doubtful"}},
	}
	injuryFeed := merger.Source[record]{
		Name:    "injuries",
		Records: []record{{ID: "123", Name: "LeBron James", Team: "LAL", Status: "out"}},
	}

	merged := merger.Merge(identities, roster, injuryFeed)

	if len(merged) != 1 {
		t.Fatalf("merged %d records, want 1", len(merged))
	}
	if merged[0].Status != "doubtful" {
		t.Errorf("merged status = %q, want the first-seen \"doubtful\"", merged[0].Status)
	}
}

func TestNameFallbackCollides(t *testing.T) {
	// Second source has no provider id but the normalized name matches
	a := merger.Source[record]{
		Name:    "injuries",
		Records: []record{{Name: "Jayson Tatum", Team: "BOS", Status: "questionable"}},
	}
	b := merger.Source[record]{
		Name:    "roster",
		Records: []record{{Name: "jayson TATUM", Team: "bos", Status: "probable"}},
	}

	merged := merger.Merge(identities, a, b)

	if len(merged) != 1 {
		t.Fatalf("merged %d records, want 1", len(merged))
	}
	if merged[0].Status != "questionable" {
		t.Errorf("merged status = %q, want higher-trust \"questionable\"", merged[0].Status)
	}
}

func TestDistinctIdentitiesAllKept(t *testing.T) {
	a := merger.Source[record]{
		Name: "injuries",
		Records: []record{
			{ID: "1", Name: "Player One", Team: "AAA"},
			{ID: "2", Name: "Player Two", Team: "AAA"},
		},
	}
	b := merger.Source[record]{
		Name:    "roster",
		Records: []record{{ID: "3", Name: "Player Three", Team: "BBB"}},
	}

	merged := merger.Merge(identities, a, b)

	if len(merged) != 3 {
		t.Fatalf("merged %d records, want 3", len(merged))
	}

	// Output never exceeds the sum of inputs and keeps source order
	if merged[0].ID != "1" || merged[1].ID != "2" || merged[2].ID != "3" {
		t.Errorf("merged order = %s,%s,%s; want 1,2,3", merged[0].ID, merged[1].ID, merged[2].ID)
	}
}

func TestFailedSourceContributesNothing(t *testing.T) {
	// A failing source shows up as an empty record set
	failed := merger.Source[record]{Name: "injuries"}
	roster := merger.Source[record]{
		Name:    "roster",
		Records: []record{{ID: "9", Name: "Healthy Backup", Team: "CCC"}},
	}

	merged := merger.Merge(identities, failed, roster)

	if len(merged) != 1 || merged[0].ID != "9" {
		t.Fatalf("merge with empty source = %+v, want the single roster record", merged)
	}
}

func TestEmptyIdentitySkipped(t *testing.T) {
	src := merger.Source[record]{
		Name:    "scoreboard",
		Records: []record{{Status: "out"}}, // no id, no name
	}

	merged := merger.Merge(identities, src)

	if len(merged) != 0 {
		t.Fatalf("merged %d records, want 0 for unidentifiable input", len(merged))
	}
}

func TestIdentityKeyNormalization(t *testing.T) {
	tests := []struct {
		name string
		a    [3]string // id, name, team
		b    [3]string
		same bool
	}{
		{"provider id beats name", [3]string{"42", "A Player", "LAL"}, [3]string{"42", "Different Name", "BOS"}, true},
		{"suffix stripped", [3]string{"", "Gary Payton II", "GSW"}, [3]string{"", "Gary Payton", "GSW"}, true},
		{"punctuation stripped", [3]string{"", "De'Aaron Fox", "SAC"}, [3]string{"", "DeAaron Fox", "sac"}, true},
		{"different teams differ", [3]string{"", "John Smith", "LAL"}, [3]string{"", "John Smith", "BOS"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka := merger.IdentityKey(tt.a[0], tt.a[1], tt.a[2])
			kb := merger.IdentityKey(tt.b[0], tt.b[1], tt.b[2])
			if (ka == kb) != tt.same {
				t.Errorf("IdentityKey(%v)=%q vs IdentityKey(%v)=%q, same=%v want %v",
					tt.a, ka, tt.b, kb, ka == kb, tt.same)
			}
		})
	}
}
