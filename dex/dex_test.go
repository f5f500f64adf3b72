package dex

import (
	"testing"
	"testing/fstest"
)

func TestToID(t *testing.T) {
	cases := map[string]string{
		"Pikachu":          "pikachu",
		"Charizard-Mega-X": "charizardmegax",
		"Flabébé":          "flabebe",
		"Farfetch’d":       "farfetchd",
		"King's Shield":    "kingsshield",
		"Hidden Power 60":  "hiddenpower60",
		"":                 "",
	}

	for input, expected := range cases {
		if got := ToID(input); got != expected {
			t.Fatalf("ToID(%q): got %q expected %q", input, got, expected)
		}
	}
}

func TestDefaultLoads(t *testing.T) {
	data, err := Default()
	if err != nil {
		t.Fatalf("loading bundled data: %s", err)
	}

	if data.Gen() != LATEST_GEN {
		t.Fatalf("bundled gen: got %d expected %d", data.Gen(), LATEST_GEN)
	}

	charizard, ok := data.Species("Charizard")
	if !ok {
		t.Fatal("charizard missing from bundled pokedex")
	}
	if charizard.BaseStats.SpAtk != 109 {
		t.Fatalf("charizard spa: got %d expected 109", charizard.BaseStats.SpAtk)
	}

	protect, ok := data.Move("protect")
	if !ok {
		t.Fatal("protect missing from bundled moves")
	}
	if !protect.Accuracy.AlwaysHits || !protect.StallingMove || protect.Priority != 4 {
		t.Fatalf("protect decoded wrong: %+v", protect)
	}

	bulletSeed, _ := data.Move("bulletseed")
	if bulletSeed.Multihit.Min != 2 || bulletSeed.Multihit.Max != 5 {
		t.Fatalf("bullet seed multihit: got %+v expected [2, 5]", bulletSeed.Multihit)
	}

	uturn, _ := data.Move("uturn")
	if !uturn.SelfSwitch.Set() {
		t.Fatal("u-turn should be a self switching move")
	}
}

func TestLoadReportsMissingFile(t *testing.T) {
	files := fstest.MapFS{
		POKEDEX_FILE: &fstest.MapFile{Data: []byte(`{}`)},
	}

	if _, err := Load(files, 8); err == nil {
		t.Fatal("expected an error for a missing moves file")
	}
}

func TestAbilityIDsSlotOrder(t *testing.T) {
	species := Species{Abilities: map[string]string{"H": "Unaware", "0": "Cute Charm", "1": "Magic Guard"}}

	ids := species.AbilityIDs()
	expected := []string{"cutecharm", "magicguard", "unaware"}
	if len(ids) != len(expected) {
		t.Fatalf("got %v expected %v", ids, expected)
	}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Fatalf("got %v expected %v", ids, expected)
		}
	}
}

func TestEffectiveness(t *testing.T) {
	data := MustDefault()

	if mult := data.Effectiveness("Electric", "Ground"); mult != 0 {
		t.Fatalf("electric vs ground: got %f expected 0", mult)
	}
	if mult := data.Effectiveness("Fire", "Grass"); mult != 2 {
		t.Fatalf("fire vs grass: got %f expected 2", mult)
	}
	if mult := data.Effectiveness("Stellar", "Grass"); mult != 1 {
		t.Fatalf("stellar vs grass: got %f expected 1", mult)
	}
}
