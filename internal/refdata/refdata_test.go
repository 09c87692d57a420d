package refdata

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadHeroes(t *testing.T) {
	path := writeFile(t, "heroes.csv", "id,name,localized_name\n1,npc_dota_hero_antimage,Anti-Mage\n2,npc_dota_hero_axe,Axe\nbad,oops,Skipped\n")

	heroes, err := LoadHeroes(path)
	if err != nil {
		t.Fatalf("LoadHeroes failed: %v", err)
	}
	if len(heroes) != 2 {
		t.Errorf("Expected 2 heroes, got %d", len(heroes))
	}
	if heroes[1] != "Anti-Mage" {
		t.Errorf("heroes[1] = %q, want Anti-Mage", heroes[1])
	}
	if heroes[2] != "Axe" {
		t.Errorf("heroes[2] = %q, want Axe", heroes[2])
	}
}

func TestLoadHeroes_MissingColumns(t *testing.T) {
	path := writeFile(t, "heroes.csv", "foo,bar\n1,2\n")
	if _, err := LoadHeroes(path); err == nil {
		t.Error("Expected an error for missing columns")
	}
}

func TestLoadHeroes_MissingFile(t *testing.T) {
	if _, err := LoadHeroes(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestLoadItemNames(t *testing.T) {
	path := writeFile(t, "items_id.json", `{"1": "blink", "29": "boots", "bad": "skipped"}`)

	items, err := LoadItemNames(path)
	if err != nil {
		t.Fatalf("LoadItemNames failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(items))
	}
	if items[1] != "blink" || items[29] != "boots" {
		t.Errorf("Unexpected lookups: %v", items)
	}
}

func TestLoadItemDetails(t *testing.T) {
	path := writeFile(t, "items.json", `{"blink": {"dname": "Blink Dagger", "cost": 2250, "qual": "component"}}`)

	details, err := LoadItemDetails(path)
	if err != nil {
		t.Fatalf("LoadItemDetails failed: %v", err)
	}
	d, ok := details["blink"]
	if !ok {
		t.Fatal("Expected blink to be present")
	}
	if d.DisplayName != "Blink Dagger" || d.Cost != 2250 {
		t.Errorf("Detail = %+v", d)
	}
}

func TestLoadItemDetails_BadJSON(t *testing.T) {
	path := writeFile(t, "items.json", `{oops`)
	if _, err := LoadItemDetails(path); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}
