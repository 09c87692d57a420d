// Package refdata loads the static hero and item lookup tables used to
// attach human-readable names and costs to report output.
package refdata

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// ItemDetail carries the display attributes of one item.
type ItemDetail struct {
	DisplayName string `json:"dname"`
	Cost        int    `json:"cost"`
	Quality     string `json:"qual"`
}

// LoadHeroes reads a heroes CSV (columns: id, localized_name) into an
// id → name lookup.
func LoadHeroes(path string) (map[int]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open heroes file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse heroes file: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("heroes file %s is empty", path)
	}

	idCol, nameCol := -1, -1
	for i, col := range records[0] {
		switch col {
		case "id":
			idCol = i
		case "localized_name":
			nameCol = i
		}
	}
	if idCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("heroes file %s missing id/localized_name columns", path)
	}

	heroes := make(map[int]string, len(records)-1)
	for _, rec := range records[1:] {
		id, err := strconv.Atoi(rec[idCol])
		if err != nil {
			continue
		}
		heroes[id] = rec[nameCol]
	}
	return heroes, nil
}

// LoadItemNames reads an items_id JSON dump ({"1": "blink", ...}) into an
// id → internal-name lookup.
func LoadItemNames(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item names: %w", err)
	}

	raw := make(map[string]string)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse item names: %w", err)
	}

	items := make(map[int]string, len(raw))
	for idStr, name := range raw {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		items[id] = name
	}
	return items, nil
}

// LoadItemDetails reads an items JSON dump keyed by internal item name.
func LoadItemDetails(path string) (map[string]ItemDetail, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item details: %w", err)
	}

	details := make(map[string]ItemDetail)
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("failed to parse item details: %w", err)
	}
	return details, nil
}
