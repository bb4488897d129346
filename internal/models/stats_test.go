package models

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

// The daily leaderboard query filters on category+date and sorts on
// value, so the entry model must declare a composite index over exactly
// those columns, in that order.
func TestLeaderboardEntryDeclaresCompositeIndex(t *testing.T) {
	parsed, err := schema.Parse(&LeaderboardEntry{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}

	for _, idx := range parsed.ParseIndexes() {
		if idx.Name != "idx_leaderboard_category_date" {
			continue
		}
		want := []string{"category", "date", "value"}
		if len(idx.Fields) != len(want) {
			t.Fatalf("expected %d index columns, got %d", len(want), len(idx.Fields))
		}
		for i, field := range idx.Fields {
			if field.DBName != want[i] {
				t.Errorf("index column %d: expected %q, got %q", i, want[i], field.DBName)
			}
		}
		return
	}
	t.Fatal("composite leaderboard index is not declared on the model")
}
