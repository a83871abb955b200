package store

import (
	"testing"
	"time"
)

type testRow struct {
	ID       string     `gorm:"primaryKey;column:row_id" json:"row_id"`
	Name     string     `gorm:"column:name" json:"name"`
	Rank     int        `gorm:"column:rank" json:"rank"`
	Due      *time.Time `gorm:"column:due" json:"due,omitempty"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func seedRows(t *testing.T, mem *MemStore) {
	t.Helper()
	rows := []testRow{
		{ID: "r1", Name: "Alpha Report", Rank: 3},
		{ID: "r2", Name: "beta report", Rank: 1},
		{ID: "r3", Name: "Gamma", Rank: 2},
	}
	for _, r := range rows {
		r := r
		if err := mem.Insert("rows", &r); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
}

func TestMemStoreFiltersOrderAndRange(t *testing.T) {
	mem := NewMemStore()
	seedRows(t, mem)

	var got []testRow
	total, err := mem.Find(Query{
		Table:   "rows",
		Filters: []Filter{Search("report", "name")},
		Order:   []Order{{Field: "rank"}},
		Range:   &Range{From: 0, To: 0},
	}, &got)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2 (count before range)", total)
	}
	if len(got) != 1 || got[0].ID != "r2" {
		t.Errorf("rows = %+v, want just r2 (lowest rank)", got)
	}
}

func TestMemStoreUpdateMissingKey(t *testing.T) {
	mem := NewMemStore()
	seedRows(t, mem)

	err := mem.Update("rows", "row_id", "nope", map[string]interface{}{"rank": 9})
	if err != ErrNotFound {
		t.Errorf("Update on absent key = %v, want ErrNotFound", err)
	}

	if err := mem.Update("rows", "row_id", "r3", map[string]interface{}{"rank": 9}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	var got []testRow
	if _, err := mem.Find(Query{Table: "rows", Filters: []Filter{Eq("row_id", "r3")}}, &got); err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(got) != 1 || got[0].Rank != 9 {
		t.Errorf("patched row = %+v, want rank 9", got)
	}
}

func TestMemStoreDeleteIsSoft(t *testing.T) {
	mem := NewMemStore()
	seedRows(t, mem)

	if err := mem.Delete("rows", "row_id", "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mem.Delete("rows", "row_id", "r1"); err != ErrNotFound {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}

	var visible []testRow
	total, err := mem.Find(Query{Table: "rows"}, &visible)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if total != 2 {
		t.Errorf("visible total = %d, want 2", total)
	}

	var all []testRow
	if _, err := mem.Find(Query{Table: "rows", IncludeDeleted: true}, &all); err != nil {
		t.Fatalf("Find all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("with IncludeDeleted rows = %d, want 3", len(all))
	}
}

func TestMemStoreInSetAndDateComparison(t *testing.T) {
	mem := NewMemStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := base.AddDate(0, 0, 7)
	rows := []testRow{
		{ID: "d1", Name: "one", Due: &base},
		{ID: "d2", Name: "two", Due: &later},
		{ID: "d3", Name: "three"},
	}
	for _, r := range rows {
		r := r
		if err := mem.Insert("rows", &r); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	var got []testRow
	_, err := mem.Find(Query{
		Table: "rows",
		Filters: []Filter{
			In("row_id", []string{"d1", "d2", "d3"}),
			Lte("due", base.AddDate(0, 0, 3)),
		},
	}, &got)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	// d3 has no due date; NULL never satisfies a comparison.
	if len(got) != 1 || got[0].ID != "d1" {
		t.Errorf("rows = %+v, want just d1", got)
	}
}
