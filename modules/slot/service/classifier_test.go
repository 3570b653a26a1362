package service

import (
	"testing"

	"taruf-api/modules/slot/entity"
)

func sp(s string) *string { return &s }

func sel(id, selector, selected int64, selectedITS string, firstChoice *string) entity.Selection {
	return entity.Selection{
		ID:          id,
		TarufID:     1,
		SelectorID:  selector,
		SelectedID:  selected,
		SelectedITS: sp(selectedITS),
		FirstChoice: firstChoice,
	}
}

func TestClassifyPerfectMatch(t *testing.T) {
	in := []entity.Selection{
		sel(1, 10, 20, "200", nil),
		sel(2, 20, 10, "100", nil),
		sel(3, 10, 30, "300", nil),
	}

	got := Classify(in)
	if len(got) != len(in) {
		t.Fatalf("Classify() returned %d rows, want %d", len(got), len(in))
	}

	want := []bool{true, true, false}
	for i, c := range got {
		if c.ID != in[i].ID {
			t.Errorf("row %d: order changed, got id %d", i, c.ID)
		}
		if c.IsPerfectMatch != want[i] {
			t.Errorf("row %d: IsPerfectMatch = %v, want %v", i, c.IsPerfectMatch, want[i])
		}
	}
}

func TestClassifyFirstChoice(t *testing.T) {
	tests := []struct {
		name        string
		selectedITS string
		firstChoice *string
		want        bool
	}{
		{name: "no first choice", selectedITS: "123", firstChoice: nil, want: false},
		{name: "matches", selectedITS: "123", firstChoice: sp("123"), want: true},
		{name: "numeric normalization", selectedITS: "123", firstChoice: sp(" 0123 "), want: true},
		{name: "points elsewhere", selectedITS: "123", firstChoice: sp("456"), want: false},
		{name: "blank first choice", selectedITS: "", firstChoice: sp(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify([]entity.Selection{sel(1, 1, 2, tt.selectedITS, tt.firstChoice)})
			if got[0].IsFirstChoiceMatch != tt.want {
				t.Errorf("IsFirstChoiceMatch = %v, want %v", got[0].IsFirstChoiceMatch, tt.want)
			}
			if got[0].IsPerfectMatch {
				t.Errorf("single row must not be a perfect match")
			}
		})
	}
}

func TestClassifyEmpty(t *testing.T) {
	if got := Classify(nil); len(got) != 0 {
		t.Errorf("Classify(nil) = %v, want empty", got)
	}
}
