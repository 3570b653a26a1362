package service

import (
	"taruf-api/core/utils"
	"taruf-api/modules/slot/entity"
)

type directedPair struct {
	selector int64
	selected int64
}

// Classify flags every selection of one event. A row is a perfect match when
// the reverse selection exists, and a first-choice match when its first_choice
// names its own selected ITS number. Input order is preserved and nothing is
// filtered out.
func Classify(selections []entity.Selection) []entity.ClassifiedSelection {
	present := make(map[directedPair]struct{}, len(selections))
	for _, s := range selections {
		present[directedPair{selector: s.SelectorID, selected: s.SelectedID}] = struct{}{}
	}

	out := make([]entity.ClassifiedSelection, len(selections))
	for i, s := range selections {
		_, reverse := present[directedPair{selector: s.SelectedID, selected: s.SelectorID}]
		out[i] = entity.ClassifiedSelection{
			Selection:          s,
			IsPerfectMatch:     reverse,
			IsFirstChoiceMatch: utils.SameITS(s.FirstChoice, s.SelectedITS),
		}
	}
	return out
}
