package service

import (
	"math/rand"
	"strconv"
	"testing"

	"taruf-api/core/constants"
	"taruf-api/modules/slot/entity"
)

func perfectPair(firstID, a, b int64) []entity.Selection {
	return []entity.Selection{
		sel(firstID, a, b, "", nil),
		sel(firstID+1, b, a, "", nil),
	}
}

func planOf(p *Planner, selections []entity.Selection) Plan {
	return p.Plan(1, Classify(selections))
}

func TestPlanSingleMutualPair(t *testing.T) {
	in := []entity.Selection{
		{ID: 1, TarufID: 1, SelectorID: 1, SelectedID: 2, SelectorITS: sp("100"), SelectedITS: sp("200")},
		{ID: 2, TarufID: 1, SelectorID: 2, SelectedID: 1, SelectorITS: sp("200"), SelectedITS: sp("100")},
	}

	plan := planOf(NewPlanner(0, 0), in)
	if len(plan.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(plan.Rows))
	}
	row := plan.Rows[0]
	if row.Slot != 1 || *row.RoomNo != "1" {
		t.Errorf("slot/room = %d/%s, want 1/1", row.Slot, *row.RoomNo)
	}
	if !row.IsPerfectMatch || row.IsFirstChoice {
		t.Errorf("flags = perfect %v first %v", row.IsPerfectMatch, row.IsFirstChoice)
	}
	if row.SelectorRegistrationID != 1 || row.SelectedRegistrationID != 2 || *row.CandidateITS != "200" {
		t.Errorf("row = %+v", row)
	}
	if *row.Timings != constants.TimingsPlaceholder {
		t.Errorf("timings = %q", *row.Timings)
	}
	if plan.MaxSlot != 1 || len(plan.Unassigned) != 0 {
		t.Errorf("MaxSlot = %d, unassigned = %v", plan.MaxSlot, plan.Unassigned)
	}
}

func TestPlanElevenPairsSpillIntoSecondSlot(t *testing.T) {
	var in []entity.Selection
	for i := int64(0); i < 11; i++ {
		in = append(in, perfectPair(i*2+1, 100+i*2, 101+i*2)...)
	}

	plan := planOf(NewPlanner(constants.RoomCapacity, constants.MaxSlotSearch), in)
	if len(plan.Rows) != 11 {
		t.Fatalf("rows = %d, want 11", len(plan.Rows))
	}
	if plan.MaxSlot != 2 {
		t.Errorf("MaxSlot = %d, want 2", plan.MaxSlot)
	}

	for i, row := range plan.Rows[:10] {
		wantRoom := strconv.Itoa(i + 1)
		if row.Slot != 1 || *row.RoomNo != wantRoom {
			t.Errorf("row %d: slot/room = %d/%s, want 1/%s", i, row.Slot, *row.RoomNo, wantRoom)
		}
	}
	last := plan.Rows[10]
	if last.Slot != 2 || *last.RoomNo != "1" {
		t.Errorf("last row slot/room = %d/%s, want 2/1", last.Slot, *last.RoomNo)
	}
}

func TestPlanPerfectMatchesTakePriority(t *testing.T) {
	// The first-choice-only row comes first in input order but shares
	// participant 1 with the mutual pair, so only one of them fits slot 1.
	in := []entity.Selection{
		sel(1, 1, 3, "300", sp("300")),
		sel(2, 1, 2, "200", nil),
		sel(3, 2, 1, "100", nil),
	}

	plan := planOf(NewPlanner(0, 0), in)
	if len(plan.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(plan.Rows))
	}

	first, second := plan.Rows[0], plan.Rows[1]
	if !first.IsPerfectMatch || first.Slot != 1 {
		t.Errorf("perfect pair placed at slot %d (perfect=%v), want slot 1", first.Slot, first.IsPerfectMatch)
	}
	if second.IsPerfectMatch || !second.IsFirstChoice || second.Slot != 2 {
		t.Errorf("first-choice pair = %+v, want slot 2", second)
	}
}

func TestPlanDiscardsNonQualifyingRows(t *testing.T) {
	in := []entity.Selection{
		sel(1, 1, 2, "200", nil),
		sel(2, 3, 4, "400", sp("999")),
	}

	plan := planOf(NewPlanner(0, 0), in)
	if len(plan.Rows) != 0 || len(plan.Unassigned) != 0 || plan.MaxSlot != 0 {
		t.Errorf("plan = %+v, want empty", plan)
	}
}

func TestPlanSearchBoundReportsUnassigned(t *testing.T) {
	// One room per slot and two slots: participant 1 can meet at most two partners.
	in := append(perfectPair(1, 1, 2), perfectPair(3, 1, 3)...)
	in = append(in, perfectPair(5, 1, 4)...)

	plan := planOf(NewPlanner(1, 2), in)
	if len(plan.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(plan.Rows))
	}
	if len(plan.Unassigned) != 1 {
		t.Fatalf("unassigned = %v, want exactly one entry for the pair", plan.Unassigned)
	}
	u := plan.Unassigned[0]
	if u.SelectorRegistrationID != 1 || u.SelectedRegistrationID != 4 || u.Reason != ReasonSearchBound {
		t.Errorf("unassigned = %+v", u)
	}
}

func TestPlanSelfSelectionIsNotPlaced(t *testing.T) {
	plan := planOf(NewPlanner(0, 0), []entity.Selection{sel(1, 5, 5, "5", sp("5"))})
	if len(plan.Rows) != 0 {
		t.Fatalf("rows = %v, want none", plan.Rows)
	}
	if len(plan.Unassigned) != 1 || plan.Unassigned[0].Reason != ReasonSelfSelection {
		t.Errorf("unassigned = %v", plan.Unassigned)
	}
}

func TestPlanInvariantsOnDenseInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const participants = 40

	var in []entity.Selection
	seen := map[[2]int64]bool{}
	id := int64(1)
	for len(in) < 400 {
		a := rng.Int63n(participants) + 1
		b := rng.Int63n(participants) + 1
		if a == b || seen[[2]int64{a, b}] {
			continue
		}
		seen[[2]int64{a, b}] = true
		var fc *string
		if rng.Intn(3) == 0 {
			fc = sp("its")
		}
		in = append(in, sel(id, a, b, "its", fc))
		id++
	}

	p := NewPlanner(constants.RoomCapacity, constants.MaxSlotSearch)
	plan := planOf(p, in)
	if len(plan.Rows) == 0 {
		t.Fatal("expected some rows to be placed")
	}

	perSlot := map[int]int{}
	booked := map[int]map[int64]bool{}
	pairs := map[pairKey]bool{}
	for _, r := range plan.Rows {
		perSlot[r.Slot]++
		if booked[r.Slot] == nil {
			booked[r.Slot] = map[int64]bool{}
		}
		for _, who := range []int64{r.SelectorRegistrationID, r.SelectedRegistrationID} {
			if booked[r.Slot][who] {
				t.Fatalf("registration %d double-booked in slot %d", who, r.Slot)
			}
			booked[r.Slot][who] = true
		}

		key := newPairKey(r.SelectorRegistrationID, r.SelectedRegistrationID)
		if pairs[key] {
			t.Fatalf("pair %v placed twice", key)
		}
		pairs[key] = true

		if r.Slot > plan.MaxSlot {
			t.Fatalf("row slot %d above MaxSlot %d", r.Slot, plan.MaxSlot)
		}
	}
	for slot, n := range perSlot {
		if n > constants.RoomCapacity {
			t.Errorf("slot %d holds %d rows, capacity %d", slot, n, constants.RoomCapacity)
		}
	}

	again := planOf(p, in)
	if len(again.Rows) != len(plan.Rows) {
		t.Fatalf("second plan has %d rows, want %d", len(again.Rows), len(plan.Rows))
	}
	for i := range plan.Rows {
		a, b := plan.Rows[i], again.Rows[i]
		if a.SelectorRegistrationID != b.SelectorRegistrationID || a.Slot != b.Slot || *a.RoomNo != *b.RoomNo {
			t.Fatalf("plans differ at row %d: %+v vs %+v", i, a, b)
		}
	}
}

func TestNewPairKeyIsOrderInsensitive(t *testing.T) {
	if newPairKey(3, 9) != newPairKey(9, 3) {
		t.Error("pair key depends on order")
	}
	if newPairKey(1, 12) == newPairKey(11, 2) {
		t.Error("distinct pairs share a key")
	}
}
