package service

import (
	"strconv"

	"taruf-api/core/constants"
	"taruf-api/core/utils"
	"taruf-api/modules/slot/dto"
	"taruf-api/modules/slot/entity"
)

// Reasons reported for pairs the planner could not place.
const (
	ReasonSearchBound   = "no_slot_within_search_bound"
	ReasonSelfSelection = "self_selection"
)

// Planner greedily places qualifying pairs into slots and rooms.
type Planner struct {
	RoomCapacity  int
	MaxSlotSearch int
}

// NewPlanner creates a planner. Non-positive limits fall back to the defaults.
func NewPlanner(roomCapacity, maxSlotSearch int) *Planner {
	if roomCapacity <= 0 {
		roomCapacity = constants.RoomCapacity
	}
	if maxSlotSearch <= 0 {
		maxSlotSearch = constants.MaxSlotSearch
	}
	return &Planner{RoomCapacity: roomCapacity, MaxSlotSearch: maxSlotSearch}
}

// Plan is the outcome of one planning pass.
type Plan struct {
	Rows       []entity.SlotAssignment
	MaxSlot    int
	Unassigned []dto.UnassignedPair
}

// pairKey identifies an unordered pair; lo <= hi always.
type pairKey struct {
	lo, hi int64
}

func newPairKey(a, b int64) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

type slotState struct {
	nextRoom int
	booked   map[int64]struct{}
}

func (s *slotState) fits(a, b int64, capacity int) bool {
	if s.nextRoom > capacity {
		return false
	}
	_, aBooked := s.booked[a]
	_, bBooked := s.booked[b]
	return !aBooked && !bBooked
}

type slotBook struct {
	capacity int
	bound    int
	slots    map[int]*slotState
}

func (b *slotBook) state(slot int) *slotState {
	st, ok := b.slots[slot]
	if !ok {
		st = &slotState{nextRoom: 1, booked: make(map[int64]struct{})}
		b.slots[slot] = st
	}
	return st
}

// firstFit returns the lowest slot in [1, bound] that can host both
// participants, or 0 when none can.
func (b *slotBook) firstFit(x, y int64) int {
	for slot := 1; slot <= b.bound; slot++ {
		if b.state(slot).fits(x, y, b.capacity) {
			return slot
		}
	}
	return 0
}

// take books both participants into slot and returns the room number used.
func (b *slotBook) take(slot int, x, y int64) int {
	st := b.state(slot)
	room := st.nextRoom
	st.nextRoom++
	st.booked[x] = struct{}{}
	st.booked[y] = struct{}{}
	return room
}

// Plan places the classified selections of one taruf. Perfect matches are
// drained before first-choice-only matches so mutual pairs claim the lowest
// slots. Each unordered pair is placed once.
func (p *Planner) Plan(tarufID int64, classified []entity.ClassifiedSelection) Plan {
	var perfect, firstChoiceOnly []entity.ClassifiedSelection
	for _, c := range classified {
		switch {
		case c.IsPerfectMatch:
			perfect = append(perfect, c)
		case c.IsFirstChoiceMatch:
			firstChoiceOnly = append(firstChoiceOnly, c)
		}
	}

	book := &slotBook{capacity: p.RoomCapacity, bound: p.MaxSlotSearch, slots: make(map[int]*slotState)}
	processed := make(map[pairKey]struct{})
	dropped := make(map[pairKey]struct{})
	plan := Plan{Rows: []entity.SlotAssignment{}, Unassigned: []dto.UnassignedPair{}}

	place := func(c entity.ClassifiedSelection) {
		key := newPairKey(c.SelectorID, c.SelectedID)
		if _, done := processed[key]; done {
			return
		}
		if _, done := dropped[key]; done {
			return
		}

		if c.SelectorID == c.SelectedID {
			dropped[key] = struct{}{}
			plan.Unassigned = append(plan.Unassigned, unassigned(c, ReasonSelfSelection))
			return
		}

		slot := book.firstFit(c.SelectorID, c.SelectedID)
		if slot == 0 {
			dropped[key] = struct{}{}
			plan.Unassigned = append(plan.Unassigned, unassigned(c, ReasonSearchBound))
			return
		}

		room := book.take(slot, c.SelectorID, c.SelectedID)
		processed[key] = struct{}{}
		if slot > plan.MaxSlot {
			plan.MaxSlot = slot
		}

		plan.Rows = append(plan.Rows, entity.SlotAssignment{
			TarufID:                tarufID,
			SelectorRegistrationID: c.SelectorID,
			SelectedRegistrationID: c.SelectedID,
			CandidateITS:           utils.NormalizeITSPtr(c.SelectedITS),
			Slot:                   slot,
			RoomNo:                 utils.StringPtr(strconv.Itoa(room)),
			Timings:                utils.StringPtr(constants.TimingsPlaceholder),
			IsPerfectMatch:         c.IsPerfectMatch,
			IsFirstChoice:          c.IsFirstChoiceMatch,
		})
	}

	for _, c := range perfect {
		place(c)
	}
	for _, c := range firstChoiceOnly {
		place(c)
	}
	return plan
}

func unassigned(c entity.ClassifiedSelection, reason string) dto.UnassignedPair {
	return dto.UnassignedPair{
		SelectorRegistrationID: c.SelectorID,
		SelectedRegistrationID: c.SelectedID,
		IsPerfectMatch:         c.IsPerfectMatch,
		IsFirstChoice:          c.IsFirstChoiceMatch,
		Reason:                 reason,
	}
}
