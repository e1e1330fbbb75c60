package engine

import "sort"

// refine runs bounded hill-climbing over occurrences, minimizing the
// (unweighted) gap penalty while preserving the no-conflict invariant. It
// scans candidate moves in the deterministic order (group ascending, day
// ascending, occurrence index ascending, move type: shift, cross-day,
// swap), applies the first admissible strictly-improving move it finds, and
// repeats. It stops at the first full scan with no improvement, or once
// maxIterations steps have been taken, whichever comes first.
//
// Each move type contributes a single candidate per occurrence: the first
// unblocked adjacent slot, the smallest unblocked slot on another day, and a
// swap with the first occurrence at a different timeslot. Other shifts,
// cross-day targets and swap partners are not evaluated.
//
// Admissibility and cost are both evaluated by full recomputation over the
// occurrence list rather than incremental per-(group,day) aggregates; the
// design this engine follows explicitly allows that trade for correctness.
func refine(occurrences []Occurrence, events []Event, g *Graph, maxIterations int) ([]Occurrence, int) {
	current := cloneOccurrences(occurrences)
	iterations := 0

	for iterations < maxIterations {
		next, ok := firstImprovingMove(current, events, g)
		if !ok {
			break
		}
		current = next
		iterations++
	}
	return current, iterations
}

func cloneOccurrences(occ []Occurrence) []Occurrence {
	out := make([]Occurrence, len(occ))
	copy(out, occ)
	return out
}

// firstImprovingMove scans the deterministic candidate order and returns the
// first admissible, strictly cost-improving neighbor schedule.
func firstImprovingMove(occ []Occurrence, events []Event, g *Graph) ([]Occurrence, bool) {
	baseline := gapPenalty(occ, events)
	groups := sortedGroups(events)

	for _, group := range groups {
		for day := 0; day < Days; day++ {
			idxs := occurrenceIndexesFor(occ, events, group, day)
			for _, i := range idxs {
				if cand, ok := tryShift(occ, events, g, i); ok && admissible(cand, events, g) && gapPenalty(cand, events) < baseline {
					return cand, true
				}
				if cand, ok := tryCrossDay(occ, events, g, i); ok && admissible(cand, events, g) && gapPenalty(cand, events) < baseline {
					return cand, true
				}
				if cand, ok := trySwap(occ, i); ok && admissible(cand, events, g) && gapPenalty(cand, events) < baseline {
					return cand, true
				}
			}
		}
	}
	return nil, false
}

func sortedGroups(events []Event) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, e := range events {
		if !seen[e.Group] {
			seen[e.Group] = true
			groups = append(groups, e.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

// occurrenceIndexesFor returns, in ascending index order, the positions in
// occ belonging to group on day.
func occurrenceIndexesFor(occ []Occurrence, events []Event, group string, day int) []int {
	var idxs []int
	for i, o := range occ {
		if events[o.EventID].Group == group && Day(o.Timeslot) == day {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// tryShift moves occurrence i to an adjacent free same-day slot, trying -1
// then +1. "Free" means not already held by the same event or by a
// conflicting one; non-conflicting events may legally share a timeslot.
func tryShift(occ []Occurrence, events []Event, g *Graph, i int) ([]Occurrence, bool) {
	ts := occ[i].Timeslot
	day := Day(ts)
	sid := SlotInDay(ts)
	for _, delta := range [2]int{-1, 1} {
		newSid := sid + delta
		if newSid < 0 || newSid >= SlotsPerDay {
			continue
		}
		newTs := day*SlotsPerDay + newSid
		if blockedAt(occ, events, g, i, newTs) {
			continue
		}
		cand := cloneOccurrences(occ)
		cand[i].Timeslot = newTs
		return cand, true
	}
	return nil, false
}

// tryCrossDay moves occurrence i to the smallest free timeslot on a
// different day, trying days in ascending order.
func tryCrossDay(occ []Occurrence, events []Event, g *Graph, i int) ([]Occurrence, bool) {
	day := Day(occ[i].Timeslot)
	for d := 0; d < Days; d++ {
		if d == day {
			continue
		}
		for sid := 0; sid < SlotsPerDay; sid++ {
			newTs := d*SlotsPerDay + sid
			if blockedAt(occ, events, g, i, newTs) {
				continue
			}
			cand := cloneOccurrences(occ)
			cand[i].Timeslot = newTs
			return cand, true
		}
	}
	return nil, false
}

// trySwap exchanges the timeslot of occurrence i with every other
// occurrence, in ascending index order, returning the first candidate.
func trySwap(occ []Occurrence, i int) ([]Occurrence, bool) {
	for j := range occ {
		if j == i {
			continue
		}
		if occ[i].Timeslot == occ[j].Timeslot {
			continue
		}
		cand := cloneOccurrences(occ)
		cand[i].Timeslot, cand[j].Timeslot = cand[j].Timeslot, cand[i].Timeslot
		return cand, true
	}
	return nil, false
}

// blockedAt reports whether moving occurrence i (excluded from the scan) to
// ts would collide with the same event or a conflicting one already there.
func blockedAt(occ []Occurrence, events []Event, g *Graph, i int, ts int) bool {
	movingEvent := occ[i].EventID
	for j, o := range occ {
		if j == i || o.Timeslot != ts {
			continue
		}
		if o.EventID == movingEvent || g.HasEdge(o.EventID, movingEvent) {
			return true
		}
	}
	return false
}

// admissible reports whether occ is a proper placement: no two occurrences
// of conflicting events share a timeslot, and no event occupies the same
// timeslot twice.
func admissible(occ []Occurrence, events []Event, g *Graph) bool {
	byTimeslot := make(map[int][]int) // ts -> event ids placed there
	for _, o := range occ {
		for _, other := range byTimeslot[o.Timeslot] {
			if other == o.EventID {
				return false
			}
			if g.HasEdge(other, o.EventID) {
				return false
			}
		}
		byTimeslot[o.Timeslot] = append(byTimeslot[o.Timeslot], o.EventID)
	}
	return true
}

// gapPenalty computes the unweighted cost function of section 4.5: the sum
// over (group, day) of empty slots interleaved between that group's first
// and last occupied slot of the day.
func gapPenalty(occ []Occurrence, events []Event) int {
	type key struct {
		group string
		day   int
	}
	slotsByKey := make(map[key][]int)
	for _, o := range occ {
		k := key{group: events[o.EventID].Group, day: Day(o.Timeslot)}
		slotsByKey[k] = append(slotsByKey[k], SlotInDay(o.Timeslot))
	}

	total := 0
	for _, slots := range slotsByKey {
		first, last := slots[0], slots[0]
		for _, s := range slots[1:] {
			if s < first {
				first = s
			}
			if s > last {
				last = s
			}
		}
		span := last - first + 1
		occupied := len(slots)
		if gap := span - occupied; gap > 0 {
			total += gap
		}
	}
	return total
}
