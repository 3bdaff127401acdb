package ga

// Genome packing (§4.4, redesign flag in §9). Each session's (start, room)
// pair is packed into one integer: start*multiplier + roomIndex. The
// original source fixed multiplier=100, capping roomIndex (and therefore
// the room list) at 100 entries — a brittle ceiling the spec calls out for
// replacement. Here the multiplier is derived from the actual room count,
// so it never collides regardless of how many rooms are supplied.

// MultiplierFor returns the smallest power of ten strictly greater than
// every valid room index [0, numRooms). Room lists of length 0 or 1 get 10
// as a floor, so start can always be recovered losslessly. Exported
// so callers building a Config (the engine) can compute it without
// duplicating the rule.
func MultiplierFor(numRooms int) int {
	if numRooms <= 1 {
		return 10
	}
	m := 10
	for m <= numRooms-1 {
		m *= 10
	}
	return m
}

// encode packs a (start, roomIndex) pair. roomIndex must be in
// [0, multiplier).
func encode(start, roomIndex, multiplier int) int {
	return start*multiplier + roomIndex
}

// decode unpacks a gene back into (start, roomIndex), clamping roomIndex
// into range if the gene was produced by crossover/mutation and drifted
// out of bounds — the fitness function penalizes the resulting schedule
// rather than panicking.
func decode(gene, multiplier, numRooms int) (start, roomIndex int) {
	start = gene / multiplier
	roomIndex = gene % multiplier
	if roomIndex < 0 {
		roomIndex += multiplier
	}
	if numRooms == 0 {
		return start, -1
	}
	if roomIndex >= numRooms {
		roomIndex = roomIndex % numRooms
	}
	return start, roomIndex
}
