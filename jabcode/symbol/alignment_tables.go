package symbol

// MinimumDistanceBetweenAlignments is the smallest allowed module gap between two neighboring
// alignment patterns on the same axis (DISTANCE_TO_BORDER-adjacent source constant).
const MinimumDistanceBetweenAlignments = 16

// fpCoreOffset is the module offset of a finder-pattern center from its nearest symbol edge
// (a 1-module core plus two surrounding rings).
const fpCoreOffset = 3

// apNoInteriorVersion is the highest version that carries no interior alignment patterns --
// only the four corner APs, which coincide with the finder patterns themselves.
const apNoInteriorVersion = 5

// APPositions returns the 1-D list of module offsets (from the symbol's left/top edge) at which
// alignment patterns sit along one axis for the given side version, ap_pos[version] in the
// reference source. The two end entries always coincide with the corner finder-pattern centers.
//
// jab_ap_pos/jab_ap_num were declared external in the retrieved detector.c/encoder.c but their
// definitions live in a constants translation unit the retrieval did not capture (see DESIGN.md).
// This reconstructs them from the invariants spec.md does give directly: corner APs coincide with
// finder patterns, interior gaps are >= MinimumDistanceBetweenAlignments, and the first-AP probe
// distance from a corner must land in {14,17,20,23,26} (an arithmetic sequence of step 3) -- so
// gaps are chosen as close to 20 as the span allows, never below 16.
func APPositions(version int) []int {
	side := SideSize(version)
	first := fpCoreOffset
	last := side - 1 - fpCoreOffset
	if version <= apNoInteriorVersion {
		return []int{first, last}
	}

	span := last - first
	const targetGap = 20
	count := span / targetGap
	if count < 2 {
		count = 2
	}
	// shrink count until every gap clears the minimum spacing
	for count > 2 && span/count < MinimumDistanceBetweenAlignments {
		count--
	}

	positions := make([]int, count+1)
	for i := 0; i <= count; i++ {
		positions[i] = first + i*span/count
	}
	return positions
}

// APNum returns the number of alignment patterns along one axis for the given side version,
// ap_num[version] in the reference source.
func APNum(version int) int {
	return len(APPositions(version))
}
