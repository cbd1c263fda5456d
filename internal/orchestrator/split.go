package orchestrator

// Split partitions lines into two contiguous halves, the first of size
// ⌈N/2⌉, preserving original order within each half. No comparison happens
// here: the final result depends only on each half being sorted
// independently and merged.
func Split(lines []string) (left, right []string) {
	mid := (len(lines) + 1) / 2
	return lines[:mid], lines[mid:]
}
