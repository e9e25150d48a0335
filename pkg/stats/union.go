package stats

import "sort"

// span is a 1-based closed interval.
type span struct {
	start, end int
}

// unionLength is the number of bases covered by at least one span. spans is
// reordered in place.
func unionLength(spans []span) int64 {
	if len(spans) == 0 {
		return 0
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var total int64
	cur := spans[0]
	for _, s := range spans[1:] {
		if s.start <= cur.end+1 {
			if s.end > cur.end {
				cur.end = s.end
			}
			continue
		}
		total += int64(cur.end - cur.start + 1)
		cur = s
	}
	total += int64(cur.end - cur.start + 1)
	return total
}
