package query

// Ellipsis is the gap marker in a VisiblePages result.
const Ellipsis = -1

// VisiblePages returns the page numbers the pagination footer shows for the
// given current page and page count, with Ellipsis where pages are elided.
//
// Up to 7 pages everything is shown. Beyond that: page 1, page total, and a
// window current-2..current+2 clamped to 2..total-1, with an ellipsis wherever
// the window does not abut the edge pages. The window is symmetric, so the
// result is stable for any (current, total) pair.
func VisiblePages(current, total int) []int {
	if total <= 0 {
		return nil
	}
	if total <= 7 {
		out := make([]int, total)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}

	lo := current - 2
	if lo < 2 {
		lo = 2
	}
	hi := current + 2
	if hi > total-1 {
		hi = total - 1
	}

	out := []int{1}
	if lo > 2 {
		out = append(out, Ellipsis)
	}
	for p := lo; p <= hi; p++ {
		out = append(out, p)
	}
	if hi < total-1 {
		out = append(out, Ellipsis)
	}
	out = append(out, total)
	return dedupeAdjacent(out)
}

func dedupeAdjacent(pages []int) []int {
	out := pages[:0]
	for i, p := range pages {
		if i > 0 && p == pages[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}
