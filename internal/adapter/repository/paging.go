package repository

// pageBounds returns the [start, end) slice bounds for limit/offset paging
// over n items. A non-positive limit means "everything after offset".
func pageBounds(n, limit, offset int) (int, int) {
	start := offset
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end := n
	if limit > 0 && start+limit < n {
		end = start + limit
	}
	return start, end
}
