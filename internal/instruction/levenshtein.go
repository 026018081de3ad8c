package instruction

// Levenshtein returns the edit distance between a and b, counting
// substitutions, insertions and deletions at cost 1 each.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// nearMiss reports whether found is one slip away from expected: a single
// substitution, insertion or deletion, or one swapped adjacent pair.
func nearMiss(found, expected string) bool {
	if Levenshtein(found, expected) <= 1 {
		return found != expected
	}
	return isAdjacentTransposition(found, expected)
}

func isAdjacentTransposition(a, b string) bool {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) != len(rb) {
		return false
	}

	i := 0
	for i < len(ra) && ra[i] == rb[i] {
		i++
	}
	if i >= len(ra)-1 {
		return false
	}
	if ra[i] != rb[i+1] || ra[i+1] != rb[i] {
		return false
	}
	for j := i + 2; j < len(ra); j++ {
		if ra[j] != rb[j] {
			return false
		}
	}
	return true
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
