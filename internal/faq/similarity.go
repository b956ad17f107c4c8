package faq

// Ratio computes a normalized similarity in [0,1] between two strings:
// twice the number of matching characters over the total length, where
// matches are found greedily as the longest contiguous blocks
// (Ratcliff/Obershelp). Identical strings score 1.0.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingTotal(ra, rb)) / float64(total)
}

// matchingTotal sums the sizes of all matching blocks: the longest common
// contiguous block, then recursively the pieces to its left and right.
func matchingTotal(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	var rec func(alo, ahi, blo, bhi int) int
	rec = func(alo, ahi, blo, bhi int) int {
		i, j, k := longestMatch(a, b2j, alo, ahi, blo, bhi)
		if k == 0 {
			return 0
		}
		return k + rec(alo, i, blo, j) + rec(i+k, ahi, j+k, bhi)
	}
	return rec(0, len(a), 0, len(b))
}

// longestMatch finds the longest block a[i:i+k] == b[j:j+k] with
// alo <= i < i+k <= ahi and blo <= j < j+k <= bhi. Of all maximal blocks it
// returns the one starting earliest in a, then earliest in b.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	// j2len[j] is the length of the longest match ending at a[i-1], b[j].
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}
