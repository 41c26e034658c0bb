package textdiff

// editOp is one primitive edit produced by the Myers algorithm.
type editOp int

const (
	opEqual editOp = iota
	opDelete
	opInsert
)

type edit struct {
	op       editOp
	oldIndex int // valid for equal/delete
	newIndex int // valid for equal/insert
}

// myersDiff computes the shortest edit script between a and b using the
// greedy O(ND) algorithm. Callers guard sequence length; this function
// assumes both inputs are within the configured cap.
func myersDiff(a, b []string) []edit {
	n := len(a)
	m := len(b)
	if n == 0 && m == 0 {
		return nil
	}

	max := n + m
	// v[k+max] holds the furthest x on diagonal k.
	v := make([]int, 2*max+2)
	var trace [][]int

	outer:
	for d := 0; d <= max; d++ {
		snapshot := make([]int, len(v))
		copy(snapshot, v)
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[k-1+max] < v[k+1+max]) {
				x = v[k+1+max] // move down (insert)
			} else {
				x = v[k-1+max] + 1 // move right (delete)
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[k+max] = x
			if x >= n && y >= m {
				break outer
			}
		}
	}

	return backtrack(a, b, trace)
}

// backtrack walks the trace backwards to recover the edit script.
func backtrack(a, b []string, trace [][]int) []edit {
	n := len(a)
	m := len(b)
	max := n + m
	x, y := n, m

	var reversed []edit
	for d := len(trace) - 1; d >= 0 && (x > 0 || y > 0); d-- {
		v := trace[d]
		k := x - y

		var prevK int
		if k == -d || (k != d && v[k-1+max] < v[k+1+max]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := v[prevK+max]
		prevY := prevX - prevK

		for x > prevX && y > prevY {
			reversed = append(reversed, edit{op: opEqual, oldIndex: x - 1, newIndex: y - 1})
			x--
			y--
		}

		if d > 0 {
			if x == prevX {
				reversed = append(reversed, edit{op: opInsert, newIndex: y - 1})
				y--
			} else {
				reversed = append(reversed, edit{op: opDelete, oldIndex: x - 1})
				x--
			}
		}
	}

	// Leading equal run when d reached 0 with x == y.
	for x > 0 && y > 0 {
		reversed = append(reversed, edit{op: opEqual, oldIndex: x - 1, newIndex: y - 1})
		x--
		y--
	}

	edits := make([]edit, len(reversed))
	for i, e := range reversed {
		edits[len(reversed)-1-i] = e
	}
	return edits
}
