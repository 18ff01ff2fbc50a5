// Package zigzag produces the deterministic scan order used to linearise
// the low-frequency block of a 2-D DFT output into the order the wire
// message transmits coefficients in.
package zigzag

// Addr is a single (row, col) address into the top-left (n x 2n) block of a
// real DFT's interleaved-column output.
type Addr struct {
	I, J int
}

// Mapping returns the ordered list of addresses for shell count n:
// [0,0], [0,1], then for each shell k = 1..n-1, the four-way sweep over
// i = 0..k-1 followed by the diagonal pair [k,2k], [k,2k+1].
//
// Grounded on original_source/python/textCompression.py dft_mapping().
func Mapping(n int) []Addr {
	out := []Addr{{0, 0}, {0, 1}}

	for k := 1; k < n; k++ {
		j := k
		for i := 0; i < k; i++ {
			out = append(out,
				Addr{i, 2 * j},
				Addr{i, 2*j + 1},
				Addr{j, 2 * i},
				Addr{j, 2*i + 1},
			)
		}
		out = append(out, Addr{k, 2 * k}, Addr{k, 2*k + 1})
	}

	return out
}
