package alphabet

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestChangeBasisRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		b1 := 2 + r.Intn(35) // 2..36
		n := 1 + r.Intn(40)
		digits := make([]int, n)
		for i := range digits {
			digits[i] = r.Intn(b1)
		}

		packed := ChangeBasis(digits, b1, Len)
		back := ChangeBasis(packed, Len, b1)

		if !reflect.DeepEqual(back, digits) {
			t.Fatalf("round trip mismatch for b1=%d digits=%v: got %v via packed=%v", b1, digits, back, packed)
		}
	}
}

func TestChangeBasisPreservesLeadingZeros(t *testing.T) {
	tests := [][]int{
		{0, 0, 1, 2},
		{0, 0, 0},
		{0, 5},
	}

	for _, digits := range tests {
		packed := ChangeBasis(digits, 10, Len)
		back := ChangeBasis(packed, Len, 10)
		if !reflect.DeepEqual(back, digits) {
			t.Errorf("leading zeros not preserved for %v: got %v", digits, back)
		}
	}
}

func TestSymbolValueRoundTrip(t *testing.T) {
	for i := 0; i < Len; i++ {
		if Value(Symbol(i)) != i {
			t.Errorf("Symbol/Value round trip broke at %d", i)
		}
	}
	if Value('?') != -1 {
		t.Errorf("Value of non-alphabet char should be -1")
	}
}
