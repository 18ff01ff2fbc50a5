package frame

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/navweather/vlfchart/internal/alphabet"
)

func TestHeaderParseSeedScenario(t *testing.T) {
	msg := "10/10/12/7/010000ZJAN2025/EUCOM/A1R1G2U3S5/\n10/\n"
	h, flat, err := Unpack(msg)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if h.H != 10 || h.W != 10 || h.N != 12 || h.MaxCoeff != 7 {
		t.Errorf("header = %+v, want H=10 W=10 N=12 MaxCoeff=7", h)
	}
	if h.DTG != "010000ZJAN2025" || h.Template != "EUCOM" {
		t.Errorf("header = %+v, want DTG=010000ZJAN2025 Template=EUCOM", h)
	}
	for i, v := range flat {
		if v != 0 {
			t.Errorf("flat[%d] = %d, want 0 (radix-1 line of all zero digits)", i, v)
		}
	}
}

func TestFormatHeaderRoundTrip(t *testing.T) {
	h := Header{H: 128, W: 128, N: 12, MaxCoeff: 42, DTG: "010000ZJAN2025", Template: "EUCOM"}
	line := FormatHeader(h)
	if !strings.Contains(line, Sentinel) {
		t.Fatalf("formatted header missing sentinel: %q", line)
	}
	got, err := ParseHeader(line)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if got != h {
		t.Fatalf("ParseHeader(FormatHeader(h)) = %+v, want %+v", got, h)
	}
}

func TestPackLineBound(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(500) + 1
		coeffs := make([]int, n)
		for i := range coeffs {
			// A line's radix is max+1 and must itself be an alphabet symbol.
			coeffs[i] = rng.Intn(alphabet.Len - 1)
		}

		block := Pack(coeffs)
		for _, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
			if len(line) == 0 {
				continue
			}
			if len(line) > 68 {
				t.Fatalf("trial %d: line %q has length %d, want <= 68", trial, line, len(line))
			}
		}
	}
}

func TestPackUnpackRoundTripWithinQuantisation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	coeffs := make([]int, 120)
	for i := range coeffs {
		coeffs[i] = rng.Intn(alphabet.Len - 1)
	}

	block := Pack(coeffs)
	h := Header{H: 10, W: 10, N: 12, MaxCoeff: 5, DTG: "010000ZJAN2025", Template: "EUCOM"}

	var sb strings.Builder
	sb.WriteString(FormatHeader(h))
	sb.WriteString("\n")
	sb.WriteString(block)

	_, flat, err := Unpack(sb.String())
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if len(flat) != len(coeffs) {
		t.Fatalf("round trip coefficient count = %d, want %d", len(flat), len(coeffs))
	}
	for i := range coeffs {
		if flat[i] != coeffs[i] {
			t.Errorf("coeff %d = %d, want %d", i, flat[i], coeffs[i])
		}
	}
}

func TestEnvelopeCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/Message Template.txt"

	intro, outro, err := Envelope(path)
	if err != nil {
		t.Fatalf("Envelope: %v", err)
	}
	if !strings.Contains(intro, "FM COMSUBPAC") {
		t.Errorf("intro missing expected routing line: %q", intro)
	}
	if !strings.Contains(outro, "NNNN") {
		t.Errorf("outro missing expected terminator: %q", outro)
	}

	intro2, outro2, err := Envelope(path)
	if err != nil {
		t.Fatalf("Envelope (second load): %v", err)
	}
	if intro2 != intro || outro2 != outro {
		t.Errorf("Envelope not stable across reload")
	}
}
