// Package frame implements the wire message envelope (C4): the fixed
// intro/outro stubs, the metadata header line keyed by a literal sentinel,
// and the greedy mixed-radix line packer/unpacker for the coefficient
// stream.
//
// Grounded on original_source/python/textCompression.py msgcontent_write(),
// msgdata_write(), msg_read().
package frame

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/navweather/vlfchart/internal/alphabet"
	"github.com/navweather/vlfchart/internal/atomicfile"
)

// Sentinel is the literal substring the decoder scans for to locate the
// header line.
const Sentinel = "A1R1G2U3S5"

// Header is the single metadata line between the envelope intro and the
// data block.
type Header struct {
	H, W, N, MaxCoeff int
	DTG               string
	Template          string
}

// FormatHeader renders h as "{H}/{W}/{n}/{max_coeff}/{dtg}/{template}/A1R1G2U3S5/".
func FormatHeader(h Header) string {
	return fmt.Sprintf("%d/%d/%d/%d/%s/%s/%s/", h.H, h.W, h.N, h.MaxCoeff, h.DTG, h.Template, Sentinel)
}

// ParseHeader parses a header line located by its sentinel.
func ParseHeader(line string) (Header, error) {
	parts := strings.Split(line, "/")
	if len(parts) < 7 {
		return Header{}, fmt.Errorf("frame: malformed header line %q", line)
	}
	ints := make([]int, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(parts[i])
		if err != nil {
			return Header{}, fmt.Errorf("frame: header field %d (%q): %w", i, parts[i], err)
		}
		ints[i] = v
	}
	return Header{
		H: ints[0], W: ints[1], N: ints[2], MaxCoeff: ints[3],
		DTG:      parts[4],
		Template: parts[5],
	}, nil
}

const defaultEnvelope = "R XXXXXXZ MMM YY\n" +
	"FM COMSUBPAC PEARL HARBOR HI\n" +
	"TO SSBN PAC\n" +
	"BT\n" +
	"UNCLAS\n" +
	"SUBJ/VLF WEATHER GIF//\n" +
	"RMKS/REACH OUT TO ISIC FOR INSTRUCTIONS ON HOW TO USE THIS MESSAGE.\n" +
	"<message>\n" +
	"BT\n" +
	"#0001\n" +
	"NNNN\n"

const messageMarker = "<message>\n"

// Envelope loads the Message Template resource at path, creating it with a
// default routing envelope if absent, and splits it into the intro/outro
// halves around the <message> marker.
func Envelope(path string) (intro, outro string, err error) {
	content, err := atomicfile.ReadOrCreate(path, func() string { return defaultEnvelope })
	if err != nil {
		return "", "", err
	}
	parts := strings.SplitN(content, messageMarker, 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("frame: message template %s is missing the <message> marker", path)
	}
	return parts[0], parts[1], nil
}

// Pack greedily windows coeffs into base-36 lines, each prefixed by its own
// per-line radix symbol. Faithful port of msgdata_write's window-growth
// loop, including the documented double-advance behaviour: end is
// incremented once on every dump, then unconditionally once more at the
// bottom of the loop.
func Pack(coeffs []int) string {
	var sb strings.Builder
	beg, end := 0, 2
	dump := false
	lineCap := "\n"

	for beg < len(coeffs) {
		window := clampSlice(coeffs, beg, end)
		md := maxOf(window) + 1
		line := alphabet.ChangeBasis(window, md, alphabet.Len)

		if len(line) > 67 {
			end--
			window = clampSlice(coeffs, beg, end)
			md = maxOf(window) + 1
			line = alphabet.ChangeBasis(window, md, alphabet.Len)
			dump = true
		} else if end >= len(coeffs) {
			lineCap = "/\n"
			dump = true
		}

		if dump {
			sb.WriteByte(alphabet.Symbol(md))
			for _, cb := range line {
				sb.WriteByte(alphabet.Symbol(cb))
			}
			sb.WriteString(lineCap)

			beg = end
			end++
			dump = false
		}
		end++
	}

	return sb.String()
}

func clampSlice(s []int, beg, end int) []int {
	if beg < 0 {
		beg = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if beg > end {
		beg = end
	}
	return s[beg:end]
}

func maxOf(s []int) int {
	m := 0
	for _, v := range s {
		if v > m {
			m = v
		}
	}
	return m
}

// Unpack scans msg line by line: lines before the sentinel are discarded
// (envelope intro), the sentinel line is parsed as the header, subsequent
// lines are decoded data lines until one containing '/' is seen, and
// everything after that is the envelope outro (ignored here — callers that
// need it re-derive it from the template's Envelope).
func Unpack(msg string) (Header, []int, error) {
	sc := bufio.NewScanner(strings.NewReader(msg))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	headerPhase := true
	footer := false
	var h Header
	found := false
	var flat []int

	for sc.Scan() {
		line := sc.Text()
		if headerPhase {
			if strings.Contains(line, Sentinel) {
				parsed, err := ParseHeader(line)
				if err != nil {
					return Header{}, nil, err
				}
				h = parsed
				headerPhase = false
				found = true
			}
			continue
		}
		if footer || line == "" {
			continue
		}

		md := alphabet.Value(line[0])
		if md < 0 {
			return Header{}, nil, fmt.Errorf("frame: invalid line radix symbol %q", line[0])
		}

		digits := make([]int, 0, len(line)-1)
		for i := 1; i < len(line); i++ {
			if line[i] == '/' {
				footer = true
				continue
			}
			v := alphabet.Value(line[i])
			if v < 0 {
				return Header{}, nil, fmt.Errorf("frame: invalid data symbol %q", line[i])
			}
			digits = append(digits, v)
		}

		flat = append(flat, alphabet.ChangeBasis(digits, alphabet.Len, md)...)
	}
	if !found {
		return Header{}, nil, fmt.Errorf("frame: header sentinel %q not found", Sentinel)
	}
	return h, flat, nil
}

// Compose writes the full message: intro, header line, data block, outro.
func Compose(w io.Writer, intro string, h Header, dataBlock, outro string) error {
	if _, err := io.WriteString(w, intro); err != nil {
		return err
	}
	if _, err := io.WriteString(w, FormatHeader(h)+"\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, dataBlock); err != nil {
		return err
	}
	_, err := io.WriteString(w, outro)
	return err
}
