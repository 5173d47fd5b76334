package materials

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/drennan/optmix/internal/optics"
)

// micronToCm converts the lnk wavelength column to the cm convention used
// everywhere else in this module.
const micronToCm = 1e-4

// ParseLNK reads an lnk optical-constant table.
//
// The format is three whitespace-separated columns per line: wavelength in
// micron, n, k. Lines starting with '#' and blank lines are ignored.
// Wavelengths are converted to cm and must be ascending; the resulting
// record is validated before being returned.
func ParseLNK(r io.Reader) (*optics.Record, error) {
	rec := &optics.Record{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: want 3 columns, got %d", lineNo, len(fields))
		}
		vals := make([]float64, 3)
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %d: %w", lineNo, i+1, err)
			}
			vals[i] = v
		}
		rec.L = append(rec.L, vals[0]*micronToCm)
		rec.N = append(rec.N, vals[1])
		rec.K = append(rec.K, vals[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}
