// SPDX-License-Identifier: MIT

package distance

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadCSV parses rows of "id,x,y". A first row whose coordinates do not
// parse as numbers is taken as a header and skipped. Empty IDs are replaced
// by "c<row>".
func ReadCSV(r io.Reader) ([]City, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var (
		out  []City
		line int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadCSV, err)
		}
		line++

		x, errX := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if errX != nil || errY != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("%w: line %d: coordinates %q,%q", ErrBadCSV, line, rec[1], rec[2])
		}
		id := strings.TrimSpace(rec[0])
		if id == "" {
			id = fmt.Sprintf("c%d", len(out))
		}
		out = append(out, City{ID: id, X: x, Y: y})
	}
	return out, nil
}

// WriteCSV writes cities in the given order with an "id,x,y" header.
func WriteCSV(w io.Writer, cities []City) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "x", "y"}); err != nil {
		return err
	}
	for _, c := range cities {
		row := []string{
			c.ID,
			strconv.FormatFloat(c.X, 'g', -1, 64),
			strconv.FormatFloat(c.Y, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Ordered returns cities rearranged along perm. perm must be a valid
// permutation of the indices of cities.
func Ordered(cities []City, perm []int) []City {
	out := make([]City, len(perm))
	for i, idx := range perm {
		out[i] = cities[idx]
	}
	return out
}
