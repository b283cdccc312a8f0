package distance_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/katalvlaran/tourga/distance"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	in := "id,x,y\n# comment\na, 0, 0\nb,3,0\n,3,4\n"
	cities, err := distance.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []distance.City{
		{ID: "a", X: 0, Y: 0},
		{ID: "b", X: 3, Y: 0},
		{ID: "c2", X: 3, Y: 4},
	}, cities)

	noHeader, err := distance.ReadCSV(strings.NewReader("p,1.5,-2\nq,1e3,0\n"))
	require.NoError(t, err)
	require.Len(t, noHeader, 2)
	require.Equal(t, 1000.0, noHeader[1].X)
}

func TestReadCSV_Malformed(t *testing.T) {
	for name, in := range map[string]string{
		"bad number":   "a,0,0\nb,x,1\n",
		"wrong fields": "a,0,0\nb,1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := distance.ReadCSV(strings.NewReader(in))
			require.ErrorIs(t, err, distance.ErrBadCSV)
		})
	}
}

func TestWriteCSV_Ordered(t *testing.T) {
	cities := []distance.City{{ID: "a", X: 0, Y: 0}, {ID: "b", X: 1.25, Y: 0}, {ID: "c", X: 0, Y: 2}}
	var buf bytes.Buffer
	require.NoError(t, distance.WriteCSV(&buf, distance.Ordered(cities, []int{2, 0, 1})))
	require.Equal(t, "id,x,y\nc,0,2\na,0,0\nb,1.25,0\n", buf.String())

	back, err := distance.ReadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, []distance.City{cities[2], cities[0], cities[1]}, back)
}
