package cavity

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellCenteredFields(t *testing.T) {
	var (
		N  = 8
		c  = NewCavity(NewParameters(100, N), 1)
		fs = c.Fields
	)
	// u varies linearly with the row index, v with the column index, p with
	// both, so the centered averages are known exactly
	for j := 0; j <= N; j++ {
		row := fs.U.Row(j)
		for i := 0; i < N; i++ {
			row[i] = float64(j)
		}
	}
	for j := 0; j < N; j++ {
		row := fs.V.Row(j)
		for i := 0; i <= N; i++ {
			row[i] = float64(i)
		}
	}
	for j := 0; j <= N; j++ {
		row := fs.P.Row(j)
		for i := 0; i <= N; i++ {
			row[i] = float64(i + j)
		}
	}
	ug, vg, pg := c.CellCenteredFields()
	nr, nc := ug.Dims()
	require.Equal(t, N, nr)
	require.Equal(t, N, nc)
	for j := 0; j < N; j++ {
		for i := 0; i < N; i++ {
			assert.InDelta(t, float64(j)+0.5, ug.At(j, i), 1e-14)
			assert.InDelta(t, float64(i)+0.5, vg.At(j, i), 1e-14)
			assert.InDelta(t, float64(i+j)+1.0, pg.At(j, i), 1e-14)
		}
	}
}

func TestWriteFields(t *testing.T) {
	var (
		N = 8
		c = NewCavity(NewParameters(100, N), 1)
		w bytes.Buffer
	)
	require.NoError(t, c.WriteFields(&w))
	sc := bufio.NewScanner(&w)
	require.True(t, sc.Scan())
	assert.True(t, strings.HasPrefix(sc.Text(), "# 8"))
	lines := 0
	for sc.Scan() {
		assert.Equal(t, 5, len(strings.Split(sc.Text(), "\t")))
		lines++
	}
	assert.Equal(t, N*N, lines)
}
