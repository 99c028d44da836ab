package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestWriteFrameLog(t *testing.T) {
	var buf bytes.Buffer
	points := []r3.Vec{
		{X: 0.1, Y: -0.2, Z: 0.3},
		{X: 1.23456789, Y: 0, Z: -4.5},
	}
	require.NoError(t, WriteFrameLog(&buf, points))

	want := "frame,x,y,z\n" +
		"0,0.100000,-0.200000,0.300000\n" +
		"1,1.234568,0.000000,-4.500000\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("frame log mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFrameLog_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrameLog(&buf, nil))
	assert.Equal(t, "frame,x,y,z\n", buf.String())
}

func TestReadFrameLog_RoundTrip(t *testing.T) {
	points := []r3.Vec{{X: 0.5, Y: 0.25, Z: -0.125}, {X: -1, Y: 2, Z: 3}}
	var buf bytes.Buffer
	require.NoError(t, WriteFrameLog(&buf, points))

	got, err := ReadFrameLog(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(points, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFrameLog_Malformed(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"bad header":   "i,x,y,z\n",
		"short line":   "frame,x,y,z\n0,1,2\n",
		"skipped":      "frame,x,y,z\n1,0,0,0\n",
		"bad number":   "frame,x,y,z\n0,a,0,0\n",
		"bad frame id": "frame,x,y,z\nzero,0,0,0\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadFrameLog(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrMalformedFrameLog)
		})
	}
}

func TestReadFrameLog_ToleratesBlankLinesAndCRLF(t *testing.T) {
	input := "frame,x,y,z\r\n0,1.000000,2.000000,3.000000\r\n\r\n1,-1.000000,0.500000,0.000000\r\n"
	got, err := ReadFrameLog(strings.NewReader(input))
	require.NoError(t, err)
	want := []r3.Vec{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0.5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFrameLog_ExtraColumnRejected(t *testing.T) {
	_, err := ReadFrameLog(strings.NewReader("frame,x,y,z\n0,0,0,0,9\n"))
	assert.ErrorIs(t, err, ErrMalformedFrameLog)
}
