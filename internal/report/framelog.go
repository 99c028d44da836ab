package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// FrameLogHeader is the first line of every frame log.
const FrameLogHeader = "frame,x,y,z"

var frameLogColumns = strings.Split(FrameLogHeader, ",")

// ErrMalformedFrameLog is returned by ReadFrameLog for unparseable input.
var ErrMalformedFrameLog = errors.New("report: malformed frame log")

// WriteFrameLog writes one row per placement: the frame index followed by
// the coordinates at six decimals. Frame i holds points[i].
func WriteFrameLog(w io.Writer, points []r3.Vec) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(frameLogColumns); err != nil {
		return err
	}
	for i, p := range points {
		row := []string{
			strconv.Itoa(i),
			fmt.Sprintf("%.6f", p.X),
			fmt.Sprintf("%.6f", p.Y),
			fmt.Sprintf("%.6f", p.Z),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFrameLog parses a log written by WriteFrameLog. Frames must be
// consecutive from zero.
func ReadFrameLog(r io.Reader) ([]r3.Vec, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(frameLogColumns)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedFrameLog)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrameLog, err)
	}
	if strings.Join(header, ",") != FrameLogHeader {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrMalformedFrameLog, strings.Join(header, ","))
	}

	var points []r3.Vec
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return points, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedFrameLog, err)
		}
		line, _ := cr.FieldPos(0)
		frame, err := strconv.Atoi(record[0])
		if err != nil || frame != len(points) {
			return nil, fmt.Errorf("%w: line %d: frame %q out of sequence", ErrMalformedFrameLog, line, record[0])
		}
		var xyz [3]float64
		for i := range xyz {
			if xyz[i], err = strconv.ParseFloat(record[i+1], 64); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedFrameLog, line, err)
			}
		}
		points = append(points, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
}
