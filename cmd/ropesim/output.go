package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// frameWriter emits the rope positions of one step
type frameWriter interface {
	WriteFrame(step int, t float64, rope int, positions []mgl64.Vec3) error
	Flush() error
}

func newFrameWriter(format string, w io.Writer) (frameWriter, error) {
	switch format {
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"step", "time", "rope", "particle", "x", "y", "z"}); err != nil {
			return nil, err
		}
		return &csvWriter{w: cw}, nil
	case "json":
		return &jsonWriter{enc: json.NewEncoder(w)}, nil
	case "none":
		return discardWriter{}, nil
	}

	return nil, fmt.Errorf("unknown format %q", format)
}

type csvWriter struct {
	w *csv.Writer
}

func (c *csvWriter) WriteFrame(step int, t float64, rope int, positions []mgl64.Vec3) error {
	for i, p := range positions {
		record := []string{
			strconv.Itoa(step),
			strconv.FormatFloat(t, 'f', 4, 64),
			strconv.Itoa(rope),
			strconv.Itoa(i),
			strconv.FormatFloat(p.X(), 'f', 6, 64),
			strconv.FormatFloat(p.Y(), 'f', 6, 64),
			strconv.FormatFloat(p.Z(), 'f', 6, 64),
		}
		if err := c.w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func (c *csvWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

type frame struct {
	Step      int          `json:"step"`
	Time      float64      `json:"time"`
	Rope      int          `json:"rope"`
	Positions []mgl64.Vec3 `json:"positions"`
}

// jsonWriter writes one JSON object per line
type jsonWriter struct {
	enc *json.Encoder
}

func (j *jsonWriter) WriteFrame(step int, t float64, rope int, positions []mgl64.Vec3) error {
	return j.enc.Encode(frame{Step: step, Time: t, Rope: rope, Positions: positions})
}

func (j *jsonWriter) Flush() error { return nil }

type discardWriter struct{}

func (discardWriter) WriteFrame(int, float64, int, []mgl64.Vec3) error { return nil }
func (discardWriter) Flush() error                                     { return nil }
