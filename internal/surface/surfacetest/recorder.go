// Package surfacetest provides a recording surface.Surface for tests.
package surfacetest

import (
	"fmt"
	"image/color"

	"github.com/iburimskiy/embers/internal/surface"
)

// Op is one recorded drawing call.
type Op struct {
	Name   string
	Args   []float64
	Color  color.NRGBA
	Path   *surface.Path
	Grad   *surface.Gradient
	Matrix surface.Affine
}

func (o Op) String() string {
	return fmt.Sprintf("%s%v", o.Name, o.Args)
}

// Recorder implements surface.Surface by appending every call to Ops.
type Recorder struct {
	surface.TransformStack

	W, H   int
	Ops    []Op
	Resets int
}

// New returns a recorder of the given size.
func New(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) SetSize(w, h int) {
	r.W, r.H = w, h
	r.Resets++
}

func (r *Recorder) Clear() {
	r.ResetTransform()
	r.add(Op{Name: "clear"}, nil)
}

func (r *Recorder) FillCircle(x, y, rad float64, c color.Color) {
	r.add(Op{Name: "circle", Args: []float64{x, y, rad}}, c)
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	r.add(Op{Name: "line", Args: []float64{x0, y0, x1, y1, width}}, c)
}

func (r *Recorder) FillPath(p *surface.Path, c color.Color) {
	r.add(Op{Name: "fillpath", Path: p}, c)
}

func (r *Recorder) StrokePath(p *surface.Path, width float64, c color.Color) {
	r.add(Op{Name: "strokepath", Args: []float64{width}, Path: p}, c)
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.add(Op{Name: "rect", Args: []float64{x, y, w, h}}, c)
}

func (r *Recorder) FillGradient(x, y, w, h float64, g *surface.Gradient) {
	r.add(Op{Name: "gradient", Args: []float64{x, y, w, h}, Grad: g}, nil)
}

func (r *Recorder) add(op Op, c color.Color) {
	if c != nil {
		op.Color = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	op.Matrix = r.Current()
	r.Ops = append(r.Ops, op)
}

// Count returns how many ops named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Named returns the ops named name in call order.
func (r *Recorder) Named(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

// Reset forgets recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

var _ surface.Surface = (*Recorder)(nil)
