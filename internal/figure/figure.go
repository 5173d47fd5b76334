package figure

import (
	"errors"
	"image/color"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/drennan/optmix/internal/optics"
)

// Panel geometry for a two-column print layout.
const (
	// Width is the figure width; height follows a golden-ratio-like aspect.
	Width  = 3.5 * vg.Inch
	Aspect = 0.615
	Height = Width * Aspect
)

// Fixed wavelength display range in cm. Data outside is clipped, never an
// error.
const (
	XMin = 1e-5
	XMax = 1e1
)

// Margins in figure-fraction units, chosen so the panel needs no
// post-processing before publication.
const (
	MarginLeft   = 0.11
	MarginRight  = 0.88
	MarginBottom = 0.18
	MarginTop    = 0.96
)

const (
	legendFontSize = vg.Length(7) // points
	legendInset    = vg.Length(4)
	tickLength     = vg.Length(3)
	tickLabelGap   = vg.Length(2)
	axisLabelGap   = vg.Length(26)
)

// Figure is a rendered dual-axis optical-constants chart, ready to be drawn
// on a canvas or saved.
type Figure struct {
	nPlot  *plot.Plot
	kPlot  *plot.Plot
	legend plot.Legend
}

// Render builds the chart for the given record.
//
// The record is validated first: mismatched array lengths or non-finite
// values are rejected with a BAD_RECORD error before anything is drawn.
func Render(rec *optics.Record) (*Figure, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	nPlot := plot.New()
	nPlot.X.Scale = plot.LogScale{}
	nPlot.X.Tick.Marker = plot.LogTicks{Prec: -1}
	nPlot.X.Label.Text = "wavelength [cm]"
	nPlot.Y.Label.Text = "n"
	nPlot.X.Padding = 0
	nPlot.Y.Padding = 0

	nLine, err := plotter.NewLine(xys(rec.L, rec.N))
	if err != nil {
		return nil, err
	}
	nLine.LineStyle.Width = vg.Points(1)
	nLine.LineStyle.Color = color.Black
	nPlot.Add(nLine)

	// The k panel shares the x axis and draws on top of the n panel's data
	// area, so everything but the line itself is hidden and transparent.
	kPlot := plot.New()
	kPlot.BackgroundColor = color.Transparent
	kPlot.X.Scale = plot.LogScale{}
	kPlot.Y.Scale = plot.LogScale{}
	kPlot.X.Padding = 0
	kPlot.Y.Padding = 0

	kLine, err := plotter.NewLine(xys(rec.L, rec.K))
	if err != nil {
		return nil, err
	}
	kLine.LineStyle.Width = vg.Points(1)
	kLine.LineStyle.Color = color.Black
	kLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(2)}
	kPlot.Add(kLine)
	kPlot.HideAxes()

	// Display ranges are pinned after Add so the data cannot widen them.
	nPlot.X.Min, nPlot.X.Max = XMin, XMax
	kPlot.X.Min, kPlot.X.Max = XMin, XMax

	legend := plot.NewLegend()
	legend.Add("n", nLine)
	legend.Add("k", kLine)
	legend.TextStyle.Font.Size = legendFontSize
	legend.Top = true
	legend.Left = false

	return &Figure{nPlot: nPlot, kPlot: kPlot, legend: legend}, nil
}

// XBounds returns the fixed wavelength display range of the rendered chart.
func (f *Figure) XBounds() (min, max float64) {
	return f.nPlot.X.Min, f.nPlot.X.Max
}

// Draw renders the figure onto the canvas: the n panel with its axes inside
// the fixed margins, the k curve on a twin data canvas, the secondary axis
// and the combined legend.
func (f *Figure) Draw(c draw.Canvas) {
	sz := c.Rectangle.Size()
	inner := draw.Crop(c,
		vg.Length(MarginLeft)*sz.X,
		-vg.Length(1-MarginRight)*sz.X,
		vg.Length(MarginBottom)*sz.Y,
		-vg.Length(1-MarginTop)*sz.Y,
	)

	f.nPlot.Draw(inner)

	data := f.nPlot.DataCanvas(inner)
	f.kPlot.Draw(data)
	f.drawRightAxis(data)
	f.drawLegend(data)
}

// drawRightAxis draws the secondary logarithmic k axis along the right edge
// of the data area. The n plot only decorates the left and bottom edges, so
// spine, ticks and labels are stroked directly.
func (f *Figure) drawRightAxis(data draw.Canvas) {
	x := data.Max.X
	min, max := f.kPlot.Y.Min, f.kPlot.Y.Max

	data.StrokeLine2(f.nPlot.Y.LineStyle, x, data.Min.Y, x, data.Max.Y)

	labelSty := f.nPlot.Y.Tick.Label
	labelSty.XAlign = draw.XLeft
	labelSty.YAlign = draw.YCenter

	for _, t := range (plot.LogTicks{Prec: -1}).Ticks(min, max) {
		if t.Value < min || t.Value > max {
			continue
		}
		norm := plot.LogScale{}.Normalize(min, max, t.Value)
		y := data.Min.Y + vg.Length(norm)*(data.Max.Y-data.Min.Y)

		length := tickLength
		if t.IsMinor() {
			length = tickLength / 2
		}
		data.StrokeLine2(f.nPlot.Y.Tick.LineStyle, x, y, x+length, y)
		if t.IsMinor() {
			continue
		}
		data.FillText(labelSty, vg.Point{X: x + length + tickLabelGap, Y: y}, t.Label)
	}

	axisSty := f.nPlot.Y.Label.TextStyle
	axisSty.Rotation = math.Pi / 2
	axisSty.XAlign = draw.XCenter
	axisSty.YAlign = draw.YTop
	mid := data.Min.Y + (data.Max.Y-data.Min.Y)/2
	data.FillText(axisSty, vg.Point{X: x + axisLabelGap, Y: mid}, "k")
}

// drawLegend places the combined legend at the center-right anchor of the
// data area.
func (f *Figure) drawLegend(data draw.Canvas) {
	legH := f.legend.Rectangle(data).Size().Y
	h := data.Rectangle.Size().Y
	c := draw.Crop(data, 0, -legendInset, 0, -(h-legH)/2)
	f.legend.Draw(c)
}

// WriteTo renders the figure into w in the given format ("pdf" or "svg").
func (f *Figure) WriteTo(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "pdf":
		c := vgpdf.New(Width, Height)
		f.Draw(draw.New(c))
		_, err := c.WriteTo(w)
		return err
	case "svg":
		c := vgsvg.New(Width, Height)
		f.Draw(draw.New(c))
		_, err := c.WriteTo(w)
		return err
	default:
		return &Error{Code: ErrCodeUnsupportedFormat, Path: format}
	}
}

// Save writes the figure to path as vector graphics; the format follows the
// file extension. The parent directory must already exist: a missing
// directory fails with a PATH_NOT_FOUND error and nothing is created.
func (f *Figure) Save(path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format != "pdf" && format != "svg" {
		return &Error{Code: ErrCodeUnsupportedFormat, Path: path}
	}

	w, err := os.Create(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Error{Code: ErrCodePathNotFound, Path: path, Err: err}
		}
		return &Error{Code: ErrCodeWriteFailed, Path: path, Err: err}
	}

	if err := f.WriteTo(w, format); err != nil {
		w.Close()
		return &Error{Code: ErrCodeWriteFailed, Path: path, Err: err}
	}
	if err := w.Close(); err != nil {
		return &Error{Code: ErrCodeWriteFailed, Path: path, Err: err}
	}
	return nil
}

func xys(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}
