package plot

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/llgcode/draw2d/draw2dsvg"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

// ErrEmptyPath is returned when there is nothing to draw
var ErrEmptyPath = errors.New("path needs at least two samples")

const (
	DefaultSVGSize = 800.0
	svgMargin      = 40.0
)

var (
	pathStroke = color.RGBA{0x00, 0x00, 0xff, 0xff}
	carFill    = color.RGBA{0xff, 0x00, 0x00, 0xff}
)

// TrackSVG draws the X-Y outline of path scaled into a size x size box, with the
// starting position marked.
func TrackSVG(path []models.TelemetrySample, size float64) ([]byte, error) {
	if len(path) < 2 {
		return nil, ErrEmptyPath
	}
	if size <= 2*svgMargin {
		size = DefaultSVGSize
	}

	project := projection(path, size)

	dest := draw2dsvg.NewSvg()
	gc := draw2dsvg.NewGraphicContext(dest)

	gc.Save()
	gc.SetStrokeColor(pathStroke)
	gc.SetLineWidth(PathWidth)
	for i, s := range path {
		x, y := project(s)
		if i == 0 {
			gc.MoveTo(x, y)
		} else {
			gc.LineTo(x, y)
		}
	}
	gc.Stroke()
	gc.Restore()

	gc.Save()
	gc.SetFillColor(carFill)
	x, y := project(path[0])
	draw2dkit.Circle(gc, x, y, MarkerSize)
	gc.Fill()
	gc.Restore()

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "\t")
	if err := enc.Encode(dest); err != nil {
		return nil, fmt.Errorf("failed to encode svg: %w", err)
	}
	return buf.Bytes(), nil
}

// projection maps track coordinates into the drawing box keeping the aspect
// ratio. SVG y grows downwards so Y is flipped.
func projection(path []models.TelemetrySample, size float64) func(models.TelemetrySample) (float64, float64) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range path {
		minX = math.Min(minX, s.X)
		maxX = math.Max(maxX, s.X)
		minY = math.Min(minY, s.Y)
		maxY = math.Max(maxY, s.Y)
	}

	span := math.Max(maxX-minX, maxY-minY)
	scale := 1.0
	if span > 0 {
		scale = (size - 2*svgMargin) / span
	}

	return func(s models.TelemetrySample) (float64, float64) {
		x := svgMargin + (s.X-minX)*scale
		y := size - svgMargin - (s.Y-minY)*scale
		return x, y
	}
}
