// Package plot builds the animated track figure and a static SVG outline of the path.
package plot

import (
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/sebasr/f1-telemetry-viewer/internal/models"
)

// Figure titles and colors
const (
	FigureTitle = "F1 Car Telemetry Animation (X-Y Track)"
	XAxisTitle  = "X Position"
	YAxisTitle  = "Y Position"
	ZAxisTitle  = "Ground Level"

	PathColor  = "blue"
	CarColor   = "red"
	PathWidth  = 4
	FrameWidth = 2
	MarkerSize = 6
)

// DefaultFrameDuration is the delay between animation frames
const DefaultFrameDuration = 30 * time.Millisecond

// Figure is a plotly.js figure: traces, layout and animation frames
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames"`
}

// Trace is a scatter3d trace
type Trace struct {
	Type   string    `json:"type"`
	Mode   string    `json:"mode"`
	Name   string    `json:"name,omitempty"`
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Z      []float64 `json:"z"`
	Line   *Line     `json:"line,omitempty"`
	Marker *Marker   `json:"marker,omitempty"`
}

type Line struct {
	Color string `json:"color"`
	Width int    `json:"width"`
}

type Marker struct {
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// Frame is one animation step
type Frame struct {
	Name string  `json:"name"`
	Data []Trace `json:"data"`
}

type Layout struct {
	Title       Title        `json:"title"`
	Scene       Scene        `json:"scene"`
	UpdateMenus []UpdateMenu `json:"updatemenus"`
	ShowLegend  bool         `json:"showlegend"`
}

type Title struct {
	Text string `json:"text"`
}

type Scene struct {
	XAxis  Axis   `json:"xaxis"`
	YAxis  Axis   `json:"yaxis"`
	ZAxis  Axis   `json:"zaxis"`
	Camera Camera `json:"camera"`
}

type Axis struct {
	Title Title `json:"title"`
}

type Camera struct {
	Up Vector `json:"up"`
}

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// UpdateMenu is a group of buttons
type UpdateMenu struct {
	Type       string   `json:"type"`
	ShowActive bool     `json:"showactive"`
	Buttons    []Button `json:"buttons"`
}

// Button triggers a plotly method with Args
type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// AnimationOptions is the second argument of plotly's animate method
type AnimationOptions struct {
	Frame       FrameOptions `json:"frame"`
	FromCurrent *bool        `json:"fromcurrent,omitempty"`
	Mode        string       `json:"mode,omitempty"`
}

type FrameOptions struct {
	Duration int64 `json:"duration"`
	Redraw   bool  `json:"redraw"`
}

// NewFigure builds the figure for a strided path and its frames. The car marker
// starts at the first path sample.
func NewFigure(path []models.TelemetrySample, frames []models.AnimationFrame, frameDuration time.Duration) *Figure {
	if frameDuration <= 0 {
		frameDuration = DefaultFrameDuration
	}

	x, y, z := coordinates(path)
	data := []Trace{
		{
			Type: "scatter3d",
			Mode: "lines",
			Name: "Track Path",
			X:    x,
			Y:    y,
			Z:    z,
			Line: &Line{Color: PathColor, Width: PathWidth},
		},
	}
	if len(path) > 0 {
		data = append(data, Trace{
			Type:   "scatter3d",
			Mode:   "markers",
			Name:   "Car",
			X:      []float64{path[0].X},
			Y:      []float64{path[0].Y},
			Z:      []float64{0},
			Marker: &Marker{Color: CarColor, Size: MarkerSize},
		})
	}

	return &Figure{
		Data:   data,
		Layout: newLayout(frameDuration),
		Frames: lo.Map(frames, func(f models.AnimationFrame, _ int) Frame {
			fx, fy, fz := coordinates(f.Path)
			return Frame{
				Name: strconv.Itoa(f.Index),
				Data: []Trace{{
					Type:   "scatter3d",
					Mode:   "lines+markers",
					X:      fx,
					Y:      fy,
					Z:      fz,
					Line:   &Line{Color: CarColor, Width: FrameWidth},
					Marker: &Marker{Color: CarColor, Size: MarkerSize},
				}},
			}
		}),
	}
}

func newLayout(frameDuration time.Duration) Layout {
	ms := frameDuration.Milliseconds()
	return Layout{
		Title: Title{Text: FigureTitle},
		Scene: Scene{
			XAxis:  Axis{Title: Title{Text: XAxisTitle}},
			YAxis:  Axis{Title: Title{Text: YAxisTitle}},
			ZAxis:  Axis{Title: Title{Text: ZAxisTitle}},
			Camera: Camera{Up: Vector{Z: 1}},
		},
		UpdateMenus: []UpdateMenu{{
			Type:       "buttons",
			ShowActive: true,
			Buttons: []Button{
				{
					Label:  "Play",
					Method: "animate",
					Args:   []any{nil, AnimationOptions{Frame: FrameOptions{Duration: ms, Redraw: true}, FromCurrent: lo.ToPtr(true)}},
				},
				{
					Label:  "Pause",
					Method: "animate",
					Args:   []any{[]any{nil}, AnimationOptions{Frame: FrameOptions{Duration: 0, Redraw: false}, Mode: "immediate"}},
				},
				{
					Label:  "Restart",
					Method: "animate",
					Args:   []any{nil, AnimationOptions{Frame: FrameOptions{Duration: ms, Redraw: true}, FromCurrent: lo.ToPtr(false)}},
				},
			},
		}},
		ShowLegend: true,
	}
}

func coordinates(samples []models.TelemetrySample) (x, y, z []float64) {
	x = make([]float64, len(samples))
	y = make([]float64, len(samples))
	z = make([]float64, len(samples))
	for i, s := range samples {
		x[i] = s.X
		y[i] = s.Y
		z[i] = s.Z
	}
	return x, y, z
}
