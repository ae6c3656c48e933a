package main

import "strings"

const (
	chartWidth   = 800
	chartHeight  = 400
	marginLeft   = 50
	marginBottom = 50
	marginTop    = 50
	bandPadding  = 0.2
	pointRadius  = 6
	strokeWidth  = 2

	yDomainMax   = 1.5
	yCorrect     = 1.0
	yIncorrect   = 0.5
	colorRed     = "red"
	colorBlue    = "blue"
	colorDefault = "black"
)

var chartCategories = []string{"Q1", "Q2", "Q3", "Q4", "Q5"}

type Point struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Correct bool    `json:"correct"`
}

type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// Chart is a fully laid out line chart in canvas pixels.
type Chart struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Color       string  `json:"color"`
	XAxisY      float64 `json:"xAxisY"`
	YAxisX      float64 `json:"yAxisX"`
	XRange      float64 `json:"xRange"`
	YTop        float64 `json:"yTop"`
	YBottom     float64 `json:"yBottom"`
	XTicks      []Tick  `json:"xTicks"`
	YTicks      []Tick  `json:"yTicks"`
	Points      []Point `json:"points"`
	Radius      float64 `json:"radius"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// bandScale places ordinal categories in equal bands, padding inner and outer alike.
type bandScale struct {
	domain     []string
	start, end float64
	padding    float64
}

func (b bandScale) step() float64 {
	n := float64(len(b.domain))
	span := n - b.padding + 2*b.padding
	if span < 1 {
		span = 1
	}
	return (b.end - b.start) / span
}

func (b bandScale) bandwidth() float64 {
	return b.step() * (1 - b.padding)
}

// at returns the left edge of band i.
func (b bandScale) at(i int) float64 {
	step := b.step()
	n := float64(len(b.domain))
	offset := (b.end - b.start - step*(n-b.padding)) / 2
	return b.start + offset + step*float64(i)
}

type linearScale struct {
	d0, d1 float64
	r0, r1 float64
}

func (l linearScale) at(v float64) float64 {
	return l.r0 + (v-l.d0)/(l.d1-l.d0)*(l.r1-l.r0)
}

// LineColor maps the party affiliation control value to a stroke color.
func LineColor(party string) string {
	switch party {
	case "republicans":
		return colorRed
	case "democrats":
		return colorBlue
	default:
		return colorDefault
	}
}

// BuildChart lays out one point per question, at most five.
func BuildChart(results []int, party string) Chart {
	x := bandScale{
		domain:  chartCategories,
		start:   0,
		end:     chartWidth - 2*marginLeft,
		padding: bandPadding,
	}
	y := linearScale{d0: 0, d1: yDomainMax, r0: chartHeight - marginBottom, r1: marginTop}

	c := Chart{
		Width:       chartWidth,
		Height:      chartHeight,
		Color:       LineColor(party),
		XAxisY:      chartHeight - marginBottom,
		YAxisX:      marginLeft,
		XRange:      x.end - x.start,
		YTop:        y.at(yDomainMax),
		YBottom:     y.at(0),
		Radius:      pointRadius,
		StrokeWidth: strokeWidth,
		YTicks: []Tick{
			{Pos: y.at(yIncorrect), Label: "Incorrect"},
			{Pos: y.at(yCorrect), Label: "Correct"},
		},
	}
	center := marginLeft + x.bandwidth()/2
	for i, cat := range chartCategories {
		c.XTicks = append(c.XTicks, Tick{Pos: x.at(i) + center, Label: cat})
	}
	for i, r := range results {
		if i >= len(chartCategories) {
			break
		}
		level := yIncorrect
		if r == 1 {
			level = yCorrect
		}
		c.Points = append(c.Points, Point{X: x.at(i) + center, Y: y.at(level), Correct: r == 1})
	}
	return c
}

// RenderChart replaces whatever the container holds with a fresh chart.
// A missing container is left alone.
func RenderChart(page Page, containerID string, results []int, party string) bool {
	if !page.Clear(containerID) {
		return false
	}
	return page.DrawChart(containerID, BuildChart(results, party))
}

// ParseResults reads "1,0,1,1,1" into exactly n entries; anything but "1" is incorrect.
func ParseResults(raw string, n int) []int {
	out := make([]int, n)
	if raw == "" {
		return out
	}
	for i, part := range strings.Split(raw, ",") {
		if i >= n {
			break
		}
		if strings.TrimSpace(part) == "1" {
			out[i] = 1
		}
	}
	return out
}
