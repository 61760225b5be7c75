package page

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Gradient is a vertical two-color background.
type Gradient struct {
	Top, Bottom string
}

var backgroundStops = []struct {
	at       float64
	gradient Gradient
}{
	{0, Gradient{"#0f0f0f", "#1a1a2e"}},
	{0.25, Gradient{"#1a1a2e", "#16213e"}},
	{0.5, Gradient{"#16213e", "#0f3460"}},
	{0.75, Gradient{"#0f3460", "#533483"}},
	{1, Gradient{"#533483", "#e94560"}},
}

// Background interpolates the page gradient at the current scroll progress.
func (p *Page) Background() Gradient {
	return BackgroundAt(p.scroll)
}

func BackgroundAt(progress float64) Gradient {
	progress = math.Max(0, math.Min(progress, 1))
	for i := 1; i < len(backgroundStops); i++ {
		lo, hi := backgroundStops[i-1], backgroundStops[i]
		if progress > hi.at {
			continue
		}
		t := (progress - lo.at) / (hi.at - lo.at)
		return Gradient{
			Top:    Blend(lo.gradient.Top, hi.gradient.Top, t),
			Bottom: Blend(lo.gradient.Bottom, hi.gradient.Bottom, t),
		}
	}
	return backgroundStops[len(backgroundStops)-1].gradient
}

// HueRotate is the scroll-driven hue shift of the glitch section, in degrees.
func (p *Page) HueRotate() float64 {
	return 360 * p.scroll
}

// Glitch is the spring-smoothed glitch intensity in [0, 20].
func (p *Page) Glitch() float64 {
	return p.glitch.Value
}

// Filter is the page-wide color filter. It is the identity until super chaos
// mode, after which the hue follows the glitch spring and contrast is raised.
type Filter struct {
	HueRotate float64
	Contrast  float64
}

func (p *Page) Filter() Filter {
	if !p.superChaos {
		return Filter{Contrast: 1}
	}
	return Filter{HueRotate: p.glitch.Value, Contrast: superContrast}
}

// Apply runs hex through the filter.
func (f Filter) Apply(hex string) string {
	if f.HueRotate == 0 && f.Contrast == 1 {
		return hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, v := c.Hsv()
	out := colorful.Hsv(math.Mod(h+f.HueRotate+360, 360), s, v)
	if f.Contrast != 1 {
		out = colorful.Color{
			R: contrast(out.R, f.Contrast),
			G: contrast(out.G, f.Contrast),
			B: contrast(out.B, f.Contrast),
		}
	}
	return out.Clamped().Hex()
}

func contrast(v, k float64) float64 {
	return (v-0.5)*k + 0.5
}

// RotateHue shifts hex by deg degrees.
func RotateHue(hex string, deg float64) string {
	return Filter{HueRotate: deg, Contrast: 1}.Apply(hex)
}

// Blend mixes two hex colors in RGB; t=0 gives a, t=1 gives b.
func Blend(a, b string, t float64) string {
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	if errA != nil || errB != nil {
		return a
	}
	return ca.BlendRgb(cb, math.Max(0, math.Min(t, 1))).Clamped().Hex()
}
