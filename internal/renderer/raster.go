package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/ivlev/indexparadox/internal/model"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// DefaultFrameWidth is the visible scene width in scene units (16:9 at height 8).
const DefaultFrameWidth = 8.0 * 16 / 9

// circleSegments approximates circles and dots.
const circleSegments = 48

// Viewport maps scene units to pixels. The scene origin is the frame center,
// y points up.
type Viewport struct {
	Width      int
	Height     int
	FrameWidth float64
	Background colorful.Color
}

func (v Viewport) scale() float64 {
	fw := v.FrameWidth
	if fw <= 0 {
		fw = DefaultFrameWidth
	}
	return float64(v.Width) / fw
}

func (v Viewport) toPixel(p model.Point) (float32, float32) {
	k := v.scale()
	x := float64(v.Width)/2 + p[0]*k
	y := float64(v.Height)/2 - p[1]*k
	return float32(x), float32(y)
}

// Rasterizer draws stage entities into RGBA frames.
type Rasterizer struct {
	vp   Viewport
	pool *FramePool
	z    *vector.Rasterizer
}

func NewRasterizer(vp Viewport, pool *FramePool) (*Rasterizer, error) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", vp.Width, vp.Height)
	}
	if pool == nil {
		pool = NewFramePool()
	}
	return &Rasterizer{vp: vp, pool: pool, z: vector.NewRasterizer(vp.Width, vp.Height)}, nil
}

// Render draws entities in order, parts in order, over the background. The
// frame comes from the pool; hand it back with Release.
func (r *Rasterizer) Render(entities []*model.Entity) *image.RGBA {
	dst := r.pool.Get(image.Rect(0, 0, r.vp.Width, r.vp.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(rgba(r.vp.Background, 1)), image.Point{}, draw.Src)

	for _, e := range entities {
		for _, p := range e.Parts {
			alpha := e.Opacity * p.Opacity
			if alpha <= 0 {
				continue
			}
			r.drawPart(dst, p, alpha)
		}
	}
	return dst
}

func (r *Rasterizer) Release(img *image.RGBA) {
	r.pool.Put(img)
}

func (r *Rasterizer) drawPart(dst *image.RGBA, p *model.Part, alpha float64) {
	switch p.Shape {
	case model.ShapeText:
		r.drawText(dst, p, alpha)
	case model.ShapeLine:
		a, b := p.Endpoints()
		r.stroke(dst, []model.Point{a, b}, false, r.strokePixels(p), p.Stroke, alpha)
	default:
		outline := p.Vertices(circleSegments)
		if len(outline) < 3 {
			return
		}
		if fa := alpha * p.FillOpacity; fa > 0 {
			r.fill(dst, outline, p.Fill, fa)
		}
		if p.StrokeWidth > 0 && p.Shape != model.ShapeDot {
			r.stroke(dst, outline, true, r.strokePixels(p), p.Stroke, alpha)
		}
	}
}

// strokePixels converts a stroke width (hundredths of a scene unit) to pixels.
func (r *Rasterizer) strokePixels(p *model.Part) float64 {
	return math.Max(1, p.StrokeWidth*0.01*r.vp.scale())
}

func (r *Rasterizer) fill(dst *image.RGBA, outline []model.Point, c colorful.Color, alpha float64) {
	r.z.Reset(r.vp.Width, r.vp.Height)
	x, y := r.vp.toPixel(outline[0])
	r.z.MoveTo(x, y)
	for _, v := range outline[1:] {
		x, y = r.vp.toPixel(v)
		r.z.LineTo(x, y)
	}
	r.z.ClosePath()
	r.z.Draw(dst, dst.Bounds(), image.NewUniform(rgba(c, alpha)), image.Point{})
}

// stroke draws each edge as a quad of the given pixel width.
func (r *Rasterizer) stroke(dst *image.RGBA, pts []model.Point, closed bool, width float64, c colorful.Color, alpha float64) {
	n := len(pts)
	edges := n - 1
	if closed {
		edges = n
	}
	src := image.NewUniform(rgba(c, alpha))
	for i := 0; i < edges; i++ {
		ax, ay := r.vp.toPixel(pts[i])
		bx, by := r.vp.toPixel(pts[(i+1)%n])
		dx, dy := float64(bx-ax), float64(by-ay)
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := float32(-dy/l*width/2), float32(dx/l*width/2)

		r.z.Reset(r.vp.Width, r.vp.Height)
		r.z.MoveTo(ax+nx, ay+ny)
		r.z.LineTo(bx+nx, by+ny)
		r.z.LineTo(bx-nx, by-ny)
		r.z.LineTo(ax-nx, ay-ny)
		r.z.ClosePath()
		r.z.Draw(dst, dst.Bounds(), src, image.Point{})
	}
}

// drawText centers the label on the part. The bitmap face has a fixed size,
// so Height only gates tiny labels.
func (r *Rasterizer) drawText(dst *image.RGBA, p *model.Part, alpha float64) {
	if p.Text == "" || p.Height*p.Scale*r.vp.scale() < 4 {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(rgba(p.Fill, alpha*p.FillOpacity)), Face: face}
	w := d.MeasureString(p.Text)
	x, y := r.vp.toPixel(p.Center)
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(x)) - w/2,
		Y: fixed.I(int(y) + face.Ascent/2),
	}
	d.DrawString(p.Text)
}

func rgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	a := math.Max(0, math.Min(1, alpha))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

// WritePNG encodes a frame to path.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
