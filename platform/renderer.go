package platform

import (
	"hash/fnv"
	"image/color"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/stagehand/assets"
	"github.com/milk9111/stagehand/common"
	"github.com/milk9111/stagehand/render"
	"github.com/milk9111/stagehand/scene"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const baseFontSize = 13

// Renderer draws scene graphs with ebiten. Images are loaded on first use
// and cached by name.
type Renderer struct {
	store  assets.Store
	images map[string]*ebiten.Image
	blocks map[string]*ebiten.Image
	face   text.Face
	logger *log.Logger
}

func NewRenderer(store assets.Store) *Renderer {
	return &Renderer{
		store:  store,
		images: make(map[string]*ebiten.Image),
		blocks: make(map[string]*ebiten.Image),
		face:   text.NewGoXFace(basicfont.Face7x13),
		logger: common.Logger("render"),
	}
}

// DrawScene draws the scene's container through its camera.
func (r *Renderer) DrawScene(dst *ebiten.Image, sc *scene.Scene) {
	if sc == nil || sc.Closed() {
		return
	}
	r.drawNode(dst, sc.Root(), sc.Camera())
}

func (r *Renderer) drawNode(dst *ebiten.Image, n render.Node, cam *render.Camera) {
	if n == nil || !n.Visible() {
		return
	}
	switch n := n.(type) {
	case *render.Container:
		for _, child := range n.Children() {
			r.drawNode(dst, child, cam)
		}
	case *render.Sprite:
		r.drawSprite(dst, n, cam)
	case *render.Text:
		r.drawText(dst, n, cam)
	}
}

func (r *Renderer) drawSprite(dst *ebiten.Image, s *render.Sprite, cam *render.Camera) {
	if s.W <= 0 || s.H <= 0 || s.Alpha <= 0 {
		return
	}
	img := r.image(s.Image)
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s.W/iw, s.H/ih)
	if s.FlipX {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(s.W, 0)
	}
	ax, ay := s.AnchorX*s.W, s.AnchorY*s.H
	op.GeoM.Translate(-ax, -ay)
	op.GeoM.Rotate(s.Rotation)
	op.GeoM.Translate(ax+s.X, ay+s.Y)
	applyCamera(&op.GeoM, cam)

	if s.Tint != nil {
		op.ColorScale.ScaleWithColor(s.Tint)
	}
	op.ColorScale.ScaleAlpha(float32(s.Alpha))
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(img, op)
}

func (r *Renderer) drawText(dst *ebiten.Image, t *render.Text, cam *render.Camera) {
	if t.Value == "" || t.Alpha <= 0 {
		return
	}
	size := t.Size
	if size <= 0 {
		size = baseFontSize
	}
	scale := size / baseFontSize

	op := &text.DrawOptions{}
	op.LineSpacing = baseFontSize
	if t.Centered {
		w, h := text.Measure(t.Value, r.face, baseFontSize)
		op.GeoM.Translate(-w/2, -h/2)
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(t.X, t.Y)
	applyCamera(&op.GeoM, cam)

	c := t.Color
	if c == nil {
		c = color.White
	}
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(t.Alpha))
	text.Draw(dst, t.Value, r.face, op)
}

func applyCamera(g *ebiten.GeoM, cam *render.Camera) {
	if cam == nil {
		return
	}
	left, top := cam.ViewTopLeft()
	g.Translate(-left, -top)
	g.Scale(cam.Zoom(), cam.Zoom())
}

// image returns the cached image for name. Names that fail to load are
// logged once and drawn as a solid block whose colour depends on the name.
func (r *Renderer) image(name string) *ebiten.Image {
	if img, ok := r.images[name]; ok {
		return img
	}
	img, err := r.store.Image(name)
	if err != nil {
		if name != "" {
			r.logger.Warn("missing image", "name", name, "err", err)
		}
		img = r.block(name)
	}
	r.images[name] = img
	return img
}

func (r *Renderer) block(name string) *ebiten.Image {
	if img, ok := r.blocks[name]; ok {
		return img
	}
	img := ebiten.NewImage(1, 1)
	img.Fill(blockColor(name))
	r.blocks[name] = img
	return img
}

var blockPalette = func() []color.RGBA {
	names := make([]string, 0, len(colornames.Map))
	for n := range colornames.Map {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]color.RGBA, len(names))
	for i, n := range names {
		out[i] = colornames.Map[n]
	}
	return out
}()

// blockColor picks a stable palette colour for name. Unnamed sprites are
// gray.
func blockColor(name string) color.RGBA {
	if name == "" {
		return colornames.Gray
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return blockPalette[int(h.Sum32()%uint32(len(blockPalette)))]
}
