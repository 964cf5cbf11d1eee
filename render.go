package gameloop

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawCommand is one sprite draw emitted during traversal.
type drawCommand struct {
	image  *ebiten.Image
	geoM   ebiten.GeoM
	color  Color
	tiled  bool // background: repeat image from geoM's translation
	bounds Rect
}

// Draw renders every attached node, parents before children, then the debug
// overlay and any queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.RGBA())
	}
	s.commands = s.commands[:0]
	for _, r := range s.arena.roots {
		s.traverse(r, Vec2{})
	}
	s.submit(screen)
	if s.debug {
		s.drawDebug(screen)
	}
	s.flushScreenshots(screen)
}

// traverse emits commands for id and its subtree, pre-order.
func (s *Scene) traverse(id NodeID, parentGlobal Vec2) {
	n := &s.arena.nodes[id.index]
	global := parentGlobal.Add(localPosition(n))
	if sp := n.sprite; sp != nil {
		s.commands = append(s.commands, s.spriteCommand(sp, global))
	}
	for _, c := range n.children {
		s.traverse(c, global)
	}
}

func (s *Scene) spriteCommand(sp *Sprite, global Vec2) drawCommand {
	w, h := int(math.Ceil(sp.Size.X)), int(math.Ceil(sp.Size.Y))
	var img *ebiten.Image
	if s.resources != nil {
		img = s.resources.Texture(sp.Texture, w, h)
	}
	cmd := drawCommand{image: img, color: sp.Color, bounds: RectCentered(global, sp.Size)}

	if sp.Kind == KindBackground {
		// The scroll offset is the top-left of the first tile.
		cmd.tiled = true
		cmd.geoM.Translate(global.X, global.Y)
		return cmd
	}
	if img == nil {
		return cmd
	}

	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	scale := sp.DrawScale
	if scale == 0 {
		scale = 1
	}
	cmd.geoM.Translate(-float64(iw)/2, -float64(ih)/2)
	cmd.geoM.Scale(sp.Size.X/float64(iw)*scale, sp.Size.Y/float64(ih)*scale)
	cmd.geoM.Rotate(sp.Rotation * degToRad)
	cmd.geoM.Translate(global.X, global.Y)
	return cmd
}

// submit draws the emitted commands in order.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		if cmd.image == nil {
			continue
		}
		op.GeoM.Reset()
		op.ColorScale.Reset()
		a := float32(cmd.color.A)
		op.ColorScale.Scale(float32(cmd.color.R)*a, float32(cmd.color.G)*a, float32(cmd.color.B)*a, a)

		if !cmd.tiled {
			op.GeoM.Concat(cmd.geoM)
			target.DrawImage(cmd.image, &op)
			continue
		}
		s.submitTiled(target, cmd, &op)
	}
}

// submitTiled covers target with copies of the command's image, starting at
// the command's translation and stepping by the image size.
func (s *Scene) submitTiled(target *ebiten.Image, cmd *drawCommand, op *ebiten.DrawImageOptions) {
	tw, th := cmd.image.Bounds().Dx(), cmd.image.Bounds().Dy()
	if tw <= 0 || th <= 0 {
		return
	}
	ox, oy := cmd.geoM.Apply(0, 0)
	sw, sh := target.Bounds().Dx(), target.Bounds().Dy()
	for y := oy; y < float64(sh); y += float64(th) {
		for x := ox; x < float64(sw); x += float64(tw) {
			op.GeoM.Reset()
			op.GeoM.Translate(x, y)
			target.DrawImage(cmd.image, op)
		}
	}
}

var (
	debugCellColor   = color.RGBA{0, 160, 255, 200}
	debugBoundsColor = color.RGBA{255, 64, 64, 255}
)

// drawDebug outlines every quadtree cell and every indexed sprite's bounds.
func (s *Scene) drawDebug(screen *ebiten.Image) {
	s.index.Walk(func(b Rect, _, _ int) {
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 1, debugCellColor, false)
	})
	for i := range s.commands {
		cmd := &s.commands[i]
		if cmd.tiled {
			continue
		}
		b := cmd.bounds
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), 1, debugBoundsColor, false)
	}
}
