// Command tilelight-demo renders a small dungeon scene through the
// tilelight compositing pipeline and saves the result as a PNG.
//
// The demo generates a tile atlas procedurally, parses an ASCII map into
// a cell grid, carves a line-of-sight visibility field around the viewer
// and hands everything to a render backend.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/fogmire/tilelight"
	"github.com/fogmire/tilelight/backend"
	_ "github.com/fogmire/tilelight/backend/wgpu"
	"github.com/fogmire/tilelight/render"
)

// demoMap is the scene: '#' wall, '.' floor, '+' door, 'c' crate,
// 't' torch, '~' water, '@' viewer.
var demoMap = []string{
	"########################",
	"#.......#......#..~~~..#",
	"#..c....#..t...+..~~~..#",
	"#.......#......#...~...#",
	"#...t...+......#.......#",
	"#.......#......#....c..#",
	"#.......#......##+######",
	"#..##...#...@..#.......#",
	"#..##...#......#..t....#",
	"#.......#......#.......#",
	"#..c....#......+....c..#",
	"#.......#......#.......#",
	"#....~..#......#.......#",
	"#...~~..##+#####...t...#",
	"#....~.................#",
	"########################",
}

// Atlas tile positions (column, row) in the generated sheet.
var (
	tileStone = image.Point{X: 0, Y: 0}
	tileWall  = image.Point{X: 1, Y: 0}
	tileDoor  = image.Point{X: 2, Y: 0}
	tileCrate = image.Point{X: 3, Y: 0}
	tileTorch = image.Point{X: 0, Y: 1}
	tileWater = image.Point{X: 1, Y: 1}
	tileGlow  = image.Point{X: 2, Y: 1}
	tileMoss  = image.Point{X: 3, Y: 1}
)

func main() {
	var (
		output   = flag.String("output", "dungeon.png", "output file")
		backendN = flag.String("backend", "", "render backend (default: best available)")
		cell     = flag.Int("cell", tilelight.DefaultCellSize, "cell edge length in pixels")
		radius   = flag.Float64("radius", 6.5, "visibility radius in cells")
		explored = flag.Float64("explored", 11, "awareness radius in cells; seen-but-hidden cells render dimmed")
		sampling = flag.String("sampling", "nearest", "atlas sampling: nearest, bilinear or bicubic")
		blit     = flag.Bool("blit", false, "dump the generated atlas instead of the scene")
	)
	flag.Parse()

	atlas, err := tilelight.NewImageAtlas(buildAtlas(*cell), *cell)
	if err != nil {
		log.Fatalf("Failed to build atlas: %v", err)
	}
	atlas.SetSamplingMode(parseSampling(*sampling))

	layout := tilelight.DefaultLayout()
	comp, err := tilelight.NewCompositor(layout, atlas, atlas.Ratio())
	if err != nil {
		log.Fatalf("Failed to create compositor: %v", err)
	}

	grid, viewer := buildGrid(layout)
	carveVisibility(layout, grid, viewer, float32(*radius), float32(*explored))
	comp.SetViewer(viewer)

	be := pickBackend(*backendN)
	defer be.Close()
	if sizer, ok := be.(interface{ SetCellSize(int) }); ok {
		sizer.SetCellSize(*cell)
	}

	var target *render.PixmapTarget
	if *blit {
		target = render.NewPixmapTarget(atlas.Width(), atlas.Height())
		err = be.Blit(target, comp)
	} else {
		target = render.NewPixmapTarget(grid.Width()*(*cell), grid.Height()*(*cell))
		err = be.Render(target, comp, grid)
	}
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	flattenOverBlack(target.Image())
	if err := savePNG(*output, target.Image()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Rendered with %s backend to %s (%dx%d)\n",
		be.Name(), *output, target.Width(), target.Height())
}

// pickBackend resolves the -backend flag against the registry. An empty
// name selects the best available backend.
func pickBackend(name string) backend.RenderBackend {
	if name == "" {
		be, err := backend.InitDefault()
		if err != nil {
			log.Fatalf("No render backend available: %v", err)
		}
		return be
	}
	be := backend.Get(name)
	if be == nil {
		log.Fatalf("Unknown backend %q (available: %v)", name, backend.Available())
	}
	if err := be.Init(); err != nil {
		log.Fatalf("Failed to init %s backend: %v", name, err)
	}
	return be
}

func parseSampling(name string) tilelight.SamplingMode {
	switch name {
	case "bilinear":
		return tilelight.SamplingBilinear
	case "bicubic":
		return tilelight.SamplingBicubic
	default:
		return tilelight.SamplingNearest
	}
}

// buildGrid parses demoMap into a grid and returns it with the viewer
// position. Terrain goes on channel 0, props on channel 1 and overlays
// on channel 2; torch glow skips the distance falloff.
func buildGrid(layout tilelight.Layout) (*tilelight.Grid, tilelight.Vec2) {
	h := len(demoMap)
	w := len(demoMap[0])
	g := tilelight.NewGrid(w, h)
	viewer := tilelight.V2(float32(w)/2, float32(h)/2)

	for y, row := range demoMap {
		for x := 0; x < len(row); x++ {
			c := g.Cell(x, y)
			floor := tileStone
			if (x*31+y*17)%5 == 0 {
				floor = tileMoss
			}
			switch row[x] {
			case '#':
				layout.SetChannel(c, 0, tileWall.X, tileWall.Y, true)
			case '+':
				layout.SetChannel(c, 0, tileStone.X, tileStone.Y, true)
				layout.SetChannel(c, 1, tileDoor.X, tileDoor.Y, true)
			case 'c':
				layout.SetChannel(c, 0, floor.X, floor.Y, true)
				layout.SetChannel(c, 1, tileCrate.X, tileCrate.Y, true)
			case 't':
				layout.SetChannel(c, 0, floor.X, floor.Y, true)
				layout.SetChannel(c, 1, tileTorch.X, tileTorch.Y, true)
				layout.SetChannel(c, 2, tileGlow.X, tileGlow.Y, false)
			case '~':
				layout.SetChannel(c, 0, floor.X, floor.Y, true)
				layout.SetChannel(c, 2, tileWater.X, tileWater.Y, true)
			case '@':
				viewer = tilelight.V2(float32(x)+0.5, float32(y)+0.5)
				layout.SetChannel(c, 0, floor.X, floor.Y, true)
			default:
				layout.SetChannel(c, 0, floor.X, floor.Y, true)
			}
		}
	}
	return g, viewer
}

// carveVisibility marks cells within visRadius of the viewer visible when
// a clear line of sight exists. Cells within awareRadius stay populated
// but hidden, so the compositor dims them; everything beyond is wiped to
// the unknown state.
func carveVisibility(layout tilelight.Layout, g *tilelight.Grid, viewer tilelight.Vec2, visRadius, awareRadius float32) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.Cell(x, y)
			d := tilelight.V2(float32(x)+0.5, float32(y)+0.5).Sub(viewer)
			distSq := d.LengthSq()
			switch {
			case distSq <= visRadius*visRadius && lineOfSight(viewer, x, y):
				layout.SetVisible(c, true)
			case distSq <= awareRadius*awareRadius:
				// Known terrain out of sight: leave the visible bit clear.
			default:
				*c = tilelight.Cell{}
			}
		}
	}
}

// lineOfSight steps along the segment from the viewer to the center of
// cell (cx, cy) and reports whether no wall interrupts it.
func lineOfSight(from tilelight.Vec2, cx, cy int) bool {
	to := tilelight.V2(float32(cx)+0.5, float32(cy)+0.5)
	delta := to.Sub(from)
	span := math.Max(math.Abs(float64(delta.X)), math.Abs(float64(delta.Y)))
	steps := int(4 * math.Ceil(span))
	for i := 1; i < steps; i++ {
		p := from.Add(delta.Mul(float32(i) / float32(steps)))
		x, y := int(p.X), int(p.Y)
		if x == cx && y == cy {
			break
		}
		if demoMap[y][x] == '#' {
			return false
		}
	}
	return true
}

// buildAtlas draws the 4x2 tile sheet at cs pixels per tile.
func buildAtlas(cs int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cs*4, cs*2))
	fillTile(img, cs, tileStone, stoneTile)
	fillTile(img, cs, tileWall, wallTile)
	fillTile(img, cs, tileDoor, doorTile)
	fillTile(img, cs, tileCrate, crateTile)
	fillTile(img, cs, tileTorch, torchTile)
	fillTile(img, cs, tileWater, waterTile)
	fillTile(img, cs, tileGlow, glowTile)
	fillTile(img, cs, tileMoss, mossTile)
	return img
}

// fillTile evaluates shade at every texel center of one tile. Components
// are stored straight, without premultiplying, which is what the channel
// blend expects.
func fillTile(img *image.RGBA, cs int, at image.Point, shade func(u, v float64) tilelight.RGBA) {
	for y := 0; y < cs; y++ {
		for x := 0; x < cs; x++ {
			c := shade((float64(x)+0.5)/float64(cs), (float64(y)+0.5)/float64(cs))
			i := img.PixOffset(at.X*cs+x, at.Y*cs+y)
			img.Pix[i+0] = quant(c.R)
			img.Pix[i+1] = quant(c.G)
			img.Pix[i+2] = quant(c.B)
			img.Pix[i+3] = quant(c.A)
		}
	}
}

func quant(x float32) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 255
	}
	return uint8(x*255 + 0.5)
}

// noise2 returns a pseudo-random value in [0, 1) that is stable per input.
func noise2(x, y float64) float64 {
	s := math.Sin(x*12.9898+y*78.233) * 43758.5453
	return s - math.Floor(s)
}

func stoneTile(u, v float64) tilelight.RGBA {
	if math.Abs(u-0.5) < 0.03 || math.Abs(v-0.5) < 0.03 {
		return tilelight.Hex("#55555a")
	}
	n := noise2(math.Floor(u*8), math.Floor(v*8))
	return tilelight.Hex("#6b6b70").Lerp(tilelight.Hex("#7a7a80"), float32(n))
}

func mossTile(u, v float64) tilelight.RGBA {
	base := stoneTile(u, v)
	m := noise2(math.Floor(u*5)+3, math.Floor(v*5)+1)
	if m > 0.6 {
		return base.Lerp(tilelight.Hex("#4e6b42"), float32((m-0.6)*1.8))
	}
	return base
}

func wallTile(u, v float64) tilelight.RGBA {
	row := math.Floor(v * 4)
	bu := u
	if int(row)%2 == 1 {
		bu += 0.125
	}
	if math.Mod(bu*4, 1) < 0.08 || math.Mod(v*4, 1) < 0.1 {
		return tilelight.Hex("#2e2a33")
	}
	n := noise2(math.Floor(bu*4)+row*7, row)
	return tilelight.Hex("#4a4450").Lerp(tilelight.Hex("#5a5261"), float32(n))
}

func doorTile(u, v float64) tilelight.RGBA {
	if u < 0.12 || u > 0.88 || v < 0.08 {
		return tilelight.Hex("#3a2f26")
	}
	c := tilelight.Hex("#7a5a38")
	if math.Mod(u*4, 1) < 0.1 {
		c = tilelight.Hex("#5e452c")
	}
	return c.Lerp(tilelight.Hex("#8a6a45"), float32(noise2(math.Floor(u*12), math.Floor(v*12)))*0.4)
}

func crateTile(u, v float64) tilelight.RGBA {
	const inset = 0.14
	if u < inset || u > 1-inset || v < inset || v > 1-inset {
		return tilelight.RGBA{}
	}
	edge := u < inset+0.06 || u > 1-inset-0.06 || v < inset+0.06 || v > 1-inset-0.06
	diag := math.Abs(u-v) < 0.045 || math.Abs(u+v-1) < 0.045
	if edge || diag {
		return tilelight.Hex("#6a4e2a")
	}
	return tilelight.Hex("#8a6a3d")
}

func torchTile(u, v float64) tilelight.RGBA {
	if math.Abs(u-0.5) < 0.05 && v > 0.42 && v < 0.85 {
		return tilelight.Hex("#5a4630")
	}
	d := math.Hypot((u-0.5)*1.25, v-0.33)
	if d < 0.16 {
		return tilelight.Hex("#ffd24a").Lerp(tilelight.Hex("#ff7a1f"), float32(d/0.16))
	}
	return tilelight.RGBA{}
}

func waterTile(u, v float64) tilelight.RGBA {
	ripple := 0.5 + 0.5*math.Sin((u+v)*6*math.Pi)
	c := tilelight.RGBA2(0.15, 0.35, 0.65, 0.55)
	return c.Lerp(tilelight.RGBA2(0.3, 0.55, 0.8, 0.45), float32(ripple*0.6))
}

func glowTile(u, v float64) tilelight.RGBA {
	d := math.Hypot(u-0.5, v-0.5) * 2
	if d >= 1 {
		return tilelight.RGBA{}
	}
	a := (1 - d) * (1 - d) * 0.5
	return tilelight.RGBA2(1, 0.82, 0.45, float32(a))
}

// flattenOverBlack composites the straight-alpha render onto an opaque
// black background so unknown cells come out black in the PNG.
func flattenOverBlack(img *image.RGBA) {
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		a := uint32(pix[i+3])
		if a == 255 {
			continue
		}
		pix[i+0] = uint8(uint32(pix[i+0]) * a / 255)
		pix[i+1] = uint8(uint32(pix[i+1]) * a / 255)
		pix[i+2] = uint8(uint32(pix[i+2]) * a / 255)
		pix[i+3] = 255
	}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
