// stagetool is a headless CLI for inspecting generated stages: it dumps
// layouts and ball trajectories as JSON and renders top-down plan images
// without opening a window.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/exhalegfx/escherball/internal/config"
	"github.com/exhalegfx/escherball/internal/engine/debug"
	"github.com/exhalegfx/escherball/internal/logger"
	"github.com/exhalegfx/escherball/internal/stage"
	"github.com/exhalegfx/escherball/internal/stage/trajectory"
	"github.com/exhalegfx/escherball/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := logger.Init("warn", ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "dump":
		cmdDump(args)
	case "plan":
		cmdPlan(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`stagetool - headless stage inspector

Usage:
  stagetool <command> [options]

Commands:
  dump    Print the stage layout and ball samples as JSON
  plan    Render a top-down plan of the stage to a PNG

Examples:
  stagetool dump -seed 7 -frames 50 -o stage.json
  stagetool plan -layout ring -o plan.png`)
}

// stageFlags are shared by both commands.
func stageFlags(fs *flag.FlagSet) *config.Config {
	cfg := config.Default()
	fs.Int64Var(&cfg.Stage.Seed, "seed", cfg.Stage.Seed, "random seed")
	fs.StringVar(&cfg.Stage.Layout, "layout", cfg.Stage.Layout, "staircase layout: flights or ring")
	fs.StringVar(&cfg.Stage.BallMode, "ball", cfg.Stage.BallMode, "ball animation: path or drop")
	return cfg
}

type dumpSample struct {
	Frame    int        `json:"frame"`
	Position math.Vec3  `json:"position"`
	Scale    math.Vec3  `json:"scale"`
	Color    [3]float32 `json:"color"`
}

type dumpOutput struct {
	Layout   string       `json:"layout"`
	Steps    int          `json:"steps"`
	Frames   int          `json:"picture_frames"`
	Lights   int          `json:"lights"`
	Unlit    int          `json:"unlit_frames,omitempty"`
	Total    int          `json:"total_frames"`
	Landings []int        `json:"landing_frames,omitempty"`
	Samples  []dumpSample `json:"samples"`
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	cfg := stageFlags(fs)
	frames := fs.Int("frames", 0, "number of ball samples to dump (0 = all)")
	output := fs.String("o", "", "output file (default stdout)")
	fs.Parse(args)

	st, err := stage.Build(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	n := st.TotalFrames
	if *frames > 0 && *frames < n {
		n = *frames
	}

	out := dumpOutput{
		Layout: st.Layout,
		Steps:  len(st.Steps) + len(st.Segments),
		Frames: len(st.Frames),
		Lights: st.Lights.Count,
		Unlit:  st.LightsDropped,
		Total:  st.TotalFrames,
	}
	if lf, ok := st.Ball.(interface{ LandingFrames() []int }); ok {
		out.Landings = lf.LandingFrames()
	}
	for f := 0; f < n; f++ {
		s, err := st.BallAt(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error sampling frame %d: %v\n", f, err)
			os.Exit(1)
		}
		out.Samples = append(out.Samples, dumpSample{
			Frame:    f,
			Position: s.Position,
			Scale:    s.Scale,
			Color:    st.Track.At(f),
		})
	}

	enc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	enc = append(enc, '\n')

	if *output == "" {
		os.Stdout.Write(enc)
		return
	}
	if err := os.WriteFile(*output, enc, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d samples)\n", *output, n)
}

func cmdPlan(args []string) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	cfg := stageFlags(fs)
	output := fs.String("o", "plan.png", "output PNG file")
	size := fs.Int("size", 1024, "image size in pixels")
	fs.Parse(args)

	st, err := stage.Build(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var img image.Image = renderPlan(st)
	img = debug.Downscale(img, *size)

	if err := writePNG(img, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *output)
}

const planPixels = 2048

// renderPlan draws the stage from above: floor extent, step footprints,
// picture frame positions and the ball's path over the full frame range.
func renderPlan(st *stage.Stage) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, planPixels, planPixels))

	// World extent covered by the image, centered on the floor.
	floor := st.Backdrop.Floor
	half := floor.Size.X / 2 * 1.1
	cx, cz := floor.Position.X, floor.Position.Z
	toPx := func(x, z float32) (int, int) {
		px := int((x - cx + half) / (2 * half) * planPixels)
		py := int((z - cz + half) / (2 * half) * planPixels)
		return px, py
	}

	bg := color.RGBA{18, 16, 22, 255}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = bg.R
		img.Pix[i+1] = bg.G
		img.Pix[i+2] = bg.B
		img.Pix[i+3] = bg.A
	}

	fillRect(img, toPx, floor.Position.X, floor.Position.Z, floor.Size.X, floor.Size.Z,
		color.RGBA{40, 38, 46, 255})

	stepCol := color.RGBA{200, 195, 185, 255}
	for _, s := range st.Steps {
		fillRect(img, toPx, s.Center.X, s.Center.Z, s.Size.X, s.Size.Z, stepCol)
	}
	for _, s := range st.Segments {
		fillRect(img, toPx, s.Position.X, s.Position.Z, s.StepDepth, s.StepDepth, stepCol)
	}

	frameCol := color.RGBA{120, 170, 255, 255}
	for _, f := range st.Frames {
		fillRect(img, toPx, f.Position.X, f.Position.Z, f.Width, 1, frameCol)
	}

	// Ball path.
	pathCol := color.RGBA{255, 80, 80, 255}
	var prevX, prevY int
	for f := 0; f < st.TotalFrames; f++ {
		s, err := st.BallAt(f)
		if err != nil {
			break
		}
		px, py := toPx(s.Position.X, s.Position.Z)
		if f > 0 {
			drawLine(img, prevX, prevY, px, py, pathCol)
		}
		prevX, prevY = px, py
	}

	return img
}

func fillRect(img *image.RGBA, toPx func(x, z float32) (int, int), cx, cz, w, d float32, c color.RGBA) {
	x0, y0 := toPx(cx-w/2, cz-d/2)
	x1, y1 := toPx(cx+w/2, cz+d/2)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if image.Pt(x, y).In(img.Bounds()) {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawLine is a basic Bresenham segment.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetRGBA(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func writePNG(img image.Image, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ensure the sampler interface assertion in cmdDump stays valid for both
// generators.
var (
	_ interface{ LandingFrames() []int } = (*trajectory.Generator)(nil)
	_ interface{ LandingFrames() []int } = (*trajectory.Path)(nil)
)
