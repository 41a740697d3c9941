package fingershadow

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tactile3d/fingershadow/shadow"
)

// SoftwareRendererModule runs the Go evaluator over every pixel on the CPU
// and writes the frames as PNG files. Headless: it needs no window, no GPU,
// and pairs with ScriptedPointerModule. The per-pixel loop is row-parallel;
// the evaluator is pure, so rows share nothing but the read-only context.
type SoftwareRendererModule struct {
	OutputDir  string
	FrameLimit int
	Workers    int
}

type softwareState struct {
	img     *image.RGBA
	outDir  string
	limit   int
	workers int
	written int
}

func (mod SoftwareRendererModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, string(RendererSoftware))

	workers := mod.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	limit := mod.FrameLimit
	if limit <= 0 {
		limit = 120
	}
	outDir := mod.OutputDir
	if outDir == "" {
		outDir = "frames"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		panic(err)
	}

	cmd.AddResources(&softwareState{
		outDir:  outDir,
		limit:   limit,
		workers: workers,
	})

	logger := app.Logger()
	cmd.UseSystem(System(func(st *softwareState, frame *FrameState, ptr *Pointer, tm *Time, c *Commands) {
		softwareRenderSystem(st, frame, ptr, tm, c, logger)
	}).InStage(Render))

	app.Logger().Infof("software renderer ready (%d workers, %d frames -> %s)", workers, limit, outDir)
}

func softwareRenderSystem(st *softwareState, frame *FrameState, ptr *Pointer, tm *Time, cmd *Commands, logger Logger) {
	if st.img == nil || st.img.Rect.Dx() != frame.Width || st.img.Rect.Dy() != frame.Height {
		st.img = image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	}

	renderInto(st.img, &frame.Context, st.workers)
	drawHUD(st.img, fmt.Sprintf("frame %d  pressure %.2f", tm.Frame, ptr.Pressure))

	path := filepath.Join(st.outDir, fmt.Sprintf("frame_%04d.png", st.written))
	if err := writePNG(path, st.img); err != nil {
		logger.Errorf("write %s: %v", path, err)
		cmd.RequestQuit()
		return
	}

	st.written++
	if st.written >= st.limit {
		logger.Infof("frame budget reached (%d frames)", st.written)
		cmd.RequestQuit()
	}
}

// renderInto evaluates the shadow field at every pixel center, splitting
// rows across workers.
func renderInto(img *image.RGBA, ctx *shadow.EvaluationContext, workers int) {
	width := img.Rect.Dx()
	height := img.Rect.Dy()
	fw, fh := float32(width), float32(height)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(startRow int) {
			defer wg.Done()
			for y := startRow; y < height; y += workers {
				row := img.Pix[y*img.Stride : y*img.Stride+width*4]
				for x := 0; x < width; x++ {
					c := shadow.Evaluate(float32(x)+0.5, float32(y)+0.5, ctx, fw, fh)
					row[x*4+0] = channelByte(c.R)
					row[x*4+1] = channelByte(c.G)
					row[x*4+2] = channelByte(c.B)
					row[x*4+3] = channelByte(c.A)
				}
			}
		}(w)
	}
	wg.Wait()
}

// channelByte converts a color channel to 8 bit, clamping: attenuation may
// exceed 1 near the light position and the composite is not clamped.
func channelByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func drawHUD(img *image.RGBA, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, 16),
	}
	d.DrawString(text)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
