package fingershadow

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tactile3d/fingershadow/shadow"
)

func TestRenderIntoUnpressedIsBackground(t *testing.T) {
	cfg := sceneSettings()
	ctx := shadow.PrepareFrame(buildScene(&cfg, &Pointer{})) // pressure 0

	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	renderInto(img, &ctx, 4)

	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			i := y*img.Stride + x*4
			if img.Pix[i] != 255 || img.Pix[i+1] != 255 || img.Pix[i+2] != 255 || img.Pix[i+3] != 255 {
				t.Fatalf("pixel (%d,%d) = %v, want opaque white background", x, y, img.Pix[i:i+4])
			}
		}
	}
}

func TestRenderIntoPressedDarkens(t *testing.T) {
	cfg := sceneSettings()
	ctx := shadow.PrepareFrame(buildScene(&cfg, &Pointer{Pressure: 1}))

	img := image.NewRGBA(image.Rect(0, 0, 96, 96))
	renderInto(img, &ctx, 3)

	minR := uint8(255)
	for y := 0; y < 96; y++ {
		for x := 0; x < 96; x++ {
			if r := img.Pix[y*img.Stride+x*4]; r < minR {
				minR = r
			}
		}
	}
	if minR == 255 {
		t.Errorf("full pressure should darken some pixels")
	}
}

func TestChannelByteClamps(t *testing.T) {
	cases := []struct {
		in   float32
		want uint8
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{3.7, 255}, // attenuation overshoot near the light
	}
	for _, c := range cases {
		if got := channelByte(c.in); got != c.want {
			t.Errorf("channelByte(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

// The headless pipeline end to end: scripted pointer, scene bridge and
// software renderer produce PNG frames and stop at the frame budget.
func TestSoftwareRendererPipeline(t *testing.T) {
	outDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Renderer.Backend = string(RendererSoftware)
	cfg.Renderer.OutputDir = outDir
	cfg.Renderer.FrameLimit = 3
	cfg.Window.Width = 48
	cfg.Window.Height = 32

	app := NewDemoApp(cfg)
	app.Run()

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Frames are sequentially numbered PNGs.
	for i, name := range []string{"frame_0000.png", "frame_0001.png", "frame_0002.png"} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, "frame %d", i)
		require.Greater(t, info.Size(), int64(0))
	}
}
