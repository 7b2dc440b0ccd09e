package document

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"equeue-slip-bot/internal/pkg/logger"
	"equeue-slip-bot/pkg/metrics"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const assetsModule = "ASSETS"

type FontKind int

const (
	FontRegular FontKind = iota
	FontBold
	FontTitle
)

type MarkName string

const (
	MarkRuqsat MarkName = "ruqsat_logo.png"
	MarkQoldau MarkName = "qoldau_logo.png"
)

// Size of a brand mark once placed on the slip.
const (
	markWidth  = 100
	markHeight = 50
)

type fontSpec struct {
	file string
	size float64
}

var fontSpecs = map[FontKind]fontSpec{
	FontRegular: {file: "regular.ttf", size: 16},
	FontBold:    {file: "bold.ttf", size: 18},
	FontTitle:   {file: "bold.ttf", size: 24},
}

type markSpec struct {
	label string
	color color.RGBA
}

var markSpecs = map[MarkName]markSpec{
	MarkRuqsat: {label: "CARGO RUQSAT", color: color.RGBA{R: 0, G: 150, B: 100, A: 255}},
	MarkQoldau: {label: "QOLDAU.KZ", color: color.RGBA{R: 150, G: 150, B: 150, A: 255}},
}

// AssetLoadError describes a font or mark that could not be read. The
// registry recovers from it with a built-in fallback.
type AssetLoadError struct {
	Asset string
	Path  string
	Err   error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("load asset %s from %s: %v", e.Asset, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// Assets is what the renderer needs from the resource store.
type Assets interface {
	Font(kind FontKind) font.Face
	Mark(name MarkName) image.Image
}

// Registry loads fonts and brand marks once per process. The first caller
// does the work; concurrent first callers wait for it.
type Registry struct {
	fontsDir  string
	assetsDir string
	logger    logger.ILogger

	once  sync.Once
	runs  atomic.Int32
	fonts map[FontKind]*truetype.Font
	marks map[MarkName]image.Image
}

func NewRegistry(fontsDir, assetsDir string, log logger.ILogger) *Registry {
	return &Registry{
		fontsDir:  fontsDir,
		assetsDir: assetsDir,
		logger:    log,
	}
}

// Font returns a new face for kind. Faces keep glyph caches and must not be
// shared between goroutines, so every call builds its own; the parsed font
// underneath is shared.
func (r *Registry) Font(kind FontKind) font.Face {
	r.once.Do(r.load)

	f, ok := r.fonts[kind]
	if !ok || f == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: fontSpecs[kind].size})
}

// Mark returns the 100x50 brand mark. The image is shared and read-only.
func (r *Registry) Mark(name MarkName) image.Image {
	r.once.Do(r.load)

	if m, ok := r.marks[name]; ok {
		return m
	}
	spec := markSpecs[name]
	return solidMark(spec.color)
}

func (r *Registry) load() {
	r.runs.Add(1)

	r.fonts = make(map[FontKind]*truetype.Font, len(fontSpecs))
	parsed := map[string]*truetype.Font{}
	for kind, spec := range fontSpecs {
		f, seen := parsed[spec.file]
		if !seen {
			var err error
			f, err = loadFont(filepath.Join(r.fontsDir, spec.file))
			if err != nil {
				r.logger.Warn(assetsModule, "Font unavailable, using built-in face", map[string]interface{}{
					"font":  spec.file,
					"error": err.Error(),
				})
				metrics.IncAssetFallback(spec.file)
			}
			parsed[spec.file] = f
		}
		r.fonts[kind] = f
	}

	r.marks = make(map[MarkName]image.Image, len(markSpecs))
	for name, spec := range markSpecs {
		r.marks[name] = r.loadMark(name, spec)
	}
}

func (r *Registry) loadMark(name MarkName, spec markSpec) image.Image {
	path := filepath.Join(r.assetsDir, string(name))

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createPlaceholderMark(path, spec); err != nil {
			r.logger.Warn(assetsModule, "Could not persist placeholder mark", map[string]interface{}{
				"mark":  string(name),
				"error": err.Error(),
			})
		} else {
			r.logger.Info(assetsModule, "Created placeholder mark", map[string]interface{}{"path": path})
		}
	}

	src, err := gg.LoadImage(path)
	if err != nil {
		loadErr := &AssetLoadError{Asset: string(name), Path: path, Err: err}
		r.logger.Warn(assetsModule, "Mark unavailable, using solid block", map[string]interface{}{
			"error": loadErr.Error(),
		})
		metrics.IncAssetFallback(string(name))
		return solidMark(spec.color)
	}

	dst := image.NewRGBA(image.Rect(0, 0, markWidth, markHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func loadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &AssetLoadError{Asset: filepath.Base(path), Path: path, Err: err}
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, &AssetLoadError{Asset: filepath.Base(path), Path: path, Err: err}
	}
	return f, nil
}

// createPlaceholderMark draws a filled circle with the label next to it
// and saves it where the real logo is expected.
func createPlaceholderMark(path string, spec markSpec) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	dc := gg.NewContext(200, 100)
	dc.DrawCircle(50, 50, 40)
	dc.SetColor(spec.color)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB255(50, 50, 50)
	dc.DrawStringAnchored(spec.label, 100, 40, 0, 1)

	return dc.SavePNG(path)
}

func solidMark(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, markWidth, markHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}
