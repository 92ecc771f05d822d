package bee

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

// DefaultIconSizes are the square icon sizes listed in the web manifest.
var DefaultIconSizes = []int{48, 72, 96, 144, 192, 256, 384, 512}

// IconSet renders the site icon at each manifest size on first request and
// keeps the encoded PNGs in memory.
type IconSet struct {
	src   string
	sizes []int

	mu      sync.Mutex
	decoded image.Image
	encoded map[int][]byte
}

// NewIconSet creates an IconSet for the image at src.
func NewIconSet(src string, sizes []int) *IconSet {
	return &IconSet{src: src, sizes: sizes, encoded: make(map[int][]byte)}
}

// Sizes returns the configured sizes.
func (s *IconSet) Sizes() []int {
	return s.sizes
}

// Has reports whether size is one of the configured sizes.
func (s *IconSet) Has(size int) bool {
	for _, v := range s.sizes {
		if v == size {
			return true
		}
	}
	return false
}

// PNG returns the icon scaled to fit a size×size transparent square.
func (s *IconSet) PNG(size int) ([]byte, error) {
	if !s.Has(size) {
		return nil, fmt.Errorf("icon size %d not configured", size)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.encoded[size]; ok {
		return b, nil
	}
	if s.decoded == nil {
		img, err := decodeIcon(s.src)
		if err != nil {
			return nil, err
		}
		s.decoded = img
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, fitSquare(s.decoded, size)); err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}
	s.encoded[size] = buf.Bytes()
	return s.encoded[size], nil
}

func decodeIcon(path string) (image.Image, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon: %w", err)
	}
	return img, nil
}

// fitSquare scales img to fit size×size, preserving aspect ratio, centered.
func fitSquare(img image.Image, size int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dw, dh := size, size
	if w > h {
		dh = h * size / w
	} else if h > w {
		dw = w * size / h
	}
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	x0, y0 := (size-dw)/2, (size-dh)/2
	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+dw, y0+dh), img, bounds, draw.Over, nil)
	return dst
}

// iconFileName returns the public name of the icon at size.
func iconFileName(size int) string {
	n := strconv.Itoa(size)
	return "icon-" + n + "x" + n + ".png"
}

// parseIconFileName extracts the size from "icon-NxN.png".
func parseIconFileName(name string) (int, bool) {
	if !strings.HasPrefix(name, "icon-") || !strings.HasSuffix(name, ".png") {
		return 0, false
	}
	dims := strings.TrimSuffix(strings.TrimPrefix(name, "icon-"), ".png")
	w, h, ok := strings.Cut(dims, "x")
	if !ok || w != h {
		return 0, false
	}
	size, err := strconv.Atoi(w)
	if err != nil || size <= 0 {
		return 0, false
	}
	return size, true
}

func (a *App) handleIcon(c echo.Context) error {
	size, ok := parseIconFileName(c.Param("file"))
	if !ok || !a.Icons.Has(size) {
		return echo.ErrNotFound
	}
	return a.serveIcon(c, size)
}

func (a *App) handleFavicon(c echo.Context) error {
	return a.serveIcon(c, a.Icons.Sizes()[0])
}

func (a *App) serveIcon(c echo.Context, size int) error {
	b, err := a.Icons.PNG(size)
	if err != nil {
		if os.IsNotExist(err) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.Blob(http.StatusOK, "image/png", b)
}
