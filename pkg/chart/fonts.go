package chart

import (
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontCache parses font data once and builds sized faces on demand.
// Faces are cached per (weight, size) because opentype face construction
// is not free and chart rendering requests the same few sizes repeatedly.
type fontCache struct {
	mu      sync.Mutex
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	bold bool
	size float64
}

var cache = &fontCache{faces: make(map[faceKey]font.Face)}

// LoadFontsDir replaces the embedded fonts with TTFs from dir, looking for
// regular.ttf and bold.ttf. Missing or unparseable files leave the
// corresponding embedded font in place. Intended for deployments that want
// report charts in a brand font.
func LoadFontsDir(dir string) error {
	if dir == "" {
		return nil
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()

	var firstErr error
	for _, spec := range []struct {
		file string
		dst  **opentype.Font
	}{
		{"regular.ttf", &cache.regular},
		{"bold.ttf", &cache.bold},
	} {
		data, err := os.ReadFile(filepath.Join(dir, spec.file))
		if err != nil {
			if firstErr == nil && !os.IsNotExist(err) {
				firstErr = err
			}
			continue
		}
		parsed, err := opentype.Parse(data)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		*spec.dst = parsed
	}

	// Sized faces may now be stale.
	cache.faces = make(map[faceKey]font.Face)
	return firstErr
}

// face returns a sized font face, falling back to the fixed-size basic
// face when the scalable font cannot be built.
func face(bold bool, size float64) font.Face {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	key := faceKey{bold: bold, size: size}
	if f, ok := cache.faces[key]; ok {
		return f
	}

	parsed := cache.font(bold)
	if parsed == nil {
		cache.faces[key] = basicfont.Face7x13
		return basicfont.Face7x13
	}

	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		cache.faces[key] = basicfont.Face7x13
		return basicfont.Face7x13
	}

	cache.faces[key] = f
	return f
}

// font lazily parses the embedded Go fonts. Caller must hold cache.mu.
func (c *fontCache) font(bold bool) *opentype.Font {
	if bold {
		if c.bold == nil {
			c.bold, _ = opentype.Parse(gobold.TTF)
		}
		return c.bold
	}
	if c.regular == nil {
		c.regular, _ = opentype.Parse(goregular.TTF)
	}
	return c.regular
}
