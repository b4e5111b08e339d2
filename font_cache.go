package brandeck

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// defaultFaceCacheSize bounds the number of rasterizer faces kept alive.
const defaultFaceCacheSize = 128

// fontKey uniquely identifies a font face by name, size, style and hinting.
type fontKey struct {
	name    string
	size    float64
	bold    bool
	italic  bool
	hinting font.Hinting
}

// FontCache manages TrueType font loading and face caching. It searches
// system font directories and user-specified directories for .ttf, .otf
// and .ttc files. Parsed fonts are kept for the cache's lifetime; faces are
// evicted least-recently-used.
type FontCache struct {
	mu      sync.RWMutex
	dirs    []string
	fonts   map[string]*opentype.Font // lowercase font name -> parsed font
	faces   *lru.Cache                // fontKey -> font.Face
	scanned bool
}

// NewFontCache creates a FontCache that searches the given directories
// plus the OS default font directories.
func NewFontCache(extraDirs ...string) *FontCache {
	faces, err := lru.New(defaultFaceCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size
	}
	return &FontCache{
		dirs:  append(systemFontDirs(), extraDirs...),
		fonts: make(map[string]*opentype.Font),
		faces: faces,
	}
}

// GetFace returns a hinted face for drawing. When no installed font matches
// name, the bundled Go fonts are used, so the result is never nil.
func (fc *FontCache) GetFace(name string, sizePt float64, bold, italic bool) font.Face {
	return fc.face(name, sizePt, bold, italic, font.HintingFull)
}

// GetMeasureFace returns an unhinted face for line wrapping, whose advances
// track PowerPoint's layout more closely than hinted ones.
func (fc *FontCache) GetMeasureFace(name string, sizePt float64, bold, italic bool) font.Face {
	return fc.face(name, sizePt, bold, italic, font.HintingNone)
}

func (fc *FontCache) face(name string, sizePt float64, bold, italic bool, hinting font.Hinting) font.Face {
	fc.ensureScanned()

	key := fontKey{name: strings.ToLower(name), size: sizePt, bold: bold, italic: italic, hinting: hinting}
	if v, ok := fc.faces.Get(key); ok {
		return v.(font.Face)
	}

	f := fc.findFont(name, bold, italic)
	if f == nil {
		f = fallbackFont(bold, italic)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: sizePt, DPI: 72, Hinting: hinting})
	if err != nil {
		return nil
	}
	fc.faces.Add(key, face)
	return face
}

var (
	goFontsOnce sync.Once
	goFonts     [4]*opentype.Font // regular, bold, italic, bold italic
)

// fallbackFont returns the bundled Go font for a style.
func fallbackFont(bold, italic bool) *opentype.Font {
	goFontsOnce.Do(func() {
		for i, ttf := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
			f, err := opentype.Parse(ttf)
			if err != nil {
				panic(fmt.Sprintf("parse bundled font: %v", err))
			}
			goFonts[i] = f
		}
	})
	idx := 0
	if bold {
		idx |= 1
	}
	if italic {
		idx |= 2
	}
	return goFonts[idx]
}

// findFont looks up a parsed font by name, trying style-specific variants
// first and then the metric-compatible substitutes.
func (fc *FontCache) findFont(name string, bold, italic bool) *opentype.Font {
	fc.mu.RLock()
	defer fc.mu.RUnlock()

	lower := strings.ToLower(name)
	if f := fc.findFontByKey(lower, bold, italic); f != nil {
		return f
	}
	if alias, ok := fontSubstitutes[lower]; ok {
		return fc.findFontByKey(alias, bold, italic)
	}
	return nil
}

// findFontByKey looks up a font by its already-lowercased key, with style
// variants. Windows files use suffixes like "arialbd" and "arialbi".
func (fc *FontCache) findFontByKey(lower string, bold, italic bool) *opentype.Font {
	var suffixes []string
	switch {
	case bold && italic:
		suffixes = []string{" bold italic", "bi", " bolditalic", "z"}
	case bold:
		suffixes = []string{" bold", "bd", "b"}
	case italic:
		suffixes = []string{" italic", "i", " it"}
	}
	for _, suffix := range suffixes {
		if f, ok := fc.fonts[lower+suffix]; ok {
			return f
		}
	}
	if f, ok := fc.fonts[lower]; ok {
		return f
	}
	return nil
}

// fontSubstitutes maps common brand typefaces to the freely available fonts
// that share their metrics.
var fontSubstitutes = map[string]string{
	"calibri":         "carlito",
	"cambria":         "caladea",
	"arial":           "liberation sans",
	"helvetica":       "liberation sans",
	"helvetica neue":  "liberation sans",
	"times new roman": "liberation serif",
	"courier new":     "liberation mono",
	"segoe ui":        "noto sans",
	"inter":           "noto sans",
	"montserrat":      "noto sans",
}

// LoadFont loads a TrueType/OpenType font file and registers it under name.
func (fc *FontCache) LoadFont(name string, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// LoadFontData registers a TrueType/OpenType font from raw bytes.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.fonts[strings.ToLower(name)] = f
	fc.registerByFamilyName(f)
	fc.mu.Unlock()
	// Faces built from the fallback for this name are stale now.
	fc.faces.Purge()
	return nil
}

func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true

	for _, dir := range fc.dirs {
		fc.scanDirDepth(dir, 0)
	}
}

const (
	maxFontScanDepth = 3
	maxFontFileSize  = 20 << 20
)

func (fc *FontCache) scanDirDepth(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDirDepth(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		lower := strings.ToLower(entry.Name())
		isTTC := strings.HasSuffix(lower, ".ttc") || strings.HasSuffix(lower, ".otc")
		isSingle := strings.HasSuffix(lower, ".ttf") || strings.HasSuffix(lower, ".otf")
		if !isTTC && !isSingle {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}

		baseName := strings.TrimSuffix(lower, filepath.Ext(lower))
		if isTTC {
			fc.loadCollection(data, baseName)
		} else if f, err := opentype.Parse(data); err == nil {
			fc.fonts[baseName] = f
			fc.registerByFamilyName(f)
		}
	}
}

// loadCollection registers each font of a TTC/OTC by family name, and the
// first one also by file name.
func (fc *FontCache) loadCollection(data []byte, baseName string) {
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return
	}
	for i := 0; i < coll.NumFonts(); i++ {
		f, err := coll.Font(i)
		if err != nil {
			continue
		}
		if i == 0 {
			fc.fonts[baseName] = f
		}
		fc.registerByFamilyName(f)
	}
}

// registerByFamilyName registers f under its family and full names.
func (fc *FontCache) registerByFamilyName(f *opentype.Font) {
	if familyName, err := f.Name(nil, sfnt.NameIDFamily); err == nil && familyName != "" {
		fc.fonts[strings.ToLower(familyName)] = f
	}
	if fullName, err := f.Name(nil, sfnt.NameIDFull); err == nil && fullName != "" {
		fc.fonts[strings.ToLower(fullName)] = f
	}
}

// systemFontDirs returns OS-specific font directories.
func systemFontDirs() []string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs := []string{filepath.Join(windir, "Fonts")}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		dirs := []string{"/System/Library/Fonts", "/Library/Fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default:
		dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}
