package brandeck

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

// writePackage serializes p and returns its zip parts by name.
func writePackage(t *testing.T, p *Presentation) map[string][]byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewWriter(p, WriterPowerPoint2007)
	require.NoError(t, err)
	require.NoError(t, w.WriteTo(&buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	parts := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = data
	}
	return parts
}

// parsePart parses one XML part of a written package.
func parsePart(t *testing.T, parts map[string][]byte, name string) *etree.Document {
	t.Helper()
	data, ok := parts[name]
	require.True(t, ok, "missing part %s", name)
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	return doc
}

// solidPNG returns a w x h PNG filled with c.
func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// addSolidFill inserts <a:solidFill> after the geometry of props.
func addSolidFill(props *etree.Element, hex string) {
	fill := etree.NewElement("a:solidFill")
	fill.CreateElement("a:srgbClr").CreateAttr("val", hex)
	idx := len(props.ChildElements())
	if geom := props.SelectElement("a:prstGeom"); geom != nil {
		idx = geom.Index() + 1
	}
	props.InsertChildAt(idx, fill)
}
