package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{in: "#1A73E8", want: RGB{0x1A, 0x73, 0xE8}},
		{in: "1a73e8", want: RGB{0x1A, 0x73, 0xE8}},
		{in: "#ffffff", want: White},
		{in: " #000000 ", want: Black},
		{in: "", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#1234567", wantErr: true},
		{in: "#GGGGGG", wantErr: true},
		{in: "##123456", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMalformedColor)
				assert.Contains(t, err.Error(), tt.in)
				assert.Equal(t, Black, HexToColor(tt.in))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, HexToColor(tt.in))
		})
	}
}

func TestHexToColor_CaseAndPrefixInsensitive(t *testing.T) {
	for _, s := range []string{"abcdef", "ABCDEF", "#AbCdEf", "#abcdef"} {
		assert.Equal(t, RGB{0xAB, 0xCD, 0xEF}, HexToColor(s), s)
	}
	assert.Equal(t, "#ABCDEF", HexToColor("abcdef").String())
	assert.Equal(t, "FFABCDEF", HexToColor("abcdef").Color().ARGB)
}

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 1.0, Luminance(White), 1e-9)
	assert.InDelta(t, 0.0, Luminance(Black), 1e-9)
	// Mid gray sits well below 0.5 after linearization.
	assert.InDelta(t, 0.2159, Luminance(RGB{0x80, 0x80, 0x80}), 1e-3)
	// Green dominates the weighting.
	assert.Greater(t, Luminance(RGB{G: 0xFF}), Luminance(RGB{R: 0xFF}))
}

func TestContrastRatio(t *testing.T) {
	assert.InDelta(t, 21.0, ContrastRatio(White, Black), 1e-9)
	assert.InDelta(t, 21.0, ContrastRatio(Black, White), 1e-9)
	assert.InDelta(t, 1.0, ContrastRatio(HexToColor("#1A73E8"), HexToColor("#1A73E8")), 1e-9)

	a, b := HexToColor("#FFD23F"), HexToColor("#0B1F4D")
	assert.InDelta(t, ContrastRatio(a, b), ContrastRatio(b, a), 1e-12)
}

func TestAutoTextColor(t *testing.T) {
	assert.Equal(t, Black, AutoTextColor(White))
	assert.Equal(t, White, AutoTextColor(Black))
	assert.Equal(t, White, AutoTextColor(HexToColor("#0B1F4D")))
	assert.Equal(t, Black, AutoTextColor(HexToColor("#FFD23F")))

	// The pick is never worse than the alternative.
	for _, hex := range []string{"#777777", "#1A73E8", "#FF8A7A", "#E8EDFB", "#404040"} {
		bg := HexToColor(hex)
		pick := AutoTextColor(bg)
		other := White
		if pick == White {
			other = Black
		}
		assert.GreaterOrEqual(t, ContrastRatio(bg, pick), ContrastRatio(bg, other), hex)
	}
}
