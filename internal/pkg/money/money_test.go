package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndString(t *testing.T) {
	a, err := Parse("120.5")
	require.NoError(t, err)
	assert.Equal(t, "120.50", a.String())
	assert.Equal(t, int64(12050), a.Cents())

	_, err = Parse("twelve")
	assert.Error(t, err)
}

func TestAddIsExact(t *testing.T) {
	// 0.10 added ten times drifts in binary floating point.
	total := Zero
	for i := 0; i < 10; i++ {
		total = total.Add(MustParse("0.10"))
	}
	assert.Equal(t, "1.00", total.String())
	assert.True(t, Zero.IsZero())
}

func TestFitsMinorUnits(t *testing.T) {
	assert.True(t, MustParse("92233720368547758.07").FitsMinorUnits())
	assert.True(t, MustParse("-92233720368547758.08").FitsMinorUnits())
	assert.False(t, MustParse("92233720368547758.08").FitsMinorUnits())
	assert.False(t, MustParse("184467440737095516.17").FitsMinorUnits())
}

func TestHasValidScale(t *testing.T) {
	assert.True(t, MustParse("10").HasValidScale())
	assert.True(t, MustParse("10.25").HasValidScale())
	assert.True(t, MustParse("10.250").HasValidScale())
	assert.False(t, MustParse("10.255").HasValidScale())
}

func TestValue(t *testing.T) {
	v, err := MustParse("99.99").Value()
	require.NoError(t, err)
	assert.Equal(t, int64(9999), v)

	_, err = MustParse("0.001").Value()
	assert.Error(t, err)

	// would wrap around to 1 cent as int64
	_, err = MustParse("184467440737095516.17").Value()
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want string
	}{
		{name: "nil", src: nil, want: "0.00"},
		{name: "int64 minor units", src: int64(35000), want: "350.00"},
		{name: "numeric string", src: "30000", want: "300.00"},
		{name: "numeric bytes", src: []byte("5"), want: "0.05"},
		{name: "float", src: float64(1250), want: "12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, a.Scan(tt.src))
			assert.Equal(t, tt.want, a.String())
		})
	}

	var a Amount
	assert.Error(t, a.Scan(true))
}

func TestEqualIgnoresRepresentation(t *testing.T) {
	assert.True(t, New(decimal.RequireFromString("1.5")).Equal(FromCents(150)))
	assert.Equal(t, 1, MustParse("2").Cmp(MustParse("1.99")))
	assert.True(t, MustParse("-1").IsNegative())
}

func TestJSON(t *testing.T) {
	b, err := MustParse("7.5").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"7.50"`, string(b))

	var a Amount
	require.NoError(t, a.UnmarshalJSON([]byte(`"12.34"`)))
	assert.Equal(t, int64(1234), a.Cents())
}
