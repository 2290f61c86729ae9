package gridmap

// DefaultRows is the built-in 16x16 level.
var DefaultRows = []string{
	"0000222222220000",
	"1              0",
	"1      11111   0",
	"1     0        0",
	"0     0  1110000",
	"0     3        0",
	"0   10000      0",
	"0   3   11100  0",
	"5   4   0      0",
	"5   4   1  00000",
	"0       1      0",
	"2       1      0",
	"0       0      0",
	"0 0000000      0",
	"0              0",
	"0002222222200000",
}

// Default returns the built-in level.
func Default() *Map {
	m, err := FromRows(DefaultRows)
	if err != nil {
		panic("gridmap: default map is malformed: " + err.Error())
	}
	return m
}
