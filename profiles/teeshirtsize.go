//go:generate go tool stringer -type=TeeShirtSize

package profiles

type TeeShirtSize int

const (
	NOT_SPECIFIED TeeShirtSize = iota
	XS
	S
	M
	L
	XL
	XXL
	XXXL
)

var teeShirtSizeTokens = map[string]TeeShirtSize{
	"NOT_SPECIFIED": NOT_SPECIFIED,
	"XS":            XS,
	"S":             S,
	"M":             M,
	"L":             L,
	"XL":            XL,
	"XXL":           XXL,
	"XXXL":          XXXL,
}

// ParseTeeShirtSize maps a client token to a size. The boolean is false
// for unknown tokens.
func ParseTeeShirtSize(token string) (TeeShirtSize, bool) {
	size, ok := teeShirtSizeTokens[token]
	return size, ok
}
