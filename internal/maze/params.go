package maze

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Params fully determine a generated maze: the same params always carve the
// same walls.
type Params struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   uint64 `json:"seed"`
}

func (p Params) String() string {
	return fmt.Sprintf("%d:%d:%d", p.Width, p.Height, p.Seed)
}

func ParseParams(s string) (*Params, error) {
	p := &Params{}
	fields := strings.ReplaceAll(s, ":", " ")
	n, err := fmt.Sscanf(fields, "%d %d %d", &p.Width, &p.Height, &p.Seed)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid maze params (params = "%s", n = %d, err = %w)`,
			s, n, err,
		)
	}
	return p, nil
}

// Validate checks the dimensions against the given limits. A limit of zero
// means unlimited.
func (p Params) Validate(maxWidth, maxHeight int) error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, p.Width, p.Height)
	}
	if (maxWidth > 0 && p.Width > maxWidth) || (maxHeight > 0 && p.Height > maxHeight) {
		return fmt.Errorf(
			"%w: %dx%d exceeds %dx%d",
			ErrInvalidDimension, p.Width, p.Height, maxWidth, maxHeight,
		)
	}
	return nil
}

func (p Params) Rand() *rand.Rand {
	return rand.New(rand.NewPCG(p.Seed, uint64(p.Width)<<32|uint64(p.Height)))
}

// NewGenerator returns a generator seeded from p.
func (p Params) NewGenerator() (*Generator, error) {
	return NewGenerator(p.Width, p.Height, p.Rand())
}
