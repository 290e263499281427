package uid

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// DefaultRoot is the UUID-derived OID arc per ISO/IEC 9834-8.
const DefaultRoot = "2.25"

// Generator produces globally unique identifier strings. Implementations
// must be safe for concurrent use.
type Generator interface {
	NewUID() (string, error)
}

// OIDGenerator renders random UUIDs as UUID-derived OIDs:
// "<root>.<uuid-as-unsigned-integer>".
type OIDGenerator struct {
	root string
}

// NewOIDGenerator returns an OIDGenerator with the given root arc. An empty
// root selects DefaultRoot. The root must be a dotted numeric arc such as
// "2.25" or "1.2.840.99999".
func NewOIDGenerator(root string) (*OIDGenerator, error) {
	if root == "" {
		root = DefaultRoot
	}
	for _, part := range strings.Split(root, ".") {
		if part == "" {
			return nil, fmt.Errorf("uid: invalid OID root %q", root)
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return nil, fmt.Errorf("uid: invalid OID root %q", root)
			}
		}
	}
	return &OIDGenerator{root: root}, nil
}

// NewUID returns a fresh OID-form identifier backed by 128 bits of entropy.
func (g *OIDGenerator) NewUID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	var n big.Int
	n.SetBytes(u[:])
	return g.root + "." + n.String(), nil
}

// UUIDGenerator emits canonical RFC 4122 UUID strings.
type UUIDGenerator struct{}

// NewUID returns a fresh random UUID in canonical text form.
func (UUIDGenerator) NewUID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
