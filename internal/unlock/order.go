// Package unlock decides which exercises a learner may start, based on a
// fixed per-tier lesson order and the completion state of predecessors.
package unlock

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/rustdojo/internal/catalog"
)

//go:embed order.yaml
var defaultOrderYAML []byte

// Order lists short exercise names per tier in canonical order.
type Order map[catalog.Difficulty][]string

var (
	defaultOnce  sync.Once
	defaultOrder Order
)

// DefaultOrder returns the built-in lesson order.
func DefaultOrder() Order {
	defaultOnce.Do(func() {
		o, err := ParseOrder(defaultOrderYAML)
		if err != nil {
			panic(fmt.Sprintf("unlock: embedded order.yaml: %v", err))
		}
		defaultOrder = o
	})
	return defaultOrder
}

// ParseOrder decodes an order document.
func ParseOrder(data []byte) (Order, error) {
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse order: %w", err)
	}
	o := make(Order, len(raw))
	for tier, names := range raw {
		d := catalog.Difficulty(tier)
		if !d.Valid() {
			return nil, fmt.Errorf("parse order: unknown tier %q", tier)
		}
		seen := make(map[string]bool, len(names))
		for _, n := range names {
			if seen[n] {
				return nil, fmt.Errorf("parse order: %q listed twice in %s", n, tier)
			}
			seen[n] = true
		}
		o[d] = names
	}
	return o, nil
}

// LoadOrder reads an order document from path.
func LoadOrder(path string) (Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read order file: %w", err)
	}
	return ParseOrder(data)
}

// Rank returns the position of slug in the tier's list. Unknown names rank
// after every known name.
func (o Order) Rank(d catalog.Difficulty, slug string) int {
	names := o[d]
	for i, n := range names {
		if n == slug {
			return i
		}
	}
	return len(names)
}

// Contains reports whether slug is listed for the tier.
func (o Order) Contains(d catalog.Difficulty, slug string) bool {
	return o.Rank(d, slug) < len(o[d])
}
