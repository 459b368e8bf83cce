package gen

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrEmptyPool reports a draw from an empty key pool. With correct
	// pipeline ordering this never happens at runtime.
	ErrEmptyPool = errors.New("empty key pool")

	// ErrInsufficientParentPool reports a dependent generator invoked
	// before its parent table was materialized.
	ErrInsufficientParentPool = errors.New("insufficient parent pool")
)

// KeyPool is the set of primary keys already materialized for one parent
// table. Dependent generators draw foreign keys from it, so a generated
// record can only ever reference an existing parent row.
type KeyPool struct {
	table string
	keys  []int
}

func NewKeyPool(table string, keys []int) *KeyPool {
	return &KeyPool{table: table, keys: keys}
}

func (p *KeyPool) Table() string {
	return p.table
}

func (p *KeyPool) Len() int {
	return len(p.keys)
}

// Draw returns one key uniformly at random.
func (p *KeyPool) Draw(r *rand.Rand) (int, error) {
	if len(p.keys) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrEmptyPool, p.table)
	}
	return p.keys[r.Intn(len(p.keys))], nil
}

// require checks the generation-order precondition: a dependent generator
// asked to produce records needs a non-empty parent pool.
func (p *KeyPool) require() error {
	if len(p.keys) == 0 {
		return fmt.Errorf("%w: %s has no generated keys", ErrInsufficientParentPool, p.table)
	}
	return nil
}
