package gen

import (
	"math/rand"

	"github.com/brianvoe/gofakeit/v6"
)

// Context owns the seeded random sources for one generation run. Generators
// consume it sequentially in pipeline order; there is no package-level random
// state, so independent runs never interfere.
type Context struct {
	rand  *rand.Rand
	faker *gofakeit.Faker
}

func NewContext(seed int64) *Context {
	return &Context{
		rand:  rand.New(rand.NewSource(seed)),
		faker: gofakeit.New(seed),
	}
}

func (c *Context) Rand() *rand.Rand {
	return c.rand
}

func (c *Context) Faker() *gofakeit.Faker {
	return c.faker
}

// intBetween draws uniformly from [min, max] inclusive.
func (c *Context) intBetween(min, max int) int {
	return min + c.rand.Intn(max-min+1)
}

// pick draws one element uniformly from a non-empty list.
func (c *Context) pick(items []string) string {
	return items[c.rand.Intn(len(items))]
}
