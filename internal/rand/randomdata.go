// Package rand generates random test data: names, contents and picks.
//
// Generators are seeded so that a failing sequence can be reproduced.
package rand

import (
	"bytes"
	"math/rand"
	"sync"
	"time"
)

// Generator of random data. It is safe for concurrent use.
type Generator struct {
	seed int64
	mx   sync.Mutex
	rgen *rand.Rand
}

// New generator. A zero seed picks one from the clock.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		seed: seed,
		rgen: rand.New(rand.NewSource(seed)), // #nosec
	}
}

// Seed the generator was created with
func (g *Generator) Seed() int64 {
	return g.seed
}

// Bytes returns a random slice of bytes
func (g *Generator) Bytes(n int) []byte {
	buf := make([]byte, n)
	g.mx.Lock()
	_, _ = g.rgen.Read(buf)
	g.mx.Unlock()
	return buf
}

// Intn returns a random int in [0,n)
func (g *Generator) Intn(n int) int {
	g.mx.Lock()
	defer g.mx.Unlock()
	return g.rgen.Intn(n)
}

// LetterBytes returns a random slice of bytes picked in the [0-9]|[a-z] range
func (g *Generator) LetterBytes(n int) []byte {
	onceLetters.Do(makeLetters)
	buf := g.Bytes(n)
	for i, b := range buf {
		buf[i] = letters[b]
	}
	return buf
}

// LetterString returns a random string picked in the [0-9]|[a-z] range
func (g *Generator) LetterString(n int) string {
	return string(g.LetterBytes(n))
}

var (
	onceLetters sync.Once
	letters     []byte
)

func makeLetters() {
	// adds "a" to pad over 256 locations (0-9 U a-z makes up to 252 only and we want to cover the range of uint8)
	// so "a" is slightly more frequent than other signs
	letters = bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz0123456789a"), 7)
}
