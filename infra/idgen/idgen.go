package idgen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Generator produces unique identifiers for a prefix such as "SIP" or "TXN".
type Generator interface {
	Generate(prefix string) string
}

const (
	StrategySequence = "sequence"
	StrategyUUID     = "uuid"
)

// New returns the generator for strategy, defaulting to sequence.
func New(strategy string) Generator {
	if strings.EqualFold(strategy, StrategyUUID) {
		return NewUUIDGenerator()
	}
	return NewSequenceGenerator()
}

type SequenceGenerator struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewSequenceGenerator yields PREFIX_000001, PREFIX_000002, ... with an
// independent counter per prefix.
func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{counters: make(map[string]int64)}
}

func (g *SequenceGenerator) Generate(prefix string) string {
	g.mu.Lock()
	g.counters[prefix]++
	n := g.counters[prefix]
	g.mu.Unlock()
	return fmt.Sprintf("%s_%06d", prefix, n)
}

// Reserve moves the counter for prefix past n, so ids loaded from storage are
// not handed out again.
func (g *SequenceGenerator) Reserve(prefix string, n int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.counters[prefix] < n {
		g.counters[prefix] = n
	}
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (UUIDGenerator) Generate(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
