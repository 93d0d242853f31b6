package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceGenerator(t *testing.T) {
	g := NewSequenceGenerator()
	assert.Equal(t, "SIP_000001", g.Generate("SIP"))
	assert.Equal(t, "SIP_000002", g.Generate("SIP"))
	assert.Equal(t, "TXN_000001", g.Generate("TXN"))

	g.Reserve("SIP", 10)
	assert.Equal(t, "SIP_000011", g.Generate("SIP"))
	g.Reserve("SIP", 3)
	assert.Equal(t, "SIP_000012", g.Generate("SIP"))
}

func TestSequenceGenerator_Concurrent(t *testing.T) {
	g := NewSequenceGenerator()
	seen := sync.Map{}
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, dup := seen.LoadOrStore(g.Generate("TXN"), true)
			assert.False(t, dup)
		}()
	}
	wg.Wait()
}

func TestNew(t *testing.T) {
	id := New("uuid").Generate("RUN")
	assert.True(t, strings.HasPrefix(id, "RUN_"))
	assert.Len(t, id, len("RUN_")+36)

	assert.Equal(t, "FUND_000001", New("").Generate("FUND"))
}
