package price

import (
	"math/rand"
	"sync"

	"github.com/radhian/sip-engine/entity"

	"github.com/labstack/gommon/log"
	"github.com/patrickmn/go-cache"
)

// Simulated keeps NAVs in memory and can apply a random fluctuation to every
// read, e.g. 0.02 for +/-2%.
type Simulated struct {
	mu          sync.Mutex
	navs        *cache.Cache
	fluctuation float64
	rnd         *rand.Rand
}

func NewSimulated(fluctuation float64, seed int64) *Simulated {
	return &Simulated{
		navs:        cache.New(cache.NoExpiration, 0),
		fluctuation: fluctuation,
		rnd:         rand.New(rand.NewSource(seed)),
	}
}

func (s *Simulated) GetCurrentNAV(fundID string) (float64, error) {
	nav, err := s.StoredNAV(fundID)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fluctuation > 0 {
		nav *= 1 + (s.rnd.Float64()*2-1)*s.fluctuation
	}
	return nav, nil
}

func (s *Simulated) UpdateNAV(fundID string, nav float64) error {
	if nav <= 0 {
		return entity.NewValidationError("NAV must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.navs.Set(fundID, nav, cache.NoExpiration)
	return nil
}

// StoredNAV returns the NAV without fluctuation.
func (s *Simulated) StoredNAV(fundID string) (float64, error) {
	v, ok := s.navs.Get(fundID)
	if !ok {
		return 0, entity.NewNotFoundError(entity.KindFund, fundID)
	}
	return v.(float64), nil
}

func (s *Simulated) SetFluctuation(fluctuation float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fluctuation = fluctuation
}

// SimulateMarketMovement scales every stored NAV by (1 + percentage), where
// percentage is a fraction (0.05 is +5%). It returns the new NAVs by fund.
func (s *Simulated) SimulateMarketMovement(percentage float64) map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := make(map[string]float64)
	for fundID, item := range s.navs.Items() {
		nav := item.Object.(float64) * (1 + percentage)
		s.navs.Set(fundID, nav, cache.NoExpiration)
		moved[fundID] = nav
	}
	log.Infof("[PriceOracle] market moved %.2f%% across %d funds", percentage*100, len(moved))
	return moved
}
