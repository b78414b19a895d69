package toolprobe

import (
	"os/exec"
	"sync"
)

// Probe implements domain.Availability against PATH. Results are memoized
// for the lifetime of one run. Parallel ecosystem runs share one probe, so
// the memo is mutex-guarded.
type Probe struct {
	mu   sync.Mutex
	seen map[string]bool
}

func New() *Probe {
	return &Probe{seen: map[string]bool{}}
}

func (p *Probe) Available(tool string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if available, done := p.seen[tool]; done {
		return available
	}
	_, err := exec.LookPath(tool)
	p.seen[tool] = err == nil
	return p.seen[tool]
}
