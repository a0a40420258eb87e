// Package bufkitdouble provides test doubles for the bufkit.Pool port.
package bufkitdouble

// RecordingPool is a bufkit.Pool test double that hands out exactly sized
// buffers and records every Rent and Return call, so tests can verify that
// each rented buffer is returned exactly once and that borrowed memory is
// never returned.
type RecordingPool[T any] struct {
	Rents   int
	Returns int
	// ForeignReturns counts Return calls with a buffer this pool
	// never issued, or one that was already returned.
	ForeignReturns int

	outstanding map[*T]struct{}
}

func (p *RecordingPool[T]) Rent(minCapacity int) []T {
	p.Rents++
	buf := make([]T, max(minCapacity, 0))
	if 0 < len(buf) {
		if p.outstanding == nil {
			p.outstanding = make(map[*T]struct{})
		}
		p.outstanding[&buf[0]] = struct{}{}
	}
	return buf
}

func (p *RecordingPool[T]) Return(buf []T) {
	p.Returns++
	if len(buf) == 0 {
		return
	}
	if _, ok := p.outstanding[&buf[0]]; !ok {
		p.ForeignReturns++
		return
	}
	delete(p.outstanding, &buf[0])
}

// Outstanding returns how many issued buffers were not yet returned.
func (p *RecordingPool[T]) Outstanding() int { return len(p.outstanding) }
