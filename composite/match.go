package composite

import (
	"fmt"
	"math/rand"
	"time"
)

type Orientation int

const (
	Landscape Orientation = iota
	Portrait
)

// OrientationOf treats square as landscape.
func OrientationOf(width, height int) Orientation {
	if width >= height {
		return Landscape
	}
	return Portrait
}

func (o Orientation) String() string {
	if o == Portrait {
		return "portrait"
	}
	return "landscape"
}

// Candidate is an image that may be picked for a monitor. Only the dimensions
// are needed to match it, the image itself is loaded later.
type Candidate struct {
	Path   string
	Width  int
	Height int
}

func (c Candidate) Orientation() Orientation {
	return OrientationOf(c.Width, c.Height)
}

// Pool holds the candidates that have not been picked yet, split by
// orientation. Match never modifies the Pool it is given.
type Pool struct {
	Landscape []Candidate
	Portrait  []Candidate
}

func NewPool(candidates []Candidate) Pool {
	p := Pool{}
	for _, c := range candidates {
		if c.Orientation() == Portrait {
			p.Portrait = append(p.Portrait, c)
		} else {
			p.Landscape = append(p.Landscape, c)
		}
	}
	return p
}

func (p Pool) Len() int {
	return len(p.Landscape) + len(p.Portrait)
}

func (p Pool) Bucket(o Orientation) []Candidate {
	if o == Portrait {
		return p.Portrait
	}
	return p.Landscape
}

func (p Pool) clone() Pool {
	return Pool{
		Landscape: append([]Candidate(nil), p.Landscape...),
		Portrait:  append([]Candidate(nil), p.Portrait...),
	}
}

func newRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Match picks one candidate per monitor, in monitor order, drawn uniformly from
// the remaining candidates with the same orientation as the monitor. It returns
// the picks and the pool without them.
func Match(pool Pool, monitors []Monitor, rng *rand.Rand) ([]Candidate, Pool, error) {
	rng = newRand(rng)
	remaining := pool.clone()
	picks := make([]Candidate, 0, len(monitors))

	for i, m := range monitors {
		o := m.Orientation()
		bucket := remaining.Bucket(o)
		if len(bucket) == 0 {
			return nil, pool, fmt.Errorf(
				"%w: no %s images left for monitor %d (%s)",
				ErrInsufficientImages, o, i, m)
		}

		n := rng.Intn(len(bucket))
		picks = append(picks, bucket[n])
		bucket = append(bucket[:n], bucket[n+1:]...)

		if o == Portrait {
			remaining.Portrait = bucket
		} else {
			remaining.Landscape = bucket
		}
	}

	return picks, remaining, nil
}

// MatchAny ignores orientation and draws from every remaining candidate.
func MatchAny(pool Pool, monitors []Monitor, rng *rand.Rand) ([]Candidate, Pool, error) {
	rng = newRand(rng)
	remaining := pool.clone()
	picks := make([]Candidate, 0, len(monitors))

	for i, m := range monitors {
		total := remaining.Len()
		if total == 0 {
			return nil, pool, fmt.Errorf(
				"%w: no images left for monitor %d (%s)", ErrInsufficientImages, i, m)
		}

		n := rng.Intn(total)
		if n < len(remaining.Landscape) {
			picks = append(picks, remaining.Landscape[n])
			remaining.Landscape = append(
				remaining.Landscape[:n], remaining.Landscape[n+1:]...)
		} else {
			n -= len(remaining.Landscape)
			picks = append(picks, remaining.Portrait[n])
			remaining.Portrait = append(
				remaining.Portrait[:n], remaining.Portrait[n+1:]...)
		}
	}

	return picks, remaining, nil
}
