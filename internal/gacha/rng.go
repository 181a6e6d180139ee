package gacha

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource abstracts the uniform variate supply so the engine runs on
// replayable streams in simulations and tests.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

type seededRNG struct{ r *rand.Rand }

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// NewSeededRNG returns a replayable PCG stream.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

// NewTrialRNG returns the private stream for one Monte Carlo trial. Streams
// for distinct trial indexes never overlap, so trials can run in any order
// or in parallel and still reproduce bit-identically for a given seed.
func NewTrialRNG(seed, trial uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, trial+1))}
}

// FreshSeed draws seed entropy for runs that did not supply one. Falls back
// to math/rand when the system entropy source fails.
func FreshSeed() uint64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		return rand.Uint64()
	}
	return binary.BigEndian.Uint64(buf[:])
}
