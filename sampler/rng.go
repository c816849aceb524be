// Package sampler - deterministic random streams for edit placement.
//
// Goals:
//   - Determinism: same inputs ⇒ same placements on every platform.
//   - Independence: every (request, duplicate, sequence) instance owns its own stream,
//     so results do not depend on worker count or scheduling order.
//   - No hidden globals: callers thread an explicit *rand.Rand.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Never share one across goroutines;
//     derive a fresh stream per instance with InstanceRand.
package sampler

import (
	"hash/fnv"
	"math/rand"
)

// DefaultSeed is used when callers pass seed==0.
const DefaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed verbatim.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new seed
// with a SplitMix64 finalizer, so neighbouring inputs land far apart.
func DeriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// InstanceSeed is the seed of one request instance on one sequence. It is a
// pure function of its inputs. dupOrdinal offsets the base seed, so the n-th
// repetition of an identical {kind, length} entry draws from base+n.
func InstanceSeed(base int64, requestOrdinal, dupOrdinal int, seqID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(seqID))
	s := DeriveSeed(base+int64(dupOrdinal), uint64(requestOrdinal))
	return DeriveSeed(s, h.Sum64())
}

// InstanceRand returns the generator for InstanceSeed(base, requestOrdinal, dupOrdinal, seqID)
// along with the seed it was built from.
func InstanceRand(base int64, requestOrdinal, dupOrdinal int, seqID string) (*rand.Rand, int64) {
	seed := InstanceSeed(base, requestOrdinal, dupOrdinal, seqID)
	return NewRand(seed), seed
}
