package deck

import (
	"crypto/cipher"
	"encoding/binary"
	"math/rand/v2"

	"go.dedis.ch/kyber/v4/suites"
)

var suite suites.Suite = suites.MustFind("Ed25519")

// streamSource turns a kyber key stream into a math/rand source.
type streamSource struct {
	stream cipher.Stream
}

func (s *streamSource) Uint64() uint64 {
	var buf [8]byte
	s.stream.XORKeyStream(buf[:], buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

// NewSeededSource returns a deterministic source: the output stream of the
// suite's XOF absorbed with the seed.
func NewSeededSource(seed int64) rand.Source {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(seed))
	return &streamSource{stream: suite.XOF(b[:])}
}

// NewSource returns a source backed by the suite's cryptographic random stream.
func NewSource() rand.Source {
	return &streamSource{stream: suite.RandomStream()}
}

// NewRand returns a generator seeded with seed, or an unseeded one when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(NewSource())
	}
	return rand.New(NewSeededSource(seed))
}
