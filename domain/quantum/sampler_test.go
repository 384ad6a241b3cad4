package quantum

import (
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStatevectorSampler(t *testing.T) {
	Convey("Given a sampler over a seeded source", t, func() {
		sampler := NewStatevectorSampler(rand.NewPCG(1, 2))

		Convey("A basis state always measures the same bitstring", func() {
			r, err := NewRegister(5)
			So(err, ShouldBeNil)
			So(r.ApplyGate(PauliX, 0), ShouldBeNil)
			So(r.ApplyGate(PauliX, 2), ShouldBeNil)

			for i := 0; i < 10; i++ {
				out, err := r.Sample(sampler)
				So(err, ShouldBeNil)
				So(out, ShouldEqual, Bitstring("00101"))
				So(out.Ones(), ShouldEqual, 2)
				So(out.Bit(0), ShouldBeTrue)
				So(out.Bit(1), ShouldBeFalse)
			}
		})

		Convey("A Bell pair always measures correlated bits", func() {
			circuit := []Gate{NewGate(Hadamard, 0), NewGate(ControlledX, 0, 1)}
			shots, err := sampler.Sample(3, circuit, 200)
			So(err, ShouldBeNil)
			So(shots, ShouldHaveLength, 200)
			seen := map[Bitstring]int{}
			for _, s := range shots {
				seen[s]++
			}
			So(len(seen), ShouldEqual, 2)
			So(seen["000"], ShouldBeGreaterThan, 0)
			So(seen["011"], ShouldBeGreaterThan, 0)
		})

		Convey("Bad inputs are rejected", func() {
			_, err := sampler.Sample(3, nil, 0)
			So(err, ShouldNotBeNil)
			_, err = sampler.Sample(3, []Gate{NewGate(PauliX, 4)}, 1)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Bitstrings put qubit 0 on the right", t, func() {
		So(FormatBitstring(1, 4), ShouldEqual, Bitstring("0001"))
		So(FormatBitstring(12, 4), ShouldEqual, Bitstring("1100"))
	})
}
