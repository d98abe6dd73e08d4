package qsearch

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSimulatorSearch(t *testing.T) {
	Convey("Given a 4-qubit space with solutions {3, 11}", t, func() {
		space, _ := NewSearchSpace(4)
		oracle := IndexOracle(space, 3, 11)
		sim := NewSeededSimulator(42)

		Convey("With k=0 the distribution is uniform", func() {
			probs := sim.searchDistribution(NewSearchCircuit(oracle, 0))
			for _, p := range probs {
				So(p, ShouldAlmostEqual, 1.0/16.0, 1e-12)
			}
		})

		Convey("With k=1 the solution mass follows sin²(3θ)", func() {
			probs := sim.searchDistribution(NewSearchCircuit(oracle, 1))
			solutionMass := probs[3] + probs[11]
			// sin²θ = 2/16, so sin²(3θ) ≈ 0.781
			So(solutionMass, ShouldAlmostEqual, 0.78125, 1e-9)
			So(probs[3], ShouldAlmostEqual, probs[11], 1e-12)
		})

		Convey("Executing one shot returns an in-range index", func() {
			result, err := sim.Execute(context.Background(), NewSearchCircuit(oracle, 1), 1)
			So(err, ShouldBeNil)
			So(result.Shots, ShouldEqual, 1)
			So(result.JobID, ShouldNotBeEmpty)
			So(space.Contains(result.Mode()), ShouldBeTrue)
		})

		Convey("Many shots concentrate on the solutions", func() {
			result, err := sim.Execute(context.Background(), NewSearchCircuit(oracle, 1), 2000)
			So(err, ShouldBeNil)
			hits := result.Counts[3] + result.Counts[11]
			So(hits, ShouldBeGreaterThan, 1400)
		})
	})
}

func TestSimulatorCounting(t *testing.T) {
	Convey("Given a 4-qubit space and a 3-qubit counting register", t, func() {
		space, _ := NewSearchSpace(4)
		sim := NewSeededSimulator(7)

		Convey("With no solutions the register reads zero with certainty", func() {
			oracle := IndexOracle(space)
			probs := sim.countingDistribution(NewCountingCircuit(oracle, 3))
			So(probs[0], ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("With every index a solution the register reads the midpoint", func() {
			oracle := NewOracle(space, func(int) bool { return true })
			probs := sim.countingDistribution(NewCountingCircuit(oracle, 3))
			So(probs[4], ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("With two solutions the mass sits on the buckets nearest θ/π", func() {
			oracle := IndexOracle(space, 3, 11)
			probs := sim.countingDistribution(NewCountingCircuit(oracle, 3))
			// θ/π ≈ 0.115, nearest buckets are 1/8 and its mirror 7/8
			So(probs[1]+probs[7], ShouldBeGreaterThan, 0.8)
			So(probs[1], ShouldAlmostEqual, probs[7], 1e-9)
		})

		Convey("The distribution is normalized", func() {
			oracle := IndexOracle(space, 5)
			probs := sim.countingDistribution(NewCountingCircuit(oracle, 3))
			total := 0.0
			for _, p := range probs {
				total += p
			}
			So(total, ShouldAlmostEqual, 1.0, 1e-9)
		})
	})
}

func TestSimulatorFailures(t *testing.T) {
	Convey("Given a simulator", t, func() {
		space, _ := NewSearchSpace(4)
		oracle := IndexOracle(space, 3)
		sim := NewSeededSimulator(1)

		Convey("Zero shots is a backend failure", func() {
			_, err := sim.Execute(context.Background(), NewSearchCircuit(oracle, 1), 0)
			So(IsBackendError(err), ShouldBeTrue)
		})

		Convey("An invalid circuit is a backend failure", func() {
			_, err := sim.Execute(context.Background(), NewSearchCircuit(oracle, -1), 1)
			So(IsBackendError(err), ShouldBeTrue)

			_, err = sim.Execute(context.Background(), NewCountingCircuit(oracle, 0), 1)
			So(IsBackendError(err), ShouldBeTrue)
		})

		Convey("A cancelled context is a backend failure", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := sim.Execute(ctx, NewSearchCircuit(oracle, 1), 1)
			So(IsBackendError(err), ShouldBeTrue)
		})
	})
}

func TestSampling(t *testing.T) {
	Convey("Given a probability vector", t, func() {
		probs := []float64{0.25, 0.5, 0.25}

		Convey("The cumulative walk picks the bucket containing r", func() {
			So(sample(probs, 0.1), ShouldEqual, 0)
			So(sample(probs, 0.3), ShouldEqual, 1)
			So(sample(probs, 0.74), ShouldEqual, 1)
			So(sample(probs, 0.9), ShouldEqual, 2)
		})

		Convey("Rounding drift falls back to the last bucket", func() {
			So(sample([]float64{0.5, 0.49999}, 0.9999999), ShouldEqual, 1)
		})
	})
}
