package qsearch

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEstimator(t *testing.T) {
	Convey("Given a 4-qubit space with solutions {3, 11}", t, func() {
		space, _ := NewSearchSpace(4)
		oracle := IndexOracle(space, 3, 11)
		config := NewConfig()

		Convey("The default counting register width is ceil(log2(sqrt(N)+1))", func() {
			So(config.precisionFor(space), ShouldEqual, 3)
		})

		Convey("When estimating with the simulator", func() {
			estimator := NewEstimator(NewSeededSimulator(42), config)
			estimate, err := estimator.Estimate(context.Background(), oracle)
			So(err, ShouldBeNil)

			Convey("The estimate lands near the true count", func() {
				So(estimate.M, ShouldBeBetween, 1.0, 4.0)
			})

			Convey("The integer window brackets the true count", func() {
				So(estimate.MinM, ShouldBeLessThanOrEqualTo, 2)
				So(estimate.MaxM, ShouldBeGreaterThanOrEqualTo, 2)
			})

			Convey("The error bound is carried, never zero for a noisy readout", func() {
				So(estimate.ErrorBound, ShouldBeGreaterThan, 0)
				So(estimate.PrecisionQubits, ShouldEqual, 3)
			})
		})

		Convey("When averaging repeated estimates", func() {
			estimator := NewEstimator(NewSeededSimulator(7), NewConfig())
			estimator.config.EstimateRepeats = 4

			estimate, err := estimator.Estimate(context.Background(), oracle)
			So(err, ShouldBeNil)
			So(estimate.M, ShouldBeBetween, 1.0, 4.0)
		})
	})

	Convey("Given an oracle with no solutions", t, func() {
		space, _ := NewSearchSpace(4)
		oracle := IndexOracle(space)
		estimator := NewEstimator(NewSeededSimulator(3), NewConfig())

		Convey("The estimate is exactly zero", func() {
			estimate, err := estimator.Estimate(context.Background(), oracle)
			So(err, ShouldBeNil)
			So(estimate.M, ShouldEqual, 0)
			So(estimate.MinM, ShouldEqual, 0)
		})
	})

	Convey("Given a failing backend", t, func() {
		space, _ := NewSearchSpace(4)
		oracle := IndexOracle(space, 3)
		estimator := NewEstimator(&failingBackend{}, NewConfig())

		Convey("The failure surfaces as a backend error", func() {
			_, err := estimator.Estimate(context.Background(), oracle)
			So(IsBackendError(err), ShouldBeTrue)
		})
	})
}

func TestIntegerWindow(t *testing.T) {
	Convey("Given estimate/bound pairs", t, func() {
		Convey("The window is clamped to [0, N]", func() {
			minM, maxM := integerWindow(1.0, 5.0, 16)
			So(minM, ShouldEqual, 0)
			So(maxM, ShouldEqual, 6)

			minM, maxM = integerWindow(15.0, 5.0, 16)
			So(minM, ShouldEqual, 10)
			So(maxM, ShouldEqual, 16)
		})

		Convey("An empty raw range is swapped instead of inverted", func() {
			minM, maxM := integerWindow(2.4, 0.1, 16)
			So(minM, ShouldBeLessThanOrEqualTo, maxM)
		})
	})
}

// failingBackend always reports a backend failure.
type failingBackend struct {
	calls int
}

func (b *failingBackend) Execute(ctx context.Context, circuit *Circuit, shots int) (*ExecutionResult, error) {
	b.calls++
	return nil, &BackendError{JobID: newJobID(), Err: errors.New("sampler offline")}
}
