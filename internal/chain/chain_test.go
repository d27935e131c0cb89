package chain

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFirstSuccess(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	fail := func(err error) Step[string, string] {
		return func(context.Context, string) (string, error) { return "", err }
	}
	succeed := func(out string) Step[string, string] {
		return func(_ context.Context, in string) (string, error) { return in + ":" + out, nil }
	}

	Convey("FirstSuccess", t, func() {
		ctx := context.Background()

		Convey("Returns the first successful step and its index", func() {
			out, idx, err := FirstSuccess(ctx, "in", fail(errA), succeed("b"), succeed("c"))
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "in:b")
			So(idx, ShouldEqual, 1)
		})

		Convey("Does not run steps after a success", func() {
			ran := false
			late := func(context.Context, string) (string, error) { ran = true; return "", nil }
			_, _, err := FirstSuccess(ctx, "in", succeed("a"), late)
			So(err, ShouldBeNil)
			So(ran, ShouldBeFalse)
		})

		Convey("Collects every error when exhausted", func() {
			_, idx, err := FirstSuccess(ctx, "in", fail(errA), fail(errB))
			So(idx, ShouldEqual, -1)
			So(IsExhausted(err), ShouldBeTrue)
			So(errors.Is(err, errA), ShouldBeTrue)
			So(errors.Is(err, errB), ShouldBeTrue)

			var exhausted *ExhaustedError
			So(errors.As(err, &exhausted), ShouldBeTrue)
			So(exhausted.Last(), ShouldEqual, errB)
		})

		Convey("Reports an empty chain as exhausted", func() {
			_, _, err := FirstSuccess[string, string](ctx, "in")
			So(IsExhausted(err), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "no steps to try")
		})

		Convey("Stops when the context is canceled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, _, err := FirstSuccess(cctx, "in", succeed("a"))
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
