package trajopt

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestIntervalSet1dExact(t *testing.T) {
	iv := Exactly(3)
	test.That(t, iv.IsExact(), test.ShouldBeTrue)
	test.That(t, iv.IsLowerBounded(), test.ShouldBeTrue)
	test.That(t, iv.IsUpperBounded(), test.ShouldBeTrue)
	test.That(t, iv.Lower(), test.ShouldAlmostEqual, 3.0)
	test.That(t, iv.Upper(), test.ShouldAlmostEqual, 3.0)
}

func TestIntervalSet1dOneSided(t *testing.T) {
	lower := AtLeast(2)
	test.That(t, lower.IsExact(), test.ShouldBeFalse)
	test.That(t, lower.IsLowerBounded(), test.ShouldBeTrue)
	test.That(t, lower.IsUpperBounded(), test.ShouldBeFalse)

	upper := AtMost(5)
	test.That(t, upper.IsLowerBounded(), test.ShouldBeFalse)
	test.That(t, upper.IsUpperBounded(), test.ShouldBeTrue)
}

func TestIntervalSet1dUnbounded(t *testing.T) {
	u := Unbounded()
	test.That(t, u.IsLowerBounded(), test.ShouldBeFalse)
	test.That(t, u.IsUpperBounded(), test.ShouldBeFalse)
	test.That(t, u.IsExact(), test.ShouldBeFalse)
}

func TestIntervalSet1dRoundTrip(t *testing.T) {
	iv := NewIntervalSet1d(-1, 4)
	test.That(t, iv.Lo, test.ShouldAlmostEqual, -1.0)
	test.That(t, iv.Hi, test.ShouldAlmostEqual, 4.0)
	test.That(t, math.IsInf(iv.Lower(), -1), test.ShouldBeFalse)
}
