package resultx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOkIsOk(t *testing.T) {
	r := Ok(42)

	assert.True(t, r.IsOk())
	assert.False(t, r.IsErr())
	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestErrIsErr(t *testing.T) {
	r := Err[int](errors.New("boom"))

	assert.False(t, r.IsOk())
	assert.True(t, r.IsErr())
	require.Error(t, r.Error())
}

func TestOkWithWarnings(t *testing.T) {
	r := OkWithWarnings(7, []string{"low confidence"})

	assert.Equal(t, []string{"low confidence"}, r.Warnings())
}

func TestUnwrapPanicsOnErr(t *testing.T) {
	r := Err[int](errors.New("boom"))

	assert.Panics(t, func() { r.Unwrap() })
}

func TestUnwrapOr(t *testing.T) {
	ok := Ok(5)
	bad := Err[int](errors.New("boom"))

	assert.Equal(t, 5, ok.UnwrapOr(0))
	assert.Equal(t, 0, bad.UnwrapOr(0))
}

func TestMap(t *testing.T) {
	r := Map(Ok(3), func(n int) string { return "n=3" })
	v, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, "n=3", v)

	errR := Map(Err[int](errors.New("boom")), func(n int) string { return "unused" })
	assert.True(t, errR.IsErr())
}

func TestMapErr(t *testing.T) {
	wrapped := MapErr(Err[int](errors.New("boom")), func(err error) error {
		return errors.New("wrapped: " + err.Error())
	})

	require.True(t, wrapped.IsErr())
	assert.Equal(t, "wrapped: boom", wrapped.Error().Error())
}

func TestAndThenChains(t *testing.T) {
	step1 := OkWithWarnings(2, []string{"w1"})
	step2 := AndThen(step1, func(n int) Result[int] {
		return OkWithWarnings(n*2, []string{"w2"})
	})

	v, ok := step2.Value()
	require.True(t, ok)
	assert.Equal(t, 4, v)
	assert.Equal(t, []string{"w1", "w2"}, step2.Warnings())
}

func TestAndThenShortCircuitsOnErr(t *testing.T) {
	called := false
	r := AndThen(Err[int](errors.New("boom")), func(n int) Result[int] {
		called = true
		return Ok(n)
	})

	assert.False(t, called)
	assert.True(t, r.IsErr())
}

func TestCollectAllOk(t *testing.T) {
	results := []Result[int]{Ok(1), OkWithWarnings(2, []string{"w"}), Ok(3)}

	collected := Collect(results)
	v, ok := collected.Value()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, v)
	assert.Equal(t, []string{"w"}, collected.Warnings())
}

func TestCollectShortCircuitsOnFirstErr(t *testing.T) {
	results := []Result[int]{Ok(1), Err[int](errors.New("boom")), Ok(3)}

	collected := Collect(results)
	assert.True(t, collected.IsErr())
}

func TestPartitionSeparatesOksAndErrs(t *testing.T) {
	results := []Result[int]{Ok(1), Err[int](errors.New("boom")), Ok(3)}

	oks, errs := Partition(results)
	assert.Equal(t, []int{1, 3}, oks)
	require.Len(t, errs, 1)
	assert.EqualError(t, errs[0], "boom")
}

func TestTryCatchRecoversPanic(t *testing.T) {
	r := TryCatch(func() int {
		panic("exploded")
	})

	assert.True(t, r.IsErr())
	assert.Contains(t, r.Error().Error(), "exploded")
}

func TestTryCatchPassesThroughValue(t *testing.T) {
	r := TryCatch(func() int { return 9 })

	v, ok := r.Value()
	require.True(t, ok)
	assert.Equal(t, 9, v)
}
