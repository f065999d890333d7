package future_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/strand/pkg/future"
)

const settleTimeout = 1 * time.Second

func TestResolveSettlesOnce(t *testing.T) {
	f := future.New()
	assert.False(t, f.Settled())

	assert.True(t, f.Resolve(42))
	assert.False(t, f.Resolve(43))
	assert.False(t, f.Reject(errors.New("late")))
	assert.True(t, f.Settled())

	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()
	value, err := f.Await(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestRejectSettlesOnce(t *testing.T) {
	boom := errors.New("boom")
	f := future.New()

	assert.True(t, f.Reject(boom))
	assert.False(t, f.Reject(errors.New("other")))
	assert.False(t, f.Resolve(1))

	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, boom)
}

func TestThenBeforeSettlement(t *testing.T) {
	f := future.New()
	got := make(chan any, 1)
	f.Then(func(v any) {
		got <- v
	}, func(err error) {
		assert.Fail(t, "unexpected rejection", err)
	})

	f.Resolve("hello")

	select {
	case v := <-got:
		assert.Equal(t, "hello", v)
	case <-time.After(settleTimeout):
		assert.Fail(t, "continuation never fired")
	}
}

func TestThenAfterSettlement(t *testing.T) {
	boom := errors.New("boom")
	f := future.Rejected(boom)

	var got error
	f.Then(func(any) {
		assert.Fail(t, "unexpected fulfillment")
	}, func(err error) {
		got = err
	})
	assert.ErrorIs(t, got, boom)
}

func TestThenFiresEachContinuationOnce(t *testing.T) {
	f := future.New()
	calls := 0
	f.Then(func(any) { calls++ }, nil)
	f.Then(func(any) { calls++ }, nil)

	f.Resolve(1)
	f.Resolve(2)
	assert.Equal(t, 2, calls)
}

func TestResolvedAndRejectedConstructors(t *testing.T) {
	assert.True(t, future.Resolved(1).Settled())
	assert.True(t, future.Rejected(errors.New("x")).Settled())
}

func TestAwaitHonorsContext(t *testing.T) {
	f := future.New()
	ctx, cancel := context.WithTimeout(
		context.Background(), 10*time.Millisecond,
	)
	defer cancel()

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCancelInvokesHandlerWhilePending(t *testing.T) {
	f := future.New()
	canceled := false
	f.OnCancel(func() {
		canceled = true
	})

	f.Cancel()
	assert.True(t, canceled)
}

func TestCancelAfterSettlementIsNoop(t *testing.T) {
	f := future.New()
	f.OnCancel(func() {
		assert.Fail(t, "handler fired after settlement")
	})
	f.Resolve(1)
	f.Cancel()
}

func TestCancelWithoutHandlerIsNoop(t *testing.T) {
	f := future.New()
	assert.NotPanics(t, f.Cancel)
}
