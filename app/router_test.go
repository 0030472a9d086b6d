package app

import (
	"context"
	"testing"

	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/weavetest"
	"github.com/stretchr/testify/assert"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &weavetest.Handler{}
	bad := &weavetest.Handler{
		CheckErr:   errors.ErrUnauthorized,
		DeliverErr: errors.ErrUnauthorized,
	}
	r.Handle("bounty/good", good)
	r.Handle("bad", bad)

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("bounty/good", good) })
	assert.Panics(t, func() { r.Handle("l:7", good) })
	assert.Panics(t, func() { r.Handle("bounty/", good) })

	ctx := context.Background()
	txFor := func(path string) *weavetest.Tx {
		return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: path}}
	}

	_, err := r.Check(ctx, nil, txFor("bounty/good"))
	assert.NoError(t, err)
	_, err = r.Deliver(ctx, nil, txFor("bounty/good"))
	assert.NoError(t, err)
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, nil, txFor("bad"))
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 1, bad.CallCount())

	_, err = r.Check(ctx, nil, txFor("missing"))
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Deliver(ctx, nil, txFor("missing"))
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Equal(t, 2, good.CallCount())

	_, err = r.Deliver(ctx, nil, &weavetest.Tx{Err: errors.ErrInput})
	assert.True(t, errors.ErrInput.Is(err))
}
