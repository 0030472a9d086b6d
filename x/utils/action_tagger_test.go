package utils_test

import (
	"context"
	"testing"

	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/algobounty/weave/store"
	"github.com/algobounty/weave/weavetest"
	"github.com/algobounty/weave/weavetest/assert"
	"github.com/algobounty/weave/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		stack weave.Handler
		tx    weave.Tx
		err   *errors.Error
		tags  []common.KVPair
	}{
		"simple call": {
			stack: weavetest.Decorate(&weavetest.Handler{}, utils.NewActionTagger()),
			tx:    &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bounty/create"}},
			tags:  []common.KVPair{weave.Tag(utils.ActionKey, "bounty/create")},
		},
		"passes through error": {
			stack: weavetest.Decorate(&weavetest.Handler{DeliverErr: errors.ErrHuman}, utils.NewActionTagger()),
			tx:    &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bounty/create"}},
			err:   errors.ErrHuman,
		},
		"message error stops processing": {
			stack: weavetest.Decorate(&weavetest.Handler{}, utils.NewActionTagger()),
			tx:    &weavetest.Tx{Err: errors.ErrMsg},
			err:   errors.ErrMsg,
		},
		"tags are additive": {
			stack: weavetest.Decorate(&weavetest.Handler{
				DeliverResult: weave.DeliverResult{Tags: []common.KVPair{weave.Tag("issue", "a/b#1")}},
			}, utils.NewActionTagger()),
			tx:   &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bounty/fund"}},
			tags: []common.KVPair{weave.Tag("issue", "a/b#1"), weave.Tag(utils.ActionKey, "bounty/fund")},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			db := store.MemStore()

			// Check is passed through untouched.
			_, err := tc.stack.Check(ctx, db, tc.tx)
			assert.Nil(t, err)

			res, err := tc.stack.Deliver(ctx, db, tc.tx)
			if !tc.err.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.err != nil {
				return
			}
			assert.Equal(t, tc.tags, res.Tags)
		})
	}
}
