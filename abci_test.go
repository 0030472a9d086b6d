package weave

import (
	"testing"

	"github.com/algobounty/weave/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func TestDeliverRoundTrip(t *testing.T) {
	res := &DeliverResult{
		Log:  "Funded bounty successfully",
		Tags: []common.KVPair{Tag("bounty.issue", "octo/hello#1")},
	}
	got, err := ParseDeliverOrError(DeliverOrError(res, nil, false))
	require.NoError(t, err)
	assert.Equal(t, res.Log, got.Log)
	assert.Equal(t, []byte("bounty.issue"), got.Tags[0].Key)

	cases := map[string]struct {
		err  error
		want *errors.Error
	}{
		"registered error keeps its code": {
			err:  errors.Wrap(errors.ErrInsufficientAmount, "bounty balance"),
			want: errors.ErrInsufficientAmount,
		},
		"unauthorized": {
			err:  errors.ErrUnauthorized,
			want: errors.ErrUnauthorized,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for _, debug := range []bool{true, false} {
				resp := DeliverOrError(nil, tc.err, debug)
				assert.NotEqual(t, errors.SuccessABCICode, resp.Code)
				_, err := ParseDeliverOrError(resp)
				assert.True(t, tc.want.Is(err))
			}
		})
	}
}

func TestCheckOrError(t *testing.T) {
	resp := CheckOrError(NewCheck(100, "ok"), nil, false)
	assert.Equal(t, uint32(errors.SuccessABCICode), resp.Code)
	assert.Equal(t, int64(100), resp.GasWanted)
	assert.Equal(t, "ok", resp.Log)

	resp = CheckOrError(nil, errors.ErrAmount, true)
	assert.Equal(t, errors.ErrAmount.ABCICode(), resp.Code)
	assert.Contains(t, resp.Log, "cannot check tx")
}

func TestReadOptions(t *testing.T) {
	opts := Options{"ledger": []byte(`{"native": 12}`)}

	var got struct {
		Native int `json:"native"`
	}
	require.NoError(t, opts.ReadOptions("ledger", &got))
	assert.Equal(t, 12, got.Native)

	// missing keys leave the destination untouched
	require.NoError(t, opts.ReadOptions("bounty", &got))
	assert.Equal(t, 12, got.Native)

	assert.Error(t, Options{"ledger": []byte(`{`)}.ReadOptions("ledger", &got))
}
