package server

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requireKey string

func (k requireKey) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var v int
	if err := opts.ReadOptions(string(k), &v); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if v == 0 {
		return errors.Wrapf(errors.ErrEmpty, "%s", string(k))
	}
	return kv.Set([]byte(k), []byte{byte(v)})
}

func TestValidateGenesis(t *testing.T) {
	home, cleanup := setupHome(t, "")
	defer cleanup()

	write := func(name, content string) string {
		path := filepath.Join(home, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
		return path
	}
	valid := write("valid.json", `{"chain_id": "x", "app_state": {"bounty": 3}}`)
	missing := write("missing.json", `{"chain_id": "x", "app_state": {}}`)
	nostate := write("nostate.json", `{"chain_id": "x"}`)
	broken := write("broken.json", `{"chain_id": `)

	ini := requireKey("bounty")
	assert.NoError(t, ValidateGenesis(ini, []string{valid}))
	assert.True(t, errors.ErrEmpty.Is(ValidateGenesis(ini, []string{valid, missing})))
	assert.True(t, errors.ErrEmpty.Is(ValidateGenesis(ini, []string{nostate})))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, []string{broken})))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, []string{filepath.Join(home, "nope.json")})))
	assert.True(t, errors.ErrInput.Is(ValidateGenesis(ini, nil)))
}

func TestParseGetBlockArgs(t *testing.T) {
	path, height, err := parseGetBlockArgs([]string{"data/blockstore.db", "-height=12"})
	require.NoError(t, err)
	assert.Equal(t, "data/blockstore.db", path)
	assert.Equal(t, int64(12), height)

	_, _, err = parseGetBlockArgs(nil)
	assert.True(t, errors.ErrInput.Is(err))

	_, err = openDB("data/blockstore")
	assert.True(t, errors.ErrInput.Is(err))
}
