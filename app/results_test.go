package app

import (
	"testing"

	"github.com/algobounty/weave"
	"github.com/algobounty/weave/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSets(t *testing.T) {
	models := []weave.Model{
		weave.Pair([]byte("bounty:a"), []byte("one")),
		weave.Pair([]byte("bounty:b"), []byte("two")),
	}
	rawKeys, err := ResultsFromKeys(models).Marshal()
	require.NoError(t, err)
	rawValues, err := ResultsFromValues(models).Marshal()
	require.NoError(t, err)

	var keys, values ResultSet
	require.NoError(t, keys.Unmarshal(rawKeys))
	require.NoError(t, values.Unmarshal(rawValues))

	joined, err := JoinResults(&keys, &values)
	require.NoError(t, err)
	assert.Equal(t, models, joined)

	_, err = JoinResults(&keys, &ResultSet{})
	assert.True(t, errors.ErrState.Is(err))
}

func TestEmptyResultSet(t *testing.T) {
	raw, err := ResultsFromValues(nil).Marshal()
	require.NoError(t, err)

	var set ResultSet
	require.NoError(t, set.Unmarshal(raw))
	assert.Empty(t, set.Results)

	var dst ResultSet
	err = UnmarshalOneResult(raw, &dst)
	assert.True(t, errors.ErrNotFound.Is(err))
}
