package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/algobounty/weave/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// makeBase returns the base layer backed by a temporary directory.
func makeBase() (store.CacheableKVStore, func()) {
	commit, close := makeCommitStore()
	return commit.Adapter(), close
}

func makeCommitStore() (CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		panic(err)
	}
	commit, err := NewCommitStore(tmpDir, "base")
	if err != nil {
		panic(err)
	}
	close := func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
	return commit, close
}

var suite = store.NewTestSuite(makeBase)

func TestIavlCacheGetSet(t *testing.T)    { suite.GetSet(t) }
func TestIavlCacheConflicts(t *testing.T) { suite.CacheConflicts(t) }

func TestCommitOnlyExposesCommittedState(t *testing.T) {
	cs := NewCommitStoreFromDB(dbm.NewMemDB())

	cache := cs.CacheWrap()
	require.NoError(t, cache.Set([]byte("bounty:acme/widget#1"), []byte("funded")))

	got, err := cs.Get([]byte("bounty:acme/widget#1"))
	require.NoError(t, err)
	assert.Nil(t, got, "uncommitted data must not be visible")

	require.NoError(t, cache.Write())
	id, err := cs.Commit()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = cs.Get([]byte("bounty:acme/widget#1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("funded"), got)

	latest, err := cs.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, id, latest)
}

func TestCommitStorePersistence(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-persist-")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	cs, err := NewCommitStore(tmpDir, "state")
	require.NoError(t, err)

	for i, v := range []string{"one", "two", "three"} {
		cache := cs.CacheWrap()
		require.NoError(t, cache.Set([]byte("key"), []byte(v)))
		require.NoError(t, cache.Write())
		id, err := cs.Commit()
		require.NoError(t, err)
		require.Equal(t, int64(i+1), id.Version)
	}
	before, err := cs.LatestVersion()
	require.NoError(t, err)
	cs.Close()

	reopened, err := NewCommitStore(tmpDir, "state")
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.LoadLatestVersion())

	after, err := reopened.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	got, err := reopened.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("three"), got)
}

func TestNilValueIsStoredEmpty(t *testing.T) {
	cs := NewCommitStoreFromDB(dbm.NewMemDB())
	a := cs.Adapter()
	require.NoError(t, a.Set([]byte("empty"), nil))
	has, err := a.Has([]byte("empty"))
	require.NoError(t, err)
	assert.True(t, has)
}
