package server

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/algobounty/weave/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	home, cleanup := setupHome(t, "")
	defer cleanup()
	path := filepath.Join(home, "config", ConfigFile)

	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), conf)

	raw := "bind = \"tcp://0.0.0.0:26658\"\nmetrics = \":9100\"\n"
	require.NoError(t, ioutil.WriteFile(path, []byte(raw), 0644))
	conf, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Config{Bind: "tcp://0.0.0.0:26658", Metrics: ":9100", LogLevel: "info"}, conf)

	want := Config{Bind: "unix:///tmp/bountyd.sock", Debug: true, LogLevel: "debug"}
	require.NoError(t, WriteConfig(path, want))
	conf, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want, conf)

	require.NoError(t, ioutil.WriteFile(path, []byte("colour = \"red\"\n"), 0644))
	_, err = LoadConfig(path)
	assert.True(t, errors.ErrInput.Is(err))

	require.NoError(t, ioutil.WriteFile(path, []byte("bind = \n"), 0644))
	_, err = LoadConfig(path)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestWriteConfigFailure(t *testing.T) {
	home, cleanup := setupHome(t, "")
	defer cleanup()

	err := WriteConfig(filepath.Join(home, "config"), DefaultConfig())
	assert.True(t, errors.ErrInput.Is(err))
}

func TestParseFlags(t *testing.T) {
	cases := map[string]struct {
		args    []string
		want    Config
		wantErr *errors.Error
	}{
		"no flags keep the configuration": {
			args: nil,
			want: DefaultConfig(),
		},
		"flags override the configuration": {
			args: []string{"-bind", "tcp://127.0.0.1:5000", "-debug", "-metrics", ":9100", "-log_level", "error"},
			want: Config{Bind: "tcp://127.0.0.1:5000", Debug: true, Metrics: ":9100", LogLevel: "error"},
		},
		"unknown flag": {
			args:    []string{"-min_fee", "1"},
			wantErr: errors.ErrInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := parseFlags(tc.args, DefaultConfig())
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
