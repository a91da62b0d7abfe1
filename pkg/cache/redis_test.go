package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedis_Disabled(t *testing.T) {
	for _, mode := range []string{"", ModeDisabled} {
		client, err := NewRedis(Redis{Mode: mode})
		require.NoError(t, err)
		assert.Nil(t, client)
	}
}

func TestRedis_Options(t *testing.T) {
	tests := []struct {
		name    string
		conf    Redis
		wantErr bool
		check   func(t *testing.T, conf Redis)
	}{
		{
			name: "single keeps first address and db",
			conf: Redis{Mode: ModeSingle, Address: "a:6379, b:6379", DB: 2, ReadTimeout: 3},
			check: func(t *testing.T, conf Redis) {
				opts, _ := conf.options()
				assert.Equal(t, []string{"a:6379"}, opts.Addrs)
				assert.Equal(t, 2, opts.DB)
				assert.Equal(t, 3*time.Second, opts.ReadTimeout)
			},
		},
		{
			name: "sentinel",
			conf: Redis{Mode: ModeSentinel, Address: "s1:26379,s2:26379", MasterName: "mymaster"},
			check: func(t *testing.T, conf Redis) {
				opts, _ := conf.options()
				assert.Len(t, opts.Addrs, 2)
				assert.Equal(t, "mymaster", opts.MasterName)
			},
		},
		{
			name: "cluster",
			conf: Redis{Mode: ModeCluster, Address: "c1:7000,c2:7000", UseTLS: true},
			check: func(t *testing.T, conf Redis) {
				opts, _ := conf.options()
				assert.True(t, opts.IsClusterMode)
				assert.NotNil(t, opts.TLSConfig)
			},
		},
		{name: "sentinel without master", conf: Redis{Mode: ModeSentinel, Address: "s1:26379"}, wantErr: true},
		{name: "missing address", conf: Redis{Mode: ModeSingle}, wantErr: true},
		{name: "unknown mode", conf: Redis{Mode: "ring", Address: "a:1"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.conf.options()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, tt.conf)
		})
	}
}

func TestNewRedis_UnsupportedMode(t *testing.T) {
	_, err := NewRedis(Redis{Mode: "ring", Address: "127.0.0.1:1"})
	assert.Error(t, err)
}
