package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigBuilder_Build_MergesSources verifies that earlier sources win
// for non-zero fields, matching the documented priority order.
func TestConfigBuilder_Build_MergesSources(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Registry: Registry{Host: "primary"}},
		&StructuredConfig{Registry: Registry{Host: "secondary", NamespacePort: 4242}},
	)

	cfg, err := b.build()

	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.Registry.Host, "first source must win for set fields")
	assert.Equal(t, 4242, cfg.Registry.NamespacePort, "unset fields fall through to later sources")
}

// TestConfigBuilder_Build_AppliesDefaults verifies that defaults cover fields
// no source provided.
func TestConfigBuilder_Build_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()

	cfg, err := b.build()

	require.NoError(t, err)
	assert.Equal(t, DefaultRegistryHost, cfg.Registry.Host)
	assert.Equal(t, DefaultNamespacePort, cfg.Registry.NamespacePort)
	assert.Equal(t, DefaultSyncRequestTimeout, cfg.Session.SyncRequestTimeout)
}

// TestConfigBuilder_Build_PropagatesSourceError verifies that a failed
// source aborts the build.
func TestConfigBuilder_Build_PropagatesSourceError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestStructuredConfig_Validate covers the validation sentinels.
func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{
			name: "valid",
			cfg: StructuredConfig{
				Registry: Registry{Host: "localhost", NamespacePort: 18861},
				Session:  Session{SyncRequestTimeout: time.Hour},
			},
		},
		{
			name: "port out of range",
			cfg: StructuredConfig{
				Registry: Registry{Host: "localhost", NamespacePort: 70000},
				Session:  Session{SyncRequestTimeout: time.Hour},
			},
			wantErr: ErrInvalidRegistryConfigs,
		},
		{
			name: "empty host",
			cfg: StructuredConfig{
				Registry: Registry{NamespacePort: 18861},
				Session:  Session{SyncRequestTimeout: time.Hour},
			},
			wantErr: ErrInvalidRegistryConfigs,
		},
		{
			name: "non-positive timeout",
			cfg: StructuredConfig{
				Registry: Registry{Host: "localhost", NamespacePort: 18861},
			},
			wantErr: ErrInvalidSessionConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
