package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Mode(t *testing.T) {
	tests := []struct {
		port int
		mode TLSMode
		want TLSMode
	}{
		{465, TLSAuto, TLSImplicit},
		{587, TLSAuto, TLSStartTLSRequired},
		{25, TLSAuto, TLSOpportunistic},
		{2525, TLSAuto, TLSOpportunistic},
		{587, TLSOpportunistic, TLSOpportunistic},
		{25, TLSImplicit, TLSImplicit},
	}
	for _, tt := range tests {
		cfg := Config{Port: tt.port, TLSMode: tt.mode}
		assert.Equal(t, tt.want, cfg.Mode(), "port %d mode %s", tt.port, tt.mode)
	}
}

func TestParseTLSMode(t *testing.T) {
	for in, want := range map[string]TLSMode{
		"":              TLSAuto,
		"auto":          TLSAuto,
		"opportunistic": TLSOpportunistic,
		"starttls":      TLSStartTLSRequired,
		"implicit":      TLSImplicit,
	} {
		got, err := ParseTLSMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTLSMode("ssl")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Username = "u"
	cfg.Password = "p"
	assert.NoError(t, cfg.Validate())

	cfg.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestConfig_TLSConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "smtp.example.com"
	assert.False(t, cfg.tlsConfig().InsecureSkipVerify)
	assert.Equal(t, "smtp.example.com", cfg.tlsConfig().ServerName)

	cfg.TLSRejectUnauthorized = false
	assert.True(t, cfg.tlsConfig().InsecureSkipVerify)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "titancargocourier.com", cfg.Host)
	assert.Equal(t, 587, cfg.Port)
	assert.Equal(t, "titancargocourier.com:587", cfg.Addr())
}
