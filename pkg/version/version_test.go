package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
	assert.NotEmpty(t, GetGitCommit())
	assert.NotEmpty(t, GetBuildDate())
}

func TestGetVersion_StripsPrefix(t *testing.T) {
	orig := version
	t.Cleanup(func() { version = orig })

	version = "v1.4.0"
	assert.Equal(t, "1.4.0", GetVersion())
	assert.False(t, IsDevelopment())
}

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "0.0.0-dev", want: true},
		{in: "0.0.0", want: true},
		{in: "1.2.0-rc.1", want: true},
		{in: "not-a-version", want: true},
		{in: "1.2.0", want: false},
		{in: "0.3.1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, isDevelopment(tt.in))
		})
	}
}
