package storage

import (
	"testing"

	"github.com/andresuchdata/storeops/backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMinioClient_Validation(t *testing.T) {
	valid := config.ArchiveConfig{Endpoint: "https://s3.local:9000", AccessKey: "a", SecretKey: "s", Bucket: "reports"}

	c, err := NewMinioClient(valid)
	require.NoError(t, err)
	assert.Equal(t, "reports", c.bucket)

	for name, mutate := range map[string]func(*config.ArchiveConfig){
		"endpoint": func(c *config.ArchiveConfig) { c.Endpoint = "" },
		"creds":    func(c *config.ArchiveConfig) { c.SecretKey = "" },
		"bucket":   func(c *config.ArchiveConfig) { c.Bucket = "" },
	} {
		cfg := valid
		mutate(&cfg)
		_, err := NewMinioClient(cfg)
		assert.Error(t, err, name)
	}
}
