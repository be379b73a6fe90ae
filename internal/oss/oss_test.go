package oss

import (
	"context"
	"testing"
	"time"

	"github.com/Peezy0/Accel1/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOSSClient_Endpoints(t *testing.T) {
	o, err := NewOSSClient(config.OSSConfig{
		Address:       "http://minio:9000",
		PublicAddress: "https://files.example.com",
		AccessKey:     "ak",
		SecretKey:     "sk",
	})
	require.NoError(t, err)
	assert.Equal(t, "minio:9000", o.cli.EndpointURL().Host)
	assert.Equal(t, "http", o.cli.EndpointURL().Scheme)
	assert.Equal(t, "files.example.com", o.presignCli.EndpointURL().Host)
	assert.Equal(t, "https", o.presignCli.EndpointURL().Scheme)

	same, err := NewOSSClient(config.OSSConfig{Address: "localhost:9000", AccessKey: "ak", SecretKey: "sk"})
	require.NoError(t, err)
	assert.Same(t, same.cli, same.presignCli)
}

func TestNewOSSClient_RejectsPath(t *testing.T) {
	_, err := NewOSSClient(config.OSSConfig{Address: "http://minio:9000/bucket"})
	assert.Error(t, err)
}

func TestPresignGet_UsesPublicAddress(t *testing.T) {
	o, err := NewOSSClient(config.OSSConfig{
		Address:       "http://minio:9000",
		PublicAddress: "http://localhost:9000",
		AccessKey:     "ak",
		SecretKey:     "sk",
	})
	require.NoError(t, err)

	link, err := o.PresignGet(context.Background(), "program-plans", "past-work/x.json", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, link, "http://localhost:9000/program-plans/past-work/x.json")
	assert.Contains(t, link, "X-Amz-Signature=")
}
