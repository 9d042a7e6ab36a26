package tlsutil

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSelfSigned(t *testing.T) {
	dir := t.TempDir()
	b, err := GenerateSelfSigned([]string{"localhost", "127.0.0.1"}, dir, time.Hour)
	require.NoError(t, err)

	caPEM, err := os.ReadFile(b.CAFile)
	require.NoError(t, err)
	pool := x509.NewCertPool()
	require.True(t, pool.AppendCertsFromPEM(caPEM))

	srvPEM, err := os.ReadFile(b.CertFile)
	require.NoError(t, err)
	block, _ := pem.Decode(srvPEM)
	require.NotNil(t, block)
	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)

	_, err = cert.Verify(x509.VerifyOptions{DNSName: "localhost", Roots: pool})
	assert.NoError(t, err)
	assert.Len(t, cert.IPAddresses, 1)

	info, err := os.Stat(b.KeyFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestGenerateSelfSigned_RequiresHost(t *testing.T) {
	_, err := GenerateSelfSigned(nil, t.TempDir(), time.Hour)
	assert.Error(t, err)
}

func TestServerTLSConfig(t *testing.T) {
	b, err := GenerateSelfSigned([]string{"localhost"}, t.TempDir(), time.Hour)
	require.NoError(t, err)

	creds, err := ServerTLSConfig(b.CertFile, b.KeyFile)
	require.NoError(t, err)
	assert.Equal(t, "tls", creds.Info().SecurityProtocol)

	_, err = ServerTLSConfig(b.CertFile, filepath.Join(t.TempDir(), "missing.pem"))
	assert.ErrorContains(t, err, "load server key pair")

	// A certificate paired with the wrong key is rejected.
	_, err = ServerTLSConfig(b.CAFile, b.KeyFile)
	assert.Error(t, err)
}

func TestClientTLSConfig(t *testing.T) {
	b, err := GenerateSelfSigned([]string{"localhost"}, t.TempDir(), time.Hour)
	require.NoError(t, err)

	_, err = ClientTLSConfig(b.CAFile)
	assert.NoError(t, err)

	_, err = ClientTLSConfig("")
	assert.NoError(t, err, "empty CA uses the system pool")

	_, err = ClientTLSConfig(b.KeyFile)
	assert.ErrorContains(t, err, "no certificates")
}
