package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Connection-level behavior requires a live etcd cluster; these tests cover
// configuration validation only.

func TestNewEtcdStore_NoEndpoints(t *testing.T) {
	_, err := NewEtcdStore(EtcdConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoints cannot be empty")
}

func TestEtcdStore_KeyLayout(t *testing.T) {
	s := &EtcdStore{namespace: "vibex"}
	assert.Equal(t, "/vibex/slot:main", s.etcdKey("slot:main"))
}
