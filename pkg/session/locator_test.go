package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const host = "acme.my.salesforce.com"

func TestLocateExactHost(t *testing.T) {
	store := &MemoryStore{}
	store.Set(host, CookieName, "00Dabc")

	tok, err := Locate(context.Background(), store, host)
	require.NoError(t, err)
	assert.Equal(t, "00Dabc", tok)
}

func TestLocateParentDomain(t *testing.T) {
	store := &MemoryStore{}
	store.Set(".salesforce.com", CookieName, "00Dabc")

	tok, err := Locate(context.Background(), store, host)
	require.NoError(t, err)
	assert.Equal(t, "00Dabc", tok)
}

func TestLocateBroadScan(t *testing.T) {
	// Domain form the strategy list does not guess at; only the broad scan
	// over All() can find it.
	store := &MemoryStore{}
	store.Set("my.salesforce.com", CookieName, "00Dxyz")

	tok, err := Locate(context.Background(), store, host)
	require.NoError(t, err)
	assert.Equal(t, "00Dxyz", tok)
}

func TestLocateAbsent(t *testing.T) {
	store := &MemoryStore{}
	store.Set(host, "other", "nope")
	store.Set("example.com", CookieName, "foreign")

	tok, err := Locate(context.Background(), store, host)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestLocateEmptyValueSkipped(t *testing.T) {
	store := &MemoryStore{}
	store.Set(host, CookieName, "")
	store.Set(".salesforce.com", CookieName, "00Dfallback")

	tok, err := Locate(context.Background(), store, host)
	require.NoError(t, err)
	assert.Equal(t, "00Dfallback", tok)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string, string) (string, error) {
	return "", errors.New("store offline")
}

func (failingStore) All(context.Context) ([]Cookie, error) {
	return nil, errors.New("store offline")
}

func TestLocateStoreError(t *testing.T) {
	_, err := Locate(context.Background(), failingStore{}, host)
	assert.Error(t, err)
}

func TestParentDomains(t *testing.T) {
	assert.Equal(t,
		[]string{".acme.my.salesforce.com", ".my.salesforce.com", ".salesforce.com"},
		parentDomains(host))
	assert.Empty(t, parentDomains("localhost"))
}

func TestStaticStore(t *testing.T) {
	store := StaticStore{Host: host, Token: "00Dstatic"}

	tok, err := Locate(context.Background(), store, host)
	require.NoError(t, err)
	assert.Equal(t, "00Dstatic", tok)

	tok, err = Locate(context.Background(), store, "other.my.salesforce.com")
	require.NoError(t, err)
	assert.Empty(t, tok)
}
