package relay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/cpqscope/cli/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSend(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	store := &session.MemoryStore{}
	store.Set(u.Hostname(), session.CookieName, "00Dtoken")

	l := &Local{Store: store, HTTP: srv.Client()}
	res := l.Send(context.Background(), Request{URL: srv.URL + "/services/data", Method: http.MethodGet})
	require.True(t, res.Success, res.Error)

	var resp Response
	require.NoError(t, json.Unmarshal(res.Data, &resp))
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"ok":true}`, resp.Body)
	assert.Equal(t, "Bearer 00Dtoken", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestLocalSendNoSession(t *testing.T) {
	l := &Local{Store: &session.MemoryStore{}}
	res := l.Send(context.Background(), Request{URL: "https://acme.my.salesforce.com/services/data", Method: http.MethodGet})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "log in")
}

func TestLocalSendInvalidURL(t *testing.T) {
	l := &Local{Store: &session.MemoryStore{}}
	res := l.Send(context.Background(), Request{URL: "not a url", Method: http.MethodGet})
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "invalid target URL")
}

func TestLocalSendPassesBody(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"01t000000000001","success":true}`))
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	store := &session.MemoryStore{}
	store.Set(u.Hostname(), session.CookieName, "00Dtoken")

	l := &Local{Store: store, HTTP: srv.Client()}
	res := l.Send(context.Background(), Request{
		URL:    srv.URL + "/services/data/v60.0/sobjects/Product2",
		Method: http.MethodPost,
		Body:   json.RawMessage(`{"Name":"Widget"}`),
	})
	require.True(t, res.Success, res.Error)
	assert.JSONEq(t, `{"Name":"Widget"}`, gotBody)
}
