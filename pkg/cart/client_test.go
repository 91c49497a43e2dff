package cart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fastRetries(n uint64) Option {
	return WithBackOff(func() backoff.BackOff {
		return backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), n)
	})
}

func TestEncodeForm(t *testing.T) {
	form := EncodeForm(AddRequest{
		ID:         42,
		Properties: map[string]string{"Shape": "Round", "Price": "$750"},
	})
	assert.Equal(t, "42", form.Get("id"))
	assert.Equal(t, "1", form.Get("quantity"))
	assert.Equal(t, "Round", form.Get("properties[Shape]"))
	assert.Equal(t, "$750", form.Get("properties[Price]"))
}

func TestAddItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/add.js", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "42", r.PostForm.Get("id"))
		assert.Equal(t, "2", r.PostForm.Get("quantity"))
		assert.Equal(t, "8′ × 10′", r.PostForm.Get("properties[Size]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"variant_id":42,"key":"42:abc","title":"Custom Rug","quantity":2,"price":180500,"properties":{"Size":"8′ × 10′"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", zap.NewNop(), fastRetries(2))
	item, err := c.AddItem(context.Background(), AddRequest{
		ID:         42,
		Quantity:   2,
		Properties: map[string]string{"Size": "8′ × 10′"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), item.ID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, int64(180500), item.Price)
	assert.Equal(t, "8′ × 10′", item.Properties["Size"])
}

func TestAddItem_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"id":1,"quantity":1}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop(), fastRetries(5))
	item, err := c.AddItem(context.Background(), AddRequest{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAddItem_GivesUpAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop(), fastRetries(2))
	_, err := c.AddItem(context.Background(), AddRequest{ID: 1})
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAddItem_ClientErrorIsPermanent(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"status":422,"message":"Cart Error","description":"Product is sold out"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop(), fastRetries(5))
	_, err := c.AddItem(context.Background(), AddRequest{ID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "Product is sold out")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAddItem_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, zap.NewNop(), fastRetries(5))
	_, err := c.AddItem(ctx, AddRequest{ID: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
