package esplora

import (
	"context"
	"net/http"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/esplora/errors"
	"github.com/kbukum/esplora/esploratest"
)

func newAsyncServerClient(t *testing.T, srv *esploratest.Server) *AsyncClient {
	t.Helper()
	c, err := NewAsyncClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewAsyncClient: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestAsyncValidationResolvesImmediately(t *testing.T) {
	f := &fakeExecutor{}
	c, err := NewAsyncClient(testConfig("https://esplora.test/api"), WithExecutor(f))
	if err != nil {
		t.Fatalf("NewAsyncClient: %v", err)
	}

	fut := c.GetTxInfo(context.Background(), "abc")
	select {
	case <-fut.Done():
	default:
		t.Fatal("future is not resolved")
	}
	_, err = fut.Await(context.Background())
	wantCode(t, err, errors.ErrCodeValidation)
	if n := f.count(); n != 0 {
		t.Errorf("executor called %d times, want 0", n)
	}
}

func TestAsyncBroadcastRetry(t *testing.T) {
	last := errors.TransportIO(nil)
	f := &fakeExecutor{results: []fakeResult{
		fail(errors.ConnectionFailed(nil)),
		fail(last),
	}}
	cfg := testConfig("https://esplora.test/api")
	cfg.MaxRetries = 1
	c, err := NewAsyncClient(cfg, WithExecutor(f))
	if err != nil {
		t.Fatalf("NewAsyncClient: %v", err)
	}

	_, err = c.Broadcast(context.Background(), []byte{0x02}).Await(context.Background())
	if err != last {
		t.Fatalf("expected the last attempt's error unchanged, got %v", err)
	}
	if n := f.count(); n != 2 {
		t.Errorf("executor called %d times, want 2", n)
	}
}

// Both clients must produce the same value or the same error code for the
// same server behaviour.
func TestBlockingAndAsyncAgree(t *testing.T) {
	srv := esploratest.New(t)
	srv.JSON("/tx/"+esploratest.GenesisTxid, esploratest.GenesisTxJSON())
	srv.JSON("/tx/"+esploratest.GenesisTxid+"/status", esploratest.GenesisStatusJSON())
	srv.Status(http.MethodGet, "/tx/"+missingTxid+"/status", http.StatusNotFound, "Transaction not found")
	srv.Text("/blocks/tip/height", "840000")
	srv.Status(http.MethodGet, "/blocks/tip/hash", http.StatusServiceUnavailable, "busy")
	srv.JSON("/fee-estimates", `{"1": 87.882, "3": 51.72}`)
	srv.JSON("/blocks", `[]`)

	bc, err := NewBlockingClient(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("NewBlockingClient: %v", err)
	}
	ac := newAsyncServerClient(t, srv)
	ctx := context.Background()

	type result struct {
		value any
		code  errors.ErrorCode
	}
	pack := func(v any, err error) result {
		if err != nil {
			return result{code: errors.CodeOf(err)}
		}
		return result{value: v}
	}

	tests := []struct {
		name     string
		blocking func() result
		async    func() result
	}{
		{
			"tx info",
			func() result { return pack(bc.GetTxInfo(ctx, esploratest.GenesisTxid)) },
			func() result { return pack(ac.GetTxInfo(ctx, esploratest.GenesisTxid).Await(ctx)) },
		},
		{
			"tx status",
			func() result { return pack(bc.GetTxStatus(ctx, esploratest.GenesisTxid)) },
			func() result { return pack(ac.GetTxStatus(ctx, esploratest.GenesisTxid).Await(ctx)) },
		},
		{
			"not found",
			func() result { return pack(bc.GetTxStatus(ctx, missingTxid)) },
			func() result { return pack(ac.GetTxStatus(ctx, missingTxid).Await(ctx)) },
		},
		{
			"height",
			func() result { return pack(bc.GetHeight(ctx)) },
			func() result { return pack(ac.GetHeight(ctx).Await(ctx)) },
		},
		{
			"server rejected",
			func() result { return pack(bc.GetTipHash(ctx)) },
			func() result { return pack(ac.GetTipHash(ctx).Await(ctx)) },
		},
		{
			"fee estimates",
			func() result { return pack(bc.GetFeeEstimates(ctx)) },
			func() result { return pack(ac.GetFeeEstimates(ctx).Await(ctx)) },
		},
		{
			"empty blocks",
			func() result { return pack(bc.GetBlocks(ctx, nil)) },
			func() result { return pack(ac.GetBlocks(ctx, nil).Await(ctx)) },
		},
		{
			"validation",
			func() result { return pack(bc.GetAddressStats(ctx, "bogus")) },
			func() result { return pack(ac.GetAddressStats(ctx, "bogus").Await(ctx)) },
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, a := tc.blocking(), tc.async()
			if b.code != a.code {
				t.Fatalf("blocking code %q, async code %q", b.code, a.code)
			}
			if !reflect.DeepEqual(b.value, a.value) {
				t.Errorf("blocking %+v, async %+v", b.value, a.value)
			}
		})
	}
}

func TestAsyncCallsInterleave(t *testing.T) {
	srv := esploratest.New(t)
	srv.Handle(http.MethodGet, "/blocks/tip/height", esploratest.Response{
		Status: http.StatusOK,
		Body:   []byte("7"),
		Delay:  100 * time.Millisecond,
	})
	c := newAsyncServerClient(t, srv)
	ctx := context.Background()

	const n = 8
	start := time.Now()
	futures := make([]*Future[uint32], n)
	for i := range futures {
		futures[i] = c.GetHeight(ctx)
	}
	var wg sync.WaitGroup
	for _, f := range futures {
		wg.Add(1)
		go func(f *Future[uint32]) {
			defer wg.Done()
			if h, err := f.Await(ctx); err != nil || h != 7 {
				t.Errorf("Await = %d, %v", h, err)
			}
		}(f)
	}
	wg.Wait()
	if elapsed := time.Since(start); elapsed > n*100*time.Millisecond/2 {
		t.Errorf("calls did not overlap: %v", elapsed)
	}
	if srv.TotalHits() != n {
		t.Errorf("TotalHits = %d, want %d", srv.TotalHits(), n)
	}
}

func TestAsyncAwaitCanceled(t *testing.T) {
	srv := esploratest.New(t)
	srv.Handle(http.MethodGet, "/blocks/tip/height", esploratest.Response{
		Status: http.StatusOK,
		Body:   []byte("1"),
		Delay:  time.Second,
	})
	c := newAsyncServerClient(t, srv)

	callCtx, stop := context.WithCancel(context.Background())
	defer stop()
	fut := c.GetHeight(callCtx)

	waitCtx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fut.Await(waitCtx)
	wantCode(t, err, errors.ErrCodeCanceled)

	waitCtx, cancelTimeout := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancelTimeout()
	_, err = fut.Await(waitCtx)
	wantCode(t, err, errors.ErrCodeTimeout)

	// Canceling the call context ends the exchange itself.
	stop()
	_, err = fut.Await(context.Background())
	wantCode(t, err, errors.ErrCodeCanceled)
}
