package wundahub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, srv *httptest.Server, retries int, retryDelay time.Duration) *HubClient {
	t.Helper()
	return NewHubClient(HubClientConfig{
		Host:       strings.TrimPrefix(srv.URL, "http://"),
		Username:   "root",
		Password:   "hunter2",
		Timeout:    5 * time.Second,
		Retries:    retries,
		RetryDelay: retryDelay,
	}, NewSessionManager(), zap.NewNop())
}

func TestGetDevices(t *testing.T) {
	payload := loadFixture(t, "syncvalues_v4.txt")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "root", user)
		assert.Equal(t, "hunter2", pass)
		assert.Equal(t, "/syncvalues.cgi", r.URL.Path)
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := testClient(t, srv, 1, time.Millisecond)
	graph, err := client.GetDevices(context.Background())
	require.NoError(t, err)
	assert.Len(t, graph, 8)
	assert.Equal(t, map[string]string{
		"temp": "17.8", "rh": "66.57", "bat": "92", "sig": "78",
	}, graph[121].SensorState)
}

func TestGetDevicesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := testClient(t, srv, 1, time.Millisecond)
	_, err := client.GetDevices(context.Background())
	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, http.StatusUnauthorized, protoErr.StatusCode)
}

func TestSendCommandEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"resp":"0"}`))
	}))
	defer srv.Close()

	client := testClient(t, srv, 1, time.Millisecond)
	resp, err := client.SendCommand(context.Background(), Params{
		P("cmd", 1),
		P("roomid", 121),
		Flag("prog"),
	})
	require.NoError(t, err)
	assert.Equal(t, "cmd=1&roomid=121&prog", gotQuery, "bare key, order preserved")
	assert.Equal(t, "0", resp["resp"])
}

func TestSendCommandRetryExhaustion(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	const retries = 5
	const delay = 20 * time.Millisecond
	client := testClient(t, srv, retries, delay)

	start := time.Now()
	_, err := client.SendCommand(context.Background(), SetRoomOff(121))
	elapsed := time.Since(start)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, retries, cmdErr.Attempts)
	assert.Equal(t, int32(retries), attempts.Load())
	assert.GreaterOrEqual(t, elapsed, (retries-1)*delay, "sleeps between attempts but not after the last")

	var protoErr *ProtocolError
	assert.ErrorAs(t, err, &protoErr)
}

func TestSendCommandMalformedEnvelopeNotRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := testClient(t, srv, 5, time.Millisecond)
	_, err := client.SendCommand(context.Background(), BoostHotWater(DefaultBoostDuration))

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, int32(1), attempts.Load(), "200 with garbage body is fatal, not retried")
}

func TestSendCommandSameAddressSerialized(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		if m := maxInFlight.Load(); n > m {
			maxInFlight.Store(n)
		}
		time.Sleep(30 * time.Millisecond)
		inFlight.Add(-1)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	sessions := NewSessionManager()
	host := strings.TrimPrefix(srv.URL, "http://")
	newClient := func() *HubClient {
		return NewHubClient(HubClientConfig{
			Host: host, Timeout: 5 * time.Second, Retries: 1, RetryDelay: time.Millisecond,
		}, sessions, zap.NewNop())
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := newClient().SendCommand(context.Background(), SetRoomProgrammed(121))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInFlight.Load(), "requests to one hub never overlap")
}

func TestSendCommandDifferentAddressesOverlap(t *testing.T) {
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entered <- struct{}{}
		<-release
		w.Write([]byte(`{}`))
	})
	srvA := httptest.NewServer(handler)
	defer srvA.Close()
	srvB := httptest.NewServer(handler)
	defer srvB.Close()

	sessions := NewSessionManager()
	newClient := func(srv *httptest.Server) *HubClient {
		return NewHubClient(HubClientConfig{
			Host:    strings.TrimPrefix(srv.URL, "http://"),
			Timeout: 5 * time.Second, Retries: 1, RetryDelay: time.Millisecond,
		}, sessions, zap.NewNop())
	}

	var wg sync.WaitGroup
	for _, srv := range []*httptest.Server{srvA, srvB} {
		wg.Add(1)
		go func(srv *httptest.Server) {
			defer wg.Done()
			_, err := newClient(srv).SendCommand(context.Background(), SetRoomProgrammed(121))
			assert.NoError(t, err)
		}(srv)
	}

	// both hubs must be mid-request at the same time
	for i := 0; i < 2; i++ {
		select {
		case <-entered:
		case <-time.After(2 * time.Second):
			t.Fatal("requests to different hubs did not overlap")
		}
	}
	close(release)
	wg.Wait()
}

func TestValidateConnection(t *testing.T) {
	payload := loadFixture(t, "syncvalues_v4.txt")
	var sawConnectionHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Connection") == "close" {
			sawConnectionHeader = true
		}
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := testClient(t, srv, 1, time.Millisecond)
	require.NoError(t, client.ValidateConnection(context.Background()))
	assert.True(t, sawConnectionHeader, "transient session disables keep-alive")
}

func TestCommandBuilders(t *testing.T) {
	assert.Equal(t, "cmd=1&roomid=121&temp=21.5&locktt=0&time=0",
		SetRoomTemperature(121, 21.5).Encode())
	assert.Equal(t, "cmd=1&roomid=121&prog&locktt=0&time=0", SetRoomProgrammed(121).Encode())
	assert.Equal(t, "cmd=1&roomid=121&temp=19.0&locktt=0&time=0",
		SetRoomHeat(121, 17.3).Encode())
	assert.Equal(t, "cmd=1&roomid=121&temp=0.0&locktt=0&time=0",
		SetRoomOff(121).Encode())
	assert.Equal(t, "cmd=3&hw_boost_time=1800", BoostHotWater(1800).Encode())
	assert.Equal(t, "cmd=3&hw_boost_time=0", BoostHotWater(0).Encode())
	assert.Equal(t, "cmd=3&hw_off_time=3600", HotWaterOff(3600).Encode())
}
