// internal/browser/network/send_test.go
package network

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

// readRequest consumes one request (head plus Content-Length body) from r.
func readRequest(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	var sb strings.Builder
	length := 0
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return sb.String()
		}
		sb.WriteString(line)
		if line == "\r\n" {
			break
		}
		if name, value, ok := strings.Cut(strings.TrimRight(line, "\r\n"), ": "); ok && strings.EqualFold(name, "Content-Length") {
			length, _ = strconv.Atoi(value)
		}
	}
	body := make([]byte, length)
	_, _ = io.ReadFull(r, body)
	sb.Write(body)
	return sb.String()
}

// pipeServer answers one request on the server end of a net.Pipe.
func pipeServer(t *testing.T, server net.Conn, reply string, received chan<- string) {
	t.Helper()
	go func() {
		defer server.Close()
		req := readRequest(t, bufio.NewReader(server))
		if received != nil {
			received <- req
		}
		if reply != "" {
			_, _ = io.WriteString(server, reply)
		}
	}()
}

func TestSend_OverSuppliedConnection(t *testing.T) {
	defer goleak.VerifyNone(t)

	client, server := net.Pipe()
	received := make(chan string, 1)
	pipeServer(t, server, chunkedFixture, received)

	req, err := Build(Options{
		Method: "POST",
		Host:   "127.0.0.1",
		Port:   8088,
		Body:   Body{{Name: "name", Value: "winter"}},
		Logger: zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	resp, err := req.Send(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Wikipedia", resp.Body)
	assert.Equal(t, req.String(), <-received)
}

func TestSend_DialsWhenNoConnection(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	var dialed string
	dialer := DialerFunc(func(ctx context.Context, host string, port int) (Conn, error) {
		mu.Lock()
		dialed = net.JoinHostPort(host, strconv.Itoa(port))
		mu.Unlock()
		client, server := net.Pipe()
		pipeServer(t, server, "HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok", nil)
		return client, nil
	})

	req, err := Build(Options{Host: "example.test", Port: 8080, Dialer: dialer})
	require.NoError(t, err)

	resp, err := req.Send(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Body)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "example.test:8080", dialed)
}

func TestSend_SmallReadBuffer(t *testing.T) {
	defer goleak.VerifyNone(t)

	client, server := net.Pipe()
	pipeServer(t, server, chunkedFixture, nil)

	req, err := Build(Options{Host: "127.0.0.1", ReadBufferSize: 1})
	require.NoError(t, err)

	resp, err := req.Send(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, "Wikipedia", resp.Body)
}

func TestSend_DialFailure(t *testing.T) {
	dialErr := errors.New("connection refused")
	dialer := DialerFunc(func(context.Context, string, int) (Conn, error) {
		return nil, dialErr
	})
	req, err := Build(Options{Host: "127.0.0.1", Dialer: dialer})
	require.NoError(t, err)

	_, err = req.Send(context.Background(), nil)
	require.ErrorIs(t, err, ErrConnectionFailure)
	require.ErrorIs(t, err, dialErr)

	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "dial", connErr.Op)
}

func TestSend_PeerClosesEarly(t *testing.T) {
	defer goleak.VerifyNone(t)

	client, server := net.Pipe()
	pipeServer(t, server, "HTTP/1.1 200 OK\r\nContent-Length: 100\r\n\r\ntruncated", nil)

	req, err := Build(Options{Host: "127.0.0.1"})
	require.NoError(t, err)

	_, err = req.Send(context.Background(), client)
	assert.ErrorIs(t, err, ErrConnectionFailure)
	assert.ErrorIs(t, err, ErrIncompleteResponse)
}

func TestSend_UnframedBody(t *testing.T) {
	defer goleak.VerifyNone(t)

	client, server := net.Pipe()
	pipeServer(t, server, "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\nhello", nil)

	req, err := Build(Options{Host: "127.0.0.1"})
	require.NoError(t, err)

	_, err = req.Send(context.Background(), client)
	assert.ErrorIs(t, err, ErrUnsupportedBodyEncoding)
	assert.NotErrorIs(t, err, ErrConnectionFailure)
}

func TestSend_WriteFailure(t *testing.T) {
	client, server := net.Pipe()
	require.NoError(t, server.Close())

	req, err := Build(Options{Host: "127.0.0.1"})
	require.NoError(t, err)

	_, err = req.Send(context.Background(), client)
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "write", connErr.Op)
}

func TestSend_ContextCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer server.Close()
		// Read the request and never answer.
		_ = readRequest(t, bufio.NewReader(server))
		_, _ = io.Copy(io.Discard, server)
	}()

	req, err := Build(Options{Host: "127.0.0.1"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = req.Send(ctx, client)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	<-done
}

func TestSend_ConcurrentRequests(t *testing.T) {
	defer goleak.VerifyNone(t)

	const n = 8
	var wg sync.WaitGroup
	bodies := make([]string, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			client, server := net.Pipe()
			payload := "body-" + strconv.Itoa(i)
			pipeServer(t, server, "HTTP/1.1 200 OK\r\nContent-Length: "+strconv.Itoa(len(payload))+"\r\n\r\n"+payload, nil)

			req, err := Build(Options{Host: "127.0.0.1"})
			if err != nil {
				errs[i] = err
				return
			}
			resp, err := req.Send(context.Background(), client)
			if err != nil {
				errs[i] = err
				return
			}
			bodies[i] = resp.Body
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "body-"+strconv.Itoa(i), bodies[i])
	}
}
