// internal/browser/network/send.go
package network

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Send writes the request and reads until a complete response has been parsed.
//
// When conn is nil a new connection is dialed to Host:Port. The connection is
// closed before Send returns, on success and on failure alike. Each call owns
// its own ResponseParser, so concurrent calls on different requests share no
// state. Cancelling ctx closes the connection and Send returns ctx.Err().
// There are no retries.
func (r *Request) Send(ctx context.Context, conn Conn) (*Response, error) {
	logger := r.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("method", r.Method),
		zap.String("address", r.Address()),
		zap.String("path", r.Path),
	)

	if conn == nil {
		logger.Debug("Dialing new connection")
		c, err := r.dialer.Dial(ctx, r.Host, r.Port)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Debug("Dial failed", zap.Error(err))
			return nil, &ConnectionError{Op: "dial", Err: err}
		}
		conn = c
	}
	defer conn.Close()

	// Abort blocking reads and writes as soon as the caller gives up.
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if _, err := conn.Write(r.Bytes()); err != nil {
		return nil, r.connectionFailure(ctx, logger, "write", err)
	}
	logger.Debug("Request written", zap.Int("content_length", len(r.BodyText)))

	parser := NewResponseParser()
	buf := make([]byte, r.readBuffer)
	for {
		n, readErr := conn.Read(buf)
		if n > 0 {
			if _, err := parser.Receive(buf[:n]); err != nil {
				logger.Debug("Response parsing failed", zap.Error(err), zap.Stringer("state", parser.State()))
				return nil, err
			}
			if parser.Finished() {
				resp, err := parser.Response()
				if err != nil {
					return nil, err
				}
				logger.Debug("Response received",
					zap.Int("status", resp.StatusCode),
					zap.Stringer("framing", parser.Decoder().Kind()),
					zap.Int("body_bytes", len(resp.Body)))
				return resp, nil
			}
		}

		if readErr == nil {
			continue
		}
		if errors.Is(readErr, io.EOF) && ctx.Err() == nil {
			closeErr := parser.Close()
			if errors.Is(closeErr, ErrIncompleteResponse) {
				return nil, r.connectionFailure(ctx, logger, "read", closeErr)
			}
			return nil, closeErr
		}
		return nil, r.connectionFailure(ctx, logger, "read", readErr)
	}
}

// connectionFailure prefers the context error when the failure was caused by cancellation.
func (r *Request) connectionFailure(ctx context.Context, logger *zap.Logger, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.Debug("Request cancelled", zap.String("op", op), zap.Error(ctxErr))
		return ctxErr
	}
	logger.Debug("Connection failure", zap.String("op", op), zap.Error(err))
	return &ConnectionError{Op: op, Err: err}
}
