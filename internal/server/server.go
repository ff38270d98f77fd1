// Package server implements the TCP connection driver (C10): one task per
// accepted connection, handshake then request loop, wired to the
// dispatcher, the outbound push registry, and the client-compatibility
// shims.
package server

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mxdserver/mxd/internal/compat"
	"github.com/mxdserver/mxd/internal/dispatch"
	"github.com/mxdserver/mxd/internal/logger"
	"github.com/mxdserver/mxd/internal/metrics"
	"github.com/mxdserver/mxd/internal/outbound"
	"github.com/mxdserver/mxd/internal/session"
	"github.com/mxdserver/mxd/internal/telemetry"
	"github.com/mxdserver/mxd/internal/wire"
)

// Config holds the connection driver's dependencies.
type Config struct {
	Bind             string
	Dispatcher       *dispatch.Dispatcher
	OutboundRegistry *outbound.Registry
	Metrics          *metrics.Metrics
}

// Server accepts TCP connections and drives one goroutine per connection
// through the handshake and request loop of §4.2/§4.10.
type Server struct {
	config       Config
	listener     net.Listener
	ready        chan struct{}
	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
	nextConnID   atomic.Uint64
}

// New builds a Server from cfg. cfg.OutboundRegistry defaults to a fresh
// registry when nil.
func New(cfg Config) *Server {
	if cfg.OutboundRegistry == nil {
		cfg.OutboundRegistry = outbound.NewRegistry()
	}
	return &Server{config: cfg, shutdown: make(chan struct{}), ready: make(chan struct{})}
}

// WaitReady blocks until the listener is bound, for tests that need the
// address Serve picked (e.g. an ephemeral ":0" port) before dialing it.
func (s *Server) WaitReady() {
	<-s.ready
}

// Serve starts listening on cfg.Bind and blocks, accepting connections,
// until ctx is cancelled or Stop is called.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Bind)
	if err != nil {
		return err
	}
	s.listener = ln
	close(s.ready)

	logger.Info("mxd server listening", "addr", ln.Addr().String())

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-s.shutdown:
		}
	}()

	s.wg.Add(1)
	s.acceptLoop(ctx)
	s.wg.Wait()
	return nil
}

// Addr returns the listener's address, or "" if not yet listening.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop closes the listener and the shutdown channel, causing every
// in-flight driver to break out of its loop and the accept loop to stop
// pulling new sockets.
func (s *Server) Stop() {
	s.shutdownOnce.Do(func() {
		close(s.shutdown)
		if s.listener != nil {
			_ = s.listener.Close()
		}
	})
}

func (s *Server) acceptLoop(ctx context.Context) {
	defer s.wg.Done()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
				logger.Debug("accept error", "error", err)
				return
			}
		}

		s.wg.Add(1)
		connID := outbound.ConnectionID(s.nextConnID.Add(1))
		go func(c net.Conn, id outbound.ConnectionID) {
			defer s.wg.Done()
			s.handleConn(ctx, c, id)
		}(conn, connID)
	}
}

func clientIP(conn net.Conn) string {
	host, _, err := net.SplitHostPort(conn.RemoteAddr().String())
	if err != nil {
		return conn.RemoteAddr().String()
	}
	return host
}

// handleConn drives one accepted connection: handshake, then the request
// loop, with a concurrent writer draining outbound pushes.
func (s *Server) handleConn(ctx context.Context, conn net.Conn, connID outbound.ConnectionID) {
	defer func() { _ = conn.Close() }()

	lc := logger.NewLogContext(uint64(connID), clientIP(conn))
	ctx = logger.WithContext(ctx, lc)

	s.config.Metrics.ConnectionOpened()
	defer s.config.Metrics.ConnectionClosed()

	meta, code, err := wire.ReadHandshake(ctx, conn, wire.DefaultHandshakeTimeout)
	reply := wire.EncodeHandshakeReply(code)
	if _, writeErr := conn.Write(reply[:]); writeErr != nil {
		return
	}
	if err != nil || code != wire.HandshakeOK {
		return
	}

	sess := session.New()
	compatibility := session.NewCompatibility(meta.SubVersion)
	xorLatch := &compat.XorLatch{}

	handle := s.config.OutboundRegistry.Attach()
	defer s.config.OutboundRegistry.Detach(handle.ID())

	var writeMu sync.Mutex
	writer := wire.NewTransactionWriter(conn)

	connDone := make(chan struct{})
	writerDone := make(chan struct{})
	go s.runOutboundWriter(handle, xorLatch, writer, &writeMu, connDone, writerDone)

	s.requestLoop(ctx, conn, sess, compatibility, xorLatch, writer, &writeMu)

	close(connDone)
	<-writerDone
}

// runOutboundWriter drains handle's high- and low-priority push queues and
// writes them to the connection, XOR-encoding per the connection's latch.
// It exits when connDone closes (the connection's own request loop ended)
// or the process-wide shutdown fires, whichever comes first; Handle's
// queues are never closed individually.
func (s *Server) runOutboundWriter(handle *outbound.Handle, xorLatch *compat.XorLatch, writer *wire.TransactionWriter, writeMu *sync.Mutex, connDone, done chan struct{}) {
	defer close(done)
	for {
		select {
		case tx := <-handle.High():
			s.writePush(tx, xorLatch, writer, writeMu)
		case tx := <-handle.Low():
			s.writePush(tx, xorLatch, writer, writeMu)
		case <-connDone:
			return
		case <-s.shutdown:
			return
		}
	}
}

func (s *Server) writePush(tx wire.Transaction, xorLatch *compat.XorLatch, writer *wire.TransactionWriter, writeMu *sync.Mutex) {
	encoded, err := reencodePayload(tx, xorLatch.EncodeOutbound)
	if err != nil {
		return
	}
	writeMu.Lock()
	defer writeMu.Unlock()
	_ = writer.WriteTransaction(encoded)
}

// requestLoop reads one transaction at a time, applies the inbound
// compatibility shims, dispatches it, applies the outbound shims, and
// writes the reply. It terminates on EOF, a non-recoverable framing
// error, or the server's shutdown signal.
func (s *Server) requestLoop(ctx context.Context, conn net.Conn, sess *session.Session, compatibility *session.Compatibility, xorLatch *compat.XorLatch, writer *wire.TransactionWriter, writeMu *sync.Mutex) {
	reader := wire.NewTransactionReader(conn)

	for {
		select {
		case <-s.shutdown:
			return
		default:
		}

		tx, err := reader.ReadTransaction(ctx)
		if err != nil {
			// Any read failure — clean EOF or a non-recoverable framing
			// error — ends the loop; the connection is closed without a
			// reply per §4.10.
			return
		}

		txType := wire.TransactionTypeFromWire(tx.Header.Type)
		lc := logger.FromContext(ctx).WithTransaction(tx.Header.Type, tx.Header.ID)
		ctx = logger.WithContext(ctx, lc)

		if txType == wire.TxnLogin {
			if block, err := tx.Params(); err == nil {
				if raw, ok := wire.NewParamMap(block).First(wire.FieldVersion); ok {
					compatibility.RecordLoginVersion(compat.ParseLoginVersion(raw))
				}
			}
		}

		decoded, err := reencodePayload(tx, xorLatch.DecodeInbound)
		if err != nil {
			// A malformed-but-framed payload never propagates out of the
			// loop: §7 converts it to a code-2 reply and keeps serving.
			logger.WarnCtx(ctx, "inbound payload decode failed", "error", err)
			reply := invalidPayloadReply(tx.Header)
			s.config.Metrics.ObserveDispatch(tx.Header.Type, reply.Header.ErrorCode, 0)

			writeMu.Lock()
			writeErr := writer.WriteTransaction(reply)
			writeMu.Unlock()
			if writeErr != nil {
				return
			}
			continue
		}

		spanCtx, span := telemetry.StartDispatchSpan(ctx, tx.Header.Type)
		start := time.Now()
		reply := s.config.Dispatcher.Dispatch(spanCtx, sess, decoded)
		s.config.Metrics.ObserveDispatch(tx.Header.Type, reply.Header.ErrorCode, logger.Duration(start))
		telemetry.EndDispatchSpan(span, reply.Header.ErrorCode)

		if txType == wire.TxnLogin && reply.Header.ErrorCode == 0 {
			augmented, err := compat.AugmentLoginReply(compatibility.Generation(), reply)
			if err == nil {
				reply = augmented
			}
		}

		encoded, err := reencodePayload(reply, xorLatch.EncodeOutbound)
		if err != nil {
			// The reply itself failed to re-encode; that's on us, not the
			// client's request. Report it as code 3 and keep serving
			// rather than dropping the connection.
			logger.WarnCtx(ctx, "outbound reply encode failed", "error", err)
			encoded = internalErrorReply(tx.Header)
		}

		writeMu.Lock()
		writeErr := writer.WriteTransaction(encoded)
		writeMu.Unlock()
		if writeErr != nil {
			return
		}
	}
}

// invalidPayloadReply builds a code-2 (invalid payload) reply mirroring
// req's type and id, for a request whose payload could not be decoded at
// the compatibility-shim boundary, before it ever reaches Dispatch.
func invalidPayloadReply(req wire.FrameHeader) wire.Transaction {
	return wire.Transaction{
		Header:  wire.ReplyHeader(req.Type, req.ID, uint32(dispatch.CodeInvalidPayload), 0),
		Payload: nil,
	}
}

// internalErrorReply builds a code-3 (internal error) reply mirroring req's
// type and id, for a reply that itself failed to re-encode.
func internalErrorReply(req wire.FrameHeader) wire.Transaction {
	return wire.Transaction{
		Header:  wire.ReplyHeader(req.Type, req.ID, uint32(dispatch.CodeInternal), 0),
		Payload: nil,
	}
}

// reencodePayload decodes tx's payload, applies transform, and re-encodes
// it into a new Transaction with an updated header size. An empty payload
// is passed through transform unchanged (as an empty block).
func reencodePayload(tx wire.Transaction, transform func(wire.ParamBlock) wire.ParamBlock) (wire.Transaction, error) {
	if len(tx.Payload) == 0 {
		// Nothing to decode or shim; leave a true zero-length payload
		// (e.g. a gate-rejection error reply) as it is rather than
		// growing it into an encoded empty parameter block.
		return tx, nil
	}

	decoded, err := wire.DecodeParams(tx.Payload)
	if err != nil {
		return wire.Transaction{}, err
	}

	block := transform(decoded)

	payload, err := wire.EncodeParams(block)
	if err != nil {
		return wire.Transaction{}, err
	}

	header := tx.Header
	header.TotalSize = uint32(len(payload))
	header.DataSize = uint32(len(payload))
	return wire.Transaction{Header: header, Payload: payload}, nil
}
