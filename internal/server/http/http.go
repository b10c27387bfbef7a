package http

import (
	"errors"
	"net"

	"github.com/indigo-web/statica/http"
	"github.com/indigo-web/statica/http/method"
	"github.com/indigo-web/statica/http/proto"
	"github.com/indigo-web/statica/http/status"
	"github.com/indigo-web/statica/internal/protocol/http1"
	"github.com/indigo-web/statica/internal/static"
	"github.com/indigo-web/statica/transport"
	"github.com/rs/zerolog"
)

var ErrRequestTimeout = status.NewError(status.RequestTimeout, "request timeout")

// Server serves exactly one request per connection. It's the only place request-scoped
// errors are turned into responses, nothing below is allowed to bring the worker down.
type Server struct {
	resolver   *static.Resolver
	logger     zerolog.Logger
	serverName string
	buffSize   int
}

func NewServer(resolver *static.Resolver, logger zerolog.Logger, serverName string) *Server {
	return &Server{
		resolver:   resolver,
		logger:     logger,
		serverName: serverName,
		buffSize:   512,
	}
}

// Serve receives the request, resolves it and responds, closing the client in the end.
// The returned error is the one the request failed with, even if the client has been
// answered with an error response successfully.
func (s *Server) Serve(client transport.Client) error {
	defer client.Close()

	serializer := http1.NewSerializer(make([]byte, 0, s.buffSize), s.serverName)
	log := s.logger.With().Stringer("remote", client.Remote()).Logger()

	data, err := client.Receive()
	if err != nil {
		var netErr net.Error
		switch {
		case errors.As(err, &netErr) && netErr.Timeout():
			return s.fail(client, serializer, log, proto.HTTP11, false, ErrRequestTimeout)
		case errors.Is(err, transport.ErrRequestTooLarge):
			return s.fail(client, serializer, log, proto.HTTP11, false, err)
		default:
			log.Debug().Err(err).Msg("failed to receive request")
			return err
		}
	}

	if len(data) == 0 {
		// the peer went away without saying anything
		return nil
	}

	request, err := http1.Parse(data)
	if err != nil {
		return s.fail(client, serializer, log, proto.HTTP11, false, err)
	}

	log = log.With().
		Stringer("method", request.Method).
		Str("uri", request.URI).
		Logger()

	response, err := s.resolver.Serve(client, serializer, request)
	switch {
	case errors.Is(err, static.ErrTransfer):
		log.Error().Err(err).Msg("failed to transfer the response")
		return err
	case err != nil:
		return s.fail(
			client, serializer, log, request.Proto.Response(), request.Method == method.HEAD, err,
		)
	}

	log.Debug().
		Uint16("status", uint16(response.Code)).
		Int64("bytes", response.ContentLength).
		Msg("served")

	return nil
}

func (s *Server) fail(
	client transport.Client, serializer *http1.Serializer, log zerolog.Logger,
	protocol proto.Proto, head bool, err error,
) error {
	response := http.Error(err).WithProto(protocol)
	event := log.Warn()
	if response.Code >= status.InternalServerError {
		event = log.Error()
	}

	event.Err(err).Uint16("status", uint16(response.Code)).Msg("request failed")

	if sendErr := client.Send(serializer.Render(response, !head)); sendErr != nil {
		log.Error().Err(sendErr).Msg("failed to send the error response")
		return errors.Join(err, sendErr)
	}

	return err
}
