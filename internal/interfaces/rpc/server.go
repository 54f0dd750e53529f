package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Server acepta conexiones TCP y atiende una petición JSON terminada en
// newline por conexión: leer, despachar, responder, cerrar. No hay sesión ni
// keep-alive; cada petición corre en su propia goroutine sin estado mutable
// compartido fuera del almacén.
type Server struct {
	cfg     config.RPCConfig
	gateway *Gateway
	log     *logger.Logger

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
}

// NewServer construye el servidor.
func NewServer(cfg config.RPCConfig, gateway *Gateway, log *logger.Logger) *Server {
	return &Server{cfg: cfg, gateway: gateway, log: log}
}

// Serve escucha en la dirección configurada y atiende hasta que ctx se
// cancele o Close sea llamado.
func (s *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	s.log.Info().Str("addr", listener.Addr().String()).Msg("servidor RPC escuchando")

	for {
		conn, err := listener.Accept()
		if err != nil {
			// Close() cierra el listener; Accept devuelve ErrClosed y el
			// loop termina limpio.
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				s.wg.Wait()
				return nil
			}
			s.log.Warn().Err(err).Msg("accept falló")
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, conn)
		}()
	}
}

// Close cierra el listener; las conexiones en vuelo terminan su ciclo.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// Addr devuelve la dirección real de escucha (útil con puerto 0 en tests).
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// handleConn atiende el ciclo petición/respuesta de una conexión. Cualquier
// entrada malformada produce un sobre de error, nunca un cierre abrupto sin
// respuesta.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	reqID := uuid.New().String()
	log := s.log.With().Str("request_id", reqID).Str("remote", conn.RemoteAddr().String()).Logger()

	if s.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}
	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && len(line) == 0 {
		log.Warn().Err(err).Msg("lectura de petición falló")
		return
	}

	var resp Response
	var req Request
	if jsonErr := json.Unmarshal(line, &req); jsonErr != nil {
		log.Warn().Err(jsonErr).Msg("petición malformada")
		resp = NewError("petición malformada: se esperaba JSON")
	} else {
		log.Debug().Str("action", req.Action).Str("entity", req.Entity).Msg("petición recibida")
		resp = s.gateway.Dispatch(ctx, req)
	}

	if s.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}
	out, err := json.Marshal(resp)
	if err != nil {
		log.Error().Err(err).Msg("serializar respuesta falló")
		return
	}
	if _, err := conn.Write(append(out, '\n')); err != nil {
		log.Warn().Err(err).Msg("escritura de respuesta falló")
	}
}
