package grpcserver

import (
	"errors"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server — только health-сервис; статус выставляется снаружи через Health.
type Server struct {
	addr   string
	lis    net.Listener
	Server *grpc.Server
	Health *health.Server
}

func New(addr string) *Server {
	s := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	return &Server{
		addr:   addr,
		Server: s,
		Health: hs,
	}
}

// Listen открывает порт заранее, чтобы ошибка адреса всплыла до Serve.
func (s *Server) Listen() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.lis = lis
	return nil
}

// Addr: фактический адрес после Listen.
func (s *Server) Addr() string {
	if s.lis == nil {
		return s.addr
	}
	return s.lis.Addr().String()
}

func (s *Server) Start() error {
	if s.lis == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	err := s.Server.Serve(s.lis)
	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

// Stop переводит health в NOT_SERVING и останавливает сервер.
func (s *Server) Stop() {
	s.Health.Shutdown()
	s.Server.GracefulStop()
}
