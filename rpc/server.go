// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc json rpc 服务
package rpc

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/33cn/wager/common/log"
	"github.com/33cn/wager/types"
	"github.com/rs/cors"
)

var rlog = log.New("module", "rpc")

// API rpc 服务依赖的节点接口
type API interface {
	ExecTx(tx *types.Transaction) (*types.ReceiptData, error)
	Query(execer, funcName string, params []byte) (interface{}, error)
	GetTx(hash []byte) (*types.TxResult, error)
}

// HTTPConn adapt HTTP connection to ReadWriteCloser
type HTTPConn struct {
	in  io.Reader
	out io.Writer
}

// Read rewrite the read of http
func (c *HTTPConn) Read(p []byte) (n int, err error) { return c.in.Read(p) }

// Write rewrite the write of http
func (c *HTTPConn) Write(d []byte) (n int, err error) { return c.out.Write(d) }

// Close rewrite the close of http
func (c *HTTPConn) Close() error { return nil }

// JSONRPCServer  a json rpcserver object
type JSONRPCServer struct {
	cfg       *types.RPC
	s         *rpc.Server
	l         net.Listener
	whitelist map[string]bool
}

// NewJSONRPCServer 注册 Chain33 服务
func NewJSONRPCServer(cfg *types.RPC, api API) *JSONRPCServer {
	server := rpc.NewServer()
	if err := server.Register(&Chain33{api: api}); err != nil {
		panic(err)
	}
	whitelist := make(map[string]bool)
	for _, ip := range cfg.Whitelist {
		whitelist[ip] = true
	}
	return &JSONRPCServer{cfg: cfg, s: server, whitelist: whitelist}
}

func (s *JSONRPCServer) checkIPWhitelist(addr string) bool {
	//回环网络直接允许
	ip := net.ParseIP(addr)
	if ip.IsLoopback() {
		return true
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		addr = ipv4.String()
	}
	if s.whitelist["*"] || s.whitelist["0.0.0.0"] {
		return true
	}
	return s.whitelist[addr]
}

// Handler http 入口, 每个请求使用一个 json rpc codec
func (s *JSONRPCServer) Handler() http.Handler {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			writeError(w, r, 0, "Can't get remote ip!")
			return
		}
		if !s.checkIPWhitelist(ip) {
			writeError(w, r, 0, fmt.Sprintf("The %s Address is not authorized!", ip))
			return
		}
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		data, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, r, 0, "Can't get request body!")
			return
		}
		serverCodec := jsonrpc.NewServerCodec(&HTTPConn{in: bytes.NewReader(data), out: w})
		w.Header().Set("Content-type", "application/json")
		w.WriteHeader(200)
		if err := s.s.ServeRequest(serverCodec); err != nil {
			rlog.Debug("Error while serving JSON request", "err", err)
		}
	})
	co := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CorsOrigins,
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return co.Handler(handler)
}

// Listen 开始监听, 返回实际的端口
func (s *JSONRPCServer) Listen() (int, error) {
	listener, err := net.Listen("tcp", s.cfg.JrpcBindAddr)
	if err != nil {
		return 0, err
	}
	s.l = listener
	rlog.Info("json rpc listen", "addr", listener.Addr().String())
	go func() {
		if err := http.Serve(listener, s.Handler()); err != nil {
			rlog.Info("json rpc server stopped", "err", err)
		}
	}()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Close json rpcserver close
func (s *JSONRPCServer) Close() {
	if s.l != nil {
		if err := s.l.Close(); err != nil {
			rlog.Error("JSONRPCServer close", "err", err)
		}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, id uint64, errstr string) {
	w.Header().Set("Content-type", "application/json")
	//错误的请求也返回 200
	w.WriteHeader(200)
	_, err := w.Write([]byte(fmt.Sprintf(`{"id":%d,"result":null,"error":%q}`, id, errstr)))
	if err != nil {
		rlog.Debug("Write", "err", err)
	}
}
