// Package serve implements the "serve" witnessctl subcommand: an
// optional Prometheus metrics endpoint counting authorize/deny
// decisions by clause, and an optional websocket endpoint that streams
// those decisions live, the same ambient-operations shell the teacher
// wraps every long-running service in (see pkg/consensus/prometheus.go
// and the rpc server's subscription feed in the teacher).
package serve

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var decisionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Help:      "Witness authorization decisions by clause and outcome",
		Name:      "decisions_total",
		Namespace: "witnessctl",
	},
	[]string{"clause", "outcome"})

func init() {
	prometheus.MustRegister(decisionsTotal)
}

// RecordDecision increments the decisions_total counter for clause
// ("global", "calledbyentry", "customcontracts", "customgroups",
// "rules", "self") and outcome ("allow", "deny").
func RecordDecision(clause, outcome string) {
	decisionsTotal.WithLabelValues(clause, outcome).Inc()
}

// defaultHub is the process-wide decision feed. verifycmd pushes into it
// on every evaluated fixture; the "serve" subcommand only decides
// whether anyone outside the process gets to listen in, via the /metrics
// and /decisions listeners started below.
var defaultHub = newHub(zap.NewNop())

// Broadcast pushes msg to every websocket client currently connected to
// the decision feed; a no-op when "serve" was never started in this
// process.
func Broadcast(msg []byte) {
	defaultHub.Broadcast(msg)
}

// Command returns the "serve" subcommand.
func Command(log *zap.Logger) cli.Command {
	return cli.Command{
		Name:  "serve",
		Usage: "expose a metrics endpoint and a live decision feed",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "metrics", Value: "", Usage: "address to serve /metrics on, e.g. :2112 (disabled if empty)"},
			cli.StringFlag{Name: "ws", Value: "", Usage: "address to serve the decision feed websocket on, e.g. :2113 (disabled if empty)"},
		},
		Action: func(c *cli.Context) error {
			return run(log, c.String("metrics"), c.String("ws"))
		},
	}
}

func run(log *zap.Logger, metricsAddr, wsAddr string) error {
	var wg sync.WaitGroup
	hub := defaultHub
	hub.log = log

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info("metrics endpoint listening", zap.String("addr", metricsAddr))
			if err := http.ListenAndServe(metricsAddr, mux); err != nil { //nolint:gosec
				log.Error("metrics endpoint stopped", zap.Error(err))
			}
		}()
	}

	if wsAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/decisions", hub.serveWS)
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info("decision feed listening", zap.String("addr", wsAddr))
			if err := http.ListenAndServe(wsAddr, mux); err != nil { //nolint:gosec
				log.Error("decision feed stopped", zap.Error(err))
			}
		}()
	}

	if metricsAddr == "" && wsAddr == "" {
		log.Warn("serve called with neither --metrics nor --ws set, nothing to do")
		return nil
	}
	wg.Wait()
	return nil
}

// hub fans a single decision stream out to every connected websocket
// client, dropping slow readers rather than blocking the broadcaster.
type hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

func newHub(log *zap.Logger) *hub {
	return &hub{
		log:     log,
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

func (h *hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	out := make(chan []byte, 16)
	h.mu.Lock()
	h.clients[conn] = out
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for msg := range out {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Broadcast pushes msg to every connected client, dropping it for any
// client whose outbound buffer is full.
func (h *hub) Broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, out := range h.clients {
		select {
		case out <- msg:
		default:
		}
	}
}
