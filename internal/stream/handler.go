package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"tugsim/internal/combat"
	"tugsim/internal/config"
	"tugsim/internal/replay"
)

const writeWait = 5 * time.Second

type HandlerConfig struct {
	Catalog *combat.Catalog
	Sim     config.SimConfig
	// StepInterval paces frames. Zero streams as fast as the client reads.
	StepInterval time.Duration
	Logger       *log.Logger
}

// Message is the JSON envelope sent to spectators: one "hello", one
// "frame" per tick including tick 0, then one "result".
type Message struct {
	Type    string              `json:"type"`
	Session string              `json:"session,omitempty"`
	Header  *replay.Header      `json:"header,omitempty"`
	Frame   *replay.Frame       `json:"frame,omitempty"`
	Result  *combat.MatchResult `json:"result,omitempty"`
}

type Handler struct {
	catalog  *combat.Catalog
	sim      config.SimConfig
	interval time.Duration
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewHandler(cfg HandlerConfig) (*Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	catalog := cfg.Catalog
	if catalog == nil {
		var err error
		if catalog, err = combat.DefaultCatalog(); err != nil {
			return nil, err
		}
	}
	if _, err := combat.ResolveConfig(cfg.Sim); err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}
	return &Handler{
		catalog:  catalog,
		sim:      cfg.Sim,
		interval: cfg.StepInterval,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}, nil
}

type matchQuery struct {
	seed        uint32
	left, right string
}

func parseQuery(q url.Values) (matchQuery, error) {
	m := matchQuery{seed: 1, left: q.Get("left"), right: q.Get("right")}
	if m.left == "" || m.right == "" {
		return m, errors.New("left and right races are required")
	}
	if raw := q.Get("seed"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return m, fmt.Errorf("bad seed %q", raw)
		}
		m.seed = uint32(v)
	}
	return m, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) { h.Handle(w, r) }

// Handle runs one match per connection and streams it to the client.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sim, err := combat.New(h.sim, h.catalog)
	if err != nil {
		http.Error(w, "sim unavailable", http.StatusInternalServerError)
		return
	}
	if err := sim.Reset(q.seed, q.left, q.right); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for %s vs %s: %v", q.left, q.right, err)
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	h.logger.Printf("session %s: %s vs %s seed=%d", session, q.left, q.right, q.seed)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func(m Message) error {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		return conn.WriteJSON(m)
	}

	cfg := sim.Config()
	header := replay.Header{
		Seed:        q.seed,
		Left:        q.left,
		Right:       q.right,
		StepMs:      cfg.StepMs,
		ArenaWidth:  cfg.ArenaWidth,
		ArenaHeight: cfg.ArenaHeight,
		CoreRadius:  cfg.CoreRadius,
	}
	if err := send(Message{Type: "hello", Session: session, Header: &header}); err != nil {
		h.logger.Printf("session %s: hello failed: %v", session, err)
		return
	}

	var ticks <-chan time.Time
	if h.interval > 0 {
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for {
		f := replay.Capture(sim)
		if err := send(Message{Type: "frame", Frame: &f}); err != nil {
			h.logger.Printf("session %s: dropped at tick %d: %v", session, f.Tick, err)
			return
		}
		if sim.Finished() {
			break
		}
		if ticks != nil {
			select {
			case <-ctx.Done():
				h.logger.Printf("session %s: client left at tick %d", session, sim.Tick())
				return
			case <-ticks:
			}
		} else if ctx.Err() != nil {
			h.logger.Printf("session %s: client left at tick %d", session, sim.Tick())
			return
		}
		sim.Step()
	}

	res := combat.Summarize(sim, q.seed)
	if err := send(Message{Type: "result", Session: session, Result: &res}); err != nil {
		h.logger.Printf("session %s: result failed: %v", session, err)
		return
	}
	h.logger.Printf("session %s: finished tick=%d winner=%d", session, res.Tick, res.Winner)
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "match finished")
	if err := conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait)); err != nil {
		h.logger.Printf("session %s: close failed: %v", session, err)
	}
}
