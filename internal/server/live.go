package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/kabar/internal/article"
	"github.com/ziadkadry99/kabar/internal/filter"
	"github.com/ziadkadry99/kabar/internal/view"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveRequest is the incoming WebSocket message format.
type liveRequest struct {
	Type  string `json:"type"` // "input", "submit", "topic" or "reload"
	Value string `json:"value"`
}

// liveResponse is the outgoing WebSocket message format.
type liveResponse struct {
	Type    string `json:"type"` // "status", "results" or "error"
	Session string `json:"session"`
	HTML    string `json:"html,omitempty"`
	Chips   string `json:"chips,omitempty"`
	Count   int    `json:"count"`
	Topic   string `json:"topic,omitempty"`
	Query   string `json:"query,omitempty"`
	Message string `json:"message,omitempty"`
}

// liveHandlers dispatches client messages by type.
var liveHandlers = map[string]func(ctx context.Context, ls *liveSession, value string){
	"input":  func(_ context.Context, ls *liveSession, v string) { ls.engine.Input(v) },
	"submit": func(_ context.Context, ls *liveSession, v string) { ls.engine.Submit(v) },
	"topic":  func(_ context.Context, ls *liveSession, v string) { ls.engine.SelectTopic(v) },
	"reload": func(ctx context.Context, ls *liveSession, _ string) { ls.load(ctx) },
}

// liveSession is one connected search page with its own filter engine.
type liveSession struct {
	id     string
	conn   *websocket.Conn
	loader view.Loader
	list   *view.ListController
	engine *filter.Engine
	logger *slog.Logger

	writeMu sync.Mutex

	mu       sync.Mutex
	articles []article.Article
	loaded   bool
}

func (s *Server) handleLiveSearch(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("live search: websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	ls := &liveSession{
		id:     uuid.NewString(),
		conn:   conn,
		loader: s.loader,
		list:   s.list,
		logger: s.logger,
	}
	ls.logger = s.logger.With("session", ls.id)
	ls.engine = filter.NewEngine(nil,
		filter.WithDebounce(s.cfg.Debounce),
		filter.WithMatchExcerpt(s.list.FilterOptions().MatchExcerpt),
		filter.WithInitialState(stateFromQuery(r)),
		filter.WithOnChange(ls.push),
	)
	defer ls.engine.Close()

	ctx := r.Context()
	ls.load(ctx)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				ls.logger.Warn("live search: websocket read", "error", err)
			}
			return
		}

		var req liveRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			ls.sendError("invalid message format")
			continue
		}

		handle, ok := liveHandlers[req.Type]
		if !ok {
			ls.sendError("unknown message type: " + req.Type)
			continue
		}
		if req.Type != "reload" && !ls.isLoaded() {
			ls.sendError("articles are not loaded")
			continue
		}
		handle(ctx, ls, req.Value)
	}
}

// load shows the loading state, loads the collection and pushes the first
// result. Failures are reported as an error view with a retry link.
func (ls *liveSession) load(ctx context.Context) {
	state := ls.engine.State()
	ls.sendView("status", view.LoadingView(state))

	articles, err := ls.loader.Load(ctx)
	if err != nil {
		ls.logger.Error("live search load failed", "error", err)
		ls.mu.Lock()
		ls.loaded = false
		ls.mu.Unlock()
		ls.sendView("error", view.FailedView(state, err))
		return
	}

	ls.mu.Lock()
	ls.articles = articles
	ls.loaded = true
	ls.mu.Unlock()
	ls.engine.SetCollection(articles)
}

func (ls *liveSession) isLoaded() bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.loaded
}

func (ls *liveSession) collection() []article.Article {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.articles
}

// push is the engine callback; it may run on the debounce timer goroutine.
func (ls *liveSession) push(res filter.Result) {
	ls.sendView("results", ls.list.Build(ls.collection(), res))
}

func (ls *liveSession) sendView(kind string, v view.ListView) {
	results, err := view.Results(v)
	if err != nil {
		ls.logger.Error("live search render", "error", err)
		ls.sendError("rendering failed")
		return
	}
	resp := liveResponse{
		Type:    kind,
		Session: ls.id,
		HTML:    string(results),
		Count:   v.Count,
		Topic:   v.State.ActiveTopic,
		Query:   v.State.Query,
		Message: v.Message,
	}
	if v.Status != view.StatusLoading && v.Status != view.StatusError {
		chips, err := view.ChipBar(v)
		if err != nil {
			ls.logger.Error("live search render", "error", err)
		}
		resp.Chips = string(chips)
	}
	ls.send(resp)
}

func (ls *liveSession) sendError(message string) {
	ls.send(liveResponse{Type: "error", Session: ls.id, Message: message})
}

func (ls *liveSession) send(resp liveResponse) {
	ls.writeMu.Lock()
	defer ls.writeMu.Unlock()
	ls.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := ls.conn.WriteJSON(resp); err != nil {
		ls.logger.Debug("live search: websocket write", "error", err)
	}
}
