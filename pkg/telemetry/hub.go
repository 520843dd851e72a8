package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// clientBuffer 每个客户端的发送缓冲，满了之后丢弃新快照
	clientBuffer = 64
	// writeTimeout 单次写超时
	writeTimeout = 2 * time.Second
)

// Hub 快照广播中心
//
// 提供两个 HTTP 入口：
//   - /ws            websocket，连接时先推送每个轮播的最新快照，之后实时推送
//   - /api/carousels JSON 数组，每个轮播的最新快照（按名称排序）
type Hub struct {
	mu       sync.Mutex
	latest   map[string]Snapshot
	clients  map[*hubClient]struct{}
	closed   bool
	upgrader websocket.Upgrader
}

type hubClient struct {
	conn *websocket.Conn
	send chan Snapshot
}

// NewHub 创建广播中心
func NewHub() *Hub {
	return &Hub{
		latest:  make(map[string]Snapshot),
		clients: make(map[*hubClient]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 只读的本地调试数据，允许任意来源
			},
		},
	}
}

// Publish 记录最新快照并推送给所有客户端（非阻塞）
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.latest[s.Carousel] = s
	for c := range h.clients {
		select {
		case c.send <- s:
		default:
			// 慢客户端丢弃快照，下一次推送会带上最新状态
		}
	}
}

// Latest 返回每个轮播的最新快照（按名称排序）
func (h *Hub) Latest() []Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latestLocked()
}

func (h *Hub) latestLocked() []Snapshot {
	out := make([]Snapshot, 0, len(h.latest))
	for _, s := range h.latest {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Carousel < out[j].Carousel })
	return out
}

// ClientCount 返回当前 websocket 客户端数量
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Handler 返回 HTTP 处理器
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/api/carousels", h.serveSnapshots)
	return mux
}

func (h *Hub) serveSnapshots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Latest()); err != nil {
		log.Printf("[Telemetry] Failed to encode snapshots: %v", err)
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Telemetry] websocket upgrade error: %v", err)
		return
	}

	c := &hubClient{conn: conn, send: make(chan Snapshot, clientBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	for _, s := range h.latestLocked() {
		select {
		case c.send <- s:
		default:
		}
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	log.Printf("[Telemetry] websocket client connected: %s", r.RemoteAddr)

	go h.writeLoop(c)

	// 读循环只用于检测断开，客户端消息被忽略
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.removeClient(c)
	log.Printf("[Telemetry] websocket client disconnected: %s", r.RemoteAddr)
}

func (h *Hub) writeLoop(c *hubClient) {
	defer c.conn.Close()
	for s := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(s); err != nil {
			log.Printf("[Telemetry] websocket write error: %v", err)
			h.removeClient(c)
			return
		}
	}
}

// removeClient 注销客户端并关闭其发送通道（可重复调用）
func (h *Hub) removeClient(c *hubClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Run 在 addr 上提供 HTTP 服务，直到 ctx 取消
//
// 返回:
//   - error: 监听失败时返回错误，ctx 取消导致的关闭返回 nil
func (h *Hub) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		h.Close()
	}()

	log.Printf("[Telemetry] Serving snapshots on %s (/ws, /api/carousels)", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close 断开所有客户端，之后的 Publish 被忽略
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
