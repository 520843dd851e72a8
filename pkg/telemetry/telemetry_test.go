package telemetry

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/decker502/showreel/pkg/carousel"
)

func snap(name string, offset float64) Snapshot {
	return Snapshot{Carousel: name, Mode: "auto", PauseReason: "none", Offset: offset, ActiveItem: -1}
}

func TestFromCarousel(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := FromCarousel(carousel.Snapshot{
		Name:        "projects",
		Mode:        carousel.ModePaused,
		PauseReason: carousel.PauseItem,
		Offset:      12.5,
		ActiveItem:  2,
		TotalWidth:  1320,
		At:          at,
	})

	if s.Carousel != "projects" || s.Mode != "paused" || s.PauseReason != "item" {
		t.Errorf("unexpected snapshot %+v", s)
	}
	if s.Offset != 12.5 || s.ActiveItem != 2 || s.TotalWidth != 1320 || !s.Timestamp.Equal(at) {
		t.Errorf("values not copied: %+v", s)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"carousel":"projects"`, `"pauseReason":"item"`, `"activeItem":2`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("json %s missing %s", data, key)
		}
	}
}

func TestMultiSink(t *testing.T) {
	var got []string
	a := SinkFunc(func(s Snapshot) { got = append(got, "a:"+s.Carousel) })
	b := SinkFunc(func(s Snapshot) { got = append(got, "b:"+s.Carousel) })

	MultiSink{a, nil, b}.Publish(snap("partners", 0))

	if len(got) != 2 || got[0] != "a:partners" || got[1] != "b:partners" {
		t.Errorf("unexpected fan-out %v", got)
	}
}

func TestHub_SnapshotsEndpoint(t *testing.T) {
	hub := NewHub()
	hub.Publish(snap("projects", 10))
	hub.Publish(snap("partners", 5))
	hub.Publish(snap("projects", 20))

	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/carousels")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got []Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 carousels, got %d", len(got))
	}
	if got[0].Carousel != "partners" || got[1].Carousel != "projects" || got[1].Offset != 20 {
		t.Errorf("expected latest snapshots sorted by name, got %+v", got)
	}

	post, err := http.Post(srv.URL+"/api/carousels", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	post.Body.Close()
	if post.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST should be rejected, got %d", post.StatusCode)
	}
}

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readSnapshot(t *testing.T, conn *websocket.Conn) Snapshot {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var s Snapshot
	if err := conn.ReadJSON(&s); err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	return s
}

func TestHub_WebsocketBroadcast(t *testing.T) {
	hub := NewHub()
	hub.Publish(snap("projects", 1))

	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dialHub(t, srv)
	defer conn.Close()
	waitForClients(t, hub, 1)

	// 连接时先收到最新快照
	if s := readSnapshot(t, conn); s.Carousel != "projects" || s.Offset != 1 {
		t.Errorf("expected initial snapshot, got %+v", s)
	}

	hub.Publish(snap("partners", 42))
	if s := readSnapshot(t, conn); s.Carousel != "partners" || s.Offset != 42 {
		t.Errorf("expected broadcast snapshot, got %+v", s)
	}
}

func TestHub_ClientDisconnect(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dialHub(t, srv)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)

	// 没有客户端时发布不应阻塞
	hub.Publish(snap("projects", 3))
	if len(hub.Latest()) != 1 {
		t.Error("latest snapshot should still be recorded")
	}
}

func TestHub_Close(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dialHub(t, srv)
	defer conn.Close()
	waitForClients(t, hub, 1)

	hub.Close()
	hub.Close()
	if hub.ClientCount() != 0 {
		t.Error("Close should drop all clients")
	}

	hub.Publish(snap("projects", 9))
	if len(hub.Latest()) != 0 {
		t.Error("Publish after Close should be ignored")
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection should be closed by the hub")
	}
}

// ========== MQTT ==========

type doneToken struct {
	err error
}

func (t doneToken) Wait() bool                       { return true }
func (t doneToken) WaitTimeout(_ time.Duration) bool { return true }
func (t doneToken) Error() error                     { return t.err }
func (t doneToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type publishedMessage struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// mockMQTTClient 只实现发布者用到的方法
type mockMQTTClient struct {
	mqtt.Client

	mu           sync.Mutex
	published    []publishedMessage
	disconnected bool
}

func (m *mockMQTTClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, publishedMessage{topic, qos, retained, payload.([]byte)})
	return doneToken{}
}

func (m *mockMQTTClient) Disconnect(quiesce uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disconnected = true
}

func TestMQTTPublisher_Publish(t *testing.T) {
	client := &mockMQTTClient{}
	pub := NewMQTTPublisherWithClient(client, "")

	if got := pub.Topic("projects"); got != "showreel/carousel/projects" {
		t.Errorf("unexpected topic %q", got)
	}

	pub.Publish(snap("projects", 7.5))

	client.mu.Lock()
	defer client.mu.Unlock()
	if len(client.published) != 1 {
		t.Fatalf("expected 1 message, got %d", len(client.published))
	}
	msg := client.published[0]
	if msg.topic != "showreel/carousel/projects" || msg.qos != 0 || msg.retained {
		t.Errorf("unexpected publish %+v", msg)
	}
	var decoded Snapshot
	if err := json.Unmarshal(msg.payload, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Offset != 7.5 || decoded.Carousel != "projects" {
		t.Errorf("unexpected payload %+v", decoded)
	}
}

func TestMQTTPublisher_CustomPrefixAndClose(t *testing.T) {
	client := &mockMQTTClient{}
	pub := NewMQTTPublisherWithClient(client, "lobby/screens")

	if got := pub.Topic("partners"); got != "lobby/screens/partners" {
		t.Errorf("unexpected topic %q", got)
	}

	pub.Close()
	client.mu.Lock()
	defer client.mu.Unlock()
	if !client.disconnected {
		t.Error("Close should disconnect the client")
	}
}
