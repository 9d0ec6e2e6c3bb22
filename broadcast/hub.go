package broadcast

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Krishnaraj-06/AttendIQ/models"
)

// Event is one dashboard push message.
type Event struct {
	Kind string `json:"event"`
	Data any    `json:"data"`
}

const (
	EventSessionCreated     = "session_created"
	EventAttendanceRecorded = "attendance_recorded"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Dashboard events carry no capability tokens, so any origin may listen.
		return true
	},
}

type client struct {
	conn      *websocket.Conn
	send      chan Event
	facultyID string // non-empty subscribes to one faculty's room only
}

// Hub fans events out to connected dashboard observers. Delivery is
// best-effort and at-most-once per observer: a slow client drops events
// rather than stalling the scan path, and there is no backlog for observers
// that connect after an event fired.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// HandleDashboard upgrades the connection and streams events until the
// client goes away. A facultyId query parameter joins that faculty's room.
func (h *Hub) HandleDashboard(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade to websocket: %v", err)
		return
	}

	cl := &client{
		conn:      conn,
		send:      make(chan Event, 16),
		facultyID: c.Query("facultyId"),
	}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()

	go h.writeLoop(cl)

	// Reads are only for detecting disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(cl)
}

func (h *Hub) writeLoop(cl *client) {
	for ev := range cl.send {
		cl.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := cl.conn.WriteJSON(ev); err != nil {
			log.Printf("dashboard client disconnected: %v", err)
			h.drop(cl)
			return
		}
	}
	cl.conn.Close()
}

func (h *Hub) drop(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
	}
}

// Broadcast queues the event for every observer listening to facultyID's
// room plus everyone without a room filter. Observers with a full buffer
// miss the event.
func (h *Hub) Broadcast(facultyID string, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		if cl.facultyID != "" && cl.facultyID != facultyID {
			continue
		}
		select {
		case cl.send <- ev:
		default:
		}
	}
}

// Close disconnects all observers.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		delete(h.clients, cl)
		close(cl.send)
	}
}

// SessionCreated and AttendanceRecorded implement the manager's Notifier.

func (h *Hub) SessionCreated(session models.Session) {
	h.Broadcast(session.FacultyID, Event{
		Kind: EventSessionCreated,
		Data: gin.H{
			"sessionId": session.ID,
			"facultyId": session.FacultyID,
			"subject":   session.Subject,
			"room":      session.Room,
			"expiresAt": session.ExpiresAt,
		},
	})
}

func (h *Hub) AttendanceRecorded(session models.Session, student models.Student, status string, ts time.Time) {
	h.Broadcast(session.FacultyID, Event{
		Kind: EventAttendanceRecorded,
		Data: gin.H{
			"sessionId":   session.ID,
			"studentId":   student.StudentID,
			"studentName": student.Name,
			"subject":     session.Subject,
			"status":      status,
			"timestamp":   ts,
		},
	})
}
