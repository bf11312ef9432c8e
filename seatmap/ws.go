package seatmap

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// Key identifies one showtime's seat map.
func Key(movieID int, date, time, address string) string {
	return fmt.Sprintf("%d_%s_%s_%s", movieID, date, time, address)
}

// HandleWS subscribes the client to seat-map updates for one showtime. The
// client supplies the showtime via the same query parameters as the seat
// query: movieID, date, time, address.
func HandleWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	key := q.Get("movieID") + "_" + q.Get("date") + "_" + q.Get("time") + "_" + q.Get("address")

	// Upgrade writes its own error response on failure.
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	mu.Lock()
	subscribers[key] = append(subscribers[key], conn)
	mu.Unlock()

	for {
		// Keeps the connection alive until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	mu.Lock()
	conns := subscribers[key]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[key] = newList
	mu.Unlock()

	conn.Close()
}

// Broadcast pushes val to every subscriber of the showtime key, dropping
// dead connections.
func Broadcast(key string, val []byte) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[key]
	newList := conns[:0]

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, val); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[key] = newList
}
