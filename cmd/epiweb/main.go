// Command epiweb runs the simulation and streams per-day stats snapshots to
// connected WebSocket clients, grounded on the Harrizontal dispatchserver
// teacher's cmd/dsweb/main.go server.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pquerna/ffjson/ffjson"

	"github.com/harrizontal/epidemicsim/epidemic"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// DaySnapshot is the payload broadcast to every connected client once per
// simulated day.
type DaySnapshot struct {
	Day       int     `json:"day"`
	LiveCount int     `json:"live_count"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

type broadcaster struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newBroadcaster() *broadcaster {
	return &broadcaster{clients: make(map[*websocket.Conn]bool)}
}

func (b *broadcaster) add(c *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[c] = true
}

func (b *broadcaster) remove(c *websocket.Conn) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.clients, c)
	c.Close()
}

func (b *broadcaster) send(snap DaySnapshot) {
	payload, err := ffjson.Marshal(snap)
	if err != nil {
		log.Println("[epiweb] marshal error:", err)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Println("[epiweb] write error:", err)
		}
	}
}

func (b *broadcaster) wsEndpoint(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[epiweb] upgrade error:", err)
		return
	}
	log.Println("[epiweb] client connected")
	b.add(ws)
}

func homePage(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintf(w, "epiweb")
}

func main() {
	addr := flag.String("addr", ":8089", "HTTP listen address")
	numAgents := flag.Int("agents", 10000, "number of synthetic agents")
	gridSize := flag.Int("grid", 32, "grid side length in cells")
	dayInterval := flag.Duration("interval", time.Second, "wall-clock time between simulated days")
	seed := flag.Int64("seed", 42, "base RNG seed")
	flag.Parse()

	loader := epidemic.NewSyntheticLoader(*numAgents, *gridSize, 4, rand.New(rand.NewSource(*seed)))
	disease := epidemic.DefaultDiseaseParams("covid")
	disease.NumInitialCases = 10
	params := []epidemic.DiseaseParams{disease}

	sim, err := epidemic.NewSimulation(loader, params, -100.0, 30.0, 0.01, 0.01, *gridSize, *gridSize, *seed)
	if err != nil {
		log.Fatalf("[epiweb] init failed: %v", err)
	}

	b := newBroadcaster()
	http.HandleFunc("/", homePage)
	http.HandleFunc("/ws", b.wsEndpoint)
	go func() {
		log.Println("[epiweb] listening on", *addr)
		log.Fatal(http.ListenAndServe(*addr, nil))
	}()

	day := 0
	for {
		start := time.Now()
		sim.Step()
		day++
		b.send(DaySnapshot{Day: day, LiveCount: sim.TotalLiveAgents(), ElapsedMs: float64(time.Since(start).Milliseconds())})
		time.Sleep(*dayInterval)
	}
}
