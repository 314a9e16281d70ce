package server

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mathematicalguy/audio-antenna-Simulator/internal/field"
	"github.com/mathematicalguy/audio-antenna-Simulator/internal/playback"
)

// streamLoop is the length of the looping clock behind the field stream.
const streamLoop = 60.0

const streamWriteTimeout = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// latticeMessage is sent once when a stream opens.
type latticeMessage struct {
	Type   string    `json:"type"`
	Points []float32 `json:"points"`
}

// fieldMessage carries the vectors for one tick, flattened as x, y, z
// triples in lattice order.
type fieldMessage struct {
	Type    string    `json:"type"`
	Time    float64   `json:"time"`
	Vectors []float32 `json:"vectors"`
}

// handleFieldStream pushes live field vectors to a websocket client at the
// configured rate. Query parameters frequency and amplitude override the
// defaults.
func (s *Server) handleFieldStream(w http.ResponseWriter, r *http.Request) {
	params := field.DefaultParams()
	frequency := queryFloat(r, "frequency", params.Frequency.Value)
	amplitude := queryFloat(r, "amplitude", params.MaxCurrent.Value)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()
	log.Printf("Field stream opened (frequency %.2f, amplitude %.2f)", frequency, amplitude)

	sampler := field.NewSampler(field.DefaultLattice(), nil)
	pts := sampler.Points()
	flat := make([]float32, 0, len(pts)*3)
	for _, p := range pts {
		flat = append(flat, float32(p.X), float32(p.Y), float32(p.Z))
	}
	if err := conn.WriteJSON(latticeMessage{Type: "lattice", Points: flat}); err != nil {
		log.Printf("WebSocket write error: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	vecs := make([]float32, len(pts)*3)
	tr := playback.New(streamLoop,
		playback.WithFPS(s.cfg.StreamFPS),
		playback.OnTime(func(t float64) {
			if err := sampler.Update(t, frequency, amplitude); err != nil {
				log.Printf("Field update error: %v", err)
			}
			for i, v := range sampler.Vectors() {
				vecs[i*3], vecs[i*3+1], vecs[i*3+2] = float32(v.X), float32(v.Y), float32(v.Z)
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteJSON(fieldMessage{Type: "field", Time: t, Vectors: vecs}); err != nil {
				cancel()
			}
		}),
	)
	handle := tr.Play()
	defer handle.Cancel()

	// The read loop only notices the client going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	playback.RunTimer(ctx, tr)
	log.Println("Field stream closed")
}

func queryFloat(r *http.Request, key string, def float64) float64 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
