// Package web is the browser front-end: it runs the machine
// server side, streams frames to a browser over a websocket
// and feeds key events back into the joypad.
package web

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/image/draw"

	"github.com/thelolagemann/gameboy/internal/gameboy"
	"github.com/thelolagemann/gameboy/internal/joypad"
	"github.com/thelolagemann/gameboy/internal/ppu"
	"github.com/thelolagemann/gameboy/pkg/log"
)

const page = `<!DOCTYPE html>
<html>
<head><title>gameboy</title><style>
body { background: #222; display: flex; justify-content: center; }
img { image-rendering: pixelated; margin-top: 2em; }
</style></head>
<body>
<img id="screen" width="480" height="432">
<script>
const img = document.getElementById("screen");
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.binaryType = "blob";
ws.onmessage = e => {
	const url = URL.createObjectURL(e.data);
	img.onload = () => URL.revokeObjectURL(url);
	img.src = url;
};
const keys = {"z": 0, "x": 1, "Backspace": 2, "Enter": 3,
	"ArrowRight": 4, "ArrowLeft": 5, "ArrowUp": 6, "ArrowDown": 7};
addEventListener("keydown", e => { if (e.key in keys) ws.send("d" + keys[e.key]); });
addEventListener("keyup", e => { if (e.key in keys) ws.send("u" + keys[e.key]); });
</script>
</body>
</html>`

// Server streams a machine to a single browser at a time.
type Server struct {
	gb    *gameboy.GameBoy
	log   log.Logger
	scale int

	upgrader websocket.Upgrader

	// one player at a time: the machine is a single sequential
	// state machine
	mu sync.Mutex
}

// NewServer returns a Server streaming the given machine,
// scaling frames up by the given factor.
func NewServer(gb *gameboy.GameBoy, scale int, logger log.Logger) *Server {
	return &Server{
		gb:    gb,
		log:   logger,
		scale: scale,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ListenAndServe serves the player page and the frame stream
// on the given address.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	})
	mux.HandleFunc("/ws", s.serveWS)
	s.log.Infof("serving on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("upgrading connection: %v", err)
		return
	}
	defer conn.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Infof("player connected from %s", r.RemoteAddr)

	// key events are routed through a channel and applied here,
	// so all machine state is touched by this goroutine alone
	events := make(chan keyEvent, 16)
	done := make(chan struct{})
	go s.readKeys(conn, events, done)

	interval := float64(time.Second) / gameboy.FrameRate
	ticker := time.NewTicker(time.Duration(interval))
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case e := <-events:
			s.applyKey(e)
		case <-ticker.C:
			if err := s.gb.Frame(); err != nil {
				s.log.Errorf("machine fault: %v", err)
				return
			}
			if err := conn.WriteMessage(websocket.BinaryMessage, s.encodeFrame()); err != nil {
				return
			}
		}
	}
}

// keyEvent is a decoded key message from the browser.
type keyEvent struct {
	button joypad.Button
	press  bool
}

// parseKeyMessage decodes a key message: "d<n>" for a press of
// button n, "u<n>" for a release. Anything else, including
// button numbers outside the joypad, is dropped.
func parseKeyMessage(message []byte) (keyEvent, bool) {
	if len(message) < 2 {
		return keyEvent{}, false
	}
	button, err := strconv.Atoi(string(message[1:]))
	if err != nil || button < 0 || button > int(joypad.ButtonDown) {
		return keyEvent{}, false
	}
	switch message[0] {
	case 'd':
		return keyEvent{button: joypad.Button(button), press: true}, true
	case 'u':
		return keyEvent{button: joypad.Button(button)}, true
	}
	return keyEvent{}, false
}

// applyKey feeds one key event into the joypad.
func (s *Server) applyKey(e keyEvent) {
	if e.press {
		s.gb.Press(e.button)
	} else {
		s.gb.Release(e.button)
	}
}

// readKeys consumes key messages from the browser and hands
// them to the frame loop. Events that arrive faster than the
// loop drains them are dropped.
func (s *Server) readKeys(conn *websocket.Conn, events chan<- keyEvent, done chan struct{}) {
	defer close(done)
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		e, ok := parseKeyMessage(message)
		if !ok {
			continue
		}
		select {
		case events <- e:
		default:
		}
	}
}

// encodeFrame scales the current frame and encodes it as PNG.
func (s *Server) encodeFrame() []byte {
	frame := s.gb.Framebuffer()
	src := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := 0; y < ppu.ScreenHeight; y++ {
		for x := 0; x < ppu.ScreenWidth; x++ {
			src.SetRGBA(x, y, color.RGBA{
				R: frame[y][x][0],
				G: frame[y][x][1],
				B: frame[y][x][2],
				A: 0xFF,
			})
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth*s.scale, ppu.ScreenHeight*s.scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		s.log.Errorf("encoding frame: %v", err)
	}
	return buf.Bytes()
}
