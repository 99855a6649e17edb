// Package web is a headless display backend: it runs the emulator
// without any native window and streams each completed frame to every
// connected browser over a websocket, reading button press/release
// bytes back the same way. Unlike the teacher's web driver this is a
// single-player broadcast hub with no frame compression, patching, or
// player-handoff protocol — spec.md has no notion of multiplayer, so
// none of that machinery has anywhere to attach.
package web

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dmgcore/dmgcore/internal/gameboy"
	"github.com/dmgcore/dmgcore/internal/joypad"
	"github.com/dmgcore/dmgcore/internal/ppu"
	"github.com/dmgcore/dmgcore/pkg/display"
)

const frameBytes = ppu.ScreenWidth * ppu.ScreenHeight * 3

// wire protocol read from the browser: one byte, press (bit 7 set) or
// release, with the button index in bits 2-0 matching joypad.Button's
// bit position.
const pressBit = 0x80

var buttonByIndex = [8]joypad.Button{
	joypad.ButtonA, joypad.ButtonB, joypad.ButtonSelect, joypad.ButtonStart,
	joypad.ButtonRight, joypad.ButtonLeft, joypad.ButtonUp, joypad.ButtonDown,
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: frameBytes + 16,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

func newHub() *hub {
	return &hub{clients: make(map[*websocket.Conn]chan []byte)}
}

func (h *hub) broadcast(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, send := range h.clients {
		select {
		case send <- frame:
		default: // slow client, drop this frame rather than block the emulator
		}
	}
}

func (h *hub) add(conn *websocket.Conn) chan []byte {
	send := make(chan []byte, 2)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()
	return send
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if send, ok := h.clients[conn]; ok {
		close(send)
		delete(h.clients, conn)
	}
	h.mu.Unlock()
}

type driver struct {
	addr string
	hub  *hub
	srv  *http.Server
}

func init() {
	d := &driver{addr: ":8090", hub: newHub()}
	display.Install("web", d, []display.Option{
		{Name: "addr", Default: ":8090", Value: &d.addr, Type: "string", Description: "address the web display backend listens on"},
	})
}

func (d *driver) Start(gb *gameboy.GameBoy) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		d.handleClient(gb, w, r)
	})
	d.srv = &http.Server{Addr: d.addr, Handler: mux}

	errc := make(chan error, 1)
	go func() {
		errc <- d.srv.ListenAndServe()
	}()

	for {
		select {
		case err := <-errc:
			if err == http.ErrServerClosed {
				return nil
			}
			return err
		default:
		}
		frame := gb.RunFrame()
		d.hub.broadcast(packFrame(frame))
	}
}

func (d *driver) handleClient(gb *gameboy.GameBoy, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	defer d.hub.remove(conn)

	send := d.hub.add(conn)

	go func() {
		for frame := range send {
			if conn.WriteMessage(websocket.BinaryMessage, frame) != nil {
				return
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil || len(msg) == 0 {
			return
		}
		idx := msg[0] & 0x07
		button := buttonByIndex[idx]
		if msg[0]&pressBit != 0 {
			gb.KeyDown(button)
		} else {
			gb.KeyUp(button)
		}
	}
}

func packFrame(frame *[ppu.ScreenWidth * ppu.ScreenHeight][3]uint8) []byte {
	out := make([]byte, 0, frameBytes)
	for _, rgb := range frame {
		out = append(out, rgb[0], rgb[1], rgb[2])
	}
	return out
}

func (d *driver) Stop() error {
	if d.srv != nil {
		return d.srv.Close()
	}
	return nil
}
