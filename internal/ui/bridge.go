package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Bridge forwards events from background goroutines (API redirects, toast
// transitions, poller refreshes) into the running Bubble Tea program. Events
// sent before the program starts are held until it attaches, except redraws
// which are dropped.
type Bridge struct {
	mu      sync.Mutex
	program *tea.Program
	pending []tea.Msg
}

// NewBridge returns a detached bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Navigate requests a route change. It implements hurricane.Navigator.
func (b *Bridge) Navigate(target string) {
	b.send(navigateMsg{target: target}, true)
}

// Redraw asks the program to re-read the store.
func (b *Bridge) Redraw() {
	b.send(redrawMsg{}, false)
}

func (b *Bridge) attach(p *tea.Program) {
	b.mu.Lock()
	b.program = p
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, msg := range pending {
		go p.Send(msg)
	}
}

func (b *Bridge) detach() {
	b.mu.Lock()
	b.program = nil
	b.mu.Unlock()
}

// send never blocks: callers include the program's own Update loop.
func (b *Bridge) send(msg tea.Msg, keep bool) {
	if b == nil {
		return
	}
	b.mu.Lock()
	p := b.program
	if p == nil && keep {
		b.pending = append(b.pending, msg)
	}
	b.mu.Unlock()
	if p != nil {
		go p.Send(msg)
	}
}
