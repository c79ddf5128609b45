package bot

import (
	"log"
	"sync"
	"time"
)

// Broadcaster calls tick on a fixed interval until stopped. It can be started
// at most once; a missed tick is not caught up.
type Broadcaster struct {
	interval time.Duration
	tick     func()

	mu      sync.Mutex
	running bool
	stopped bool
	stop    chan struct{}
	done    chan struct{}
}

func NewBroadcaster(interval time.Duration, tick func()) *Broadcaster {
	return &Broadcaster{
		interval: interval,
		tick:     tick,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start reports whether this call started the loop.
func (b *Broadcaster) Start() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running || b.stopped {
		return false
	}
	b.running = true
	go b.run()
	return true
}

// Stop ends the loop and waits for an in-flight tick to finish.
func (b *Broadcaster) Stop() {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.stopped = true
	wasRunning := b.running
	close(b.stop)
	b.mu.Unlock()

	if wasRunning {
		<-b.done
	}
}

func (b *Broadcaster) run() {
	defer close(b.done)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.safeTick()
		case <-b.stop:
			return
		}
	}
}

func (b *Broadcaster) safeTick() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Broadcast] Recovered from panic: %v", r)
		}
	}()
	b.tick()
}

func (h *Handler) broadcastTick() {
	s := h.currentSession()
	if s == nil {
		log.Println("[Broadcast] Session not set, skipping")
		return
	}
	h.BroadcastQuestions(s)
}

// BroadcastQuestions posts one random question to the log channel of every
// connected guild and returns how many were sent.
func (h *Handler) BroadcastQuestions(s Session) int {
	if h.questions.Count() == 0 {
		return 0
	}

	sent := 0
	for _, g := range s.Guilds() {
		channelID, ok := h.logChannel(s, g.ID)
		if !ok {
			continue
		}
		q, ok := h.questions.PickRandom()
		if !ok {
			return sent
		}
		if _, err := s.ChannelMessageSend(channelID, questionMessage(q)); err != nil {
			log.Printf("[Broadcast] Error sending question to guild %s: %v", g.ID, err)
			continue
		}
		sent++
	}
	return sent
}
