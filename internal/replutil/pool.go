package replutil

import (
	"net"
	"sync"
	"time"
)

// getAckFrame is the literal wire bytes for REPLCONF GETACK *.
var getAckFrame = []byte("*3\r\n$8\r\nREPLCONF\r\n$6\r\nGETACK\r\n$1\r\n*\r\n")

// AckThrottle is the minimum interval between two outstanding GETACK
// requests to the same replica.
const AckThrottle = 200 * time.Millisecond

// WaitPollInterval is how often WAIT rechecks acked_count while blocked.
const WaitPollInterval = 20 * time.Millisecond

// replicaEntry is one pool member: the socket plus ack bookkeeping. uid is
// the follower's "host:port" as reported by its REPLCONF listening-port,
// the identity spec.md's data model designates as load-bearing.
type replicaEntry struct {
	conn               net.Conn
	lastAckOffset      int64
	awaitingAckSinceMs int64 // unix ms, 0 means not currently awaiting
}

// Pool tracks the sockets of connected replicas on the master side.
type Pool struct {
	mu      sync.Mutex
	entries map[string]*replicaEntry
}

// NewPool creates an empty replica pool.
func NewPool() *Pool {
	return &Pool{entries: make(map[string]*replicaEntry)}
}

// Add registers a replica connection under uid. Re-adding the same uid
// replaces the previous entry without closing it (the caller is
// responsible for not double-registering a live socket).
func (p *Pool) Add(uid string, conn net.Conn) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[uid] = &replicaEntry{conn: conn}
}

// Remove deletes uid from the pool and closes its socket. Idempotent.
func (p *Pool) Remove(uid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.entries[uid]; ok {
		e.conn.Close()
		delete(p.entries, uid)
	}
}

// Len reports the number of registered replicas.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Broadcast sends payload to every registered replica. A socket write
// error removes and closes that entry. Returns the count of successful
// sends.
func (p *Pool) Broadcast(payload []byte) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	success := 0
	for uid, e := range p.entries {
		if _, err := e.conn.Write(payload); err != nil {
			e.conn.Close()
			delete(p.entries, uid)
			continue
		}
		success++
	}
	return success
}

// RequestAcks sends REPLCONF GETACK * to every replica whose last
// acknowledged offset is behind minOffset, throttled to at most one
// in-flight GETACK per AckThrottle window per replica.
func (p *Pool) RequestAcks(minOffset int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := nowMs()
	for uid, e := range p.entries {
		if e.lastAckOffset >= minOffset {
			continue
		}
		if e.awaitingAckSinceMs != 0 && now-e.awaitingAckSinceMs < AckThrottle.Milliseconds() {
			continue
		}
		if _, err := e.conn.Write(getAckFrame); err != nil {
			e.conn.Close()
			delete(p.entries, uid)
			continue
		}
		e.awaitingAckSinceMs = now
	}
}

// UpdateAck records a REPLCONF ACK from replica uid.
func (p *Pool) UpdateAck(uid string, offset int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.entries[uid]; ok {
		e.lastAckOffset = offset
		e.awaitingAckSinceMs = 0
	}
}

// AckedCount returns how many replicas have last_ack_offset >= minOffset.
func (p *Pool) AckedCount(minOffset int64) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, e := range p.entries {
		if e.lastAckOffset >= minOffset {
			count++
		}
	}
	return count
}

// Wait blocks the caller until either acked_count(minOffset) reaches
// numReplicas, or timeout elapses, issuing throttled GETACK requests along
// the way. It returns the acked count at whichever happened first. It never
// blocks Broadcast — both just take the pool's mutex briefly per call.
func (p *Pool) Wait(numReplicas int, minOffset int64, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		acked := p.AckedCount(minOffset)
		if acked >= numReplicas {
			return acked
		}
		if !time.Now().Before(deadline) {
			return acked
		}
		p.RequestAcks(minOffset)
		time.Sleep(WaitPollInterval)
	}
}

func nowMs() int64 {
	return time.Now().UnixNano() / int64(time.Millisecond)
}
