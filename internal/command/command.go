package command

import (
	"net"
	"strconv"
	"strings"

	"goredis/internal/protocol"
	"goredis/internal/replutil"
	"goredis/internal/storage"
)

// Kind tags which command variant a Command carries. Go has no sum types,
// so Command is a single struct wide enough to hold every variant's fields;
// Kind says which of them are meaningful.
type Kind int

const (
	KindPing Kind = iota
	KindEcho
	KindGet
	KindSet
	KindIncr
	KindKeys
	KindInfo
	KindConfigGet
	KindMulti
	KindExec
	KindDiscard
	KindReplConf
	KindPsync
	KindWait
)

// ExpiryMode tags which of SET's expiry flavors was supplied.
type ExpiryMode int

const (
	ExpiryNone ExpiryMode = iota
	ExpiryEX
	ExpiryPX
	ExpiryEXAT
	ExpiryPXAT
)

// Command is a parsed, ready-to-execute command. Raw holds the original
// argument frames (command name included) so Serialize can rebuild the
// exact wire bytes for propagation without re-deriving them from the typed
// fields.
type Command struct {
	Kind Kind
	Raw  [][]byte

	Message    []byte
	HasMessage bool

	Key         []byte
	Value       []byte
	ExpiryMode  ExpiryMode
	ExpiryValue int64

	Pattern []byte

	Sections [][]byte

	Params [][]byte

	ReplConfKey   []byte
	ReplConfValue []byte

	NumReplicas int64
	TimeoutMs   int64
}

// ExecContext is the shared state a command executes against: the
// keyspace, replication bookkeeping, and the handful of config values
// CONFIG GET exposes. It carries no connection-specific state.
type ExecContext struct {
	Store      *storage.Store
	Info       *replutil.Info
	Pool       *replutil.Pool
	Dir        string
	DBFilename string
}

// ConnContext is the per-connection state a command may read or mutate:
// transaction status and queue, and the replica-identifying listening port
// learned via REPLCONF.
type ConnContext struct {
	RemoteAddr    string
	ListeningPort int
	TxActive      bool
	Queue         []*Command
	IsMasterLink  bool
}

// ReplicaUID identifies this connection in the replica pool as host:port,
// using the port the replica advertised via REPLCONF listening-port.
func (c *ConnContext) ReplicaUID() string {
	host, _, err := net.SplitHostPort(c.RemoteAddr)
	if err != nil {
		host = c.RemoteAddr
	}
	return host + ":" + strconv.Itoa(c.ListeningPort)
}

// Result is what executing a Command produces.
type Result struct {
	// Replies are fully RESP-encoded frames to write back to the caller, in
	// order. A nil/empty slice means no reply at all (e.g. REPLCONF ACK).
	Replies [][]byte

	// Executed lists the commands actually carried out by this call, for
	// the caller to decide what to propagate to replicas. For most
	// commands this is just the command itself; EXEC reports every queued
	// command it drained.
	Executed []*Command

	// RegisterAsReplicaUID is set by a successful PSYNC: the caller must
	// add this connection to the replica pool under this UID.
	RegisterAsReplicaUID string
}

// IsWrite reports whether a command of this kind mutates the keyspace and
// should be propagated to connected replicas.
func IsWrite(k Kind) bool {
	switch k {
	case KindSet, KindIncr:
		return true
	default:
		return false
	}
}

// Queueable reports whether a command of this kind may be queued inside a
// MULTI transaction.
func Queueable(k Kind) bool {
	switch k {
	case KindEcho, KindGet, KindSet, KindIncr, KindKeys, KindInfo, KindConfigGet, KindPing, KindReplConf:
		return true
	default:
		return false
	}
}

type parseFunc func(rest [][]byte) (*Command, error)

var commandTable = map[string]parseFunc{
	"PING":     parsePing,
	"ECHO":     parseEcho,
	"GET":      parseGet,
	"SET":      parseSet,
	"INCR":     parseIncr,
	"KEYS":     parseKeys,
	"INFO":     parseInfo,
	"CONFIG":   parseConfig,
	"MULTI":    parseMulti,
	"EXEC":     parseExec,
	"DISCARD":  parseDiscard,
	"REPLCONF": parseReplConf,
	"PSYNC":    parsePsync,
	"WAIT":     parseWait,
}

// Parse turns a decoded command array's argument frames (command name
// included at index 0) into a Command.
func Parse(args [][]byte) (*Command, error) {
	if len(args) == 0 {
		return nil, &CommandEmptyError{}
	}
	name := strings.ToUpper(string(args[0]))
	fn, ok := commandTable[name]
	if !ok {
		return nil, &UnrecognizedCommandError{Name: name}
	}
	cmd, err := fn(args[1:])
	if err != nil {
		return nil, err
	}
	cmd.Raw = args
	return cmd, nil
}

// Serialize renders the command back to the RESP command-array bytes it
// was parsed from, for replica propagation.
func (c *Command) Serialize() []byte {
	return protocol.Encode(protocol.NewCommandArray(c.Raw...))
}

func encodeOne(f *protocol.Frame) [][]byte {
	return [][]byte{protocol.Encode(f)}
}
