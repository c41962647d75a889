// Package handler implements the per-connection command loop: decoding
// RESP frames off the wire, dispatching them through internal/command, and
// writing back replies (or, on a master-replication link, mostly not).
package handler

import (
	"io"
	"log"
	"net"
	"strings"

	"github.com/google/uuid"

	"goredis/internal/command"
	"goredis/internal/protocol"
	"goredis/internal/replutil"
)

// readChunk is how many bytes Handle tries to pull off the wire per read
// once the buffered data doesn't already hold a complete frame.
const readChunk = 512

// Client identifies one accepted (or dialed-out, for a master link)
// connection.
type Client struct {
	ID   string
	Conn net.Conn
}

// NewClient wraps conn with a freshly minted connection ID.
func NewClient(conn net.Conn) *Client {
	return &Client{ID: uuid.NewString(), Conn: conn}
}

// Handler owns the shared keyspace/replication state every connection
// dispatches against.
type Handler struct {
	execCtx *command.ExecContext
}

// New creates a Handler bound to execCtx.
func New(execCtx *command.ExecContext) *Handler {
	return &Handler{execCtx: execCtx}
}

// Handle runs the connection loop for client until the socket closes. A
// malformed frame gets an error reply but never closes the connection.
// preseed is bytes already pulled off the wire
// before Handle was called (e.g. residual bytes read past the RDB during a
// replica handshake). isMasterLink marks this as the follower's outbound
// connection to its master: such a link never replies to propagated
// commands, the lone exception being REPLCONF GETACK.
func (h *Handler) Handle(client *Client, isMasterLink bool, preseed []byte) {
	connCtx := &command.ConnContext{
		RemoteAddr:   client.Conn.RemoteAddr().String(),
		IsMasterLink: isMasterLink,
	}

	buf := append([]byte{}, preseed...)
	defer h.cleanup(connCtx)

	for {
		frame, n, err := protocol.Decode(buf)
		if err == protocol.ErrIncomplete {
			chunk := make([]byte, readChunk)
			read, rerr := client.Conn.Read(chunk)
			if read > 0 {
				buf = append(buf, chunk[:read]...)
			}
			if rerr != nil {
				if rerr != io.EOF {
					log.Printf("handler: read error from %s: %v", connCtx.RemoteAddr, rerr)
				}
				return
			}
			continue
		}
		if err != nil {
			if !connCtx.IsMasterLink {
				client.Conn.Write([]byte("-" + err.Error() + "\r\n"))
			}
			// The buffer holds no resync point for a malformed frame, so
			// discard it and keep the connection open; the next read starts
			// a fresh frame.
			buf = buf[:0]
			continue
		}

		buf = buf[n:]
		if connCtx.IsMasterLink {
			h.execCtx.Info.AddOffset(int64(n))
		}

		h.dispatch(client, connCtx, frame)
	}
}

func (h *Handler) dispatch(client *Client, connCtx *command.ConnContext, frame *protocol.Frame) {
	args, err := frame.StringArgs()
	if err != nil {
		h.reply(client, connCtx, nil, [][]byte{[]byte("-" + err.Error() + "\r\n")})
		return
	}

	cmd, err := command.Parse(args)
	if err != nil {
		h.reply(client, connCtx, nil, [][]byte{[]byte("-" + err.Error() + "\r\n")})
		return
	}

	if connCtx.TxActive {
		if cmd.Kind == command.KindPsync {
			h.reply(client, connCtx, cmd, [][]byte{[]byte("-" + command.ErrPsyncNotQueable.Error() + "\r\n")})
			return
		}
		if command.Queueable(cmd.Kind) {
			connCtx.Queue = append(connCtx.Queue, cmd)
			h.reply(client, connCtx, cmd, [][]byte{[]byte("+QUEUED\r\n")})
			return
		}
	}

	result := command.Execute(cmd, h.execCtx, connCtx)

	if result.RegisterAsReplicaUID != "" {
		h.execCtx.Pool.Add(result.RegisterAsReplicaUID, client.Conn)
		h.execCtx.Info.SetConnectedCount(h.execCtx.Pool.Len())
	}

	h.reply(client, connCtx, cmd, result.Replies)
	h.propagate(result.Executed)
}

// reply writes out a command's replies, honoring the master-link response
// suppression rule: a follower never talks back to its master except to
// answer REPLCONF GETACK.
func (h *Handler) reply(client *Client, connCtx *command.ConnContext, cmd *command.Command, replies [][]byte) {
	if connCtx.IsMasterLink && !isGetAck(cmd) {
		return
	}
	for _, r := range replies {
		if _, err := client.Conn.Write(r); err != nil {
			return
		}
	}
}

func isGetAck(cmd *command.Command) bool {
	return cmd != nil && cmd.Kind == command.KindReplConf && strings.EqualFold(string(cmd.ReplConfKey), "GETACK")
}

// propagate serializes every write command in executed and broadcasts it to
// the replica pool, advancing the master offset by the bytes sent. No-op
// unless this process is currently a master.
func (h *Handler) propagate(executed []*command.Command) {
	if h.execCtx.Info.Role() != replutil.RoleMaster {
		return
	}
	for _, cmd := range executed {
		if !command.IsWrite(cmd.Kind) {
			continue
		}
		payload := cmd.Serialize()
		h.execCtx.Pool.Broadcast(payload)
		h.execCtx.Info.AddOffset(int64(len(payload)))
	}
}

func (h *Handler) cleanup(connCtx *command.ConnContext) {
	if connCtx.ListeningPort != 0 {
		h.execCtx.Pool.Remove(connCtx.ReplicaUID())
		h.execCtx.Info.SetConnectedCount(h.execCtx.Pool.Len())
	}
}
