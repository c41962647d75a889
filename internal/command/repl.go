package command

import (
	"strconv"
	"strings"
	"time"

	"goredis/internal/protocol"
	"goredis/internal/rdb"
)

func parseReplConf(rest [][]byte) (*Command, error) {
	parsed, err := NewArgParser("replconf").
		Add(ArgSpec{Name: "key", Position: 0, Required: true}).
		Add(ArgSpec{Name: "value", Position: 1, Required: false}).
		Parse(rest)
	if err != nil {
		return nil, err
	}
	return &Command{
		Kind:          KindReplConf,
		ReplConfKey:   parsed.Bytes("key"),
		ReplConfValue: parsed.Bytes("value"),
	}, nil
}

func execReplConf(cmd *Command, execCtx *ExecContext, connCtx *ConnContext) *Result {
	switch strings.ToUpper(string(cmd.ReplConfKey)) {
	case "GETACK":
		offset := execCtx.Info.Offset()
		frame := protocol.NewCommandArray([]byte("REPLCONF"), []byte("ACK"), []byte(formatInt64(offset)))
		return &Result{Replies: [][]byte{protocol.Encode(frame)}}

	case "ACK":
		offset, err := parseInt64(cmd.ReplConfValue)
		if err != nil {
			return &Result{}
		}
		execCtx.Pool.UpdateAck(connCtx.ReplicaUID(), offset)
		return &Result{}

	case "LISTENING-PORT":
		if port, err := strconv.Atoi(string(cmd.ReplConfValue)); err == nil {
			connCtx.ListeningPort = port
		}
		return &Result{Replies: encodeOne(protocol.NewSimpleString("OK"))}

	default:
		return &Result{Replies: encodeOne(protocol.NewSimpleString("OK"))}
	}
}

func parsePsync(rest [][]byte) (*Command, error) {
	return &Command{Kind: KindPsync}, nil
}

// execPsync always hands back the canonical empty RDB snapshot: live RDB
// serialization of the current keyspace is out of scope, matching the
// source's own create_snapshot, which returns the same fixed blob
// regardless of what's stored.
func execPsync(cmd *Command, execCtx *ExecContext, connCtx *ConnContext) *Result {
	replID := execCtx.Info.ReplID()
	offset := execCtx.Info.Offset()
	fullresync := []byte("+FULLRESYNC " + replID + " " + formatInt64(offset) + "\r\n")

	snapshot := rdb.EmptySnapshot
	dbFrame := append([]byte("$"+strconv.Itoa(len(snapshot))+"\r\n"), snapshot...)

	return &Result{
		Replies:              [][]byte{fullresync, dbFrame},
		RegisterAsReplicaUID: connCtx.ReplicaUID(),
	}
}

func parseWait(rest [][]byte) (*Command, error) {
	parsed, err := NewArgParser("wait").
		Add(ArgSpec{Name: "numreplicas", Position: 0, Required: true, MapFn: toInt64}).
		Add(ArgSpec{Name: "timeout", Position: 1, Required: true, MapFn: toInt64}).
		Parse(rest)
	if err != nil {
		return nil, err
	}
	numReplicas, _ := parsed["numreplicas"].(int64)
	timeout, _ := parsed["timeout"].(int64)
	return &Command{Kind: KindWait, NumReplicas: numReplicas, TimeoutMs: timeout}, nil
}

func execWait(cmd *Command, execCtx *ExecContext) *Result {
	masterOffset := execCtx.Info.Offset()
	acked := execCtx.Pool.Wait(int(cmd.NumReplicas), masterOffset, time.Duration(cmd.TimeoutMs)*time.Millisecond)
	return &Result{Replies: encodeOne(protocol.NewInteger(int64(acked))), Executed: []*Command{cmd}}
}

func toInt64(b []byte) (interface{}, error) {
	return parseInt64(b)
}
