package command

import (
	"goredis/internal/protocol"
	"goredis/internal/storage"
)

func parsePing(rest [][]byte) (*Command, error) {
	if len(rest) == 0 {
		return &Command{Kind: KindPing}, nil
	}
	return &Command{Kind: KindPing, Message: rest[0], HasMessage: true}, nil
}

func execPing(cmd *Command) *Result {
	if cmd.HasMessage {
		return &Result{Replies: encodeOne(protocol.NewBulkString(cmd.Message)), Executed: []*Command{cmd}}
	}
	return &Result{Replies: encodeOne(protocol.NewSimpleString("PONG")), Executed: []*Command{cmd}}
}

func parseEcho(rest [][]byte) (*Command, error) {
	parsed, err := NewArgParser("echo").
		Add(ArgSpec{Name: "message", Position: 0, Required: true}).
		Parse(rest)
	if err != nil {
		return nil, err
	}
	return &Command{Kind: KindEcho, Message: parsed.Bytes("message")}, nil
}

func execEcho(cmd *Command) *Result {
	return &Result{Replies: encodeOne(protocol.NewBulkString(cmd.Message)), Executed: []*Command{cmd}}
}

func parseGet(rest [][]byte) (*Command, error) {
	parsed, err := NewArgParser("get").
		Add(ArgSpec{Name: "key", Position: 0, Required: true}).
		Parse(rest)
	if err != nil {
		return nil, err
	}
	return &Command{Kind: KindGet, Key: parsed.Bytes("key")}, nil
}

func execGet(cmd *Command, ctx *ExecContext) *Result {
	v, err := ctx.Store.Get(string(cmd.Key))
	if err != nil {
		return &Result{Replies: encodeOne(protocol.NilBulkString()), Executed: []*Command{cmd}}
	}
	return &Result{Replies: encodeOne(protocol.NewBulkString(v.Raw)), Executed: []*Command{cmd}}
}

func parseSet(rest [][]byte) (*Command, error) {
	parsed, err := NewArgParser("set").
		Add(ArgSpec{Name: "key", Position: 0, Required: true}).
		Add(ArgSpec{Name: "value", Position: 1, Required: true}).
		Add(ArgSpec{Name: "expiry", Position: 2, Required: false}).
		Add(ArgSpec{Name: "expiryValue", Position: 3, Required: false}).
		Parse(rest)
	if err != nil {
		return nil, err
	}

	cmd := &Command{
		Kind:  KindSet,
		Key:   parsed.Bytes("key"),
		Value: parsed.Bytes("value"),
	}

	// Expiry only applies when both the mode and its value were supplied,
	// matching the source this was ported from.
	expiry := parsed.Bytes("expiry")
	expiryValue := parsed.Bytes("expiryValue")
	if expiry != nil && expiryValue != nil {
		cmd.ExpiryMode = parseExpiryMode(expiry)
		if n, err := parseInt64(expiryValue); err == nil {
			cmd.ExpiryValue = n
		} else {
			cmd.ExpiryMode = ExpiryNone
		}
	}

	return cmd, nil
}

func execSet(cmd *Command, ctx *ExecContext) *Result {
	value := &storage.Value{Raw: cmd.Value}
	if t, ok := expiryDeadline(cmd.ExpiryMode, cmd.ExpiryValue); ok {
		value.ExpiresAt = &t
	}
	ctx.Store.Set(string(cmd.Key), value)
	return &Result{Replies: encodeOne(protocol.NewSimpleString("OK")), Executed: []*Command{cmd}}
}

func parseIncr(rest [][]byte) (*Command, error) {
	parsed, err := NewArgParser("incr").
		Add(ArgSpec{Name: "key", Position: 0, Required: true}).
		Parse(rest)
	if err != nil {
		return nil, err
	}
	return &Command{Kind: KindIncr, Key: parsed.Bytes("key")}, nil
}

func execIncr(cmd *Command, ctx *ExecContext) *Result {
	result, err := ctx.Store.Update(string(cmd.Key), func(current *storage.Value, exists bool) (*storage.Value, error) {
		var n int64
		if exists {
			parsed, err := parseInt64(current.Raw)
			if err != nil {
				return nil, &NotIntegerError{}
			}
			n = parsed
		}
		n++
		return &storage.Value{Raw: []byte(formatInt64(n))}, nil
	})
	if err != nil {
		if _, ok := err.(*NotIntegerError); ok {
			return &Result{Replies: encodeOne(protocol.NewError(err.Error())), Executed: []*Command{cmd}}
		}
		return &Result{Replies: encodeOne(protocol.NewError("ERR " + err.Error())), Executed: []*Command{cmd}}
	}
	n, _ := parseInt64(result.Raw)
	return &Result{Replies: encodeOne(protocol.NewInteger(n)), Executed: []*Command{cmd}}
}
