package command

import "goredis/internal/protocol"

func parseKeys(rest [][]byte) (*Command, error) {
	parsed, err := NewArgParser("keys").
		Add(ArgSpec{Name: "pattern", Position: 0, Required: true}).
		Parse(rest)
	if err != nil {
		return nil, err
	}
	return &Command{Kind: KindKeys, Pattern: parsed.Bytes("pattern")}, nil
}

func execKeys(cmd *Command, ctx *ExecContext) *Result {
	matched := ctx.Store.Keys(string(cmd.Pattern))
	elems := make([]*protocol.Frame, len(matched))
	for i, k := range matched {
		elems[i] = protocol.NewBulkString([]byte(k))
	}
	return &Result{Replies: encodeOne(protocol.NewArray(elems)), Executed: []*Command{cmd}}
}
