package command

import "goredis/internal/protocol"

func parseInfo(rest [][]byte) (*Command, error) {
	parsed, err := NewArgParser("info").
		Add(ArgSpec{Name: "sections", Position: 0, Required: false, Capture: true}).
		Parse(rest)
	if err != nil {
		return nil, err
	}
	return &Command{Kind: KindInfo, Sections: parsed.Captured("sections")}, nil
}

// execInfo always reports the replication section: it's the only INFO
// section this server tracks. Any requested section names are accepted but
// otherwise ignored.
func execInfo(cmd *Command, ctx *ExecContext) *Result {
	body := ctx.Info.ReplicationSection()
	return &Result{Replies: encodeOne(protocol.NewBulkString([]byte(body))), Executed: []*Command{cmd}}
}
