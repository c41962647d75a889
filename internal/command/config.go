package command

import (
	"strings"

	"goredis/internal/protocol"
)

// parseConfig only supports the GET subcommand; any other subcommand is
// reported as unrecognized, matching this server's limited CONFIG surface.
func parseConfig(rest [][]byte) (*Command, error) {
	if len(rest) == 0 {
		return nil, &UnrecognizedCommandError{Name: "CONFIG"}
	}
	sub := strings.ToUpper(string(rest[0]))
	if sub != "GET" {
		return nil, &UnrecognizedCommandError{Name: "CONFIG " + sub}
	}

	parsed, err := NewArgParser("config|get").
		Add(ArgSpec{Name: "params", Position: 0, Required: true, Capture: true}).
		Parse(rest[1:])
	if err != nil {
		return nil, err
	}
	return &Command{Kind: KindConfigGet, Params: parsed.Captured("params")}, nil
}

func execConfigGet(cmd *Command, ctx *ExecContext) *Result {
	var elems []*protocol.Frame
	for _, param := range cmd.Params {
		var value string
		switch strings.ToLower(string(param)) {
		case "dir":
			value = ctx.Dir
		case "dbfilename":
			value = ctx.DBFilename
		default:
			continue
		}
		elems = append(elems, protocol.NewBulkString(param), protocol.NewBulkString([]byte(value)))
	}
	return &Result{Replies: encodeOne(protocol.NewArray(elems)), Executed: []*Command{cmd}}
}
