package command

import "goredis/internal/protocol"

func parseMulti(rest [][]byte) (*Command, error) {
	return &Command{Kind: KindMulti}, nil
}

func parseDiscard(rest [][]byte) (*Command, error) {
	return &Command{Kind: KindDiscard}, nil
}

func parseExec(rest [][]byte) (*Command, error) {
	return &Command{Kind: KindExec}, nil
}

func execMulti(cmd *Command, connCtx *ConnContext) *Result {
	if connCtx.TxActive {
		return &Result{Replies: encodeOne(protocol.NewError(ErrMultiNested.Error()))}
	}
	connCtx.TxActive = true
	connCtx.Queue = nil
	return &Result{Replies: encodeOne(protocol.NewSimpleString("OK"))}
}

func execDiscard(cmd *Command, connCtx *ConnContext) *Result {
	if !connCtx.TxActive {
		return &Result{Replies: encodeOne(protocol.NewError(ErrDiscardNoMulti.Error()))}
	}
	connCtx.TxActive = false
	connCtx.Queue = nil
	return &Result{Replies: encodeOne(protocol.NewSimpleString("OK"))}
}

// execExec drains the queued commands, running each for real against
// execCtx, and reports every drained command back via Result.Executed so
// the caller can propagate whichever of them were writes.
func execExec(cmd *Command, execCtx *ExecContext, connCtx *ConnContext) *Result {
	if !connCtx.TxActive {
		return &Result{Replies: encodeOne(protocol.NewError(ErrExecNoMulti.Error()))}
	}
	connCtx.TxActive = false
	queue := connCtx.Queue
	connCtx.Queue = nil

	var replies [][]byte
	executed := make([]*Command, 0, len(queue))
	for _, queued := range queue {
		sub := Execute(queued, execCtx, connCtx)
		replies = append(replies, sub.Replies...)
		executed = append(executed, sub.Executed...)
	}

	header := []byte("*" + formatInt64(int64(len(replies))) + "\r\n")
	var body []byte
	body = append(body, header...)
	for _, r := range replies {
		body = append(body, r...)
	}

	return &Result{Replies: [][]byte{body}, Executed: executed}
}
