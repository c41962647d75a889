package command

import "goredis/internal/protocol"

// Execute runs a parsed command against the given keyspace/replication
// state and connection state, and returns the reply frames plus the
// commands actually executed (for the caller's propagation decision).
//
// Execute does not itself implement MULTI queueing: whether a command gets
// queued instead of executed is decided by the caller before Execute is
// ever called, by consulting Queueable and ConnContext.TxActive.
func Execute(cmd *Command, execCtx *ExecContext, connCtx *ConnContext) *Result {
	switch cmd.Kind {
	case KindPing:
		return execPing(cmd)
	case KindEcho:
		return execEcho(cmd)
	case KindGet:
		return execGet(cmd, execCtx)
	case KindSet:
		return execSet(cmd, execCtx)
	case KindIncr:
		return execIncr(cmd, execCtx)
	case KindKeys:
		return execKeys(cmd, execCtx)
	case KindInfo:
		return execInfo(cmd, execCtx)
	case KindConfigGet:
		return execConfigGet(cmd, execCtx)
	case KindMulti:
		return execMulti(cmd, connCtx)
	case KindDiscard:
		return execDiscard(cmd, connCtx)
	case KindExec:
		return execExec(cmd, execCtx, connCtx)
	case KindReplConf:
		return execReplConf(cmd, execCtx, connCtx)
	case KindPsync:
		return execPsync(cmd, execCtx, connCtx)
	case KindWait:
		return execWait(cmd, execCtx)
	default:
		return &Result{Replies: encodeOne(protocol.NewError("ERR unhandled command"))}
	}
}
