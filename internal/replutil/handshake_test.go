package replutil

import (
	"bufio"
	"net"
	"testing"
)

// fakeMaster accepts one connection and plays the master side of the
// handshake, replying with canned responses and a tiny fake RDB payload.
func fakeMaster(t *testing.T, rdb []byte) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		defer ln.Close()

		br := bufio.NewReader(conn)

		readCommand := func() {
			line, _ := br.ReadString('\n') // *N
			n := 0
			for _, c := range line[1 : len(line)-2] {
				n = n*10 + int(c-'0')
			}
			for i := 0; i < n; i++ {
				lenLine, _ := br.ReadString('\n')
				length := 0
				for _, c := range lenLine[1 : len(lenLine)-2] {
					length = length*10 + int(c-'0')
				}
				buf := make([]byte, length+2)
				br.Read(buf)
			}
		}

		readCommand() // PING
		conn.Write([]byte("+PONG\r\n"))
		readCommand() // REPLCONF listening-port
		conn.Write([]byte("+OK\r\n"))
		readCommand() // REPLCONF capa psync2
		conn.Write([]byte("+OK\r\n"))
		readCommand() // PSYNC ? -1
		var payload []byte
		payload = append(payload, []byte("+FULLRESYNC abc123 0\r\n")...)
		payload = append(payload, []byte("$"+itoa(len(rdb))+"\r\n")...)
		payload = append(payload, rdb...)
		payload = append(payload, []byte("*1\r\n$4\r\nPING\r\n")...) // residual bytes past the RDB
		conn.Write(payload)                                        // single write so it's likely one TCP segment
	}()

	return ln.Addr().String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestHandshakeSuccess(t *testing.T) {
	rdb := []byte("FAKE-RDB-BYTES")
	addr := fakeMaster(t, rdb)

	result, err := Handshake(addr, 6380)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer result.Conn.Close()

	if result.MasterReplID != "abc123" {
		t.Fatalf("got replid %q want abc123", result.MasterReplID)
	}
	if result.MasterOffset != 0 {
		t.Fatalf("got offset %d want 0", result.MasterOffset)
	}
	if string(result.RDB) != string(rdb) {
		t.Fatalf("got rdb %q want %q", result.RDB, rdb)
	}
	if string(result.Residual) != "*1\r\n$4\r\nPING\r\n" {
		t.Fatalf("got residual %q", result.Residual)
	}
}
