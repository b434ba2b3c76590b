package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	synchub "pokehub/internal/sync"
)

// Terminal watcher for the favorites feed. Dials the TCP sync server,
// renders favorite events one per line, and reconnects with backoff when
// the server goes away.

func main() {
	addr := flag.String("addr", "127.0.0.1:7070", "TCP sync server address")
	raw := flag.Bool("json", false, "print raw JSON lines instead of summaries")
	flag.Parse()

	backoff := time.Second
	for {
		err := watch(*addr, *raw)
		log.Printf("[sync-client] disconnected: %v (retry in %s)", err, backoff)
		time.Sleep(backoff)
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func watch(addr string, raw bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[sync-client] watching %s", addr)

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		if raw {
			fmt.Println(sc.Text())
			continue
		}
		fmt.Println(render(sc.Bytes()))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

// render turns one feed line into a human summary. Lines that are not
// favorite events (the welcome message, future event types) fall through
// as-is.
func render(line []byte) string {
	var ev synchub.FavoriteEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		return string(line)
	}

	stamp := ev.At.Local().Format("15:04:05")
	switch ev.Type {
	case synchub.EventFavoriteAdd:
		if ev.Note != "" {
			return fmt.Sprintf("%s  %s favorited %s (%q)", stamp, ev.UserID, ev.Pokemon, ev.Note)
		}
		return fmt.Sprintf("%s  %s favorited %s", stamp, ev.UserID, ev.Pokemon)
	case synchub.EventFavoriteRemove:
		return fmt.Sprintf("%s  %s unfavorited %s", stamp, ev.UserID, ev.Pokemon)
	default:
		return string(line)
	}
}
