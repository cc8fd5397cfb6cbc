package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/abihf/camprobe/protocol"
	"github.com/abihf/camprobe/status"
)

func main() {
	socket := flag.String("socket", protocol.GetSockAddress(), "Status socket of a running camprobe or camview")
	asJSON := flag.Bool("json", false, "Print the raw status document")
	timeout := flag.Duration("timeout", 2*time.Second, "Request timeout")
	flag.Parse()

	st, err := status.Fetch(*socket, *timeout)
	if err != nil {
		log.Fatal(err)
	}

	if *asJSON {
		if err := protocol.WriteStatus(os.Stdout, st); err != nil {
			log.Fatal(err)
		}
		return
	}
	fmt.Println(st.Summary())
}
