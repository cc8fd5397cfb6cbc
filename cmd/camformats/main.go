//go:build linux

package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/abihf/camprobe/capture/v4l2"
)

func main() {
	device := flag.String("d", "/dev/video0", "V4L2 device node")
	flag.Parse()

	caps, err := v4l2.Query(*device)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s\n", *device)
	fmt.Println("Formats:")
	for _, f := range caps.Formats {
		fmt.Printf("  %s %s (%s)\n", f.Code, f.Code.Hex(), f.Name)
		fmt.Printf("      %s\n", strings.Join(f.Sizes, " "))
	}
	fmt.Println("Controls:")
	for _, c := range caps.Controls {
		fmt.Printf("  ID:%08x %-32s  Min: %4d  Max: %5d\n", c.ID, c.Name, c.Min, c.Max)
	}
}
