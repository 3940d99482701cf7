// flickengine serves the native rule engine over the text protocol on stdin/stdout, so
// flickboard can run it as a separate process.
package main

import (
	"flag"
	"fmt"
	"os"

	"flickboard/engine/native"
	"flickboard/engine/textproto"
	"flickboard/types"
)

var flagHand = flag.Int("hand", types.DefaultMaxHandSize, "Pieces per player")

func main() {
	flag.Parse()

	srv := textproto.NewServer(native.Module{MaxHandSize: *flagHand})
	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "flickengine: %s\n", err)
		os.Exit(1)
	}
}
