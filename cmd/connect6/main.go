// Command connect6 runs a terminal Connect6 match against the hybrid
// engine, or a bot-vs-bot self-play demo. Flag shape follows the
// teacher's main.go (a side flag and a per-move time budget flag).
package main

import (
	"flag"
	"fmt"
	"os"

	"connect6engine/board"
	"connect6engine/engine"
)

func main() {
	side := flag.String("side", "black", "which side the human plays: black, white, or none for bot-vs-bot")
	timeLimitMs := flag.Int("time-ms", 2000, "per-move time budget in milliseconds for the bot")
	maxDepth := flag.Int("max-depth", 4, "maximum PVS search depth")
	flag.Parse()

	var humanSide board.Cell
	switch *side {
	case "black":
		humanSide = board.Black
	case "white":
		humanSide = board.White
	case "none":
		humanSide = board.Empty
	default:
		fmt.Fprintf(os.Stderr, "unknown -side %q, want black, white, or none\n", *side)
		os.Exit(1)
	}

	sess := engine.NewSession(humanSide, os.Stdin, os.Stdout)
	sess.BaseConfig.PVS.MaxDepth = *maxDepth
	sess.BaseConfig.PVS.TimeLimitMs = *timeLimitMs

	sess.Run()
}
