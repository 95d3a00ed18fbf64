// Landmark generator - writes a synthetic hand session CSV for replay.
//
// Usage: go run ./cmd/landmarkgen -hands 2 -seconds 12 -out session.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pthm-cable/nebula/gesture"
)

func main() {
	hands := flag.Int("hands", 1, "Hands per frame (1 = pinch sweep, 2 = spread sweep)")
	seconds := flag.Float64("seconds", 12, "Session length in seconds")
	fps := flag.Float64("fps", 30, "Frames per second")
	cycle := flag.Float64("cycle", 6, "Seconds per open/close cycle")
	dropout := flag.Float64("dropout", 0, "Seconds without hands at the start of each cycle")
	outPath := flag.String("out", "session.csv", "Output CSV path")
	flag.Parse()

	if *fps <= 0 || *seconds <= 0 || *cycle <= 0 {
		fmt.Fprintf(os.Stderr, "fps, seconds and cycle must be positive\n")
		os.Exit(1)
	}

	period := time.Duration(float64(time.Second) / *fps)
	cycleDur := time.Duration(*cycle * float64(time.Second))
	dropDur := time.Duration(*dropout * float64(time.Second))
	sweep := gesture.NewSweepOracle(*hands, cycleDur, period)

	n := int(*seconds * *fps)
	session := make(gesture.Session, n)
	for i := range session {
		t := time.Duration(i) * period
		if dropDur > 0 && t%cycleDur < dropDur {
			continue
		}
		session[i] = sweep.FrameAt(t)
	}

	if err := gesture.SaveSession(*outPath, session); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write session: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d frames to %s\n", n, *outPath)
}
