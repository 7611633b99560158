package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/dragonrose/dragonrose/internal/engine"
	"github.com/dragonrose/dragonrose/internal/uci"
)

const defaultHashMB = 64

var (
	hashMB     = flag.Int("hash", defaultHashMB, "transposition table size in MB")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	eng := engine.NewEngine(*hashMB)
	protocol := uci.New(eng)
	protocol.Run()
}
