// vrcache is a CLI utility for the VR render model texture cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/Faultbox/midgard-vr/internal/vr/modelcache"
)

const defaultDir = "cache/vr"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "list", "ls":
		cmdList(args)
	case "verify":
		cmdVerify(args)
	case "clean":
		cmdClean(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`vrcache - VR render model texture cache utility

Usage:
  vrcache <command> [options] [dir]

Commands:
  list   [dir]                List cached textures
  verify [-j N] [dir]         Decode every texture and report broken ones
  clean  [-broken] [dir]      Delete cached textures (only broken ones with -broken)

The directory defaults to ` + defaultDir + `.

Examples:
  vrcache list
  vrcache verify -j 8 ~/.cache/midgard-vr
  vrcache clean -broken`)
}

func dirArg(fs *flag.FlagSet) string {
	if fs.NArg() > 0 {
		return fs.Arg(0)
	}
	return defaultDir
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	fs.Parse(args)

	files, err := modelcache.List(dirArg(fs))
	if err != nil {
		fail(err)
	}

	var total int64
	for _, f := range files {
		total += f.Size
		fmt.Printf("%10d  %s  %s\n", f.Size, f.ModTime.Format(time.DateTime), f.Path)
	}
	fmt.Printf("\n%d textures, %.2f MB\n", len(files), float64(total)/(1024*1024))
}

func cmdVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	jobs := fs.Int("j", runtime.NumCPU(), "Number of parallel decoders")
	fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	files, err := modelcache.List(dirArg(fs))
	if err != nil {
		fail(err)
	}
	checked, err := modelcache.Verify(ctx, files, *jobs)
	if err != nil {
		fail(err)
	}

	broken := 0
	for _, v := range checked {
		if v.Err != nil {
			broken++
			fmt.Printf("BROKEN  %s: %v\n", v.Path, v.Err)
		}
	}
	fmt.Printf("%d textures checked, %d broken\n", len(checked), broken)
	if broken > 0 {
		os.Exit(2)
	}
}

func cmdClean(args []string) {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	onlyBroken := fs.Bool("broken", false, "Only delete textures that fail to decode")
	jobs := fs.Int("j", runtime.NumCPU(), "Number of parallel decoders")
	fs.Parse(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	removed, err := modelcache.Clean(ctx, dirArg(fs), *onlyBroken, *jobs)
	for _, path := range removed {
		fmt.Printf("removed %s\n", path)
	}
	if err != nil {
		fail(err)
	}
	fmt.Printf("%d textures removed\n", len(removed))
}
