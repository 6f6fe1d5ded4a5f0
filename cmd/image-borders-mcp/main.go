package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/ironsheep/image-borders-mcp/internal/borders"
	"github.com/ironsheep/image-borders-mcp/internal/imaging"
	"github.com/ironsheep/image-borders-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version, --help and the detect subcommand
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-borders-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "detect":
			log.SetOutput(os.Stderr)
			log.SetFlags(0)
			os.Exit(runDetect(os.Args[2:], os.Stdout))
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("IMAGE_MCP_LOG_LEVEL")
	if logLevel == "debug" {
		log.Printf("Image Borders MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	srv := server.New()
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("image-borders-mcp - MCP server for entropy-based image border detection")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  image-borders-mcp [options]")
	fmt.Println("  image-borders-mcp detect [flags] <image>...")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  IMAGE_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println("  IMAGE_MCP_MAX_SIZE=<px>      Default downscale bound for border detection")
	fmt.Println()
	fmt.Println("Without a subcommand the server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Run 'image-borders-mcp detect -h' for the detect flags.")
}

// fileReport is one line of detect output.
type fileReport struct {
	Path       string           `json:"path"`
	Width      int              `json:"width,omitempty"`
	Height     int              `json:"height,omitempty"`
	FrameCount int              `json:"frame_count,omitempty"`
	Borders    *borders.Borders `json:"borders,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// runDetect scans every file named in args and writes one JSON report per
// file to w. It returns the process exit code.
func runDetect(args []string, w io.Writer) int {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	frames := fs.Int("frames", 0, "Maximum number of animation frames to scan (0 = all)")
	size := fs.Int("size", 0, "Downscale so the longer side is at most this many pixels (0 = no resize)")
	columns := fs.Int("columns", 0, "Maximum number of columns scanned per edge (0 = all)")
	depth := fs.Float64("depth", borders.DefaultDepth, "Fraction of the height searched per edge")
	threshold := fs.Float64("threshold", borders.DefaultThreshold, "Entropy ratio under which rows count as border")
	deep := fs.Bool("deep", true, "Repeat the search from each border found")
	luma := fs.String("luma", imaging.LumaRec601.String(), "Grayscale model: rec601 or lightness")
	seed := fs.Int64("seed", 0, "Seed for frame and column sampling (0 = time based)")
	verbose := fs.Bool("verbose", false, "Print debug information")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	files := fs.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: image-borders-mcp detect [flags] <image>...")
		fs.PrintDefaults()
		return 2
	}

	model, err := imaging.ParseLumaModel(*luma)
	if err != nil {
		log.Printf("Error: %v", err)
		return 2
	}

	opts := []borders.Option{
		borders.WithFrameLimit(*frames),
		borders.WithMaxSize(*size),
		borders.WithColumnLimit(*columns),
		borders.WithDepth(*depth),
		borders.WithThreshold(*threshold),
		borders.WithDeep(*deep),
		borders.WithLumaModel(model),
	}
	if *seed != 0 {
		opts = append(opts, borders.WithRand(rand.New(rand.NewSource(*seed))))
	}

	ctx := context.Background()
	cache := imaging.NewImageCache()
	enc := json.NewEncoder(w)
	failed := false

	for _, path := range files {
		report := fileReport{Path: path}
		b, src, err := borders.DetectFile(ctx, cache, path, opts...)
		if err != nil {
			if errors.Is(err, borders.ErrInvalidParameter) {
				log.Printf("Error: %v", err)
				return 2
			}
			failed = true
			report.Error = err.Error()
		} else {
			report.Width = src.Width
			report.Height = src.Height
			report.FrameCount = src.FrameCount()
			report.Borders = &b
			if *verbose {
				log.Printf("%s: %dx%d, %d frame(s), borders %+v", path, src.Width, src.Height, src.FrameCount(), b)
			}
		}
		// Decoded frames are not reused across files.
		cache.Evict(path)

		if err := enc.Encode(report); err != nil {
			log.Printf("Error writing report: %v", err)
			return 1
		}
	}

	if failed {
		return 1
	}
	return 0
}
