package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"

	"github.com/pforhan/scottFree2025/pkg/console"
	"github.com/pforhan/scottFree2025/pkg/dbfile"
	"github.com/pforhan/scottFree2025/pkg/game"
	"github.com/pforhan/scottFree2025/pkg/lang"
	"github.com/pforhan/scottFree2025/pkg/savestore"
	"github.com/pforhan/scottFree2025/pkg/transcript"
	"github.com/pforhan/scottFree2025/pkg/web"
)

// envDefault returns the environment variable value if set, otherwise the fallback.
func envDefault(envVar, fallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return fallback
}

func main() {
	confFile := flag.String("conf", envDefault("SCOTT_CONF", ""), "Path to YAML config file (env: SCOTT_CONF)")
	advPath := flag.String("adventure", envDefault("SCOTT_ADVENTURE", ""), "Path to adventure database (env: SCOTT_ADVENTURE)")
	langPath := flag.String("lang", envDefault("SCOTT_LANG", ""), "Path to translation database (env: SCOTT_LANG)")
	savePath := flag.String("save", envDefault("SCOTT_SAVE", ""), "Path to flat save file (env: SCOTT_SAVE)")
	saveDB := flag.String("savedb", envDefault("SCOTT_SAVEDB", ""), "Path to bbolt save-slot database (env: SCOTT_SAVEDB)")
	saveSlot := flag.String("slot", envDefault("SCOTT_SLOT", ""), "Save slot name inside -savedb (env: SCOTT_SLOT)")
	transcriptDB := flag.String("transcript", envDefault("SCOTT_TRANSCRIPT", ""), "Path to SQLite transcript database (env: SCOTT_TRANSCRIPT)")
	webListen := flag.String("web", envDefault("SCOTT_WEB", ""), "Serve sessions over WebSocket on host:port instead of the console (env: SCOTT_WEB)")
	restore := flag.Bool("restore", os.Getenv("SCOTT_RESTORE") == "true", "Restore the saved game on startup (env: SCOTT_RESTORE)")
	seed := flag.Int64("seed", 0, "Random seed, 0 = time-seeded (env: SCOTT_SEED)")
	noDelay := flag.Bool("nodelay", os.Getenv("SCOTT_NODELAY") == "true", "Skip presentation pauses (env: SCOTT_NODELAY)")
	flag.Parse()

	// Config file first, flags override.
	var cfg *console.Config
	if *confFile != "" {
		var err error
		cfg, err = console.LoadConfig(*confFile)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		log.Printf("Loaded config from %s", *confFile)
	} else {
		cfg = console.DefaultConfig()
	}
	if *advPath != "" {
		cfg.Adventure = *advPath
	}
	if *langPath != "" {
		cfg.Language = *langPath
	}
	if *savePath != "" {
		cfg.SavePath = *savePath
	}
	if *saveDB != "" {
		cfg.SaveDB = *saveDB
	}
	if *saveSlot != "" {
		cfg.SaveSlot = *saveSlot
	}
	if *transcriptDB != "" {
		cfg.TranscriptDB = *transcriptDB
	}
	if *webListen != "" {
		cfg.WebListen = *webListen
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if v := os.Getenv("SCOTT_SEED"); v != "" && cfg.Seed == 0 {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
	if *noDelay {
		cfg.NoDelay = true
	}

	if cfg.Adventure == "" {
		fmt.Fprintln(os.Stderr, "Usage: scott -adventure <database> [-lang <translation>] [-save <file>]")
		fmt.Fprintln(os.Stderr, "       scott -conf <config.yaml>")
		fmt.Fprintln(os.Stderr, "       scott -adventure <database> -web :8080")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Environment variables (used as defaults when flags are not set):")
		fmt.Fprintln(os.Stderr, "  SCOTT_CONF        Path to YAML config file")
		fmt.Fprintln(os.Stderr, "  SCOTT_ADVENTURE   Path to adventure database")
		fmt.Fprintln(os.Stderr, "  SCOTT_LANG        Path to translation database")
		fmt.Fprintln(os.Stderr, "  SCOTT_SAVE        Path to flat save file")
		fmt.Fprintln(os.Stderr, "  SCOTT_SAVEDB      Path to bbolt save-slot database")
		fmt.Fprintln(os.Stderr, "  SCOTT_SLOT        Save slot name")
		fmt.Fprintln(os.Stderr, "  SCOTT_TRANSCRIPT  Path to SQLite transcript database")
		fmt.Fprintln(os.Stderr, "  SCOTT_WEB         host:port for the WebSocket front-end")
		fmt.Fprintln(os.Stderr, "  SCOTT_RESTORE     Set to 'true' to restore the save on startup")
		fmt.Fprintln(os.Stderr, "  SCOTT_NODELAY     Set to 'true' to skip presentation pauses")
		os.Exit(1)
	}

	log.Printf("Loading adventure database %s...", cfg.Adventure)
	db, err := dbfile.Load(cfg.Adventure)
	if err != nil {
		log.Fatalf("Error loading adventure: %v", err)
	}
	log.Printf("Adventure %d version %d loaded: %d rooms, %d items, %d actions",
		db.Tail.Adventure, db.Tail.Version,
		db.Header.NumRooms, db.Header.NumItems, db.Header.NumActions)

	var text *lang.DB
	if cfg.Language != "" {
		text, err = lang.Load(cfg.Language)
		if err != nil {
			log.Fatalf("Error loading translation database: %v", err)
		}
		log.Printf("Loaded translations from %s", cfg.Language)
	}

	// Web mode serves fresh sessions per connection and never touches
	// the save or transcript stores.
	if cfg.WebListen != "" {
		srv := web.NewServer(db, text, cfg.WebListen)
		if err := srv.Start(); err != nil {
			log.Fatalf("Web server error: %v", err)
		}
		return
	}

	var store *savestore.Store
	if cfg.SaveDB != "" {
		store, err = savestore.Open(cfg.SaveDB)
		if err != nil {
			log.Fatalf("Error opening save database: %v", err)
		}
		defer store.Close()
	}

	var rec *transcript.Recorder
	if cfg.TranscriptDB != "" {
		rec, err = transcript.Open(cfg.TranscriptDB)
		if err != nil {
			log.Fatalf("Error opening transcript database: %v", err)
		}
		defer rec.Close()
		if err := rec.BeginSession(db.Tail.Adventure, db.Tail.Version); err != nil {
			log.Fatalf("Error starting transcript session: %v", err)
		}
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	cons := console.New(cfg, store, rec)
	adv := game.New(db, text, cons, rng)
	cons.Attach(adv)

	var saved io.Reader
	if *restore {
		r, err := cons.LoadStream()
		if err != nil {
			log.Fatalf("Error opening save: %v", err)
		}
		defer r.Close()
		saved = r
	}

	cons.Run(saved)
}
