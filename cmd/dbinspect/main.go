package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pforhan/scottFree2025/pkg/dbfile"
	"github.com/pforhan/scottFree2025/pkg/gamedb"
)

func main() {
	dbPath := flag.String("db", "", "Path to adventure database (e.g., adv01.dat)")
	showRooms := flag.Bool("rooms", false, "List rooms with exits")
	showItems := flag.Bool("items", false, "List items with locations")
	showWords := flag.Bool("words", false, "List the verb and noun vocabularies")
	showActions := flag.Bool("actions", false, "List action lines with comments")
	validate := flag.Bool("validate", false, "Run referential integrity checks")
	watch := flag.Bool("watch", false, "Watch the file and revalidate on change")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: dbinspect -db <path-to-database> [options]")
		fmt.Fprintln(os.Stderr, "  -rooms     List rooms with exits")
		fmt.Fprintln(os.Stderr, "  -items     List items with locations")
		fmt.Fprintln(os.Stderr, "  -words     List vocabularies")
		fmt.Fprintln(os.Stderr, "  -actions   List action lines with comments")
		fmt.Fprintln(os.Stderr, "  -validate  Run integrity checks")
		fmt.Fprintln(os.Stderr, "  -watch     Reload and revalidate on file change")
		os.Exit(1)
	}

	inspect := func() {
		fmt.Printf("Loading database: %s\n", *dbPath)
		start := time.Now()

		db, err := dbfile.Load(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			if !*watch {
				os.Exit(1)
			}
			return
		}

		elapsed := time.Since(start)
		fmt.Printf("Loaded in %v\n\n", elapsed)

		printSummary(db)

		if *showRooms {
			fmt.Println()
			printRooms(db)
		}
		if *showItems {
			fmt.Println()
			printItems(db)
		}
		if *showWords {
			fmt.Println()
			printWords(db)
		}
		if *showActions {
			fmt.Println()
			printActions(db)
		}
		if *validate || *watch {
			fmt.Println()
			runValidation(db)
		}
	}

	inspect()

	if *watch {
		watchFile(*dbPath, inspect)
	}
}

// watchFile revalidates the database whenever the file is rewritten.
// Editors often replace rather than write in place, so the watch is
// re-armed after remove/rename events.
func watchFile(path string, inspect func()) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("Error creating watcher: %v", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		log.Fatalf("Error watching %s: %v", path, err)
	}
	log.Printf("Watching %s for changes...", path)

	var timer *time.Timer
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				// Debounce bursts of writes from editors.
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(200*time.Millisecond, func() {
					fmt.Println()
					inspect()
				})
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				time.Sleep(100 * time.Millisecond)
				watcher.Add(path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

func printSummary(db *gamedb.Database) {
	fmt.Println("=== DATABASE SUMMARY ===")
	fmt.Printf("Adventure:     %d\n", db.Tail.Adventure)
	fmt.Printf("Version:       %d\n", db.Tail.Version)
	fmt.Printf("Rooms:         %d (start %d)\n", db.Header.NumRooms, db.Header.StartRoom)
	fmt.Printf("Items:         %d (%d treasures, stored in room %d)\n",
		db.Header.NumItems, db.Header.NumTreasures, db.Header.TreasureRoom)
	fmt.Printf("Actions:       %d\n", db.Header.NumActions)
	fmt.Printf("Messages:      %d\n", db.Header.NumMessages)
	fmt.Printf("Vocabulary:    %d entries, word length %d\n", db.Header.NumWords, db.Header.WordLength)
	fmt.Printf("Max carry:     %d\n", db.Header.MaxCarry)
	if db.Header.LightTime == -1 {
		fmt.Printf("Light:         unlimited\n")
	} else {
		fmt.Printf("Light:         %d turns\n", db.Header.LightTime)
	}
}

func printRooms(db *gamedb.Database) {
	fmt.Println("=== ROOMS ===")
	dirs := []string{"N", "S", "E", "W", "U", "D"}
	for i := range db.Rooms {
		var exits []string
		for d := gamedb.FirstDir; d <= gamedb.LastDir; d++ {
			if dest := db.Rooms[i].Exit(d); dest != 0 {
				exits = append(exits, fmt.Sprintf("%s>%d", dirs[d-1], dest))
			}
		}
		exitStr := "(none)"
		if len(exits) > 0 {
			exitStr = strings.Join(exits, " ")
		}
		fmt.Printf("%4d  %-50s %s\n", i, truncate(db.Rooms[i].Description, 50), exitStr)
	}
	fmt.Printf("\nTotal rooms: %d\n", len(db.Rooms))
}

func printItems(db *gamedb.Database) {
	fmt.Println("=== ITEMS ===")
	treasures := 0
	for i := range db.Items {
		it := &db.Items[i]
		marks := ""
		if it.IsTreasure() {
			marks += " [treasure]"
			treasures++
		}
		if it.AutoPick != "" {
			marks += fmt.Sprintf(" [noun %s]", it.AutoPick)
		}
		loc := fmt.Sprintf("room %d", it.Location)
		switch it.Location {
		case gamedb.Destroyed:
			loc = "nowhere"
		case gamedb.Carried:
			loc = "carried"
		}
		fmt.Printf("%4d  %-45s %-10s%s\n", i, truncate(it.Description, 45), loc, marks)
	}
	fmt.Printf("\nTotal items: %d (%d treasures)\n", len(db.Items), treasures)
}

func printWords(db *gamedb.Database) {
	fmt.Println("=== VOCABULARY ===")
	fmt.Printf("%-6s %-20s %-20s\n", "Index", "Verb", "Noun")
	fmt.Println(strings.Repeat("-", 48))
	n := len(db.Verbs)
	if len(db.Nouns) > n {
		n = len(db.Nouns)
	}
	for i := 0; i < n; i++ {
		verb, noun := "", ""
		if i < len(db.Verbs) {
			verb = db.Verbs[i].Text
			if db.Verbs[i].Synonym {
				verb = "*" + verb
			}
		}
		if i < len(db.Nouns) {
			noun = db.Nouns[i].Text
			if db.Nouns[i].Synonym {
				noun = "*" + noun
			}
		}
		fmt.Printf("%-6d %-20s %-20s\n", i, verb, noun)
	}
}

func printActions(db *gamedb.Database) {
	fmt.Println("=== ACTIONS ===")
	for i := range db.Actions {
		act := &db.Actions[i]
		verb := fmt.Sprintf("%d", act.Verb)
		if act.Verb > 0 && act.Verb < len(db.Verbs) {
			verb = db.Verbs[act.Verb].Text
		} else if act.Verb == gamedb.Auto {
			verb = fmt.Sprintf("AUTO:%d%%", act.Noun)
		}
		noun := fmt.Sprintf("%d", act.Noun)
		if act.Verb != gamedb.Auto {
			if act.Noun == gamedb.Any {
				noun = "ANY"
			} else if act.Noun < len(db.Nouns) {
				noun = db.Nouns[act.Noun].Text
			}
		}
		comment := ""
		if i < len(db.Comments) && db.Comments[i] != "" {
			comment = "  ; " + db.Comments[i]
		}
		if act.Verb == gamedb.Auto {
			fmt.Printf("%4d  %-24s cond=%v act=%v%s\n", i, verb, act.Condition, act.Act, comment)
		} else {
			fmt.Printf("%4d  %-12s %-12s cond=%v act=%v%s\n", i, verb, noun, act.Condition, act.Act, comment)
		}
	}
	fmt.Printf("\nTotal actions: %d\n", len(db.Actions))
}

func runValidation(db *gamedb.Database) {
	fmt.Println("=== VALIDATION ===")
	findings := gamedb.Validate(db)
	errors, warnings := 0, 0
	for _, f := range findings {
		fmt.Printf("%s: %s\n", f.Severity, f.Description)
		if f.Severity == gamedb.SeverityError {
			errors++
		} else {
			warnings++
		}
	}
	fmt.Printf("\nValidation complete: %d errors, %d warnings\n", errors, warnings)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
