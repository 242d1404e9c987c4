// Command hfstspell is a one-shot CLI over a zhfst bundle: check whether a
// word is in the lexicon, list weighted corrections, or dump morphological
// analyses, without standing up the HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"hfstspell/internal/bundle"
	"hfstspell/internal/symbols"
	"hfstspell/pkg/options"
)

func main() {
	bundlePath := flag.String("bundle", getenv("BUNDLE_PATH", ""), "path to a .zhfst archive")
	nbest := flag.Int("nbest", 0, "cap the number of corrections returned (0 = unbounded)")
	maxWeight := flag.Float64("max-weight", -1, "reject corrections heavier than this (negative disables)")
	beam := flag.Float64("beam", -1, "reject corrections this much heavier than the best found (negative disables)")
	timeCutoff := flag.Float64("timeout", 0, "abandon a correct search after this many seconds (0 disables)")
	flag.Parse()

	if *bundlePath == "" {
		log.Fatalf("usage: hfstspell -bundle path.zhfst <check|correct|analyse> word")
	}
	args := flag.Args()
	if len(args) != 2 {
		log.Fatalf("usage: hfstspell -bundle path.zhfst <check|correct|analyse> word")
	}
	command, word := args[0], args[1]

	b, err := bundle.Load(*bundlePath,
		options.WithQueueLimit(*nbest),
		options.WithWeightLimit(symbols.Weight(*maxWeight)),
		options.WithBeam(symbols.Weight(*beam)),
		options.WithTimeCutoff(*timeCutoff),
	)
	if err != nil {
		log.Fatalf("load bundle: %v", err)
	}

	switch command {
	case "check":
		if b.Spell(word) {
			fmt.Println("correct")
			return
		}
		fmt.Println("incorrect")
		os.Exit(1)
	case "correct":
		if !b.CanCorrect() {
			log.Fatalf("bundle %s has no error model, cannot correct", *bundlePath)
		}
		for _, r := range b.Suggest(word) {
			fmt.Printf("%s\t%g\n", r.Text, r.Weight)
		}
	case "analyse":
		for _, r := range b.Analyse(word, false) {
			fmt.Printf("%s\t%g\n", r.Text, r.Weight)
		}
	default:
		log.Fatalf("unknown command %q, want check, correct or analyse", command)
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
