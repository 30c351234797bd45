package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"navicust.dev/core"
	"navicust.dev/core/internal/catalog"
)

func main() {
	firstOnly := flag.Bool("first", false, "Only print the first solution")
	doAll := flag.Bool("all", false, "Print every solution")
	file := flag.String("file", "", "The JSON catalog file to load parts and requirements from")
	timeout := flag.Duration("timeout", 1*time.Minute, "The timeout for the search")

	profile := flag.Bool("profile", false, "Profile the search")
	profileFile := flag.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")

	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log := log.With().Str("module", "navicustcli").Logger()

	if *firstOnly && *doAll {
		log.Fatal().Msg("cannot use both -first and -all")
	}
	if *file == "" {
		log.Fatal().Msg("-file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("opening catalog file")
	}
	parts, requirements, settings, spinnableColors, err := catalog.Decode(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("decoding catalog")
	}

	log.Info().Int("parts", len(parts)).Int("requirements", len(requirements)).Msg("loaded catalog")

	if *profile {
		pf, err := os.Create(*profileFile)
		if err != nil {
			log.Fatal().Err(err).Msg("creating profile file")
		}
		defer pf.Close()
		if err := pprof.StartCPUProfile(pf); err != nil {
			log.Fatal().Err(err).Msg("starting CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	done := make(chan struct{})
	timer := time.AfterFunc(*timeout, func() { close(done) })
	defer timer.Stop()

	count := 0
	for sol := range navicust.Solve(parts, requirements, settings, spinnableColors) {
		select {
		case <-done:
			log.Warn().Dur("timeout", *timeout).Msg("search timed out")
			goto finished
		default:
		}

		count++
		fmt.Println("--------------------------------")
		printSolution(parts, requirements, sol, settings)

		if *firstOnly {
			break
		}
		if *doAll {
			continue
		}

		fmt.Print("Continue? [Y/n]: ")
		var input string
		fmt.Scanln(&input)
		if input == "n" || input == "N" {
			break
		}
	}

finished:
	fmt.Println("--------------------------------")
	log.Info().Int("solutions", count).Msg("done")
}

func printSolution(parts []navicust.Part, requirements []navicust.Requirement, sol navicust.Solution, settings navicust.GridSettings) {
	result := navicust.PlaceAll(parts, requirements, sol, settings)
	if result.Invalid {
		fmt.Println("<invalid solution>")
		return
	}
	for r := 0; r < settings.Height; r++ {
		for c := 0; c < settings.Width; c++ {
			cell := result.Cells[r*settings.Width+c]
			switch cell {
			case navicust.Empty:
				fmt.Print(". ")
			case navicust.Forbidden:
				fmt.Print("# ")
			default:
				fmt.Printf("%d ", requirements[cell].PartIndex)
			}
		}
		fmt.Println()
	}
}
