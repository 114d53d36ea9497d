package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Viswas-Programs/survivreloaded-server/internal/domain"
	"github.com/Viswas-Programs/survivreloaded-server/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	svc := &storage.JournalService{}

	switch os.Args[1] {
	case "info":
		session, err := svc.Load(os.Args[2])
		if err != nil {
			fmt.Printf("Failed to load journal: %v\n", err)
			os.Exit(1)
		}
		printInfo(session)

	case "dump":
		session, err := svc.Load(os.Args[2])
		if err != nil {
			fmt.Printf("Failed to load journal: %v\n", err)
			os.Exit(1)
		}
		printInfo(session)
		fmt.Println()
		for _, act := range session.Actions {
			fmt.Printf("  tick=%-8d player=%-6d %-14s %s\n",
				act.Tick, act.PlayerID, act.Action.String(), string(act.Payload))
		}

	default:
		printHelp()
	}
}

func printInfo(s *domain.JournalSession) {
	fmt.Printf("Seed:      %d\n", s.Seed)
	fmt.Printf("Map size:  %.0f\n", s.MapSize)
	fmt.Printf("Recorded:  %s\n", time.Unix(s.Timestamp, 0).Format(time.RFC3339))
	fmt.Printf("Actions:   %d\n", len(s.Actions))

	// Разбивка по типам команд
	counts := map[string]int{}
	for _, act := range s.Actions {
		counts[act.Action.String()]++
	}
	for action, n := range counts {
		fmt.Printf("  %-14s %d\n", action, n)
	}
}

func printHelp() {
	fmt.Println(`Journal Utility - чтение журналов матчей (.svrj)
Commands:
  info <file>  - заголовок журнала и разбивка команд
  dump <file>  - полный листинг команд`)
}
