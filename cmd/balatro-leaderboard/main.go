package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/apiclient"
	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/pterm/pterm"
)

func main() {
	apiFlag := flag.String("api", "http://localhost:8080", "base URL of the game server")
	limitFlag := flag.Int("limit", 10, "number of entries to show")
	offsetFlag := flag.Int("offset", 0, "number of entries to skip")
	userFlag := flag.String("user", "", "only show this user's runs, with their best rank")
	timeoutFlag := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Parse()

	client := apiclient.NewClient(*apiFlag)
	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Loading leaderboard...")
	list, err := client.ListHighscores(ctx, *limitFlag, *offsetFlag, *userFlag)
	spinner.Stop()
	if err != nil {
		pterm.Error.Printfln("Could not load highscores: %v", err)
		os.Exit(1)
	}

	if len(list.Highscores) == 0 {
		pterm.Info.Println("No highscores yet.")
		return
	}

	data := leaderboardTable(list)
	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render(); err != nil {
		pterm.Error.Printfln("Could not render table: %v", err)
		os.Exit(1)
	}

	footer := fmt.Sprintf("Showing %d of %d", len(list.Highscores), list.TotalCount)
	if list.HasMore {
		footer += fmt.Sprintf(", next page: -offset %d", list.Offset+list.Limit)
	}
	pterm.Info.Println(footer)

	if *userFlag == "" {
		return
	}
	best, err := client.UserHighscore(ctx, *userFlag)
	switch {
	case errors.Is(err, apiclient.ErrNotFound):
		pterm.Info.Printfln("%s has no highscore yet", *userFlag)
	case err != nil:
		pterm.Error.Printfln("Could not load best score: %v", err)
		os.Exit(1)
	default:
		pterm.Info.Printfln("Best score %s, rank %s", pterm.LightCyan(best.Highscore.Score), pterm.LightCyan(best.Rank))
	}
}

// leaderboardTable lays out one page. Pos is the list position; tied scores
// share a rank, which only the -user lookup reports.
func leaderboardTable(list *dto.HighscoreList) pterm.TableData {
	data := pterm.TableData{{"Pos", "Player", "Score", "Blind", "Jokers", "Date"}}
	for i, h := range list.Highscores {
		data = append(data, []string{
			strconv.Itoa(list.Offset + i + 1),
			h.PlayerName,
			strconv.FormatInt(h.Score, 10),
			strconv.Itoa(h.FinalBlind),
			strings.Join(h.JokersUsed, ", "),
			h.DateAchieved.Format("2006-01-02"),
		})
	}
	return data
}
