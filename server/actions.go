package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/anhbaysgalan1/balatro/internal/engine/domain/game"
)

const requestTimeout = 10 * time.Second

var errNoRun = errors.New("no run in progress, start or load a game first")

// safeSend sends a message to a client's send channel without panicking on closed channels
func safeSend(c *Client, message []byte) {
	defer func() {
		if r := recover(); r != nil {
			slog.Default().Warn("Attempted to send message to closed channel", "user_id", c.userID)
		}
	}()

	select {
	case c.send <- message:
	default:
		slog.Default().Warn("Unable to send message to client, channel unavailable", "user_id", c.userID)
	}
}

func marshal(message interface{}) []byte {
	resp, err := json.Marshal(message)
	if err != nil {
		slog.Default().Warn("Marshal websocket message", "error", err)
	}
	return resp
}

func currentTime() string {
	return fmt.Sprintf("%d:%02d", time.Now().Hour(), time.Now().Minute())
}

func (c *Client) sendError(message string) {
	safeSend(c, marshal(errorMessage{base{actionError}, message, currentTime()}))
}

func (c *Client) sendGame() {
	safeSend(c, marshal(updateGame{base{actionUpdateGame}, c.hub.queries.GameView(c.session)}))
}

func (c *Client) run() (*game.Session, error) {
	if c.session == nil {
		return nil, errNoRun
	}
	return c.session, nil
}

func handleNewGame(c *Client, msg newGame) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	session, err := c.hub.commands.NewGame(ctx, c.userID, msg.NewGameCommand)
	if err != nil {
		return err
	}
	c.session = session
	c.sendGame()
	return nil
}

func handlePlayHand(c *Client, cardIDs []string) error {
	session, err := c.run()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	result, err := c.hub.commands.PlayHand(ctx, session, dto.PlayHandCommand{CardIDs: cardIDs})
	if err != nil {
		return err
	}
	safeSend(c, marshal(handResult{base{actionHandResult}, result, c.hub.queries.GameView(session)}))
	return nil
}

func handleDiscard(c *Client, cardIDs []string) error {
	session, err := c.run()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := c.hub.commands.Discard(ctx, session, dto.DiscardCommand{CardIDs: cardIDs}); err != nil {
		return err
	}
	c.sendGame()
	return nil
}

func handlePreviewHand(c *Client, cardIDs []string) error {
	session, err := c.run()
	if err != nil {
		return err
	}

	preview, err := c.hub.queries.PreviewHand(session, dto.PreviewHandCommand{CardIDs: cardIDs})
	if err != nil {
		return err
	}
	safeSend(c, marshal(handPreview{base{actionHandPreview}, preview}))
	return nil
}

func handleUseTarot(c *Client, msg useTarot) error {
	session, err := c.run()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	applied, err := c.hub.commands.UseTarot(ctx, session, msg.UseTarotCommand)
	if err != nil {
		return err
	}
	if !applied {
		// The tarot is kept when it has nothing to act on
		c.sendError("tarot had no valid target")
	}
	c.sendGame()
	return nil
}

func handleBuyItem(c *Client, index int) error {
	session, err := c.run()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	bought, err := c.hub.commands.BuyItem(ctx, session, dto.BuyItemCommand{Index: index})
	if err != nil {
		return err
	}
	safeSend(c, marshal(purchase{base{actionPurchase}, bought, c.hub.queries.GameView(session)}))
	return nil
}

func handleSellJoker(c *Client, index int) error {
	session, err := c.run()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if _, err := c.hub.commands.SellJoker(ctx, session, dto.JokerCommand{Index: index}); err != nil {
		return err
	}
	c.sendGame()
	return nil
}

func handleToggleJoker(c *Client, index int) error {
	session, err := c.run()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := c.hub.commands.ToggleJoker(ctx, session, dto.JokerCommand{Index: index}); err != nil {
		return err
	}
	c.sendGame()
	return nil
}

func handleRerollShop(c *Client) error {
	session, err := c.run()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := c.hub.commands.RerollShop(ctx, session); err != nil {
		return err
	}
	c.sendGame()
	return nil
}

func handleLeaveShop(c *Client) error {
	session, err := c.run()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	c.hub.commands.LeaveShop(ctx, session)
	c.sendGame()
	return nil
}

func handleSaveGame(c *Client) error {
	session, err := c.run()
	if err != nil {
		return err
	}
	if c.hub.games == nil {
		return errors.New("saving is not available")
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	result, err := c.hub.games.Save(ctx, dto.GameStateFromDocument(session.Snapshot()))
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	safeSend(c, marshal(gameSaved{base{actionGameSaved}, result}))
	return nil
}

func handleLoadGame(c *Client) error {
	if c.hub.games == nil {
		return errors.New("loading is not available")
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	state, err := c.hub.games.Load(ctx, c.userID)
	if err != nil {
		return fmt.Errorf("load game: %w", err)
	}
	session, err := game.Restore(state.Document())
	if err != nil {
		return fmt.Errorf("load game: %w", err)
	}
	c.session = session
	slog.Info("Run resumed", "user_id", c.userID, "run_id", session.ID)
	c.sendGame()
	return nil
}

func handleSubmitHighscore(c *Client, msg submitHighscore) error {
	session, err := c.run()
	if err != nil {
		return err
	}
	if c.hub.scores == nil {
		return errors.New("highscores are not available")
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	progress := session.Progress()
	highscore, err := c.hub.scores.Submit(ctx, dto.CreateHighscoreRequest{
		UserID:     c.userID,
		PlayerName: msg.PlayerName,
		Score:      progress.TotalScore,
		FinalBlind: progress.CurrentBlind,
		JokersUsed: session.JokersUsed(),
		Seed:       session.Seed,
	})
	if err != nil {
		return fmt.Errorf("submit highscore: %w", err)
	}

	safeSend(c, marshal(highscoreSaved{base{actionHighscoreSaved}, dto.CreateHighscoreResult{
		InsertedID: highscore.ID.String(),
		Score:      highscore.Score,
	}}))
	c.hub.publishLeaderboard(marshal(leaderboardUpdated{base{actionLeaderboardUpdated}, highscore.PlayerName, highscore.Score}))
	return nil
}

func handleRunHistory(c *Client) error {
	session, err := c.run()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	history, err := c.hub.queries.RunHistory(ctx, session.ID)
	if err != nil {
		return err
	}
	safeSend(c, marshal(runEvents{base{actionRunEvents}, history}))
	return nil
}
