package showdown

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/nathanieltooley/gokemon-showdown/battle"
	"github.com/nathanieltooley/gokemon-showdown/replay"
	"github.com/rs/zerolog"
)

// invalid choices resent with a random legal order before giving up and sending default
const maxRetries = 3

// worker plays one battle room. Everything it touches is owned by its goroutine.
type worker struct {
	r       *Runner
	tag     string
	session uuid.UUID
	battle  battle.Battle
	logger  zerolog.Logger

	// request waiting for the events it describes
	pending *battle.Request
	// a turn ended before its request arrived
	decideOnRequest bool
	rqid            int
	retries         int
}

func (w *worker) run(ctx context.Context, rm *room) error {
	defer close(rm.done)
	w.logger.Info().Msg("battle started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case message, ok := <-rm.frames:
			if !ok {
				w.logger.Warn().Int("turn", w.battle.Turn()).Msg("connection closed mid battle")
				return nil
			}

			if err := w.handle(message); err != nil {
				return err
			}
			if w.battle.Finished() {
				w.finish()
				return nil
			}
		}
	}
}

func (w *worker) handle(message Message) error {
	sawTurn, sawEvents, requested := false, false, false

	for _, line := range message.Lines {
		switch line[1] {
		case "request":
			request, err := ParseRequestLine(line)
			if err != nil {
				w.logger.Err(err).Msg("bad request payload")
				continue
			}
			if request != nil {
				w.pending = request
				requested = true
			}
		case "error":
			if err := w.handleError(Payload(line)); err != nil {
				return err
			}
		case "bigerror":
			w.logger.Warn().Str("message", Payload(line)).Msg("server error")
		default:
			sawEvents = true
			if line[1] == "turn" || line[1] == "teampreview" {
				sawTurn = true
			}
			w.apply(line)
		}
	}

	if w.battle.Finished() || w.pending == nil {
		if sawTurn {
			w.decideOnRequest = true
		}
		return nil
	}

	if w.pending.Wait {
		w.reconcile()
		return nil
	}

	forced := w.pending.AnyForced() && sawEvents
	if sawTurn || forced || (requested && w.decideOnRequest) {
		return w.decide()
	}
	return nil
}

func (w *worker) apply(line []string) {
	err := w.battle.ParseMessage(line)
	switch {
	case err == nil:
	case errors.Is(err, battle.ErrUnhandledEvent):
		w.logger.Warn().Str("line", strings.Join(line, "|")).Msg("unhandled event")
	default:
		w.logger.Err(err).Msg("applying event")
	}
}

// reconcile applies the pending request. Mismatches are logged; the request is authoritative
// for what it describes so play continues.
func (w *worker) reconcile() {
	request := w.pending
	w.pending = nil
	w.decideOnRequest = false
	w.rqid = request.RQID

	if err := w.battle.ParseRequest(request); err != nil {
		w.logger.Err(err).Msg("reconciling request")
	}
}

func (w *worker) decide() error {
	w.reconcile()
	w.retries = 0

	var order battle.Order
	if w.battle.TeamPreview() {
		order = w.r.player.TeamPreview(w.battle)
	} else {
		order = w.r.player.ChooseMove(w.battle)
	}

	command, err := battle.ToWireCommand(w.battle, order, battle.ConvertOptions{Strict: w.r.opts.Strict})
	if err != nil {
		return fmt.Errorf("%s turn %d: %w", w.tag, w.battle.Turn(), err)
	}

	if err := w.send(command); err != nil {
		return err
	}
	if w.r.opts.OnDecision != nil {
		w.r.opts.OnDecision(w.battle)
	}
	return nil
}

func (w *worker) send(command string) error {
	w.logger.Debug().Int("turn", w.battle.Turn()).Str("command", command).Msg("choosing")
	return w.r.conn.Send(w.tag, command+"|"+strconv.Itoa(w.rqid))
}

// handleError deals with the server rejecting a choice. Unavailable choices come with a
// fresh request, invalid ones don't.
func (w *worker) handleError(message string) error {
	switch {
	case strings.HasPrefix(message, "[Unavailable choice]"):
		w.logger.Warn().Str("error", message).Msg("choice unavailable, waiting for the new request")
		w.decideOnRequest = true
		return nil
	case strings.HasPrefix(message, "[Invalid choice]"):
		if strings.Contains(message, "There's nothing to choose") {
			return nil
		}
	default:
		w.logger.Warn().Str("error", message).Msg("server error")
		return nil
	}

	w.retries++
	w.logger.Warn().Str("error", message).Int("retry", w.retries).Msg("choice rejected")

	valid := w.battle.ValidOrders()
	if w.retries > maxRetries || len(valid) == 0 {
		return w.send(battle.DefaultOrder{}.Message())
	}
	return w.send(valid[rand.IntN(len(valid))].Message())
}

func (w *worker) finish() {
	result := Result{
		Tag:     w.tag,
		Session: w.session,
		Won:     w.battle.Won(),
		Tied:    w.battle.Tied(),
		Turns:   w.battle.Turn(),
	}

	if dir := w.r.opts.ReplayDir; dir != "" {
		path, err := replay.Save(dir, w.battle)
		if err != nil {
			w.logger.Err(err).Msg("saving replay")
		} else {
			result.Replay = path
		}
	}

	if err := w.r.conn.Send("", "/leave "+w.tag); err != nil {
		w.logger.Err(err).Msg("leaving room")
	}

	w.logger.Info().Bool("won", result.Won).Bool("tied", result.Tied).Int("turns", result.Turns).Msg("battle finished")
	w.r.record(result)
}
