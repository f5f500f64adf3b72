package showdown

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/nathanieltooley/gokemon-showdown/battle"
	"github.com/nathanieltooley/gokemon-showdown/dex"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type RunnerOptions struct {
	Username string
	Format   string
	// Team is a packed team. Random formats leave it empty.
	Team string
	// Battles stops the runner after this many finished battles. Zero plays until the
	// connection closes.
	Battles int
	// MaxConcurrent caps how many battles run at once.
	MaxConcurrent int
	// QueueSize bounds the frames buffered for each battle room.
	QueueSize int
	Strict    bool
	// Search looks for ladder battles in Format. Challenge, when set, challenges that user
	// instead. Incoming challenges in Format are always accepted.
	Search    bool
	Challenge string
	ReplayDir string
	Dex       *dex.Data
	// Login claims Username once the server sends its challenge string.
	Login func(ctx context.Context, challstr string) error
	// OnDecision sees the battle right after each order is sent. Called from the battle's
	// goroutine.
	OnDecision func(b battle.Battle)
}

// Result is the outcome of one finished battle.
type Result struct {
	Tag     string
	Session uuid.UUID
	Won     bool
	Tied    bool
	Turns   int
	// Replay is the saved replay path, empty when replays are off.
	Replay string
}

// Runner reads frames from the server and plays every battle it joins, each on its own
// goroutine.
type Runner struct {
	conn   Conn
	player Player
	opts   RunnerOptions
	logger zerolog.Logger

	mu        sync.Mutex
	username  string
	ready     bool
	searching bool
	active    int
	started   int
	rooms     map[string]*room
	results   []Result

	done     chan struct{}
	doneOnce sync.Once
}

type room struct {
	frames chan Message
	// closed when the battle goroutine exits
	done chan struct{}
}

func NewRunner(conn Conn, player Player, opts RunnerOptions, logger zerolog.Logger) *Runner {
	if opts.Dex == nil {
		opts.Dex = dex.MustDefault()
	}
	opts.MaxConcurrent = max(opts.MaxConcurrent, 1)
	opts.QueueSize = max(opts.QueueSize, 1)

	return &Runner{
		conn:     conn,
		player:   player,
		opts:     opts,
		logger:   logger,
		username: opts.Username,
		rooms:    map[string]*room{},
		done:     make(chan struct{}),
	}
}

// Results returns the battles finished so far.
func (r *Runner) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.results)
}

// Run blocks until the requested number of battles is done, the server closes the
// connection, ctx is cancelled, or a battle fails.
func (r *Runner) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	stopped := make(chan struct{})

	group.Go(func() error {
		select {
		case <-ctx.Done():
		case <-r.done:
		case <-stopped:
		}
		if err := r.conn.Close(); err != nil {
			r.logger.Debug().Err(err).Msg("closing connection")
		}
		return nil
	})

	group.Go(func() error {
		defer close(stopped)
		return r.read(ctx, group)
	})

	return group.Wait()
}

func (r *Runner) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func (r *Runner) read(ctx context.Context, group *errgroup.Group) error {
	defer r.closeRooms()

	for {
		message, err := r.conn.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) || r.finished() || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading from server: %w", err)
		}

		if message.IsBattle() {
			r.route(ctx, group, message)
			continue
		}

		if err := r.handleGlobal(ctx, message); err != nil {
			return err
		}
	}
}

func (r *Runner) closeRooms() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for tag, rm := range r.rooms {
		close(rm.frames)
		delete(r.rooms, tag)
	}
}

func (r *Runner) route(ctx context.Context, group *errgroup.Group, message Message) {
	r.mu.Lock()
	rm, ok := r.rooms[message.Room]
	if !ok && message.Has("init") {
		rm = &room{
			frames: make(chan Message, r.opts.QueueSize),
			done:   make(chan struct{}),
		}
		r.rooms[message.Room] = rm
		r.started++
		r.active++
		r.searching = false

		w := r.newWorker(message.Room)
		group.Go(func() error { return w.run(ctx, rm) })
	}
	search := r.shouldSearch()
	r.mu.Unlock()

	if search {
		r.search()
	}

	if rm == nil {
		r.logger.Debug().Str("room", message.Room).Msg("dropping frame for a room we aren't playing in")
		return
	}

	// blocks while the battle is behind, keeping per room memory bounded
	select {
	case rm.frames <- message:
	case <-rm.done:
	case <-ctx.Done():
	}
}

func (r *Runner) newWorker(tag string) *worker {
	format := FormatFromTag(tag)
	gen := GenFromFormat(format)
	provider := r.opts.Dex.WithGen(gen)

	if strings.Contains(format, "triples") {
		r.logger.Warn().Str("battle", tag).Str("format", format).Msg("triples formats aren't supported, only the first slot is tracked")
	}

	var b battle.Battle
	if IsDoublesFormat(format) {
		b = battle.NewDoubleBattle(tag, r.username, provider, gen)
	} else {
		b = battle.NewSingleBattle(tag, r.username, provider, gen)
	}

	session := uuid.New()
	return &worker{
		r:       r,
		tag:     tag,
		session: session,
		battle:  b,
		logger:  r.logger.With().Str("battle", tag).Str("session", session.String()).Logger(),
	}
}

// shouldSearch must be called with mu held. It claims the search slot when it returns true.
func (r *Runner) shouldSearch() bool {
	if !r.opts.Search || !r.ready || r.searching || r.finished() {
		return false
	}
	if r.active >= r.opts.MaxConcurrent {
		return false
	}
	if r.opts.Battles > 0 && r.started >= r.opts.Battles {
		return false
	}

	r.searching = true
	return true
}

func (r *Runner) search() {
	if err := r.conn.Send("", "/utm "+packedOrNull(r.opts.Team)); err != nil {
		r.logger.Err(err).Msg("setting team")
		return
	}
	if err := r.conn.Send("", "/search "+r.opts.Format); err != nil {
		r.logger.Err(err).Msg("searching for a battle")
		return
	}
	r.logger.Info().Str("format", r.opts.Format).Msg("searching")
}

func packedOrNull(team string) string {
	if team == "" {
		return "null"
	}
	return team
}

func (r *Runner) handleGlobal(ctx context.Context, message Message) error {
	for _, line := range message.Lines {
		switch line[1] {
		case "challstr":
			if r.opts.Login == nil {
				continue
			}
			if err := r.opts.Login(ctx, Payload(line)); err != nil {
				return fmt.Errorf("logging in as %s: %w", r.opts.Username, err)
			}
		case "updateuser":
			r.updateUser(line)
		case "updatechallenges":
			r.acceptChallenges(Payload(line))
		case "popup":
			r.logger.Warn().Str("message", Payload(line)).Msg("server popup")
		case "nametaken":
			return fmt.Errorf("name %s is taken: %s", r.opts.Username, Payload(line))
		default:
			r.logger.Trace().Strs("line", line).Msg("global message")
		}
	}
	return nil
}

// updateuser| ash|1|avatar|settings, with a rank symbol or space before the name
func (r *Runner) updateUser(line []string) {
	if len(line) < 4 {
		return
	}
	name := strings.TrimLeft(line[2], " +%@*&~#")
	named := line[3] == "1"

	if !named || (r.opts.Username != "" && dex.ToID(name) != dex.ToID(r.opts.Username)) {
		return
	}

	r.mu.Lock()
	first := !r.ready
	r.username = name
	r.ready = true
	search := r.shouldSearch()
	r.mu.Unlock()

	if first {
		r.logger.Info().Str("username", name).Msg("logged in")
		if r.opts.Challenge != "" {
			r.challenge()
		}
	}
	if search {
		r.search()
	}
}

func (r *Runner) challenge() {
	if err := r.conn.Send("", "/utm "+packedOrNull(r.opts.Team)); err != nil {
		r.logger.Err(err).Msg("setting team")
		return
	}
	if err := r.conn.Send("", fmt.Sprintf("/challenge %s, %s", r.opts.Challenge, r.opts.Format)); err != nil {
		r.logger.Err(err).Msg("sending challenge")
	}
}

func (r *Runner) acceptChallenges(payload string) {
	var challenges struct {
		ChallengesFrom map[string]string `json:"challengesFrom"`
	}
	if err := json.Unmarshal([]byte(payload), &challenges); err != nil {
		r.logger.Warn().Err(err).Msg("bad updatechallenges payload")
		return
	}

	users := make([]string, 0, len(challenges.ChallengesFrom))
	for user, format := range challenges.ChallengesFrom {
		if format == r.opts.Format {
			users = append(users, user)
		} else {
			r.logger.Info().Str("from", user).Str("format", format).Msg("ignoring challenge in another format")
		}
	}
	slices.Sort(users)

	for _, user := range users {
		r.mu.Lock()
		full := r.active >= r.opts.MaxConcurrent || r.finished()
		r.mu.Unlock()
		if full {
			return
		}

		if err := r.conn.Send("", "/utm "+packedOrNull(r.opts.Team)); err != nil {
			r.logger.Err(err).Msg("setting team")
			return
		}
		if err := r.conn.Send("", "/accept "+user); err != nil {
			r.logger.Err(err).Str("from", user).Msg("accepting challenge")
			return
		}
	}
}

// record stores a finished battle and looks for the next one.
func (r *Runner) record(result Result) {
	r.mu.Lock()
	delete(r.rooms, result.Tag)
	r.results = append(r.results, result)
	r.active--
	if r.opts.Battles > 0 && len(r.results) >= r.opts.Battles {
		r.doneOnce.Do(func() { close(r.done) })
	}
	search := r.shouldSearch()
	r.mu.Unlock()

	if search {
		r.search()
	}
}
