package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-matchups/internal/domain/matchup"
	"github.com/riskibarqy/fantasy-matchups/internal/domain/player"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/cache"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultPlayerLookupBatchSize = 200
	emptySlotName                = "Empty"
)

// PlayerNameStrategy is one tier of the name fallback chain. Lookup returns
// the names it found; ids it could not name are simply absent.
type PlayerNameStrategy interface {
	Name() string
	Lookup(ctx context.Context, ids []string) (map[string]string, error)
	// Cacheable reports whether names from this tier go into the name cache.
	Cacheable() bool
}

// PlaceholderName is the display name used when no tier knows a player.
func PlaceholderName(id string) string {
	return "Player " + id
}

// PlayerResolver maps external player ids to display names. It never fails:
// every requested id gets a name.
type PlayerResolver struct {
	names      *cache.Store[string, string]
	strategies []PlayerNameStrategy
	logger     *logging.Logger
}

func NewPlayerResolver(names *cache.Store[string, string], strategies []PlayerNameStrategy, logger *logging.Logger) *PlayerResolver {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerResolver{
		names:      names,
		strategies: strategies,
		logger:     logger,
	}
}

// DefaultPlayerNameStrategies is store, then directory, then placeholder.
func DefaultPlayerNameStrategies(
	playerRepo player.Repository,
	batchSize int,
	directory *cache.Store[string, PlayerDirectory],
	source PlayerDirectorySource,
	directoryTimeout time.Duration,
) []PlayerNameStrategy {
	strategies := make([]PlayerNameStrategy, 0, 3)
	if playerRepo != nil {
		strategies = append(strategies, NewStorePlayerNameStrategy(playerRepo, batchSize))
	}
	if source != nil && directory != nil {
		strategies = append(strategies, NewDirectoryPlayerNameStrategy(directory, source, directoryTimeout))
	}
	return append(strategies, PlaceholderPlayerNameStrategy{})
}

func (r *PlayerResolver) Resolve(ctx context.Context, ids []string) map[string]string {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerResolver.Resolve",
		attribute.Int("players.requested", len(ids)),
	)
	defer span.End()

	out := make(map[string]string, len(ids))
	pending := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if id == matchup.EmptySlotID {
			out[id] = emptySlotName
			continue
		}
		if name, ok := r.names.Get(ctx, id); ok {
			out[id] = name
			continue
		}
		pending = append(pending, id)
	}

	for _, strategy := range r.strategies {
		if len(pending) == 0 {
			break
		}

		found, err := strategy.Lookup(ctx, pending)
		if err != nil {
			r.logger.WarnContext(ctx, "player name strategy failed, falling through",
				"strategy", strategy.Name(),
				"pending", len(pending),
				"error", err,
			)
			continue
		}

		remaining := pending[:0]
		for _, id := range pending {
			name := strings.TrimSpace(found[id])
			if name == "" {
				remaining = append(remaining, id)
				continue
			}
			out[id] = name
			if strategy.Cacheable() {
				r.names.Set(ctx, id, name)
			}
		}
		pending = remaining
	}

	for _, id := range pending {
		out[id] = PlaceholderName(id)
	}

	return out
}

// NameOf looks an id up in a resolved map, falling back to the placeholder.
func NameOf(names map[string]string, id string) string {
	if id == matchup.EmptySlotID {
		return emptySlotName
	}
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return PlaceholderName(id)
}

type StorePlayerNameStrategy struct {
	repo      player.Repository
	batchSize int
}

func NewStorePlayerNameStrategy(repo player.Repository, batchSize int) *StorePlayerNameStrategy {
	if batchSize <= 0 {
		batchSize = DefaultPlayerLookupBatchSize
	}
	return &StorePlayerNameStrategy{repo: repo, batchSize: batchSize}
}

func (s *StorePlayerNameStrategy) Name() string { return "store" }

func (s *StorePlayerNameStrategy) Cacheable() bool { return true }

// Lookup queries the store in sequential batches. A failing batch fails the
// tier so every id falls through to the next one.
func (s *StorePlayerNameStrategy) Lookup(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for start := 0; start < len(ids); start += s.batchSize {
		end := min(start+s.batchSize, len(ids))
		players, err := s.repo.FindByExternalIDs(ctx, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("find players batch=%d-%d: %w", start, end, err)
		}
		for _, p := range players {
			if name := p.Name(); name != "" {
				out[p.ExternalID] = name
			}
		}
	}
	return out, nil
}

type DirectoryPlayerNameStrategy struct {
	directory *cache.Store[string, PlayerDirectory]
	source    PlayerDirectorySource
	timeout   time.Duration
}

func NewDirectoryPlayerNameStrategy(directory *cache.Store[string, PlayerDirectory], source PlayerDirectorySource, timeout time.Duration) *DirectoryPlayerNameStrategy {
	if timeout <= 0 {
		timeout = 2 * DefaultScoringTimeout
	}
	return &DirectoryPlayerNameStrategy{directory: directory, source: source, timeout: timeout}
}

func (s *DirectoryPlayerNameStrategy) Name() string { return "directory" }

func (s *DirectoryPlayerNameStrategy) Cacheable() bool { return true }

// Lookup reads the whole directory through the cache, so concurrent callers
// share a single download per TTL window.
func (s *DirectoryPlayerNameStrategy) Lookup(ctx context.Context, ids []string) (map[string]string, error) {
	directory, err := s.directory.GetOrLoad(ctx, playerDirectoryKey, func(ctx context.Context) (PlayerDirectory, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		return s.source.FetchPlayerDirectory(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("load player directory: %w", err)
	}

	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if name, ok := directory[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

type PlaceholderPlayerNameStrategy struct{}

func (PlaceholderPlayerNameStrategy) Name() string { return "placeholder" }

func (PlaceholderPlayerNameStrategy) Cacheable() bool { return false }

func (PlaceholderPlayerNameStrategy) Lookup(_ context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		out[id] = PlaceholderName(id)
	}
	return out, nil
}

// collectPlayerIDs gathers every player id in the snapshots, sorted.
func collectPlayerIDs(snapshots ...*ScoringSnapshot) []string {
	seen := make(map[string]struct{})
	for _, s := range snapshots {
		if s == nil {
			continue
		}
		for _, id := range s.Starters {
			seen[id] = struct{}{}
		}
		for _, id := range s.AllPlayers {
			seen[id] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
