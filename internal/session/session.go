// Package session holds the mutable "current generation" view: prompt,
// parameters, latest result and error, optimistic usage counters, and
// the favorites collection. All session mutations are local; nothing
// here touches the network.
package session

import (
	"sync"
	"time"

	"playground-client/internal/collection"
	"playground-client/internal/logger"
	"playground-client/internal/playground"
	"playground-client/pkg/validation"
)

// FavoritesCapacity bounds the favorites collection.
const FavoritesCapacity = 50

const (
	favoritePromptLimit = 100
	favoriteOutputLimit = 200
)

// GenerationParameters are the user-editable request parameters.
type GenerationParameters struct {
	Temperature float64
	TopP        float64
	Model       string
	Persona     string
}

// ParamsUpdate is a partial parameter update; nil fields are untouched.
type ParamsUpdate struct {
	Temperature *float64
	TopP        *float64
	Model       *string
	Persona     *string
}

// GenerationResult is one completed generation. Immutable once created.
type GenerationResult struct {
	Prompt                string
	Output                string
	Fingerprint           string
	Parameters            GenerationParameters
	ModelUsed             string
	GenerationTimeSeconds float64
	Timestamp             time.Time

	// Audio is the synthesized speech for Output, present only when
	// voice was requested with the generation.
	Audio []byte
}

// FavoriteEntry is a saved generation in the bounded favorites store.
type FavoriteEntry struct {
	ID          int64     `json:"id"`
	Prompt      string    `json:"prompt"`
	Output      string    `json:"output"`
	Fingerprint string    `json:"dna"`
	Timestamp   time.Time `json:"timestamp"`
}

// State is the session context object passed to the orchestrator and
// the CLI. A mutex guards it because the post-generate history refresh
// runs on its own goroutine.
type State struct {
	mu sync.Mutex

	userID    string
	prompt    string
	params    GenerationParameters
	latest    *GenerationResult
	lastErr   error
	usage     playground.UsageStats
	favorites []FavoriteEntry

	store     *collection.Bounded[FavoriteEntry]
	validator *validation.ParamsValidator
}

// NewState creates a session for userID with the given defaults and
// hydrates favorites from the store.
func NewState(userID string, store *collection.Bounded[FavoriteEntry], defaults GenerationParameters) *State {
	s := &State{
		userID: userID,
		params: defaults,
		usage: playground.UsageStats{
			DailyLimit:   playground.Unlimited,
			MonthlyLimit: playground.Unlimited,
		},
		store:     store,
		validator: validation.NewParamsValidator(),
	}
	s.favorites = store.Load(s.favoritesKey())
	return s
}

func (s *State) favoritesKey() string {
	return s.userID + "/favorites"
}

// UserID returns the session's installation id.
func (s *State) UserID() string {
	return s.userID
}

// SetPrompt replaces the editable prompt text.
func (s *State) SetPrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt = prompt
}

// Prompt returns the current prompt text.
func (s *State) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt
}

// SetParameters merges a partial update into the current parameters,
// clamping numeric fields to their declared ranges.
func (s *State) SetParameters(update ParamsUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.Temperature != nil {
		s.params.Temperature = s.validator.ClampTemperature(*update.Temperature)
	}
	if update.TopP != nil {
		s.params.TopP = s.validator.ClampTopP(*update.TopP)
	}
	if update.Model != nil {
		s.params.Model = *update.Model
	}
	if update.Persona != nil {
		s.params.Persona = *update.Persona
	}
}

// Parameters returns a copy of the current parameters.
func (s *State) Parameters() GenerationParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// SetResult records a successful generation as the current view and
// clears the last error.
func (s *State) SetResult(result *GenerationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = result
	s.lastErr = nil
}

// SetError records a failed generation. The prior successful result
// stays visible.
func (s *State) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// LatestResult returns the most recent successful generation, or nil.
func (s *State) LatestResult() *GenerationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// LastError returns the most recent generation error, or nil.
func (s *State) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Restore overwrites prompt, output, fingerprint and parameters from a
// history or favorites entry. Entirely local.
func (s *State) Restore(result GenerationResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompt = result.Prompt
	s.params = result.Parameters
	s.latest = &result
	s.lastErr = nil
}

// FavoriteCurrent saves the current generation into the favorites
// store. A no-op when there is nothing to save.
func (s *State) FavoriteCurrent() *FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prompt == "" || s.latest == nil || s.latest.Output == "" {
		return nil
	}

	entry := FavoriteEntry{
		ID:          time.Now().UnixMilli(),
		Prompt:      truncate(s.prompt, favoritePromptLimit),
		Output:      truncate(s.latest.Output, favoriteOutputLimit),
		Fingerprint: s.latest.Fingerprint,
		Timestamp:   time.Now(),
	}

	s.favorites = s.store.Insert(s.favorites, entry)
	if err := s.store.Save(s.favoritesKey(), s.favorites); err != nil {
		logger.Log.WithError(err).Warn("Failed to persist favorites")
	}

	return &entry
}

// Favorites returns the current favorites, newest first.
func (s *State) Favorites() []FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]FavoriteEntry, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// RemoveFavorite deletes the entry with the given id. Returns whether
// anything was removed.
func (s *State) RemoveFavorite(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.favorites {
		if entry.ID == id {
			s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
			if err := s.store.Save(s.favoritesKey(), s.favorites); err != nil {
				logger.Log.WithError(err).Warn("Failed to persist favorites")
			}
			return true
		}
	}
	return false
}

// BumpUsage optimistically increments all three usage counters after a
// successful generation. The server reconciles later.
func (s *State) BumpUsage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.usage.DailyUsage++
	s.usage.MonthlyUsage++
	s.usage.TotalUsage++
}

// ReconcileUsage overwrites the counters with the server's truth.
func (s *State) ReconcileUsage(stats playground.UsageStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage = stats
}

// Usage returns a copy of the current usage counters.
func (s *State) Usage() playground.UsageStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usage
}

// truncate limits s to max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
