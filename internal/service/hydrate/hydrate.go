// Package hydrate is the read-only loader that fills the session from
// the remote service: usage stats, history, the community prompt
// directory and the sponsor directory. Each fetch is independent and
// best-effort; a failure is logged and the previous in-memory value
// retained.
package hydrate

import (
	"context"
	"sync"
	"time"

	"playground-client/internal/logger"
	"playground-client/internal/playground"
	"playground-client/internal/session"
)

// Service hydrates session and directory state from the server.
type Service struct {
	api     playground.API
	session *session.State

	mu        sync.Mutex
	history   []session.GenerationResult
	community []playground.CommunityPrompt
	sponsors  []playground.Sponsor
}

// NewService creates a hydrator for the given session.
func NewService(api playground.API, sess *session.State) *Service {
	return &Service{api: api, session: sess}
}

// Refresh fetches stats, history, community prompts and sponsors. The
// failure of one fetch never blocks or invalidates the others.
func (s *Service) Refresh(ctx context.Context) {
	s.RefreshStats(ctx)
	s.RefreshHistory(ctx)
	s.RefreshCommunity(ctx)
	s.RefreshSponsors(ctx)
}

// RefreshStats fetches the authoritative usage counters and reconciles
// the session's optimistic view.
func (s *Service) RefreshStats(ctx context.Context) {
	stats, err := s.api.UserStats(ctx, s.session.UserID())
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to refresh usage stats, keeping current values")
		return
	}
	s.session.ReconcileUsage(*stats)
}

// RefreshHistory fetches the user's generation history.
func (s *Service) RefreshHistory(ctx context.Context) {
	entries, err := s.api.History(ctx, s.session.UserID())
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to refresh history, keeping current values")
		return
	}

	history := make([]session.GenerationResult, 0, len(entries))
	for _, entry := range entries {
		history = append(history, toResult(entry))
	}

	s.mu.Lock()
	s.history = history
	s.mu.Unlock()

	logger.Log.WithField("entries", len(history)).Debug("History refreshed")
}

// RefreshCommunity fetches the community prompt directory.
func (s *Service) RefreshCommunity(ctx context.Context) {
	prompts, err := s.api.CommunityPrompts(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to refresh community prompts, keeping current values")
		return
	}

	s.mu.Lock()
	s.community = prompts
	s.mu.Unlock()
}

// RefreshSponsors fetches the sponsor directory.
func (s *Service) RefreshSponsors(ctx context.Context) {
	sponsors, err := s.api.Sponsors(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("Failed to refresh sponsors, keeping current values")
		return
	}

	s.mu.Lock()
	s.sponsors = sponsors
	s.mu.Unlock()
}

// History returns the last fetched history, most recent first.
func (s *Service) History() []session.GenerationResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]session.GenerationResult, len(s.history))
	copy(out, s.history)
	return out
}

// Community returns the last fetched community prompts.
func (s *Service) Community() []playground.CommunityPrompt {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]playground.CommunityPrompt, len(s.community))
	copy(out, s.community)
	return out
}

// Sponsors returns the last fetched sponsor directory.
func (s *Service) Sponsors() []playground.Sponsor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]playground.Sponsor, len(s.sponsors))
	copy(out, s.sponsors)
	return out
}

// timestampFormats covers the server's sqlite timestamps and ISO dates.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func toResult(entry playground.HistoryEntry) session.GenerationResult {
	var ts time.Time
	for _, format := range timestampFormats {
		if parsed, err := time.Parse(format, entry.Timestamp); err == nil {
			ts = parsed
			break
		}
	}

	return session.GenerationResult{
		Prompt:      entry.Prompt,
		Output:      entry.Output,
		Fingerprint: entry.DNA,
		Parameters: session.GenerationParameters{
			Temperature: entry.Parameters.Temp,
			TopP:        entry.Parameters.TopP,
			Model:       entry.Parameters.Model,
			Persona:     entry.Parameters.Persona,
		},
		ModelUsed:             entry.ModelUsed,
		GenerationTimeSeconds: entry.GenerationTime,
		Timestamp:             ts,
	}
}
