// Package generation is the request orchestrator: single and batched
// generation calls, voice synthesis, the per-request state machine and
// the optimistic usage accounting around them.
package generation

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"playground-client/internal/dna"
	apperrors "playground-client/internal/errors"
	"playground-client/internal/logger"
	"playground-client/internal/playground"
	"playground-client/internal/session"
	"playground-client/pkg/validation"
)

// RequestState is the orchestrator's per-request state machine:
// Idle -> Pending -> {Success, Failed, TimedOut} -> Idle.
type RequestState string

const (
	StateIdle     RequestState = "idle"
	StatePending  RequestState = "pending"
	StateSuccess  RequestState = "success"
	StateFailed   RequestState = "failed"
	StateTimedOut RequestState = "timed_out"
)

// ErrBusy rejects a foreground generation while another is pending.
var ErrBusy = apperrors.New(apperrors.KindService, "a generation is already in progress")

// HistoryRefresher is the post-generate hydration hook.
type HistoryRefresher interface {
	RefreshHistory(ctx context.Context)
}

// BatchItemResult is the outcome of one prompt in a batch. Failed items
// carry a readable error marker in Output and no fingerprint.
type BatchItemResult struct {
	Prompt      string
	Output      string
	Fingerprint string
	Err         error
}

// Service orchestrates generation requests against the playground API.
type Service struct {
	api       playground.API
	session   *session.State
	refresher HistoryRefresher

	generateTimeout time.Duration
	voiceLang       string
	voiceEnabled    bool
	validator       *validation.ParamsValidator

	mu    sync.Mutex
	state RequestState
}

// NewService creates the orchestrator. refresher may be nil when no
// post-generate hydration is wanted (tests, batch-only tools).
func NewService(api playground.API, sess *session.State, refresher HistoryRefresher, generateTimeout time.Duration, voiceLang string) *Service {
	if generateTimeout <= 0 {
		generateTimeout = 120 * time.Second
	}
	return &Service{
		api:             api,
		session:         sess,
		refresher:       refresher,
		generateTimeout: generateTimeout,
		voiceLang:       voiceLang,
		validator:       validation.NewParamsValidator(),
		state:           StateIdle,
	}
}

// SetVoiceEnabled controls whether generate requests ask the server to
// attach synthesized audio.
func (s *Service) SetVoiceEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voiceEnabled = enabled
}

// State returns the current request state. Observing a terminal state
// returns the machine to Idle.
func (s *Service) State() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.state
	switch state {
	case StateSuccess, StateFailed, StateTimedOut:
		s.state = StateIdle
	}
	return state
}

// begin transitions Idle -> Pending, rejecting overlap.
func (s *Service) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StatePending {
		return ErrBusy
	}
	s.state = StatePending
	return nil
}

func (s *Service) finish(state RequestState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Generate issues a single generation request for prompt with the
// session's current parameters. On success the session's current view
// and optimistic usage counters are updated and a best-effort history
// refresh is kicked off in the background.
func (s *Service) Generate(ctx context.Context, prompt string) (*session.GenerationResult, error) {
	if err := s.validator.ValidatePrompt(prompt); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "rejecting generation", err)
	}

	if err := s.begin(); err != nil {
		return nil, err
	}

	result, err := s.generateOnce(ctx, prompt, s.session.Parameters())
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindTimeout) {
			s.finish(StateTimedOut)
		} else {
			s.finish(StateFailed)
		}
		s.session.SetError(err)
		return nil, err
	}

	s.session.SetPrompt(prompt)
	s.session.SetResult(result)
	s.session.BumpUsage()
	s.finish(StateSuccess)

	// Best-effort history refresh; failures are logged, never surfaced
	if s.refresher != nil {
		go func() {
			refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			s.refresher.RefreshHistory(refreshCtx)
		}()
	}

	return result, nil
}

// generateOnce performs one bounded request/response cycle without
// touching the state machine.
func (s *Service) generateOnce(ctx context.Context, prompt string, params session.GenerationParameters) (*session.GenerationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	s.mu.Lock()
	voiceEnabled := s.voiceEnabled
	s.mu.Unlock()

	resp, err := s.api.Generate(ctx, playground.GenerateRequest{
		UserID:       s.session.UserID(),
		Prompt:       prompt,
		Temp:         params.Temperature,
		TopP:         params.TopP,
		Model:        params.Model,
		Persona:      params.Persona,
		VoiceEnabled: voiceEnabled,
		Lang:         s.voiceLang,
	})
	if err != nil {
		return nil, err
	}

	if !dna.Validate(resp.DNA) {
		// The fingerprint is opaque, but its length is the one thing
		// the client does assert
		logger.Log.WithField("dna_length", len(resp.DNA)).Warn("Server returned malformed fingerprint")
	}

	var audio []byte
	if resp.Voice != "" {
		if audio, err = base64.StdEncoding.DecodeString(resp.Voice); err != nil {
			logger.Log.WithError(err).Warn("Discarding undecodable voice payload")
			audio = nil
		}
	}

	return &session.GenerationResult{
		Prompt:                prompt,
		Output:                resp.Output,
		Fingerprint:           resp.DNA,
		Parameters:            params,
		ModelUsed:             params.Model,
		GenerationTimeSeconds: resp.GenerationTime,
		Timestamp:             time.Now(),
		Audio:                 audio,
	}, nil
}

// GenerateBatch processes prompts sequentially against the session's
// current parameters. Each item's failure is captured in its result
// and never aborts the rest; result order matches input order. The
// batch does not touch the session's current view.
func (s *Service) GenerateBatch(ctx context.Context, prompts []string) []BatchItemResult {
	if len(prompts) == 0 {
		return []BatchItemResult{}
	}

	params := s.session.Parameters()
	results := make([]BatchItemResult, 0, len(prompts))

	logger.Log.WithField("batch_size", len(prompts)).Info("Starting batch generation")

	for i, prompt := range prompts {
		item := BatchItemResult{Prompt: prompt}

		result, err := s.batchItem(ctx, prompt, params)
		if err != nil {
			logger.Log.WithError(err).WithFields(logrus.Fields{
				"index": i,
				"total": len(prompts),
			}).Warn("Batch item failed, continuing")
			item.Output = "[generation failed: " + err.Error() + "]"
			item.Err = err
		} else {
			item.Output = result.Output
			item.Fingerprint = result.Fingerprint
			s.session.BumpUsage()
		}

		results = append(results, item)
	}

	return results
}

func (s *Service) batchItem(ctx context.Context, prompt string, params session.GenerationParameters) (*session.GenerationResult, error) {
	if err := s.validator.ValidatePrompt(prompt); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "rejecting batch item", err)
	}
	return s.generateOnce(ctx, prompt, params)
}

// SynthesizeVoice converts text to speech via the voice endpoint.
// Independent of the generation state machine.
func (s *Service) SynthesizeVoice(ctx context.Context, text string) ([]byte, error) {
	if err := s.validator.ValidateText(text); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "rejecting voice synthesis", err)
	}

	return s.api.SynthesizeVoice(ctx, s.session.UserID(), text, s.voiceLang)
}
