package generation

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"
	"testing"
	"time"

	"playground-client/internal/collection"
	apperrors "playground-client/internal/errors"
	"playground-client/internal/playground"
	"playground-client/internal/session"
	"playground-client/internal/storage"
	"playground-client/internal/testutil"
)

func newSession() *session.State {
	store := collection.NewBounded[session.FavoriteEntry](storage.NewMemory(), session.FavoritesCapacity)
	return session.NewState("user-1", store, session.GenerationParameters{
		Temperature: 1.3,
		TopP:        0.9,
		Model:       "dolphin-phi:latest",
		Persona:     "Cyber-shaman",
	})
}

// recordingRefresher records RefreshHistory calls.
type recordingRefresher struct {
	mu    sync.Mutex
	calls int
	done  chan struct{}
}

func newRecordingRefresher() *recordingRefresher {
	return &recordingRefresher{done: make(chan struct{}, 8)}
}

func (r *recordingRefresher) RefreshHistory(ctx context.Context) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recordingRefresher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestGenerate_Success(t *testing.T) {
	sess := newSession()
	dnaToken := strings.Repeat("ab", 32)

	api := &testutil.MockAPI{
		GenerateFunc: func(ctx context.Context, req playground.GenerateRequest) (*playground.GenerateResponse, error) {
			if req.UserID != "user-1" || req.Prompt != "Cosmic cats" {
				t.Errorf("request = %+v", req)
			}
			if req.Temp != 1.3 || req.TopP != 0.9 || req.Persona != "Cyber-shaman" {
				t.Errorf("session parameters not forwarded: %+v", req)
			}
			return &playground.GenerateResponse{
				Output:         "a dream of cats",
				DNA:            dnaToken,
				GenerationTime: 2.5,
			}, nil
		},
	}
	refresher := newRecordingRefresher()
	svc := NewService(api, sess, refresher, time.Minute, "pt-BR")

	before := sess.Usage()
	result, err := svc.Generate(context.Background(), "Cosmic cats")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Output != "a dream of cats" || result.Fingerprint != dnaToken {
		t.Errorf("result = %+v", result)
	}
	if result.GenerationTimeSeconds != 2.5 {
		t.Errorf("GenerationTimeSeconds = %v, want 2.5", result.GenerationTimeSeconds)
	}

	// Session state updated
	if latest := sess.LatestResult(); latest == nil || latest.Output != "a dream of cats" {
		t.Errorf("session latest = %+v", latest)
	}

	// Optimistic increment: exactly +1 on each counter
	after := sess.Usage()
	if after.DailyUsage != before.DailyUsage+1 ||
		after.MonthlyUsage != before.MonthlyUsage+1 ||
		after.TotalUsage != before.TotalUsage+1 {
		t.Errorf("usage before %+v after %+v, want +1 each", before, after)
	}

	// History refresh kicked asynchronously
	select {
	case <-refresher.done:
	case <-time.After(time.Second):
		t.Fatal("history refresh never ran")
	}
	if refresher.count() != 1 {
		t.Errorf("refresh calls = %d, want 1", refresher.count())
	}

	// Terminal state observed once, then back to Idle
	if got := svc.State(); got != StateSuccess {
		t.Errorf("State() = %v, want success", got)
	}
	if got := svc.State(); got != StateIdle {
		t.Errorf("State() after observation = %v, want idle", got)
	}
}

func TestGenerate_EmptyPrompt(t *testing.T) {
	svc := NewService(&testutil.MockAPI{}, newSession(), nil, time.Minute, "pt-BR")

	_, err := svc.Generate(context.Background(), "")
	if err == nil {
		t.Fatal("Generate(\"\") error = nil, want validation error")
	}
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Errorf("error kind = %v, want validation", err)
	}
	if got := svc.State(); got != StateIdle {
		t.Errorf("State() = %v, invalid prompt must not enter the machine", got)
	}
}

func TestGenerate_ServiceErrorKeepsPriorOutput(t *testing.T) {
	sess := newSession()
	prior := &session.GenerationResult{Output: "prior output"}
	sess.SetResult(prior)

	api := &testutil.MockAPI{
		GenerateFunc: func(ctx context.Context, req playground.GenerateRequest) (*playground.GenerateResponse, error) {
			return nil, apperrors.New(apperrors.KindService, "Ollama error: 500")
		},
	}
	svc := NewService(api, sess, nil, time.Minute, "pt-BR")

	before := sess.Usage()
	_, err := svc.Generate(context.Background(), "x")
	if err == nil {
		t.Fatal("Generate() error = nil, want service error")
	}
	if !apperrors.IsKind(err, apperrors.KindService) {
		t.Errorf("error kind = %v, want service", err)
	}

	if sess.LatestResult() != prior {
		t.Error("failure corrupted the prior successful result")
	}
	if sess.LastError() == nil {
		t.Error("session did not record the error")
	}
	if sess.Usage().TotalUsage != before.TotalUsage {
		t.Error("failed generation bumped usage counters")
	}
	if got := svc.State(); got != StateFailed {
		t.Errorf("State() = %v, want failed", got)
	}
}

func TestGenerate_TimeoutState(t *testing.T) {
	api := &testutil.MockAPI{
		GenerateFunc: func(ctx context.Context, req playground.GenerateRequest) (*playground.GenerateResponse, error) {
			<-ctx.Done()
			return nil, apperrors.Wrap(apperrors.KindTimeout, "request to /trip timed out", ctx.Err())
		},
	}
	svc := NewService(api, newSession(), nil, 10*time.Millisecond, "pt-BR")

	_, err := svc.Generate(context.Background(), "slow")
	if err == nil {
		t.Fatal("Generate() error = nil, want timeout")
	}
	if !apperrors.IsKind(err, apperrors.KindTimeout) {
		t.Errorf("error kind = %v, want timeout", err)
	}
	if got := svc.State(); got != StateTimedOut {
		t.Errorf("State() = %v, want timed_out", got)
	}
}

func TestGenerate_RejectsOverlap(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	api := &testutil.MockAPI{
		GenerateFunc: func(ctx context.Context, req playground.GenerateRequest) (*playground.GenerateResponse, error) {
			close(firstStarted)
			<-release
			return &playground.GenerateResponse{Output: "ok", DNA: strings.Repeat("a", 64)}, nil
		},
	}
	svc := NewService(api, newSession(), nil, time.Minute, "pt-BR")

	done := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), "first")
		done <- err
	}()

	<-firstStarted
	_, err := svc.Generate(context.Background(), "second")
	if err != ErrBusy {
		t.Errorf("overlapping Generate() error = %v, want ErrBusy", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Errorf("first Generate() error = %v", err)
	}
}

func TestGenerateBatch_Empty(t *testing.T) {
	calls := 0
	api := &testutil.MockAPI{
		GenerateFunc: func(ctx context.Context, req playground.GenerateRequest) (*playground.GenerateResponse, error) {
			calls++
			return nil, nil
		},
	}
	svc := NewService(api, newSession(), nil, time.Minute, "pt-BR")

	results := svc.GenerateBatch(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("GenerateBatch(nil) = %v, want empty", results)
	}
	if calls != 0 {
		t.Errorf("empty batch issued %d requests", calls)
	}
}

func TestGenerateBatch_IsolatesFailures(t *testing.T) {
	sess := newSession()
	api := &testutil.MockAPI{
		GenerateFunc: func(ctx context.Context, req playground.GenerateRequest) (*playground.GenerateResponse, error) {
			if req.Prompt == "p2" {
				return nil, apperrors.New(apperrors.KindService, "model exploded")
			}
			return &playground.GenerateResponse{
				Output: "output for " + req.Prompt,
				DNA:    strings.Repeat("a", 64),
			}, nil
		},
	}
	svc := NewService(api, sess, nil, time.Minute, "pt-BR")

	before := sess.Usage()
	results := svc.GenerateBatch(context.Background(), []string{"p1", "p2", "p3"})

	if len(results) != 3 {
		t.Fatalf("len = %d, want 3", len(results))
	}

	// Order preserved, siblings unaffected
	if results[0].Prompt != "p1" || results[0].Output != "output for p1" || results[0].Fingerprint == "" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[2].Prompt != "p3" || results[2].Output != "output for p3" || results[2].Fingerprint == "" {
		t.Errorf("results[2] = %+v", results[2])
	}

	// Failed item carries a marker and no fingerprint
	if results[1].Err == nil {
		t.Error("results[1].Err = nil, want captured failure")
	}
	if !strings.Contains(results[1].Output, "generation failed") {
		t.Errorf("results[1].Output = %q, want error marker", results[1].Output)
	}
	if results[1].Fingerprint != "" {
		t.Errorf("results[1].Fingerprint = %q, want absent", results[1].Fingerprint)
	}

	// Two successes bump counters twice, the failure does not
	after := sess.Usage()
	if after.TotalUsage != before.TotalUsage+2 {
		t.Errorf("TotalUsage %d -> %d, want +2", before.TotalUsage, after.TotalUsage)
	}

	// Batch never touches the current view
	if sess.LatestResult() != nil {
		t.Error("batch wrote the session's current result")
	}
}

func TestGenerateBatch_EmptyPromptItem(t *testing.T) {
	api := &testutil.MockAPI{
		GenerateFunc: func(ctx context.Context, req playground.GenerateRequest) (*playground.GenerateResponse, error) {
			return &playground.GenerateResponse{Output: "ok", DNA: strings.Repeat("a", 64)}, nil
		},
	}
	svc := NewService(api, newSession(), nil, time.Minute, "pt-BR")

	results := svc.GenerateBatch(context.Background(), []string{"", "good"})
	if len(results) != 2 {
		t.Fatalf("len = %d, want 2", len(results))
	}
	if results[0].Err == nil || results[0].Fingerprint != "" {
		t.Errorf("results[0] = %+v, want validation failure", results[0])
	}
	if results[1].Err != nil {
		t.Errorf("results[1].Err = %v, want success", results[1].Err)
	}
}

func TestGenerate_VoiceEnabledCarriesAudio(t *testing.T) {
	mp3 := []byte("mp3 bytes")
	api := &testutil.MockAPI{
		GenerateFunc: func(ctx context.Context, req playground.GenerateRequest) (*playground.GenerateResponse, error) {
			if !req.VoiceEnabled {
				t.Error("voice_enabled not forwarded on the wire")
			}
			return &playground.GenerateResponse{
				Output: "ok",
				DNA:    strings.Repeat("a", 64),
				Voice:  base64.StdEncoding.EncodeToString(mp3),
			}, nil
		},
	}
	svc := NewService(api, newSession(), nil, time.Minute, "pt-BR")
	svc.SetVoiceEnabled(true)

	result, err := svc.Generate(context.Background(), "Cosmic cats")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if string(result.Audio) != string(mp3) {
		t.Errorf("Audio = %q, want decoded payload", result.Audio)
	}
}

func TestSynthesizeVoice(t *testing.T) {
	sess := newSession()
	api := &testutil.MockAPI{
		SynthesizeVoiceFunc: func(ctx context.Context, userID, text, lang string) ([]byte, error) {
			if userID != "user-1" || lang != "pt-BR" {
				t.Errorf("voice request: user=%q lang=%q", userID, lang)
			}
			return []byte("mp3 bytes"), nil
		},
	}
	svc := NewService(api, sess, nil, time.Minute, "pt-BR")

	audio, err := svc.SynthesizeVoice(context.Background(), "ola mundo")
	if err != nil {
		t.Fatalf("SynthesizeVoice() error = %v", err)
	}
	if string(audio) != "mp3 bytes" {
		t.Errorf("audio = %q", audio)
	}
}

func TestSynthesizeVoice_EmptyText(t *testing.T) {
	svc := NewService(&testutil.MockAPI{}, newSession(), nil, time.Minute, "pt-BR")

	_, err := svc.SynthesizeVoice(context.Background(), "")
	if err == nil {
		t.Fatal("SynthesizeVoice(\"\") error = nil, want validation error")
	}
	if !apperrors.IsKind(err, apperrors.KindValidation) {
		t.Errorf("error kind = %v, want validation", err)
	}
}

// End-to-end scenario from the session's point of view.
func TestGenerate_EndToEnd(t *testing.T) {
	sess := newSession()
	dnaToken := strings.Repeat("ef", 32)

	api := &testutil.MockAPI{
		GenerateFunc: func(ctx context.Context, req playground.GenerateRequest) (*playground.GenerateResponse, error) {
			return &playground.GenerateResponse{
				Output:         "neon feline constellations",
				DNA:            dnaToken,
				GenerationTime: 2.5,
			}, nil
		},
		HistoryFunc: func(ctx context.Context, userID string) ([]playground.HistoryEntry, error) {
			return []playground.HistoryEntry{{Prompt: "Cosmic cats", DNA: dnaToken}}, nil
		},
	}

	// Real hydrator wiring happens in cmd; here the refresher is the
	// recording double and history comes straight from the API mock
	refresher := newRecordingRefresher()
	svc := NewService(api, sess, refresher, time.Minute, "pt-BR")

	totalBefore := sess.Usage().TotalUsage
	if _, err := svc.Generate(context.Background(), "Cosmic cats"); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if sess.LatestResult().Output != "neon feline constellations" {
		t.Errorf("session output = %q", sess.LatestResult().Output)
	}
	if sess.Usage().TotalUsage != totalBefore+1 {
		t.Errorf("TotalUsage = %d, want +1", sess.Usage().TotalUsage)
	}

	select {
	case <-refresher.done:
	case <-time.After(time.Second):
		t.Fatal("history refresh never ran")
	}

	history, err := api.History(context.Background(), sess.UserID())
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) == 0 || history[0].Prompt != "Cosmic cats" {
		t.Errorf("history = %+v, want the new entry first", history)
	}
}
