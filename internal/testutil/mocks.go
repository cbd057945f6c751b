package testutil

import (
	"context"
	"errors"

	"playground-client/internal/playground"
	"playground-client/internal/storage"
)

// MockKV is a mock implementation of storage.KV for testing
type MockKV struct {
	GetFunc    func(key string) ([]byte, error)
	PutFunc    func(key string, value []byte) error
	DeleteFunc func(key string) error
	CloseFunc  func() error
}

func (m *MockKV) Get(key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(key)
	}
	return nil, storage.ErrNotFound
}

func (m *MockKV) Put(key string, value []byte) error {
	if m.PutFunc != nil {
		return m.PutFunc(key, value)
	}
	return nil
}

func (m *MockKV) Delete(key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(key)
	}
	return nil
}

func (m *MockKV) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// MockAPI is a mock implementation of playground.API for testing
type MockAPI struct {
	GenerateFunc         func(ctx context.Context, req playground.GenerateRequest) (*playground.GenerateResponse, error)
	SynthesizeVoiceFunc  func(ctx context.Context, userID, text, lang string) ([]byte, error)
	UserStatsFunc        func(ctx context.Context, userID string) (*playground.UsageStats, error)
	HistoryFunc          func(ctx context.Context, userID string) ([]playground.HistoryEntry, error)
	CommunityPromptsFunc func(ctx context.Context) ([]playground.CommunityPrompt, error)
	SponsorsFunc         func(ctx context.Context) ([]playground.Sponsor, error)
	SharePromptFunc      func(ctx context.Context, req playground.SharePromptRequest) error
	RecreateFunc         func(ctx context.Context, dna string) (*playground.DecodedDNA, error)
	AnalyticsFunc        func(ctx context.Context) (*playground.Analytics, error)
	HealthFunc           func(ctx context.Context) (*playground.Health, error)
}

func (m *MockAPI) Generate(ctx context.Context, req playground.GenerateRequest) (*playground.GenerateResponse, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *MockAPI) SynthesizeVoice(ctx context.Context, userID, text, lang string) ([]byte, error) {
	if m.SynthesizeVoiceFunc != nil {
		return m.SynthesizeVoiceFunc(ctx, userID, text, lang)
	}
	return nil, errors.New("not implemented")
}

func (m *MockAPI) UserStats(ctx context.Context, userID string) (*playground.UsageStats, error) {
	if m.UserStatsFunc != nil {
		return m.UserStatsFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockAPI) History(ctx context.Context, userID string) ([]playground.HistoryEntry, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockAPI) CommunityPrompts(ctx context.Context) ([]playground.CommunityPrompt, error) {
	if m.CommunityPromptsFunc != nil {
		return m.CommunityPromptsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *MockAPI) Sponsors(ctx context.Context) ([]playground.Sponsor, error) {
	if m.SponsorsFunc != nil {
		return m.SponsorsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *MockAPI) SharePrompt(ctx context.Context, req playground.SharePromptRequest) error {
	if m.SharePromptFunc != nil {
		return m.SharePromptFunc(ctx, req)
	}
	return errors.New("not implemented")
}

func (m *MockAPI) Recreate(ctx context.Context, dna string) (*playground.DecodedDNA, error) {
	if m.RecreateFunc != nil {
		return m.RecreateFunc(ctx, dna)
	}
	return nil, errors.New("not implemented")
}

func (m *MockAPI) Analytics(ctx context.Context) (*playground.Analytics, error) {
	if m.AnalyticsFunc != nil {
		return m.AnalyticsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *MockAPI) Health(ctx context.Context) (*playground.Health, error) {
	if m.HealthFunc != nil {
		return m.HealthFunc(ctx)
	}
	return nil, errors.New("not implemented")
}
