package playground

// Wire types mirror the playground server's JSON field names.

// GenerateRequest is the body of POST /trip.
type GenerateRequest struct {
	UserID       string  `json:"user_id"`
	Prompt       string  `json:"prompt"`
	Temp         float64 `json:"temp"`
	TopP         float64 `json:"top_p"`
	Model        string  `json:"model"`
	Persona      string  `json:"persona"`
	VoiceEnabled bool    `json:"voice_enabled,omitempty"`
	Lang         string  `json:"lang,omitempty"`
}

// GenerateResponse is the body of a successful generation.
type GenerateResponse struct {
	Output         string  `json:"output"`
	DNA            string  `json:"dna"`
	Voice          string  `json:"voice,omitempty"` // base64 mp3 when voice_enabled
	GenerationTime float64 `json:"generation_time"`
	UserID         string  `json:"user_id,omitempty"`
}

// UsageStats is the server's authoritative per-user usage view.
// A limit of -1 means unlimited.
type UsageStats struct {
	DailyUsage      int      `json:"daily_usage"`
	MonthlyUsage    int      `json:"monthly_usage"`
	TotalUsage      int      `json:"total_usage"`
	DailyLimit      int      `json:"daily_limit"`
	MonthlyLimit    int      `json:"monthly_limit"`
	AvailableModels []string `json:"available_models,omitempty"`
	FeaturesEnabled []string `json:"features_enabled,omitempty"`
}

// Unlimited is the sentinel limit value.
const Unlimited = -1

// Parameters is the generation parameter block stored with history
// entries.
type Parameters struct {
	Temp    float64 `json:"temp"`
	TopP    float64 `json:"top_p"`
	Model   string  `json:"model"`
	Persona string  `json:"persona"`
}

// HistoryEntry is one past generation as returned by GET /history.
type HistoryEntry struct {
	Prompt         string     `json:"prompt"`
	Output         string     `json:"output"`
	DNA            string     `json:"dna"`
	Parameters     Parameters `json:"parameters"`
	ModelUsed      string     `json:"model_used"`
	GenerationTime float64    `json:"generation_time"`
	Timestamp      string     `json:"timestamp"`
}

// CommunityPrompt is one shared prompt from the community directory.
type CommunityPrompt struct {
	Title       string   `json:"title"`
	Prompt      string   `json:"prompt"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Likes       int      `json:"likes"`
	Downloads   int      `json:"downloads"`
	IsFeatured  bool     `json:"is_featured"`
	CreatedAt   string   `json:"created_at"`
}

// Sponsor is one entry from the sponsor directory.
type Sponsor struct {
	Name       string `json:"name"`
	Tier       string `json:"tier"`
	LogoURL    string `json:"logo_url"`
	WebsiteURL string `json:"website_url"`
	Message    string `json:"message"`
}

// SharePromptRequest submits a prompt to the community directory.
type SharePromptRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Prompt      string `json:"prompt"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

// DecodedDNA is the server's parameter estimate for a fingerprint.
type DecodedDNA struct {
	Prompt string  `json:"prompt"`
	Temp   float64 `json:"temp"`
	TopP   float64 `json:"top_p"`
	Model  string  `json:"model"`
	DNA    string  `json:"dna"`
}

// ModelCount pairs a model id with its usage count.
type ModelCount struct {
	Model string `json:"model"`
	Count int    `json:"count"`
}

// DayCount pairs a date with its generation count.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Analytics is the server-wide usage summary from GET /analytics.
type Analytics struct {
	TotalUsers       int          `json:"total_users"`
	TotalGenerations int          `json:"total_generations"`
	PopularModels    []ModelCount `json:"popular_models"`
	RecentActivity   []DayCount   `json:"recent_activity"`
}

// Health is the GET /health response.
type Health struct {
	Status    string   `json:"status"`
	Timestamp string   `json:"timestamp"`
	Features  []string `json:"features"`
}
