package model

// ================ Config ================

type ChatModelConfig struct {
	APIKey         string  `envconfig:"GEMINI_API_KEY"`
	BaseURL        string  `envconfig:"GEMINI_BASE_URL"`
	Model          string  `envconfig:"CHAT_MODEL" default:"gemini-2.0-flash"`
	MaxTokens      int     `envconfig:"CHAT_MAX_TOKENS" default:"2000"`
	Temperature    float32 `envconfig:"CHAT_TEMPERATURE" default:"0.2"`
	TimeoutSeconds int     `envconfig:"CHAT_TIMEOUT_SECONDS" default:"60"`
}

type ConversationConfig struct {
	TTL      string `envconfig:"CONVERSATION_TTL" default:"15m"`
	MaxTurns int    `envconfig:"CONVERSATION_MAX_TURNS" default:"5"`
}

type NotesConfig struct {
	DocsDir               string `envconfig:"DOCS_DIR" default:"docs"`
	CompileTimeoutSeconds int    `envconfig:"LATEX_TIMEOUT_SECONDS" default:"60"`
	KeepScratch           bool   `envconfig:"NOTES_KEEP_SCRATCH" default:"false"`
}
