package qwen

const (
	// DefaultBaseURL is the OpenAI-compatible DashScope endpoint
	DefaultBaseURL = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"

	// DefaultModel is the default model to use
	DefaultModel = "qwen-plus"
)
