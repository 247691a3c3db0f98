package openaidomain

// ChatRequest é o corpo de POST /v1/chat/completions
type ChatRequest struct {
	Model      string      `json:"model"`
	Messages   []Message   `json:"messages"`
	Tools      []Tool      `json:"tools,omitempty"`
	ToolChoice *ToolChoice `json:"tool_choice,omitempty"`
	Seed       *int        `json:"seed,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

type Function struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// ToolChoice força o modelo a responder chamando a função indicada
type ToolChoice struct {
	Type     string             `json:"type"`
	Function ToolChoiceFunction `json:"function"`
}

type ToolChoiceFunction struct {
	Name string `json:"name"`
}

const (
	RoleSystem   = "system"
	RoleUser     = "user"
	ToolFunction = "function"
)

// Caminhos gjson usados para ler a resposta sem decodificar o documento inteiro
const (
	PathArguments    = "choices.0.message.tool_calls.0.function.arguments"
	PathContent      = "choices.0.message.content"
	PathFinishReason = "choices.0.finish_reason"
	PathErrorMessage = "error.message"
	PathErrorType    = "error.type"
	PathErrorCode    = "error.code"
)
