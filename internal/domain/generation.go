package domain

// Prompt é a requisição enviada ao modelo de linguagem
type Prompt struct {
	Model        string
	System       string
	User         string
	FunctionName string
	Parameters   map[string]any
	Seed         *int
}

// Completion é a resposta bruta do modelo, antes da validação
type Completion struct {
	Arguments    string
	Content      string
	FinishReason string
}

// FinishReasonLength indica que a resposta foi truncada pelo limite de tokens
const FinishReasonLength = "length"
