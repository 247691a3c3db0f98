package adsdomain

// Códigos de erro do GoogleAdsFailure que mudam a classificação da falha
var (
	// Credenciais ou acesso à conta: não adianta tentar de novo
	AuthErrorTypes = map[string]bool{
		"authenticationError": true,
		"authorizationError":  true,
	}

	// Erros temporários do lado do Google Ads
	TransientErrorTypes = map[string]bool{
		"quotaError":    true,
		"internalError": true,
	}
)

// FailureCode representa um item de errors[].errorCode, como {"authorizationError": "USER_PERMISSION_DENIED"}
type FailureCode struct {
	Type  string
	Value string
}
