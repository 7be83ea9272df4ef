package entity

import (
	"fmt"
	"strings"
)

// Provider identifies an authentication provider.
type Provider string

const (
	ProviderLocal     Provider = "LOCAL"
	ProviderGoogle    Provider = "GOOGLE"
	ProviderFacebook  Provider = "FACEBOOK"
	ProviderMicrosoft Provider = "MICROSOFT"
	ProviderApple     Provider = "APPLE"
)

// ParseProvider maps a case-insensitive provider name to its enum value.
func ParseProvider(s string) (Provider, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOCAL":
		return ProviderLocal, nil
	case "GOOGLE":
		return ProviderGoogle, nil
	case "FACEBOOK":
		return ProviderFacebook, nil
	case "MICROSOFT":
		return ProviderMicrosoft, nil
	case "APPLE":
		return ProviderApple, nil
	default:
		return "", fmt.Errorf("unsupported provider: %q", s)
	}
}

func (p Provider) String() string { return string(p) }

// Federated reports whether the provider is an external OAuth2 provider.
func (p Provider) Federated() bool { return p != ProviderLocal && p != "" }
