package web2pdf

import (
	"encoding/json"
	"fmt"
	"time"
)

// Strategy names, in chain order.
const (
	StrategyFull    = "full"
	StrategyMinimal = "minimal"
	StrategyRemote  = "remote"
	StrategyStatic  = "static"
)

// Configuration defaults.
const (
	DefaultRemoteRenderURL         = "https://chrome.browserless.io/pdf"
	DefaultRenderTimeout           = 60 * time.Second
	DefaultNavigationTimeout       = 45 * time.Second
	DefaultFetchTimeout            = 20 * time.Second
	DefaultRemoteTimeout           = 60 * time.Second
	DefaultRemoteRequestsPerSecond = 2.0
	DefaultMaxPageBytes            = 10 << 20
	DefaultUserAgent               = "Mozilla/5.0 (compatible; web2pdf/1.0; +https://github.com/alnah/go-web2pdf)"
)

const maskedSecret = "****"

// Secret is a credential that never prints its value.
type Secret string

// String returns a mask, or "" when the secret is unset.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return maskedSecret
}

// GoString masks the secret in %#v output.
func (s Secret) GoString() string {
	return s.String()
}

// MarshalJSON masks the secret in JSON output.
func (s Secret) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Reveal returns the raw credential.
func (s Secret) Reveal() string {
	return string(s)
}

// IsSet reports whether a credential was supplied.
func (s Secret) IsSet() bool {
	return s != ""
}

// Config is the startup-validated rendering configuration.
// Build it once with DefaultConfig, apply overrides, then call Validate.
type Config struct {
	RemoteRenderURL         string        `yaml:"remoteRenderURL" json:"remoteRenderURL" validate:"required,url"`
	RemoteRenderToken       Secret        `yaml:"remoteRenderToken" json:"remoteRenderToken"`
	RenderTimeout           time.Duration `yaml:"renderTimeout" json:"renderTimeout" validate:"gt=0"`
	NavigationTimeout       time.Duration `yaml:"navigationTimeout" json:"navigationTimeout" validate:"gt=0,ltfield=RenderTimeout"`
	FetchTimeout            time.Duration `yaml:"fetchTimeout" json:"fetchTimeout" validate:"gt=0"`
	RemoteTimeout           time.Duration `yaml:"remoteTimeout" json:"remoteTimeout" validate:"gt=0"`
	RemoteRequestsPerSecond float64       `yaml:"remoteRequestsPerSecond" json:"remoteRequestsPerSecond" validate:"gt=0"`
	MaxEngines              int           `yaml:"maxEngines" json:"maxEngines" validate:"gte=0,lte=64"`
	MaxPageBytes            int64         `yaml:"maxPageBytes" json:"maxPageBytes" validate:"gt=0"`
	UserAgent               string        `yaml:"userAgent" json:"userAgent" validate:"required"`
	BrowserBin              string        `yaml:"browserBin" json:"browserBin,omitempty"`
	NoSandbox               bool          `yaml:"noSandbox" json:"noSandbox"`
	Strategies              []string      `yaml:"strategies" json:"strategies" validate:"dive,oneof=full minimal remote static"`
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() Config {
	return Config{
		RemoteRenderURL:         DefaultRemoteRenderURL,
		RenderTimeout:           DefaultRenderTimeout,
		NavigationTimeout:       DefaultNavigationTimeout,
		FetchTimeout:            DefaultFetchTimeout,
		RemoteTimeout:           DefaultRemoteTimeout,
		RemoteRequestsPerSecond: DefaultRemoteRequestsPerSecond,
		MaxPageBytes:            DefaultMaxPageBytes,
		UserAgent:               DefaultUserAgent,
		Strategies:              []string{StrategyFull, StrategyMinimal, StrategyRemote, StrategyStatic},
	}
}

// Validate checks field ranges and cross-field constraints.
func (c Config) Validate() error {
	if err := validate().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, describeValidation(err))
	}
	return nil
}
