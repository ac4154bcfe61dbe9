package httputil

import "errors"

var ErrAmbiguousAuth = errors.New("at most one of basic_auth and bearer_token must be configured")

type HTTPClientConfig struct {
	BasicAuth   *BasicAuth `json:"basicAuth,omitempty" yaml:"basicAuth,omitempty"`
	BearerToken string     `json:"bearerToken,omitempty" yaml:"bearerToken,omitempty"`
}

func (c *HTTPClientConfig) Validate() error {
	if c.BasicAuth != nil && len(c.BearerToken) > 0 {
		return ErrAmbiguousAuth
	}
	return nil
}

type BasicAuth struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}
