//go:build !gcloud

package config

import (
	"fmt"
	"net/url"
)

// Validate accepts an empty NATS_URL, which disables event publishing, and a
// missing SendGrid key, which falls back to logging emails.
func (c *Config) Validate() error {
	if c.PubSub.NatsURL == "" {
		return nil
	}

	u, err := url.Parse(c.PubSub.NatsURL)
	if err != nil || (u.Scheme != "nats" && u.Scheme != "tls") || u.Host == "" {
		return fmt.Errorf("invalid NATS_URL %q: expected nats://host:port", c.PubSub.NatsURL)
	}

	return nil
}
