//go:build gcloud

package config

import "errors"

// Validate enforces what a Cloud Run deployment cannot run without: events
// go to Pub/Sub and enabled channels need real provider credentials.
func (c *Config) Validate() error {
	var errs []error

	if c.PubSub.GCloudProjectID == "" {
		errs = append(errs, errors.New("GCLOUD_PROJECT_ID is required for event publishing"))
	}

	if c.Sweep.EmailEnabled && c.Mail.SendGridAPIKey == "" {
		errs = append(errs, errors.New("SENDGRID_API_KEY is required when SWEEP_EMAIL_ENABLED is true"))
	}

	if c.Sweep.PushEnabled && c.Push.FCMProjectID == "" && c.Push.ExpoAccessToken == "" {
		errs = append(errs, errors.New("FCM_PROJECT_ID or EXPO_ACCESS_TOKEN is required when SWEEP_PUSH_ENABLED is true"))
	}

	return errors.Join(errs...)
}
