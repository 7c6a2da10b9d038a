// Package newsletter manages subscriptions and publishes issues to confirmed
// subscribers.
//
// Subscribe validates the subscriber, stores a pending subscription with a
// confirmation token and emails the confirmation link. Confirm consumes the
// token. Publish fans an issue out to every confirmed subscriber through an
// email.EmailSender, skipping stored addresses that no longer validate.
package newsletter
