package newsletter

// Config holds the settings of the newsletter Service.
type Config struct {
	// BaseURL prefixes confirmation links sent to new subscribers.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	// PublishBatchSize is the number of emails sent concurrently while publishing.
	PublishBatchSize int `env:"NEWSLETTER_PUBLISH_BATCH_SIZE" envDefault:"10"`
}
