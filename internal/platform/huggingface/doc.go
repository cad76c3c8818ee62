// Package huggingface implements generation.TextGenerator against the
// Hugging Face hosted inference API. Each call is a single HTTP attempt;
// retries belong to generation.RetryingClient.
package huggingface
