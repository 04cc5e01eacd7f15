// Package llm provides text-generation clients for the catalog assistant.
// Gemini is the default provider; OpenAI and Anthropic are available through
// the same Client interface. Clients built with New share response caching
// and request rate limiting.
package llm
