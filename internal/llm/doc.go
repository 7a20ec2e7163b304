// Package llm classifies problem statements with a structured-output language
// model. It supports OpenAI, Anthropic and Gemini providers behind a single
// Client interface, with client-side rate limiting and a per-call timeout.
package llm
