// Package gemini implements generation.TextGenerator using Google's Gemini
// API through the genai SDK. It is the alternative to the Hugging Face
// backend, selected with llm.provider=gemini.
package gemini
