// Package qreval measures how well a chat language model can draw a QR code.
//
// The benchmark asks a model to produce an SVG image containing a QR code
// that encodes a given text, then scores the answer twice: once for SVG
// well-formedness, and once by rasterizing the SVG and decoding the QR code
// to check that the payload round-trips exactly.
//
// # Main Packages
//
// The svgqr package holds the SVG/QR plumbing: extraction, validation,
// rasterization, decoding and a reference encoder.
//
// The eval package is a small generic evaluation engine (cases, tasks,
// scorers, reports).
//
// The qrtask package defines the QR generation dataset, prompts and scorers.
//
// The chat package provides chat-completion clients for OpenAI-compatible
// and Anthropic APIs.
//
// # Configuration
//
// Everything is configured through environment variables; see config.FromEnv
// for the complete list.
package qreval
