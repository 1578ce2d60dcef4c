package gemini

import "errors"

var (
	// ErrNoAPIKeys is returned by NewClient when the key list is empty.
	ErrNoAPIKeys = errors.New("no Gemini API keys configured")

	// ErrUpstreamTimeout means every attempt timed out before the provider answered.
	ErrUpstreamTimeout = errors.New("gemini: upstream timed out after retries")

	// ErrUpstream covers network and HTTP-level failures after retries are exhausted.
	ErrUpstream = errors.New("gemini: upstream request failed after retries")

	// ErrMalformedEnvelope means the provider response did not contain the
	// expected candidates[0].content.parts[0].text shape.
	ErrMalformedEnvelope = errors.New("gemini: malformed response envelope")

	// ErrInvalidJSON means the extracted text was not parseable as the expected JSON.
	ErrInvalidJSON = errors.New("gemini: response is not valid JSON")
)
