package gemini

// ExtractText pulls the AI response text out of the provider envelope.
// It has no side effects and never touches the network. A missing
// candidates[0].content.parts[0].text shape yields ErrMalformedEnvelope;
// callers recover by surfacing a 502 rather than crashing.
func ExtractText(env *Envelope) (string, error) {
	if env == nil || len(env.Candidates) == 0 {
		return "", ErrMalformedEnvelope
	}
	parts := env.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", ErrMalformedEnvelope
	}
	if parts[0].Text == "" {
		return "", ErrMalformedEnvelope
	}
	return parts[0].Text, nil
}
