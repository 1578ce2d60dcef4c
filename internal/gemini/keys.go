package gemini

import "sync"

// KeyRing is a rotating pool of API credentials. Every attempt takes the next
// key in the cycle whether or not the previous attempt failed, so retries are
// credential-rotating rather than credential-fixed.
type KeyRing struct {
	mu   sync.Mutex
	keys []string
	next int
}

func NewKeyRing(keys []string) *KeyRing {
	return &KeyRing{keys: keys}
}

func (r *KeyRing) Next() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.keys[r.next]
	r.next = (r.next + 1) % len(r.keys)
	return key
}

func (r *KeyRing) Len() int {
	return len(r.keys)
}

// redact shortens a key for log output.
func redact(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:5] + "..." + key[len(key)-3:]
}
