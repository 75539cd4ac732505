package github

// TokenPool is an ordered pool of access tokens rotated across requests to
// spread volume over per-token rate limits. It is built once from config at
// process start and never mutated, so it is safe for concurrent use.
type TokenPool struct {
	tokens []string
}

// NewTokenPool creates a pool from the configured token list. Empty entries
// are dropped; an empty pool is valid and means unauthenticated requests.
func NewTokenPool(tokens []string) *TokenPool {
	pool := &TokenPool{}

	for _, t := range tokens {
		if t != "" {
			pool.tokens = append(pool.tokens, t)
		}
	}

	return pool
}

// Token returns the token for a zero-based attempt index, wrapping around
// the pool. The second return is false when the pool is empty.
func (p *TokenPool) Token(attempt int) (string, bool) {
	if len(p.tokens) == 0 {
		return "", false
	}

	if attempt < 0 {
		attempt = -attempt
	}

	return p.tokens[attempt%len(p.tokens)], true
}

// Size returns the number of tokens in the pool.
func (p *TokenPool) Size() int {
	return len(p.tokens)
}
