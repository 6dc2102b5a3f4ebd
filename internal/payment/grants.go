package payment

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const grantTTL = 15 * time.Minute

type grant struct {
	userID  string
	expires time.Time
}

// Grants issues single-use download tokens after a successful payment.
// A token is bound to the paying user and expires if unused.
type Grants struct {
	mu     sync.Mutex
	tokens map[string]grant
	now    func() time.Time
}

// NewGrants constructs an empty grant registry.
func NewGrants() *Grants {
	return &Grants{
		tokens: make(map[string]grant),
		now:    time.Now,
	}
}

// Issue mints a download token for the user.
func (g *Grants) Issue(userID string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	token := uuid.NewString()
	g.tokens[token] = grant{
		userID:  userID,
		expires: g.now().Add(grantTTL),
	}
	return token
}

// Redeem consumes a token. It succeeds at most once per token and only
// for the user it was issued to.
func (g *Grants) Redeem(userID, token string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.tokens[token]
	if !ok {
		return false
	}
	delete(g.tokens, token)
	if entry.userID != userID {
		return false
	}
	return g.now().Before(entry.expires)
}
