package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

const DefaultNonceTTL = 10 * time.Minute

type cachedNonce struct {
	Next      uint64
	Timestamp time.Time
}

// NonceFetcher returns the pending nonce of an account from the node.
type NonceFetcher func(ctx context.Context, account common.Address) (uint64, error)

// NonceCache hands out nonces per account so concurrent senders sharing a key do not collide.
type NonceCache struct {
	mu     sync.Mutex
	nonces map[common.Address]cachedNonce
	ttl    time.Duration
	now    func() time.Time
}

func NewNonceCache(ttl time.Duration) *NonceCache {
	if ttl <= 0 {
		ttl = DefaultNonceTTL
	}
	return &NonceCache{
		nonces: make(map[common.Address]cachedNonce),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Reserve returns the next nonce for account. On a miss or an expired entry the node is asked,
// and the larger of the cached and pending values wins.
func (c *NonceCache) Reserve(ctx context.Context, account common.Address, fetch NonceFetcher) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.nonces[account]
	if !ok || c.now().Sub(entry.Timestamp) > c.ttl {
		pending, err := fetch(ctx, account)
		if err != nil {
			return 0, err
		}
		if !ok || pending > entry.Next {
			entry.Next = pending
		}
		logrus.WithField("account", account.Hex()).Debugf("nonce refreshed from node: %d", entry.Next)
	}

	nonce := entry.Next
	c.nonces[account] = cachedNonce{Next: nonce + 1, Timestamp: c.now()}
	return nonce, nil
}

// Release hands back a nonce whose transaction never reached the node. The cache only rolls back
// when nonce is the latest one handed out. Later reservations by other senders stay untouched.
func (c *NonceCache) Release(account common.Address, nonce uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.nonces[account]
	if !ok || entry.Next != nonce+1 {
		logrus.WithField("account", account.Hex()).Debugf("nonce %d not released, later nonces in flight", nonce)
		return
	}
	entry.Next = nonce
	c.nonces[account] = entry
	logrus.WithField("account", account.Hex()).Debugf("nonce %d released", nonce)
}
