package zoneserver

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// nameCache хранит имена объектов по gid.
//
// Пустая строка в кэше означает, что запрос уже отправлен и ответ ещё не
// пришёл. Janitor не запускается: просроченные записи отбрасываются при чтении.
type nameCache struct {
	c          *cache.Cache
	pendingTTL time.Duration
}

func newNameCache(ttl, pendingTTL time.Duration) *nameCache {
	return &nameCache{
		c:          cache.New(ttl, 0),
		pendingTTL: pendingTTL,
	}
}

func nameKey(gid uint32) string {
	return strconv.FormatUint(uint64(gid), 10)
}

// Get returns a known name.
func (n *nameCache) Get(gid uint32) (string, bool) {
	v, ok := n.c.Get(nameKey(gid))
	if !ok {
		return "", false
	}
	name := v.(string)
	return name, name != ""
}

// MarkPending reports false when gid is already known or requested.
func (n *nameCache) MarkPending(gid uint32) bool {
	return n.c.Add(nameKey(gid), "", n.pendingTTL) == nil
}

// Forget drops a pending mark, e.g. when the request could not be sent.
func (n *nameCache) Forget(gid uint32) {
	n.c.Delete(nameKey(gid))
}

// Set stores a name with the default TTL. Empty names are ignored.
func (n *nameCache) Set(gid uint32, name string) {
	if name == "" {
		return
	}
	n.c.Set(nameKey(gid), name, cache.DefaultExpiration)
}

func (n *nameCache) Flush() {
	n.c.Flush()
}
