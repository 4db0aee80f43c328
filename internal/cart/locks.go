package cart

import (
	"hash/fnv"
	"sync"
)

const lockStripes = 64

// sessionLocks serializes read-modify-write per session. Unrelated sessions may share a
// stripe, which only costs some parallelism.
type sessionLocks struct {
	stripes [lockStripes]sync.Mutex
}

func (l *sessionLocks) lock(session string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(session))
	m := &l.stripes[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}
