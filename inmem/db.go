package inmem

import (
	"sync"
	"time"

	"github.com/ritmofit/ritmo"
)

type likeKey struct {
	UserId     ritmo.UserId
	ActivityId ritmo.ActivityId
}

// DB keeps the whole dataset behind one RWMutex plus a per-activity lock
// table. The RWMutex only guards map access; toggle and counter
// read-modify-writes serialize on the per-activity locks so unrelated
// activities never contend.
type DB struct {
	mu sync.RWMutex

	lastUserId     int64
	lastActivityId int64
	lastCommentId  int64
	lastLikeId     int64

	users      map[ritmo.UserId]*ritmo.User
	activities map[ritmo.ActivityId]*ritmo.Activity
	likes      map[likeKey]ritmo.LikeEdge
	comments   map[ritmo.ActivityId][]ritmo.Comment
	company    ritmo.CompanyMetrics

	locksMu       sync.Mutex
	activityLocks map[ritmo.ActivityId]*sync.Mutex
}

func NewDB() *DB {
	return &DB{
		users:         make(map[ritmo.UserId]*ritmo.User),
		activities:    make(map[ritmo.ActivityId]*ritmo.Activity),
		likes:         make(map[likeKey]ritmo.LikeEdge),
		comments:      make(map[ritmo.ActivityId][]ritmo.Comment),
		activityLocks: make(map[ritmo.ActivityId]*sync.Mutex),
	}
}

func (db *DB) activityLock(id ritmo.ActivityId) *sync.Mutex {
	db.locksMu.Lock()
	defer db.locksMu.Unlock()
	lock, ok := db.activityLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		db.activityLocks[id] = lock
	}
	return lock
}

func (db *DB) AddUser(user ritmo.User) ritmo.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.lastUserId++
	user.Id = ritmo.UserId(db.lastUserId)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	db.users[user.Id] = &user
	return user
}

func (db *DB) SetCompany(company ritmo.CompanyMetrics) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.company = company
}
