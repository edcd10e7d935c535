package store

import (
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
)

// pushChars is ordered by ASCII value so generated keys sort lexicographically by time.
const pushChars = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// KeyGenerator produces 20 character keys that sort in creation order, including
// keys generated within the same millisecond.
type KeyGenerator struct {
	mu       sync.Mutex
	now      func() time.Time
	lastTime int64
	lastRand [12]int
}

// NewKeyGenerator returns a generator using the wall clock.
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{now: time.Now}
}

// Next returns a new key.
func (g *KeyGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UnixMilli()
	if now == g.lastTime {
		// Same millisecond: increment the random tail.
		i := len(g.lastRand) - 1
		for ; i >= 0 && g.lastRand[i] == 63; i-- {
			g.lastRand[i] = 0
		}
		if i >= 0 {
			g.lastRand[i]++
		}
	} else {
		for i := range g.lastRand {
			g.lastRand[i] = rand.Intn(64)
		}
	}
	g.lastTime = now

	var key [20]byte
	ts := now
	for i := 7; i >= 0; i-- {
		key[i] = pushChars[ts%64]
		ts /= 64
	}
	for i, r := range g.lastRand {
		key[8+i] = pushChars[r]
	}
	return string(key[:])
}

// KeyTime decodes the creation time embedded in a generated key.
func KeyTime(key string) (time.Time, bool) {
	if len(key) != 20 {
		return time.Time{}, false
	}
	var ms int64
	for i := 0; i < 8; i++ {
		c := strings.IndexByte(pushChars, key[i])
		if c < 0 {
			return time.Time{}, false
		}
		ms = ms*64 + int64(c)
	}
	return time.UnixMilli(ms), true
}

// keyInt reports whether key is ordered as an integer.
func keyInt(key string) (int64, bool) {
	n, err := strconv.ParseInt(key, 10, 32)
	if err != nil || strconv.FormatInt(n, 10) != key {
		return 0, false
	}
	return n, true
}

// KeyLess implements the natural key order: integer keys first in numeric order,
// then the remaining keys lexicographically.
func KeyLess(a, b string) bool {
	ai, aok := keyInt(a)
	bi, bok := keyInt(b)
	switch {
	case aok && bok:
		if ai == bi {
			return len(a) < len(b)
		}
		return ai < bi
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

// SortByKey sorts snapshots in natural key order.
func SortByKey(snaps []Snapshot) {
	sort.SliceStable(snaps, func(i, j int) bool {
		return KeyLess(snaps[i].Key, snaps[j].Key)
	})
}

// SortByChild sorts snapshots by the value of field, ties broken by key.
func SortByChild(snaps []Snapshot, field string) {
	path := gjson.Escape(field)
	sort.SliceStable(snaps, func(i, j int) bool {
		c := compareValues(childValue(snaps[i], path), childValue(snaps[j], path))
		if c != 0 {
			return c < 0
		}
		return KeyLess(snaps[i].Key, snaps[j].Key)
	})
}

func childValue(s Snapshot, path string) gjson.Result {
	if !s.Exists() {
		return gjson.Result{}
	}
	return gjson.GetBytes(s.Raw, path)
}

// valueRank orders value types: missing, false, true, numbers, strings, objects.
func valueRank(v gjson.Result) int {
	switch v.Type {
	case gjson.Null:
		return 0
	case gjson.False:
		return 1
	case gjson.True:
		return 2
	case gjson.Number:
		return 3
	case gjson.String:
		return 4
	default:
		return 5
	}
}

func compareValues(a, b gjson.Result) int {
	ra, rb := valueRank(a), valueRank(b)
	if ra != rb {
		return ra - rb
	}
	switch a.Type {
	case gjson.Number:
		if a.Num == b.Num || (math.IsNaN(a.Num) && math.IsNaN(b.Num)) {
			return 0
		}
		if a.Num < b.Num {
			return -1
		}
		return 1
	case gjson.String:
		switch {
		case a.Str < b.Str:
			return -1
		case a.Str > b.Str:
			return 1
		}
		return 0
	case gjson.JSON:
		switch {
		case a.Raw < b.Raw:
			return -1
		case a.Raw > b.Raw:
			return 1
		}
		return 0
	}
	return 0
}

// matchesEqual reports whether the ordered value equals want.
func matchesEqual(v gjson.Result, want interface{}) bool {
	switch w := want.(type) {
	case string:
		return v.Type == gjson.String && v.Str == w
	case bool:
		return (w && v.Type == gjson.True) || (!w && v.Type == gjson.False)
	case int:
		return v.Type == gjson.Number && v.Num == float64(w)
	case int64:
		return v.Type == gjson.Number && v.Num == float64(w)
	case float64:
		return v.Type == gjson.Number && v.Num == w
	}
	return false
}
