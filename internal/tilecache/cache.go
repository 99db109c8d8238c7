// Package tilecache 提供每个日志源独享的有界 LRU 对象缓存。
//
// 缓存以 sanitize 后的相对路径为 key，value 是完整的 tile 正文字节。
// 正文进入缓存后由缓存独占持有：Put 存入副本，Get 拷贝后再返回，
// 调用方永远不会拿到内部存储的引用，慢速下发也不会阻塞其他请求。
package tilecache

import (
	"container/list"
	"sync"
)

// DefaultCapacity 是单个日志源缓存的条目上限。
const DefaultCapacity = 1024

type entry struct {
	key  string
	body []byte
}

// Cache 是 mutex 保护的 LRU 缓存，锁仅覆盖 map/链表操作本身，
// 绝不跨上游网络调用持有。
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	entries  map[string]*list.Element
}

// New 构建容量为 capacity 的缓存；capacity 非正时回退到 DefaultCapacity。
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

// Get 返回 key 对应正文的副本，并把条目标记为最近使用。
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(elem)

	stored := elem.Value.(*entry).body
	body := make([]byte, len(stored))
	copy(body, stored)
	return body, true
}

// Put 存入 body 的副本并标记为最近使用；超出容量时淘汰最久未触碰的条目。
// 同一 key 并发写入时后写胜出。
func (c *Cache) Put(key string, body []byte) {
	stored := make([]byte, len(body))
	copy(stored, body)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.ll.MoveToFront(elem)
		elem.Value.(*entry).body = stored
		return
	}

	c.entries[key] = c.ll.PushFront(&entry{key: key, body: stored})

	if c.ll.Len() > c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.entries, oldest.Value.(*entry).key)
		}
	}
}

// Len 返回当前条目数，仅用于测试与观测。
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
