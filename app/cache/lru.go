package cache

// lruList orders keys from most to least recently used. head and tail are
// sentinels so insertion and unlinking never branch on the ends.
type lruList struct {
	head  *lruNode
	tail  *lruNode
	nodes map[string]*lruNode
}

type lruNode struct {
	key        string
	prev, next *lruNode
}

func newLRUList() *lruList {
	head, tail := &lruNode{}, &lruNode{}
	head.next = tail
	tail.prev = head
	return &lruList{head: head, tail: tail, nodes: make(map[string]*lruNode)}
}

// touch marks key as most recently used, inserting it when missing
func (l *lruList) touch(key string) {
	node, ok := l.nodes[key]
	if ok {
		l.unlink(node)
	} else {
		node = &lruNode{key: key}
		l.nodes[key] = node
	}
	l.pushFront(node)
}

// remove forgets key; unknown keys are ignored
func (l *lruList) remove(key string) {
	if node, ok := l.nodes[key]; ok {
		l.unlink(node)
		delete(l.nodes, key)
	}
}

// oldest returns the least recently used key
func (l *lruList) oldest() (string, bool) {
	if l.tail.prev == l.head {
		return "", false
	}
	return l.tail.prev.key, true
}

func (l *lruList) len() int { return len(l.nodes) }

func (l *lruList) pushFront(node *lruNode) {
	node.prev = l.head
	node.next = l.head.next
	l.head.next.prev = node
	l.head.next = node
}

func (l *lruList) unlink(node *lruNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
	node.prev, node.next = nil, nil
}
