package events

// EventQueue 单线程 FIFO 意图队列
//
// 模拟是单线程的：系统在更新阶段 Push，场景在分发阶段 Consume。
// 与固定容量的环形队列不同，这里不允许丢弃事件，否则会丢失计分或换波。
type EventQueue struct {
	events []GameEvent
}

// NewEventQueue 创建空队列
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]GameEvent, 0, 32)}
}

// Push 追加一条事件
func (q *EventQueue) Push(event GameEvent) {
	q.events = append(q.events, event)
}

// Consume 按 FIFO 顺序取出全部待处理事件并清空队列
func (q *EventQueue) Consume() []GameEvent {
	if len(q.events) == 0 {
		return nil
	}
	out := make([]GameEvent, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}

// Len 返回待处理事件数量
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Pending 遍历尚未分发的事件，fn 返回 false 时停止
// 碰撞系统用它检查同一帧内已请求但尚未生成的爆炸
func (q *EventQueue) Pending(fn func(GameEvent) bool) {
	for _, ev := range q.events {
		if !fn(ev) {
			return
		}
	}
}

// Clear 丢弃所有待处理事件
func (q *EventQueue) Clear() {
	q.events = q.events[:0]
}
