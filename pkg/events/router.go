package events

import "go.uber.org/zap"

// maxDispatchRounds 单次 DispatchAll 最多处理的轮数
// 处理函数可以在分发过程中继续 Push，正常情况下两三轮即可清空
const maxDispatchRounds = 16

// HandlerFunc 事件处理函数
type HandlerFunc func(event GameEvent)

// Router 将事件分发给按类型注册的处理函数
//
//   - 单线程分发
//   - 同一类型可以注册多个处理函数，按注册顺序调用
//   - 分发期间新 Push 的事件在同一次 DispatchAll 中继续处理
type Router struct {
	handlers map[EventType][]HandlerFunc
	queue    *EventQueue
	logger   *zap.Logger
}

// NewRouter 创建绑定到指定队列的路由器
func NewRouter(queue *EventQueue, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		handlers: make(map[EventType][]HandlerFunc),
		queue:    queue,
		logger:   logger.Named("EventRouter"),
	}
}

// Subscribe 为事件类型注册处理函数
func (r *Router) Subscribe(t EventType, fn HandlerFunc) {
	r.handlers[t] = append(r.handlers[t], fn)
}

// DispatchAll 分发所有待处理事件，直到队列为空
// 返回本次分发的事件总数
func (r *Router) DispatchAll() int {
	total := 0
	for round := 0; round < maxDispatchRounds; round++ {
		batch := r.queue.Consume()
		if len(batch) == 0 {
			return total
		}
		for _, ev := range batch {
			handlers := r.handlers[ev.Type]
			if len(handlers) == 0 {
				r.logger.Debug("no handler for event", zap.Stringer("type", ev.Type))
				continue
			}
			for _, h := range handlers {
				h(ev)
			}
		}
		total += len(batch)
	}
	r.logger.Warn("event dispatch did not settle", zap.Int("pending", r.queue.Len()))
	return total
}

// HandlerCount 返回某类型已注册的处理函数数量
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
