// Package stats 维护每个日志源的进程级使用计数。
//
// 计数器只增不减、永不重置；条目在日志名首次被触碰时以零值创建，
// 随进程存活。外部只能拿到 Snapshot 副本，原始 map 不对外暴露。
package stats

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// LogStats 是单个日志源的计数快照。
type LogStats struct {
	BytesServed  uint64
	RequestCount uint64
	CacheHits    uint64
}

// Registry 以 mutex 串行化计数 map 的全部修改，并把每次增量同步镜像到
// Prometheus CounterVec。所有 Dispatcher 共享同一个实例。
type Registry struct {
	mu   sync.Mutex
	logs map[string]*LogStats

	requests *prometheus.CounterVec
	hits     *prometheus.CounterVec
	bytes    *prometheus.CounterVec
}

// NewRegistry 构建空的统计注册表及配套 Prometheus 指标。
func NewRegistry() *Registry {
	return &Registry{
		logs: make(map[string]*LogStats),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "heliostat",
				Name:      "requests_total",
				Help:      "Total number of webseed requests per log.",
			},
			[]string{"log"},
		),
		hits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "heliostat",
				Name:      "cache_hits_total",
				Help:      "Total number of tile cache hits per log.",
			},
			[]string{"log"},
		),
		bytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "heliostat",
				Name:      "bytes_served_total",
				Help:      "Total payload bytes delivered to clients per log.",
			},
			[]string{"log"},
		),
	}
}

// Register 把全部指标注册到 reg，应在启动阶段调用一次。
func (r *Registry) Register(reg prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{r.requests, r.hits, r.bytes} {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// touch 返回 name 对应的计数条目，不存在时以零值创建。调用方必须已持锁。
func (r *Registry) touch(name string) *LogStats {
	ls, ok := r.logs[name]
	if !ok {
		ls = &LogStats{}
		r.logs[name] = ls
	}
	return ls
}

// IncRequest 递增请求计数，每个请求在派发最开始恰好调用一次。
func (r *Registry) IncRequest(name string) {
	r.mu.Lock()
	r.touch(name).RequestCount++
	r.mu.Unlock()
	r.requests.WithLabelValues(name).Inc()
}

// IncCacheHit 递增缓存命中计数，仅在对象确实来自缓存时调用。
func (r *Registry) IncCacheHit(name string) {
	r.mu.Lock()
	r.touch(name).CacheHits++
	r.mu.Unlock()
	r.hits.WithLabelValues(name).Inc()
}

// AddBytesServed 按实际写出的正文字节数累加；Range 响应只累加切片长度。
func (r *Registry) AddBytesServed(name string, n uint64) {
	r.mu.Lock()
	r.touch(name).BytesServed += n
	r.mu.Unlock()
	r.bytes.WithLabelValues(name).Add(float64(n))
}

// Snapshot 返回当前计数的只读副本，供统计页渲染使用。
func (r *Registry) Snapshot() map[string]LogStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]LogStats, len(r.logs))
	for name, ls := range r.logs {
		out[name] = *ls
	}
	return out
}
