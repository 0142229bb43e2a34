package loadgen

import (
	"sort"
	"sync"
	"time"
)

type Op string

const (
	OpCreate         Op = "CREATE"
	OpRetrieve       Op = "RETRIEVE"
	OpUpdate         Op = "UPDATE"
	OpCancel         Op = "CANCEL"
	OpAvailabilities Op = "AVAILABILITIES"
)

var opOrder = []Op{OpCreate, OpRetrieve, OpUpdate, OpCancel, OpAvailabilities}

// Stats collects per-operation latencies and statuses. Safe for concurrent use.
type Stats struct {
	mu       sync.Mutex
	total    map[Op]time.Duration
	count    map[Op]int
	statuses map[Op]map[int]int
	failures int
}

func NewStats() *Stats {
	return &Stats{
		total:    map[Op]time.Duration{},
		count:    map[Op]int{},
		statuses: map[Op]map[int]int{},
	}
}

// Record adds one request. status 0 means the request never got a response.
func (s *Stats) Record(op Op, status int, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total[op] += elapsed
	s.count[op]++
	if status == 0 {
		s.failures++
		return
	}
	if s.statuses[op] == nil {
		s.statuses[op] = map[int]int{}
	}
	s.statuses[op][status]++
}

type OpSummary struct {
	Op       Op
	Requests int
	Avg      time.Duration
	Statuses map[int]int
}

type Report struct {
	Ops       []OpSummary
	Requests  int
	Failures  int
	Elapsed   time.Duration
	PerSecond float64
}

func (s *Stats) Report(elapsed time.Duration) Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := Report{Failures: s.failures, Elapsed: elapsed}
	for _, op := range opOrder {
		n := s.count[op]
		if n == 0 {
			continue
		}
		statuses := make(map[int]int, len(s.statuses[op]))
		for k, v := range s.statuses[op] {
			statuses[k] = v
		}
		r.Ops = append(r.Ops, OpSummary{
			Op:       op,
			Requests: n,
			Avg:      s.total[op] / time.Duration(n),
			Statuses: statuses,
		})
		r.Requests += n
	}
	if elapsed > 0 {
		r.PerSecond = float64(r.Requests) / elapsed.Seconds()
	}
	return r
}

// SortedStatuses lists status codes in ascending order for stable output.
func (o OpSummary) SortedStatuses() []int {
	codes := make([]int, 0, len(o.Statuses))
	for code := range o.Statuses {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
