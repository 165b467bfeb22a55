package engine

// QuotaEnforcer counts records scanned by one execution and fails once the
// count passes the limit. A limit of zero or less disables the check.
//
// Each execution has its own QuotaEnforcer; it is not safe for concurrent use.
type QuotaEnforcer struct {
	limit   int
	current int
}

// NewQuotaEnforcer creates an enforcer with the given limit.
func NewQuotaEnforcer(limit int) *QuotaEnforcer {
	return &QuotaEnforcer{limit: limit}
}

// Check counts one scanned record.
func (q *QuotaEnforcer) Check() error {
	q.current++
	if q.limit > 0 && q.current > q.limit {
		return NewQuotaError(q.current, q.limit)
	}
	return nil
}

// Current returns the number of records counted so far.
func (q *QuotaEnforcer) Current() int {
	return q.current
}

// Limit returns the configured limit.
func (q *QuotaEnforcer) Limit() int {
	return q.limit
}
