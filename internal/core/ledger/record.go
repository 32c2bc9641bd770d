package ledger

import (
	"recoverable-ledger/pkg/apperror"
)

// Record is one batch of value received by an account, subject to a
// settlement window. A zero SettleTime marks an absent record; callers
// reading through GetAt must branch on that sentinel.
type Record struct {
	Amount     int64  `json:"amount"`
	Frozen     int64  `json:"frozen"`
	SettleTime int64  `json:"settle_time"` // unix seconds; 0 = absent
	Prev       uint64 `json:"prev"`
	Next       uint64 `json:"next"`
}

// Exists reports whether the slot holds a live batch.
func (r Record) Exists() bool { return r.SettleTime != 0 }

// recordQueue is an intrusive doubly-linked queue of records held in an
// index-addressed arena. Indices are assigned in strictly increasing
// order of insertion; index 0 is the null sentinel and never refers to a
// real record. The tail index is only ever advanced by appends and is
// never reset to 0 by deletion, so index numbering survives the queue
// emptying out.
type recordQueue struct {
	records    map[uint64]*Record
	head       uint64
	tail       uint64
	cacheIndex uint64 // records at or below this index are folded into the cached aggregates
}

func newRecordQueue() *recordQueue {
	return &recordQueue{records: make(map[uint64]*Record)}
}

// nextIndex returns the index the next enqueue will use.
func (q *recordQueue) nextIndex() uint64 { return q.tail + 1 }

func (q *recordQueue) isEmpty() bool { return q.head == 0 }

// getAt returns the record at index, or the zero record if absent.
func (q *recordQueue) getAt(index uint64) Record {
	if r, ok := q.records[index]; ok {
		return *r
	}
	return Record{}
}

// enqueue appends a new record at the tail and returns its index.
func (q *recordQueue) enqueue(amount, settleTime int64) uint64 {
	idx := q.tail + 1
	rec := &Record{Amount: amount, SettleTime: settleTime}
	if q.head == 0 {
		q.head = idx
	} else {
		rec.Prev = q.tail
		q.records[q.tail].Next = idx
	}
	q.records[idx] = rec
	q.tail = idx
	return idx
}

// decrementAmount reduces the record's amount by value.
func (q *recordQueue) decrementAmount(index uint64, value int64) error {
	rec, ok := q.records[index]
	if !ok || value > rec.Amount {
		return apperror.ErrInvalidAmount("reduction exceeds record amount")
	}
	rec.Amount -= value
	return nil
}

// deleteAt unlinks the record at index and clears its storage slot.
// Endpoints are adjusted: deleting the head advances head, deleting a
// tail that has a live predecessor moves tail back to it. Deleting the
// single remaining record sets head to 0 and leaves tail at its last
// value. Detached records (unlinked by dequeueHead) are handled too:
// their neighbours are touched only if still present.
func (q *recordQueue) deleteAt(index uint64) error {
	if index == 0 {
		return apperror.ErrRecordNotFound()
	}
	rec, ok := q.records[index]
	if !ok {
		return apperror.ErrRecordNotFound()
	}
	if rec.Prev != 0 {
		if p, ok := q.records[rec.Prev]; ok {
			p.Next = rec.Next
		}
	} else if q.head == index {
		q.head = rec.Next
	}
	if rec.Next != 0 {
		if n, ok := q.records[rec.Next]; ok {
			n.Prev = rec.Prev
		}
	} else if rec.Prev != 0 && q.tail == index {
		q.tail = rec.Prev
	}
	delete(q.records, index)
	return nil
}

// dequeueHead removes the head record from the queue and returns it with
// its index. With destroy the slot is cleared; without it the record's
// data stays addressable (used when a frozen sub-amount must outlive the
// active window), detached from prev linkage but with its next pointer
// intact for forward walks.
func (q *recordQueue) dequeueHead(destroy bool) (Record, uint64, error) {
	if q.head == 0 {
		return Record{}, 0, apperror.ErrEmptyRecordQueue()
	}
	idx := q.head
	rec := q.records[idx]
	out := *rec
	q.head = rec.Next
	if q.head != 0 {
		q.records[q.head].Prev = 0
	}
	if destroy {
		delete(q.records, idx)
	} else {
		rec.Prev = 0
	}
	return out, idx, nil
}

// first returns the oldest active record and its index.
func (q *recordQueue) first() (Record, uint64, error) {
	if q.head == 0 {
		return Record{}, 0, apperror.ErrEmptyRecordQueue()
	}
	return *q.records[q.head], q.head, nil
}

// freeze suspends amount of the record's unfrozen value.
func (q *recordQueue) freeze(index uint64, amount int64) error {
	rec, ok := q.records[index]
	if !ok || amount > rec.Amount-rec.Frozen {
		return apperror.ErrInvalidAmount("freeze exceeds unfrozen record amount")
	}
	rec.Frozen += amount
	return nil
}

// unfreeze lifts amount of the record's frozen value. With destroy the
// record is deleted entirely instead of just decrementing.
func (q *recordQueue) unfreeze(index uint64, amount int64, destroy bool) error {
	rec, ok := q.records[index]
	if !ok || amount > rec.Frozen {
		return apperror.ErrInvalidAmount("unfreeze exceeds frozen record amount")
	}
	if destroy {
		return q.deleteAt(index)
	}
	rec.Frozen -= amount
	return nil
}
