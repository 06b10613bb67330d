package hr

import (
	"sync"
	"time"

	memdb "github.com/hashicorp/go-memdb"
)

const (
	tableDepartments       = "departments"
	tablePositions         = "positions"
	tableEmployees         = "employees"
	tableContracts         = "contracts"
	tableDocuments         = "documents"
	tableCompensations     = "compensations"
	tableBenefits          = "benefits"
	tableWorkflows         = "workflows"
	tableWorkflowInstances = "workflow_instances"
	tableUsers             = "users"
)

func idTable(name string, extra map[string]*memdb.IndexSchema) *memdb.TableSchema {
	indexes := map[string]*memdb.IndexSchema{
		"id": {
			Name:    "id",
			Unique:  true,
			Indexer: &memdb.IntFieldIndex{Field: "ID"},
		},
	}
	for idx, schema := range extra {
		indexes[idx] = schema
	}
	return &memdb.TableSchema{Name: name, Indexes: indexes}
}

func storeSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableDepartments:   idTable(tableDepartments, nil),
			tablePositions:     idTable(tablePositions, nil),
			tableEmployees:     idTable(tableEmployees, nil),
			tableContracts:     idTable(tableContracts, nil),
			tableDocuments:     idTable(tableDocuments, nil),
			tableCompensations: idTable(tableCompensations, nil),
			tableBenefits:      idTable(tableBenefits, nil),
			tableWorkflows:     idTable(tableWorkflows, nil),
			tableWorkflowInstances: idTable(tableWorkflowInstances, map[string]*memdb.IndexSchema{
				"status": {
					Name:         "status",
					AllowMissing: true,
					Indexer:      &memdb.StringFieldIndex{Field: "Status"},
				},
			}),
			tableUsers: idTable(tableUsers, map[string]*memdb.IndexSchema{
				// Not unique: username uniqueness is advisory, not enforced.
				"username": {
					Name:         "username",
					AllowMissing: true,
					Indexer:      &memdb.StringFieldIndex{Field: "Username"},
				},
			}),
		},
	}
}

// Store owns every entity record. It is a process-memory relational store:
// one go-memdb table per entity type, integer ids assigned monotonically per
// type and never reused. Reads run on immutable snapshots; a single mutex
// serializes mutations together with id allocation.
type Store struct {
	mu  sync.Mutex
	db  *memdb.MemDB
	seq map[string]int
	now func() time.Time
}

func NewStore() (*Store, error) {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock lets tests pin the clock used for server-assigned
// timestamps and date-window queries.
func NewStoreWithClock(now func() time.Time) (*Store, error) {
	db, err := memdb.NewMemDB(storeSchema())
	if err != nil {
		return nil, err
	}
	return &Store{
		db:  db,
		seq: make(map[string]int),
		now: now,
	}, nil
}

// nextID requires s.mu to be held.
func (s *Store) nextID(table string) int {
	s.seq[table]++
	return s.seq[table]
}

// insertLocked stores a private copy of rec so the caller's pointer never
// aliases the record shared across snapshots. Requires s.mu held.
func insertLocked[T any](s *Store, table string, rec *T) error {
	stored := *rec
	txn := s.db.Txn(true)
	if err := txn.Insert(table, &stored); err != nil {
		txn.Abort()
		return err
	}
	txn.Commit()
	return nil
}

// view opens a read snapshot. Callers must Abort it when done.
func (s *Store) view() *memdb.Txn {
	return s.db.Txn(false)
}

func lookup[T any](s *Store, table string, id int) (*T, error) {
	txn := s.view()
	defer txn.Abort()
	return lookupTxn[T](txn, table, id)
}

func lookupTxn[T any](txn *memdb.Txn, table string, id int) (*T, error) {
	raw, err := txn.First(table, "id", id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNotFound
	}
	rec := *(raw.(*T))
	return &rec, nil
}

func collect[T any](s *Store, table string, keep func(*T) bool) ([]T, error) {
	txn := s.view()
	defer txn.Abort()
	return collectTxn[T](txn, table, keep)
}

// collectTxn copies matching records out of the snapshot so callers never
// hold references into shared radix nodes.
func collectTxn[T any](txn *memdb.Txn, table string, keep func(*T) bool) ([]T, error) {
	it, err := txn.Get(table, "id")
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	for raw := it.Next(); raw != nil; raw = it.Next() {
		rec := raw.(*T)
		if keep == nil || keep(rec) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

// mutate applies a partial update to a copy of the stored record and swaps
// the copy in. go-memdb shares structure between snapshots, so records are
// never modified in place.
func mutate[T any](s *Store, table string, id int, apply func(*T)) (*T, error) {
	return mutateErr(s, table, id, func(rec *T) error {
		apply(rec)
		return nil
	})
}

// mutateErr is mutate with a fallible apply: an error aborts without
// writing and is returned unchanged. The guard check and the resulting
// mutation run in one critical section, so callers can make a conditional
// update atomic.
func mutateErr[T any](s *Store, table string, id int, apply func(*T) error) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn := s.db.Txn(true)
	raw, err := txn.First(table, "id", id)
	if err != nil {
		txn.Abort()
		return nil, err
	}
	if raw == nil {
		txn.Abort()
		return nil, ErrNotFound
	}

	rec := *(raw.(*T))
	if err := apply(&rec); err != nil {
		txn.Abort()
		return nil, err
	}
	if err := txn.Insert(table, &rec); err != nil {
		txn.Abort()
		return nil, err
	}
	txn.Commit()

	out := rec
	return &out, nil
}

func (s *Store) remove(table string, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn := s.db.Txn(true)
	raw, err := txn.First(table, "id", id)
	if err != nil {
		txn.Abort()
		return false, err
	}
	if raw == nil {
		txn.Abort()
		return false, nil
	}
	if err := txn.Delete(table, raw); err != nil {
		txn.Abort()
		return false, err
	}
	txn.Commit()
	return true, nil
}

// today is the store clock truncated to its calendar day.
func (s *Store) today() Date {
	return DateOf(s.now())
}
