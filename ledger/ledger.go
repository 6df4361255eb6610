// Package ledger is the guid-indexed deposit store the bank consults to
// detect repeated deposits of one coin.
package ledger

import (
	"fmt"
	"sync"

	"github.com/spacemeshos/ed25519"
	"github.com/spacemeshos/merkle-tree"

	"github.com/blindcash/ecash/shared"
)

type DisclosureRecord = shared.DisclosureRecord

// Ledger keeps deposited disclosure records in memory and an audit tree over
// their digests. Insertion is the protocol's only mutual-exclusion point: a
// compare-and-insert under one mutex, so a concurrently-deposited duplicate
// is never lost.
type Ledger struct {
	mu      sync.Mutex
	records map[string]*DisclosureRecord
	audit   *merkle.Tree
	hasher  shared.Hasher
	logger  shared.Logger
}

func NewLedger() (*Ledger, error) {
	tree, err := merkle.NewTreeBuilder().Build()
	if err != nil {
		return nil, err
	}

	return &Ledger{
		records: make(map[string]*DisclosureRecord),
		audit:   tree,
		hasher:  shared.Sha256Hasher{},
		logger:  shared.DisabledLogger{},
	}, nil
}

func (l *Ledger) SetLogger(logger shared.Logger) {
	l.logger = logger
}

// InsertIfAbsent authenticates a record and deposits it. When a record for
// the guid is already present it is returned with inserted=false, and the
// caller is expected to reconcile the two.
func (l *Ledger) InsertIfAbsent(guid string, rec *DisclosureRecord) (existing *DisclosureRecord, inserted bool, err error) {
	if rec == nil || rec.GUID != guid {
		return nil, false, fmt.Errorf("record guid mismatch; expected: %s", guid)
	}

	digest, err := rec.Digest(l.hasher)
	if err != nil {
		return nil, false, err
	}
	if len(rec.MerchantKey) != ed25519.PublicKeySize ||
		!ed25519.Verify(rec.MerchantKey, digest, rec.MerchantSig) {
		return nil, false, shared.ErrInvalidSignature
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if existing, ok := l.records[guid]; ok {
		l.logger.Warning("ledger: repeated deposit for coin %s", guid)
		return existing, false, nil
	}

	if err := l.audit.AddLeaf(digest); err != nil {
		return nil, false, err
	}
	l.records[guid] = rec

	l.logger.Info("ledger: coin %s deposited", guid)
	return nil, true, nil
}

// Root returns the audit-tree root over all deposited record digests.
func (l *Ledger) Root() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.audit.Root()
}

// NumDeposits returns the number of distinct coins deposited.
func (l *Ledger) NumDeposits() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
