package repository

import (
	"sync"

	"github.com/collinskipkorir28/surfaypro/internal/models"
)

// PaymentRepository is an in-memory store of payment statuses keyed by
// checkout request ID. All mutations happen under one lock so the poll and
// callback paths cannot interleave a multi-field update, and insertion order
// is kept for the admin listing. Records live for the process lifetime.
type PaymentRepository struct {
	mu      sync.RWMutex
	records map[string]*models.PaymentStatus
	order   []string
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{records: make(map[string]*models.PaymentStatus)}
}

// Create stores a new record. If the ID is already present the existing
// record wins and Create reports false.
func (r *PaymentRepository) Create(p *models.PaymentStatus) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[p.CheckoutRequestID]; ok {
		return false
	}
	cp := *p
	r.records[p.CheckoutRequestID] = &cp
	r.order = append(r.order, p.CheckoutRequestID)
	return true
}

// Get returns a copy of the record for id.
func (r *PaymentRepository) Get(id string) (models.PaymentStatus, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.records[id]
	if !ok {
		return models.PaymentStatus{}, false
	}
	return copyRecord(p), true
}

// Transition moves a pending record to status, recording the result
// description and any callback metadata in the same critical section.
// A record that already reached success or failed keeps its first result:
// the stale write is dropped and Transition reports false, as it does for
// an unknown id.
func (r *PaymentRepository) Transition(id, status, resultDesc string, metadata map[string]any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.records[id]
	if !ok || p.Terminal() {
		return false
	}
	p.Status = status
	if resultDesc != "" {
		p.ResultDesc = resultDesc
	}
	if len(metadata) > 0 {
		if p.Metadata == nil {
			p.Metadata = make(map[string]any, len(metadata))
		}
		for k, v := range metadata {
			p.Metadata[k] = v
		}
	}
	return true
}

// List returns copies of every record in creation order.
func (r *PaymentRepository) List() []models.PaymentStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.PaymentStatus, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, copyRecord(r.records[id]))
	}
	return out
}

func copyRecord(p *models.PaymentStatus) models.PaymentStatus {
	cp := *p
	if p.Metadata != nil {
		cp.Metadata = make(map[string]any, len(p.Metadata))
		for k, v := range p.Metadata {
			cp.Metadata[k] = v
		}
	}
	return cp
}
