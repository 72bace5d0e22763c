package store

import (
	"github.com/sciencewithkalana/portal/core/enrollment"
)

// PaymentRepository persists payments in the sk_payments slot.
type PaymentRepository struct {
	store Store
}

var _ enrollment.Repository = (*PaymentRepository)(nil)

func NewPaymentRepository(s Store) *PaymentRepository {
	return &PaymentRepository{store: s}
}

func (repo *PaymentRepository) load() ([]enrollment.Payment, error) {
	payments := []enrollment.Payment{}
	err := loadSlice(repo.store, KeyPayments, &payments, nil)
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (repo *PaymentRepository) CreatePayment(pmt enrollment.Payment) (enrollment.Payment, error) {
	payments, err := repo.load()
	if err != nil {
		return enrollment.Payment{}, err
	}
	pmt.ID = nextID("pay")
	payments = append(payments, pmt)
	return pmt, repo.store.Save(KeyPayments, payments)
}

func (repo *PaymentRepository) QueryAllPayments() ([]enrollment.Payment, error) {
	return repo.load()
}

func (repo *PaymentRepository) GetPaymentByID(id string) (enrollment.Payment, error) {
	payments, err := repo.load()
	if err != nil {
		return enrollment.Payment{}, err
	}
	for _, pmt := range payments {
		if pmt.ID == id {
			return pmt, nil
		}
	}
	return enrollment.Payment{}, enrollment.ErrNotFound
}

func (repo *PaymentRepository) QueryPaymentsByStudent(studentID string) ([]enrollment.Payment, error) {
	payments, err := repo.load()
	if err != nil {
		return nil, err
	}
	matched := []enrollment.Payment{}
	for _, pmt := range payments {
		if pmt.StudentID == studentID {
			matched = append(matched, pmt)
		}
	}
	return matched, nil
}

func (repo *PaymentRepository) QueryPendingPayments() ([]enrollment.Payment, error) {
	payments, err := repo.load()
	if err != nil {
		return nil, err
	}
	pending := []enrollment.Payment{}
	for _, pmt := range payments {
		if pmt.Status == enrollment.StatusPending {
			pending = append(pending, pmt)
		}
	}
	return pending, nil
}

func (repo *PaymentRepository) UpdatePayment(pmt enrollment.Payment) (enrollment.Payment, error) {
	payments, err := repo.load()
	if err != nil {
		return enrollment.Payment{}, err
	}
	for i := range payments {
		if payments[i].ID == pmt.ID {
			payments[i] = pmt
			return pmt, repo.store.Save(KeyPayments, payments)
		}
	}
	return enrollment.Payment{}, enrollment.ErrNotFound
}

// OverrideRepository persists manual activations in the sk_overrides slot.
type OverrideRepository struct {
	store Store
}

var _ enrollment.OverrideRepository = (*OverrideRepository)(nil)

func NewOverrideRepository(s Store) *OverrideRepository {
	return &OverrideRepository{store: s}
}

func (repo *OverrideRepository) load() ([]enrollment.Override, error) {
	overrides := []enrollment.Override{}
	err := loadSlice(repo.store, KeyOverrides, &overrides, nil)
	if err != nil {
		return nil, err
	}
	return overrides, nil
}

func (repo *OverrideRepository) CreateOverride(ovr enrollment.Override) (enrollment.Override, error) {
	overrides, err := repo.load()
	if err != nil {
		return enrollment.Override{}, err
	}
	for _, existing := range overrides {
		if existing.StudentID == ovr.StudentID && existing.ClassID == ovr.ClassID {
			return existing, nil
		}
	}
	overrides = append(overrides, ovr)
	return ovr, repo.store.Save(KeyOverrides, overrides)
}

func (repo *OverrideRepository) HasOverride(studentID, classID string) (bool, error) {
	overrides, err := repo.load()
	if err != nil {
		return false, err
	}
	for _, ovr := range overrides {
		if ovr.StudentID == studentID && ovr.ClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *OverrideRepository) QueryAllOverrides() ([]enrollment.Override, error) {
	return repo.load()
}
