package service

import (
	"context"
	"errors"
	"sort"

	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/repository/contract"
	"pepper-ai-be/internal/repository/specification"
	"pepper-ai-be/internal/repository/unitofwork"
	"pepper-ai-be/pkg/fal"

	"github.com/google/uuid"
)

// In-memory unit of work. Transactions are not simulated beyond tracking
// whether Commit was reached: a rollback after partial writes restores the
// snapshot taken at Begin.
type fakeStore struct {
	users        map[uuid.UUID]*entity.User
	generations  map[uuid.UUID]*entity.Generation
	loras        map[uuid.UUID]*entity.LoraModel
	transactions map[uuid.UUID]*entity.CreditTransaction
	grants       map[uuid.UUID]*entity.UnresolvedGrant
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        map[uuid.UUID]*entity.User{},
		generations:  map[uuid.UUID]*entity.Generation{},
		loras:        map[uuid.UUID]*entity.LoraModel{},
		transactions: map[uuid.UUID]*entity.CreditTransaction{},
		grants:       map[uuid.UUID]*entity.UnresolvedGrant{},
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for k, v := range s.users {
		u := *v
		cp.users[k] = &u
	}
	for k, v := range s.generations {
		g := *v
		cp.generations[k] = &g
	}
	for k, v := range s.loras {
		l := *v
		cp.loras[k] = &l
	}
	for k, v := range s.transactions {
		t := *v
		cp.transactions[k] = &t
	}
	for k, v := range s.grants {
		g := *v
		cp.grants[k] = &g
	}
	return cp
}

func (s *fakeStore) restore(from *fakeStore) {
	s.users = from.users
	s.generations = from.generations
	s.loras = from.loras
	s.transactions = from.transactions
	s.grants = from.grants
}

type fakeUow struct {
	store    *fakeStore
	saved    *fakeStore
	inTx     bool
	commits  int
	debitErr error
	onDebit  func() // runs before the conditional debit, for race tests
	// runs before a transaction insert, for unique-index race tests
	onTxnCreate func()
}

type fakeUowFactory struct {
	uow *fakeUow
}

func newFakeUowFactory() *fakeUowFactory {
	return &fakeUowFactory{uow: &fakeUow{store: newFakeStore()}}
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.saved = u.store.snapshot()
	u.inTx = true
	return nil
}

func (u *fakeUow) Commit() error {
	u.inTx = false
	u.saved = nil
	u.commits++
	return nil
}

func (u *fakeUow) Rollback() error {
	if u.inTx && u.saved != nil {
		u.store.restore(u.saved)
	}
	u.inTx = false
	u.saved = nil
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{uow: u}
}

func (u *fakeUow) GenerationRepository() contract.GenerationRepository {
	return &fakeGenerationRepo{store: u.store}
}

func (u *fakeUow) LoraRepository() contract.LoraRepository {
	return &fakeLoraRepo{store: u.store}
}

func (u *fakeUow) CreditTransactionRepository() contract.CreditTransactionRepository {
	return &fakeTransactionRepo{uow: u}
}

func (u *fakeUow) UnresolvedGrantRepository() contract.UnresolvedGrantRepository {
	return &fakeGrantRepo{store: u.store}
}

func matchID(specs []specification.Specification) (uuid.UUID, bool) {
	for _, sp := range specs {
		if byID, ok := sp.(specification.ByID); ok {
			return byID.ID, true
		}
	}
	return uuid.Nil, false
}

func matchOwner(specs []specification.Specification) (uuid.UUID, bool) {
	for _, sp := range specs {
		if owned, ok := sp.(specification.UserOwnedBy); ok {
			return owned.UserID, true
		}
	}
	return uuid.Nil, false
}

type fakeUserRepo struct {
	uow *fakeUow
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	cp := *user
	r.uow.store.users[user.Id] = &cp
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	if id, ok := matchID(specs); ok {
		if u, found := r.uow.store.users[id]; found {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.store.users)), nil
}

func (r *fakeUserRepo) DebitCredits(ctx context.Context, userId uuid.UUID, amount float64) (bool, error) {
	if r.uow.debitErr != nil {
		return false, r.uow.debitErr
	}
	if r.uow.onDebit != nil {
		r.uow.onDebit()
	}
	u, found := r.uow.store.users[userId]
	if !found || u.Credits < amount {
		return false, nil
	}
	u.Credits -= amount
	return true, nil
}

func (r *fakeUserRepo) CreditCredits(ctx context.Context, userId uuid.UUID, amount float64) error {
	u, found := r.uow.store.users[userId]
	if !found {
		return errors.New("user not found")
	}
	u.Credits += amount
	return nil
}

type fakeGenerationRepo struct {
	store *fakeStore
}

func (r *fakeGenerationRepo) Create(ctx context.Context, gen *entity.Generation) error {
	cp := *gen
	r.store.generations[gen.Id] = &cp
	return nil
}

func (r *fakeGenerationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.generations, id)
	return nil
}

func (r *fakeGenerationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Generation, error) {
	id, hasID := matchID(specs)
	owner, hasOwner := matchOwner(specs)
	for _, g := range r.store.generations {
		if hasID && g.Id != id {
			continue
		}
		if hasOwner && g.UserId != owner {
			continue
		}
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeGenerationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Generation, error) {
	owner, hasOwner := matchOwner(specs)
	var res []*entity.Generation
	for _, g := range r.store.generations {
		if hasOwner && g.UserId != owner {
			continue
		}
		cp := *g
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r *fakeGenerationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	owner, hasOwner := matchOwner(specs)
	var n int64
	for _, g := range r.store.generations {
		if hasOwner && g.UserId != owner {
			continue
		}
		n++
	}
	return n, nil
}

type fakeLoraRepo struct {
	store *fakeStore
}

func (r *fakeLoraRepo) Create(ctx context.Context, lora *entity.LoraModel) error {
	cp := *lora
	r.store.loras[lora.Id] = &cp
	return nil
}

func (r *fakeLoraRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LoraModel, error) {
	id, hasID := matchID(specs)
	owner, hasOwner := matchOwner(specs)
	for _, l := range r.store.loras {
		if hasID && l.Id != id {
			continue
		}
		if hasOwner && l.UserId != owner {
			continue
		}
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeLoraRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LoraModel, error) {
	owner, hasOwner := matchOwner(specs)
	var res []*entity.LoraModel
	for _, l := range r.store.loras {
		if hasOwner && l.UserId != owner {
			continue
		}
		cp := *l
		res = append(res, &cp)
	}
	return res, nil
}

func (r *fakeLoraRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.loras)), nil
}

type fakeTransactionRepo struct {
	uow *fakeUow
}

func (r *fakeTransactionRepo) Create(ctx context.Context, txn *entity.CreditTransaction) error {
	if r.uow.onTxnCreate != nil {
		r.uow.onTxnCreate()
	}
	for _, existing := range r.uow.store.transactions {
		if existing.StripePaymentId == txn.StripePaymentId {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	cp := *txn
	r.uow.store.transactions[txn.Id] = &cp
	return nil
}

func (r *fakeTransactionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CreditTransaction, error) {
	var ref string
	for _, sp := range specs {
		if byRef, ok := sp.(specification.ByPaymentReference); ok {
			ref = byRef.Reference
		}
	}
	for _, txn := range r.uow.store.transactions {
		if ref != "" && txn.StripePaymentId != ref {
			continue
		}
		cp := *txn
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTransactionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	var res []*entity.CreditTransaction
	for _, txn := range r.uow.store.transactions {
		cp := *txn
		res = append(res, &cp)
	}
	return res, nil
}

func (r *fakeTransactionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.store.transactions)), nil
}

type fakeGrantRepo struct {
	store *fakeStore
}

func (r *fakeGrantRepo) Create(ctx context.Context, grant *entity.UnresolvedGrant) error {
	cp := *grant
	r.store.grants[grant.Id] = &cp
	return nil
}

func (r *fakeGrantRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UnresolvedGrant, error) {
	var res []*entity.UnresolvedGrant
	for _, g := range r.store.grants {
		cp := *g
		res = append(res, &cp)
	}
	return res, nil
}

// fakeProvider records calls and returns canned results.
type fakeProvider struct {
	calls     int
	failWith  error
	resultURL string
}

func (p *fakeProvider) TextToImage(ctx context.Context, input fal.TextToImageInput) (string, error) {
	p.calls++
	if p.failWith != nil {
		return "", p.failWith
	}
	return p.resultURL, nil
}

func (p *fakeProvider) ImageToImage(ctx context.Context, input fal.ImageToImageInput) (string, error) {
	p.calls++
	if p.failWith != nil {
		return "", p.failWith
	}
	return p.resultURL, nil
}

func (p *fakeProvider) ImageToVideo(ctx context.Context, input fal.ImageToVideoInput) (string, error) {
	p.calls++
	if p.failWith != nil {
		return "", p.failWith
	}
	return p.resultURL, nil
}

func (p *fakeProvider) TrainLora(ctx context.Context, input fal.LoraTrainingInput) error {
	p.calls++
	return p.failWith
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
