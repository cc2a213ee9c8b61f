package pebblestore_test

import (
	"context"
	"testing"
	"time"

	"shipment/internal/adapters/out/pebblestore"
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store   *pebblestore.Store
	factory *pebblestore.UnitOfWorkFactory
	creator kernel.Address
}

func (s *StoreTestSuite) SetupTest() {
	store, err := pebblestore.OpenInMemory()
	s.Require().NoError(err)
	s.store = store
	s.factory = pebblestore.NewUnitOfWorkFactory(store)
	s.creator, err = kernel.AddressFromHex("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	s.Require().NoError(err)
}

func (s *StoreTestSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *StoreTestSuite) newOrder(code string) *order.Order {
	o, err := order.NewOrder(
		kernel.MustBytes32FromString(code),
		kernel.MustBytes32FromString("distributor 1"),
		kernel.MustBytes32FromString("receptor 1"),
		s.creator,
	)
	s.Require().NoError(err)
	return o
}

func (s *StoreTestSuite) TestCommittedOrdersAreVisible() {
	ctx := context.Background()
	o := s.newOrder("First Order")

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, o))

	// visible inside the transaction before commit
	staged, err := uow.OrderRepository().Get(ctx, o.Code())
	s.Require().NoError(err)
	s.Equal(order.Pending, staged.Status())

	// but not outside it
	_, err = s.factory.Create().OrderRepository().Get(ctx, o.Code())
	s.Require().ErrorIs(err, order.ErrOrderNotFound)

	s.Require().NoError(uow.Commit(ctx))

	got, err := s.factory.Create().OrderRepository().Get(ctx, o.Code())
	s.Require().NoError(err)
	s.Equal(o.Code(), got.Code())
	s.Equal(o.DistributorID(), got.DistributorID())
	s.Equal(o.ReceptorID(), got.ReceptorID())
	s.True(got.Creator().IsEqual(s.creator))
}

func (s *StoreTestSuite) TestRollbackDiscardsWrites() {
	ctx := context.Background()

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, s.newOrder("First Order")))
	s.Require().NoError(uow.ChainRepository().SetHead(ctx, 9))
	s.Require().NoError(uow.Rollback(ctx))
	s.Require().NoError(uow.Rollback(ctx))

	reader := s.factory.Create()
	codes, err := reader.OrderRepository().Codes(ctx)
	s.Require().NoError(err)
	s.Empty(codes)
	head, err := reader.ChainRepository().Head(ctx)
	s.Require().NoError(err)
	s.Zero(head)
}

func (s *StoreTestSuite) TestCodesKeepCreationOrder() {
	ctx := context.Background()
	names := []string{"zulu", "alpha", "mike", "bravo"}

	for _, name := range names {
		uow := s.factory.Create()
		s.Require().NoError(uow.Begin(ctx))
		s.Require().NoError(uow.OrderRepository().Add(ctx, s.newOrder(name)))
		s.Require().NoError(uow.Commit(ctx))
	}

	codes, err := s.factory.Create().OrderRepository().Codes(ctx)
	s.Require().NoError(err)
	s.Require().Len(codes, len(names))
	for i, name := range names {
		s.Equal(name, codes[i].String())
	}
}

func (s *StoreTestSuite) TestDuplicateAndMissingOrders() {
	ctx := context.Background()
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	repo := uow.OrderRepository()
	s.Require().NoError(repo.Add(ctx, s.newOrder("First Order")))
	s.Require().ErrorIs(repo.Add(ctx, s.newOrder("First Order")), order.ErrOrderAlreadyExists)
	s.Require().ErrorIs(repo.Update(ctx, s.newOrder("Second Order")), order.ErrOrderNotFound)
}

func (s *StoreTestSuite) TestUpdatePersistsStatus() {
	ctx := context.Background()
	o := s.newOrder("First Order")

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.OrderRepository().Add(ctx, o))
	_, err := o.Cancel(s.creator)
	s.Require().NoError(err)
	s.Require().NoError(uow.OrderRepository().Update(ctx, o))
	s.Require().NoError(uow.Commit(ctx))

	got, err := s.factory.Create().OrderRepository().Get(ctx, o.Code())
	s.Require().NoError(err)
	s.Equal(order.Cancelled, got.Status())
}

func (s *StoreTestSuite) TestWritesRequireTransaction() {
	ctx := context.Background()
	uow := s.factory.Create()

	s.Require().ErrorIs(uow.OrderRepository().Add(ctx, s.newOrder("First Order")), pebblestore.ErrNoTransaction)
	s.Require().ErrorIs(uow.ChainRepository().SetHead(ctx, 1), pebblestore.ErrNoTransaction)
	s.Require().ErrorIs(uow.Commit(ctx), pebblestore.ErrNoTransaction)
}

func (s *StoreTestSuite) TestReceipts() {
	ctx := context.Background()
	code := kernel.MustBytes32FromString("First Order")
	receipt := &ledger.Receipt{
		Hash:        kernel.Keccak256([]byte("deliver")),
		BlockNumber: 2,
		From:        s.creator,
		Call:        ledger.NewDeliverCall(code),
		Events: []order.Event{{
			Kind: order.EventStatusChanged,
			Code: code,
			From: order.Pending,
			To:   order.Delivered,
		}},
	}

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.ChainRepository().AddReceipt(ctx, receipt))
	s.Require().NoError(uow.ChainRepository().SetHead(ctx, 2))
	s.Require().NoError(uow.Commit(ctx))

	chain := s.factory.Create().ChainRepository()
	got, err := chain.GetReceipt(ctx, receipt.Hash)
	s.Require().NoError(err)
	s.Equal(receipt, got)

	head, err := chain.Head(ctx)
	s.Require().NoError(err)
	s.Equal(uint64(2), head)

	_, err = chain.GetReceipt(ctx, kernel.Keccak256([]byte("unknown")))
	s.Require().ErrorIs(err, ledger.ErrTransactionNotFound)
}

func (s *StoreTestSuite) TestWritersAreSerialized() {
	ctx := context.Background()

	first := s.factory.Create()
	s.Require().NoError(first.Begin(ctx))

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	second := s.factory.Create()
	s.Require().ErrorIs(second.Begin(waitCtx), context.DeadlineExceeded)

	s.Require().NoError(first.Rollback(ctx))

	s.Require().NoError(second.Begin(ctx))
	s.Require().NoError(second.Rollback(ctx))
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
