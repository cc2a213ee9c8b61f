package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shipment/internal/adapters/out/ledger/chain"
	"shipment/internal/adapters/out/pebblestore"
	"shipment/internal/core/application/usecases/commands"
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// OrchestratorTestSuite drives the command handlers against a real local ledger.
type OrchestratorTestSuite struct {
	suite.Suite
	store   *pebblestore.Store
	chain   *chain.Chain
	owner   *commands.Transactor
	other   *commands.Transactor
	create  commands.CreateOrderCommandHandler
	deliver commands.DeliverOrderCommandHandler
	cancel  commands.CancelOrderCommandHandler
}

func (s *OrchestratorTestSuite) SetupTest() {
	store, err := pebblestore.OpenInMemory()
	s.Require().NoError(err)
	s.store = store
	s.chain = chain.New(pebblestore.NewUnitOfWorkFactory(store), chain.Config{PollInterval: time.Millisecond})

	ownerAddr, _ := kernel.AddressFromHex("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	otherAddr, _ := kernel.AddressFromHex("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	s.owner, err = commands.NewTransactor(s.chain.Connect(ownerAddr), commands.TransactorConfig{})
	s.Require().NoError(err)
	s.other, err = commands.NewTransactor(s.chain.Connect(otherAddr), commands.TransactorConfig{})
	s.Require().NoError(err)

	s.create = commands.NewCreateOrderCommandHandler(s.owner)
	s.deliver = commands.NewDeliverOrderCommandHandler(s.owner)
	s.cancel = commands.NewCancelOrderCommandHandler(s.owner)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *OrchestratorTestSuite) createFirstOrder() *commands.Receipt {
	cmd, err := commands.NewCreateOrderCommand(createRecord("First Order", "distributor 1", "receptor 1"))
	s.Require().NoError(err)
	receipt, err := s.create.Handle(context.Background(), cmd)
	s.Require().NoError(err)
	return receipt
}

func (s *OrchestratorTestSuite) requireContractError(err error, contains string) {
	var contractErr *errs.ContractError
	s.Require().ErrorAs(err, &contractErr)
	s.Contains(err.Error(), contains)
}

func (s *OrchestratorTestSuite) TestCreateThenDeliverTwice() {
	ctx := context.Background()

	created := s.createFirstOrder()
	s.NotEmpty(created.TransactionHash)
	s.False(created.CreatedAt.IsZero())
	s.Require().NotNil(created.Order)
	s.Equal(commands.ShippingOrder{Code: "First Order", DistributorID: "distributor 1", ReceptorID: "receptor 1"}, *created.Order)

	delivered, err := s.deliver.Handle(ctx, commands.NewDeliverOrderCommand("First Order"))
	s.Require().NoError(err)
	s.NotEmpty(delivered.TransactionHash)
	s.NotEqual(created.TransactionHash, delivered.TransactionHash)
	s.Nil(delivered.Order)

	_, err = s.deliver.Handle(ctx, commands.NewDeliverOrderCommand("First Order"))
	s.requireContractError(err, "not in pending status")
}

func (s *OrchestratorTestSuite) TestCreateSameCodeTwice() {
	s.createFirstOrder()

	cmd, _ := commands.NewCreateOrderCommand(createRecord("First Order", "distributor 2", "receptor 2"))
	_, err := s.create.Handle(context.Background(), cmd)

	s.requireContractError(err, "Shipping order already exists")
}

func (s *OrchestratorTestSuite) TestEmptyOrderNeverReachesLedger() {
	_, err := commands.NewCreateOrderCommand(map[string]string{})

	var validationErr *errs.ValidationError
	s.Require().ErrorAs(err, &validationErr)

	head, err := s.chain.Head(context.Background())
	s.Require().NoError(err)
	s.Zero(head)
}

func (s *OrchestratorTestSuite) TestRecordWithOnlyEmptyOrUnknownKeysReachesLedger() {
	for _, record := range []map[string]string{
		{commands.FieldCode: ""},
		createRecord("", "", ""),
		{"foo": "bar"},
	} {
		cmd, err := commands.NewCreateOrderCommand(record)
		s.Require().NoError(err)

		_, err = s.create.Handle(context.Background(), cmd)

		s.requireContractError(err, "Shipping order code is empty")
	}
}

func (s *OrchestratorTestSuite) TestPartialOrderNamesMissingField() {
	cmd, err := commands.NewCreateOrderCommand(createRecord("First Order", "distributor 1", ""))
	s.Require().NoError(err)

	_, err = s.create.Handle(context.Background(), cmd)

	s.requireContractError(err, "Shipping order receptorId is empty")
}

func (s *OrchestratorTestSuite) TestUnknownOrders() {
	ctx := context.Background()

	_, err := s.deliver.Handle(ctx, commands.NewDeliverOrderCommand("inexistent"))
	s.requireContractError(err, "Non existent shipping order")

	_, err = s.cancel.Handle(ctx, commands.NewCancelOrderCommand("inexistent"))
	s.requireContractError(err, "Non existent shipping order")
}

func (s *OrchestratorTestSuite) TestOnlyCreatorChangesStatus() {
	ctx := context.Background()
	s.createFirstOrder()

	_, err := commands.NewCancelOrderCommandHandler(s.other).Handle(ctx, commands.NewCancelOrderCommand("First Order"))
	s.requireContractError(err, "Not the order owner")

	_, err = s.cancel.Handle(ctx, commands.NewCancelOrderCommand("First Order"))
	s.Require().NoError(err)

	_, err = s.deliver.Handle(ctx, commands.NewDeliverOrderCommand("First Order"))
	s.requireContractError(err, "not in pending status")
}

func (s *OrchestratorTestSuite) TestRacingCreatesHaveOneWinner() {
	ctx := context.Background()
	handlers := []commands.CreateOrderCommandHandler{
		commands.NewCreateOrderCommandHandler(s.owner),
		commands.NewCreateOrderCommandHandler(s.other),
	}

	var wg sync.WaitGroup
	results := make([]error, len(handlers))
	for i, h := range handlers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cmd, _ := commands.NewCreateOrderCommand(createRecord("First Order", "distributor 1", "receptor 1"))
			_, results[i] = h.Handle(ctx, cmd)
		}()
	}
	wg.Wait()

	failures := 0
	for _, err := range results {
		if err != nil {
			failures++
			s.requireContractError(err, "Shipping order already exists")
		}
	}
	s.Equal(1, failures)
}

func (s *OrchestratorTestSuite) TestConfirmationTimeout() {
	ownerAddr, _ := kernel.AddressFromHex("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	tr, err := commands.NewTransactor(s.chain.Connect(ownerAddr), commands.TransactorConfig{
		Confirmations: 3,
		Timeout:       30 * time.Millisecond,
	})
	s.Require().NoError(err)

	cmd, _ := commands.NewCreateOrderCommand(createRecord("First Order", "distributor 1", "receptor 1"))
	_, err = commands.NewCreateOrderCommandHandler(tr).Handle(context.Background(), cmd)

	var contractErr *errs.ContractError
	s.Require().ErrorAs(err, &contractErr)
	s.True(errors.Is(err, context.DeadlineExceeded))

	// the transaction was still accepted; only the wait gave up
	o, err := s.chain.Connect(ownerAddr).GetOrder(context.Background(), kernel.MustBytes32FromString("First Order"))
	s.Require().NoError(err)
	s.Equal("First Order", o.Code().String())
}

func (s *OrchestratorTestSuite) TestConfirmationsWithBlockProducer() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ticker := time.NewTicker(2 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, _ = s.chain.Mine(ctx)
			}
		}
	}()

	ownerAddr, _ := kernel.AddressFromHex("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	client := s.chain.Connect(ownerAddr)
	tr, err := commands.NewTransactor(client, commands.TransactorConfig{Confirmations: 2, Timeout: 5 * time.Second})
	s.Require().NoError(err)

	cmd, _ := commands.NewCreateOrderCommand(createRecord("First Order", "distributor 1", "receptor 1"))
	receipt, err := commands.NewCreateOrderCommandHandler(tr).Handle(ctx, cmd)
	s.Require().NoError(err)

	head, err := s.chain.Head(ctx)
	s.Require().NoError(err)
	s.GreaterOrEqual(head, receipt.BlockNumber+2)

	stored, err := client.Await(ctx, ledger.PendingTransaction{Hash: kernel.HashFromHex(receipt.TransactionHash)}, 0)
	s.Require().NoError(err)
	s.Equal(receipt.BlockNumber, stored.BlockNumber)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
