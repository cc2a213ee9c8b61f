package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ShipmentTrackerABI is the interface of contracts/ShipmentTracker.sol.
const ShipmentTrackerABI = `[
  {"type":"function","name":"create","stateMutability":"nonpayable","inputs":[
    {"name":"code","type":"bytes32"},{"name":"distributorId","type":"bytes32"},{"name":"receptorId","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"deliver","stateMutability":"nonpayable","inputs":[{"name":"code","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"cancel","stateMutability":"nonpayable","inputs":[{"name":"code","type":"bytes32"}],"outputs":[]},
  {"type":"function","name":"getOrderCodes","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bytes32[]"}]},
  {"type":"function","name":"orders","stateMutability":"view","inputs":[{"name":"","type":"bytes32"}],"outputs":[
    {"name":"code","type":"bytes32"},{"name":"distributorId","type":"bytes32"},{"name":"receptorId","type":"bytes32"},
    {"name":"status","type":"uint8"},{"name":"creator","type":"address"}]},
  {"type":"event","name":"OrderCreated","anonymous":false,"inputs":[
    {"name":"code","type":"bytes32","indexed":true},{"name":"distributorId","type":"bytes32","indexed":false},
    {"name":"receptorId","type":"bytes32","indexed":false},{"name":"creator","type":"address","indexed":false}]},
  {"type":"event","name":"StatusChanged","anonymous":false,"inputs":[
    {"name":"code","type":"bytes32","indexed":true},{"name":"distributorId","type":"bytes32","indexed":false},
    {"name":"receptorId","type":"bytes32","indexed":false},{"name":"oldStatus","type":"uint8","indexed":false},
    {"name":"newStatus","type":"uint8","indexed":false}]}
]`

const (
	eventOrderCreated  = "OrderCreated"
	eventStatusChanged = "StatusChanged"
)

func parseABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(ShipmentTrackerABI))
}

type orderCreatedLog struct {
	Code          [32]byte
	DistributorID [32]byte       `abi:"distributorId"`
	ReceptorID    [32]byte       `abi:"receptorId"`
	Creator       common.Address `abi:"creator"`
}

type statusChangedLog struct {
	Code          [32]byte
	DistributorID [32]byte `abi:"distributorId"`
	ReceptorID    [32]byte `abi:"receptorId"`
	OldStatus     uint8    `abi:"oldStatus"`
	NewStatus     uint8    `abi:"newStatus"`
}
