package http

import (
	"errors"
	"io"
	"net/http"

	"shipment/internal/core/application/usecases/commands"
	"shipment/internal/core/application/usecases/queries"
	"shipment/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Welcome to decentralized shipment tracking application. " +
	"Have your shipping orders completely traceable."

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler  commands.CreateOrderCommandHandler
	deliverOrderHandler commands.DeliverOrderCommandHandler
	cancelOrderHandler  commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler     queries.GetOrderQueryHandler
	getAllOrdersHandler queries.GetAllOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	deliverOrderHandler commands.DeliverOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:  createOrderHandler,
		deliverOrderHandler: deliverOrderHandler,
		cancelOrderHandler:  cancelOrderHandler,
		getOrderHandler:     getOrderHandler,
		getAllOrdersHandler: getAllOrdersHandler,
	}
}

// GetWelcome handles GET /.
func (s *Server) GetWelcome(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, servers.Welcome{Message: WelcomeMessage})
}

// CreateDelivery handles POST /delivery - records a new shipping order on the ledger.
// A missing body is treated as an empty order.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	record, err := bindRecord(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(record)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	receipt, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toReceipt(receipt))
}

// DeliverDelivery handles PUT /delivery/{id}/deliver.
func (s *Server) DeliverDelivery(ctx echo.Context, id servers.OrderCode) error {
	receipt, err := s.deliverOrderHandler.Handle(ctx.Request().Context(), commands.NewDeliverOrderCommand(id))
	if err != nil {
		return writeDomainError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toReceipt(receipt))
}

// CancelDelivery handles PUT /delivery/{id}/cancel.
func (s *Server) CancelDelivery(ctx echo.Context, id servers.OrderCode) error {
	receipt, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), commands.NewCancelOrderCommand(id))
	if err != nil {
		return writeDomainError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toReceipt(receipt))
}

// GetDelivery handles GET /delivery/{id}.
func (s *Server) GetDelivery(ctx echo.Context, id servers.OrderCode) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

// ListDeliveries handles GET /delivery - every order in creation order.
func (s *Server) ListDeliveries(ctx echo.Context) error {
	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAllOrdersQuery())
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

func toReceipt(r *commands.Receipt) servers.Receipt {
	out := servers.Receipt{
		TransactionHash: r.TransactionHash,
		BlockNumber:     int64(r.BlockNumber), //nolint:gosec // block numbers fit in int64
		CreatedAt:       r.CreatedAt.UnixMilli(),
	}
	if r.Order != nil {
		out.Order = &servers.ShippingOrder{
			Code:          &r.Order.Code,
			DistributorId: &r.Order.DistributorID,
			ReceptorId:    &r.Order.ReceptorID,
		}
	}
	return out
}

func toOrder(o queries.OrderResponse) servers.Order {
	return servers.Order{
		Code:          o.Code,
		DistributorId: o.DistributorID,
		ReceptorId:    o.ReceptorID,
		Status:        servers.OrderStatus(o.Status.String()),
		Creator:       o.Creator,
	}
}

// bindRecord reads the body as a flat record keeping every key it carries, unknown
// ones included. Non-string values read as empty strings. A missing body or a
// JSON null is a record without keys.
func bindRecord(ctx echo.Context) (map[string]string, error) {
	var fields map[string]any
	if err := ctx.Echo().JSONSerializer.Deserialize(ctx, &fields); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	record := make(map[string]string, len(fields))
	for key, value := range fields {
		str, _ := value.(string)
		record[key] = str
	}
	return record, nil
}
